package routes

import (
	"github.com/anjiri1684/driving_exam/handlers"
	"github.com/anjiri1684/driving_exam/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)

	auth.Get("/profile", middleware.Protected(), handlers.GetProfile)
	auth.Put("/profile", middleware.Protected(), handlers.UpdateProfile)
	auth.Put("/password", middleware.Protected(), handlers.ChangePassword)
	auth.Delete("/account", middleware.Protected(), handlers.DeleteAccount)
}
