package routes

import (
	"github.com/anjiri1684/driving_exam/handlers"
	"github.com/anjiri1684/driving_exam/middleware"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App) {
	upload := app.Group("/api/upload", middleware.Protected())

	upload.Post("/image", handlers.UploadImage)
	upload.Post("/file", handlers.UploadFile)
	upload.Get("/signature", middleware.AdminRequired(), handlers.GenerateUploadSignature)
}
