package routes

import (
	"github.com/anjiri1684/driving_exam/handlers"
	"github.com/gofiber/fiber/v2"
)

func CategoryRoutes(app *fiber.App) {
	categories := app.Group("/api/categories")

	categories.Get("", handlers.ListCategories)
	categories.Get("/:categoryId", handlers.GetCategory)
}
