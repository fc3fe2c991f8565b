package routes

import (
	"github.com/anjiri1684/driving_exam/handlers"
	"github.com/anjiri1684/driving_exam/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	admin := app.Group("/api/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/stats", handlers.GetDashboardStats)

	users := admin.Group("/users")
	users.Get("", handlers.AdminListUsers)
	users.Get("/:userId", handlers.AdminGetUser)
	users.Put("/:userId", handlers.AdminUpdateUser)
	users.Delete("/:userId", handlers.AdminDeleteUser)

	questions := admin.Group("/questions")
	questions.Get("", handlers.AdminListQuestions)
	questions.Post("", handlers.AdminCreateQuestion)
	questions.Post("/batch-import", handlers.AdminBatchImportQuestions)
	questions.Get("/:questionId", handlers.AdminGetQuestion)
	questions.Put("/:questionId", handlers.AdminUpdateQuestion)
	questions.Delete("/:questionId", handlers.AdminDeleteQuestion)

	categories := admin.Group("/categories")
	categories.Get("", handlers.ListCategories)
	categories.Post("", handlers.AdminCreateCategory)
	categories.Put("/:categoryId", handlers.AdminUpdateCategory)
	categories.Delete("/:categoryId", handlers.AdminDeleteCategory)
}
