package routes

import (
	"github.com/anjiri1684/driving_exam/handlers"
	"github.com/anjiri1684/driving_exam/middleware"
	"github.com/gofiber/fiber/v2"
)

func QuestionRoutes(app *fiber.App) {
	questions := app.Group("/api/questions", middleware.Protected())

	questions.Get("/bookmarks", handlers.ListBookmarks)
	questions.Get("/getByCategory/:categoryId", handlers.GetQuestionsByCategory)
	questions.Post("/submit", handlers.SubmitStandaloneAnswer)
	questions.Post("/:questionId/bookmark", handlers.BookmarkQuestion)
	questions.Delete("/:questionId/bookmark", handlers.UnbookmarkQuestion)
	questions.Get("/:questionId", handlers.GetQuestion)
}
