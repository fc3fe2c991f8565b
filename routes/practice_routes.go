package routes

import (
	"github.com/anjiri1684/driving_exam/handlers"
	"github.com/anjiri1684/driving_exam/middleware"
	"github.com/gofiber/fiber/v2"
)

func PracticeRoutes(app *fiber.App) {
	practice := app.Group("/api/practice", middleware.Protected())

	practice.Post("/sessions", handlers.CreatePracticeSession)
	practice.Get("/sessions/:sessionId/questions", handlers.GetSessionQuestions)
	practice.Put("/sessions/:sessionId/answers", handlers.SubmitSessionAnswer)
	practice.Post("/sessions/:sessionId/complete", handlers.CompletePracticeSession)

	practice.Get("/records", handlers.ListPracticeRecords)
	practice.Get("/stats", handlers.GetPracticeStats)
}
