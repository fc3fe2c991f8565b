package routes

import (
	"github.com/anjiri1684/driving_exam/handlers"
	"github.com/anjiri1684/driving_exam/middleware"
	"github.com/gofiber/fiber/v2"
)

func AccidentRoutes(app *fiber.App) {
	accidents := app.Group("/api/accidents", middleware.Protected())

	accidents.Get("", handlers.ListAccidentReports)
	accidents.Post("", handlers.CreateAccidentReport)
	accidents.Get("/:reportId", handlers.GetAccidentReport)
	accidents.Put("/:reportId", handlers.UpdateAccidentReport)
	accidents.Delete("/:reportId", handlers.DeleteAccidentReport)

	accidents.Post("/:reportId/photos", handlers.AddAccidentPhoto)
	accidents.Delete("/:reportId/photos/:photoId", handlers.RemoveAccidentPhoto)
}
