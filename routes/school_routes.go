package routes

import (
	"github.com/anjiri1684/driving_exam/handlers"
	"github.com/gofiber/fiber/v2"
)

func SchoolRoutes(app *fiber.App) {
	schools := app.Group("/api/schools")

	schools.Get("", handlers.ListSchools)
	schools.Get("/nearby", handlers.NearbySchools)
	schools.Get("/partners", handlers.PartnerSchools)
	schools.Get("/:schoolId", handlers.GetSchool)
}
