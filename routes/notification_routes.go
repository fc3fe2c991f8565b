package routes

import (
	"github.com/anjiri1684/driving_exam/handlers"
	"github.com/anjiri1684/driving_exam/middleware"
	"github.com/gofiber/fiber/v2"
)

func NotificationRoutes(app *fiber.App) {
	notifications := app.Group("/api/notifications", middleware.Protected())

	notifications.Get("", handlers.ListNotifications)
	notifications.Put("/read-all", handlers.MarkAllNotificationsRead)
	notifications.Put("/:notificationId/read", handlers.MarkNotificationRead)
}
