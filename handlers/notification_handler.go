package handlers

import (
	"github.com/anjiri1684/driving_exam/database"
	"github.com/anjiri1684/driving_exam/models"
	"github.com/anjiri1684/driving_exam/utils"
	"github.com/gofiber/fiber/v2"
)

func ListNotifications(c *fiber.Ctx) error {
	userID := currentUserID(c)
	page, limit, offset := utils.ParsePagination(c)

	var total int64
	database.DB.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&total)

	var unread int64
	database.DB.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Count(&unread)

	var notifications []models.Notification
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load notifications"})
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"notifications": notifications,
		"unread":        unread,
		"pagination":    utils.Pagination(page, limit, total),
	}})
}

func MarkNotificationRead(c *fiber.Ctx) error {
	userID := currentUserID(c)

	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", c.Params("notificationId"), userID).
		Update("is_read", true)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update notification"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Notification not found"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Notification marked as read"})
}

func MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID := currentUserID(c)

	if err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update notifications"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "All notifications marked as read"})
}
