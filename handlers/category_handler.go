package handlers

import (
	"github.com/anjiri1684/driving_exam/database"
	"github.com/anjiri1684/driving_exam/models"
	"github.com/gofiber/fiber/v2"
)

func ListCategories(c *fiber.Ctx) error {
	type categoryRow struct {
		models.QuestionCategory
		QuestionCount int64 `json:"question_count"`
	}

	var categories []models.QuestionCategory
	if err := database.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load categories"})
	}

	rows := make([]categoryRow, len(categories))
	for i, category := range categories {
		var count int64
		database.DB.Model(&models.Question{}).Where("category_id = ?", category.ID).Count(&count)
		rows[i] = categoryRow{QuestionCategory: category, QuestionCount: count}
	}

	return c.JSON(fiber.Map{"success": true, "data": rows})
}

func GetCategory(c *fiber.Ctx) error {
	var category models.QuestionCategory
	if err := database.DB.First(&category, "id = ?", c.Params("categoryId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Category not found"})
	}
	return c.JSON(fiber.Map{"success": true, "data": category})
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description"`
}

func AdminCreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "errors": err.Error()})
	}

	var count int64
	database.DB.Model(&models.QuestionCategory{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Category name already exists"})
	}

	category := models.QuestionCategory{Name: req.Name, Description: req.Description}
	if err := database.DB.Create(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create category"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": category, "message": "Category created"})
}

func AdminUpdateCategory(c *fiber.Ctx) error {
	var category models.QuestionCategory
	if err := database.DB.First(&category, "id = ?", c.Params("categoryId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Category not found"})
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "errors": err.Error()})
	}

	var count int64
	database.DB.Model(&models.QuestionCategory{}).Where("name = ? AND id <> ?", req.Name, category.ID).Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Category name already exists"})
	}

	category.Name = req.Name
	category.Description = req.Description
	if err := database.DB.Save(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update category"})
	}
	return c.JSON(fiber.Map{"success": true, "data": category, "message": "Category updated"})
}

func AdminDeleteCategory(c *fiber.Ctx) error {
	var category models.QuestionCategory
	if err := database.DB.First(&category, "id = ?", c.Params("categoryId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Category not found"})
	}

	var questionCount int64
	database.DB.Model(&models.Question{}).Where("category_id = ?", category.ID).Count(&questionCount)
	if questionCount > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Category still has questions and cannot be deleted"})
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete category"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Category deleted"})
}
