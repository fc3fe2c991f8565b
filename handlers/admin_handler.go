package handlers

import (
	"time"

	"github.com/anjiri1684/driving_exam/database"
	"github.com/anjiri1684/driving_exam/models"
	"github.com/anjiri1684/driving_exam/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type userCounters struct {
	TotalUsers    int64 `json:"total_users"`
	AdminUsers    int64 `json:"admin_users"`
	ActiveUsers   int64 `json:"active_users"`
	TodayNewUsers int64 `json:"today_new_users"`
}

type questionCounters struct {
	TotalQuestions    int64 `json:"total_questions"`
	SingleChoice      int64 `json:"single_choice_questions"`
	MultipleChoice    int64 `json:"multiple_choice_questions"`
	TrueFalse         int64 `json:"true_false_questions"`
	TodayNewQuestions int64 `json:"today_new_questions"`
}

type practiceCounters struct {
	TotalPractices  int64    `json:"total_practices"`
	AverageScore    *float64 `json:"average_score"`
	PassedPractices int64    `json:"passed_practices"`
	TodayPractices  int64    `json:"today_practices"`
}

type accidentCounters struct {
	TotalReports     int64 `json:"total_reports"`
	SubmittedReports int64 `json:"submitted_reports"`
	TodayReports     int64 `json:"today_reports"`
}

type trendPoint struct {
	Date  time.Time `json:"date"`
	Count int64     `json:"count"`
}

func GetDashboardStats(c *fiber.Ctx) error {
	var users userCounters
	database.DB.Model(&models.User{}).Select(`COUNT(*) as total_users,
		COUNT(CASE WHEN role = 'admin' THEN 1 END) as admin_users,
		COUNT(CASE WHEN is_active THEN 1 END) as active_users,
		COUNT(CASE WHEN created_at::date = CURRENT_DATE THEN 1 END) as today_new_users`).
		Scan(&users)

	var questions questionCounters
	database.DB.Model(&models.Question{}).Select(`COUNT(*) as total_questions,
		COUNT(CASE WHEN question_type = 'single_choice' THEN 1 END) as single_choice,
		COUNT(CASE WHEN question_type = 'multiple_choice' THEN 1 END) as multiple_choice,
		COUNT(CASE WHEN question_type = 'true_false' THEN 1 END) as true_false,
		COUNT(CASE WHEN created_at::date = CURRENT_DATE THEN 1 END) as today_new_questions`).
		Scan(&questions)

	var totalCategories int64
	database.DB.Model(&models.QuestionCategory{}).Count(&totalCategories)

	var practices practiceCounters
	database.DB.Model(&models.PracticeRecord{}).Select(`COUNT(*) as total_practices,
		AVG(score) as average_score,
		COUNT(CASE WHEN is_passed THEN 1 END) as passed_practices,
		COUNT(CASE WHEN completed_at::date = CURRENT_DATE THEN 1 END) as today_practices`).
		Scan(&practices)

	var accidents accidentCounters
	database.DB.Model(&models.AccidentReport{}).Select(`COUNT(*) as total_reports,
		COUNT(CASE WHEN status = 'submitted' THEN 1 END) as submitted_reports,
		COUNT(CASE WHEN created_at::date = CURRENT_DATE THEN 1 END) as today_reports`).
		Scan(&accidents)

	var userTrend []trendPoint
	database.DB.Raw(`SELECT created_at::date as date, COUNT(*) as count
		FROM users
		WHERE created_at >= NOW() - INTERVAL '7 days'
		GROUP BY created_at::date
		ORDER BY date DESC`).Scan(&userTrend)

	var practiceTrend []trendPoint
	database.DB.Raw(`SELECT completed_at::date as date, COUNT(*) as count
		FROM practice_records
		WHERE completed_at >= NOW() - INTERVAL '7 days'
		GROUP BY completed_at::date
		ORDER BY date DESC`).Scan(&practiceTrend)

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"users":      users,
		"questions":  questions,
		"categories": fiber.Map{"total_categories": totalCategories},
		"practices":  practices,
		"accidents":  accidents,
		"trends": fiber.Map{
			"users":     userTrend,
			"practices": practiceTrend,
		},
	}})
}

func AdminListUsers(c *fiber.Ctx) error {
	page, limit, offset := utils.ParsePagination(c)
	search := c.Query("search")
	role := c.Query("role")

	query := database.DB.Model(&models.User{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load users"})
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"users":      users,
		"pagination": utils.Pagination(page, limit, total),
	}})
}

func AdminGetUser(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Params("userId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	var stats PracticeStats
	database.DB.Model(&models.PracticeRecord{}).
		Where("user_id = ?", user.ID).
		Select(`COUNT(*) as total_practices,
			AVG(score) as average_score,
			MAX(score) as best_score,
			MIN(score) as worst_score,
			SUM(total_questions) as total_questions,
			SUM(correct_answers) as total_correct_answers,
			COUNT(CASE WHEN is_passed THEN 1 END) as passed_practices`).
		Scan(&stats)

	var bookmarkCount int64
	database.DB.Model(&models.Bookmark{}).Where("user_id = ?", user.ID).Count(&bookmarkCount)

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"user":           user,
		"practice_stats": stats,
		"bookmark_count": bookmarkCount,
	}})
}

type AdminUpdateUserRequest struct {
	Email              *string `json:"email" validate:"omitempty,email"`
	Role               *string `json:"role" validate:"omitempty,oneof=user admin"`
	IsActive           *bool   `json:"is_active"`
	LanguagePreference *string `json:"language_preference" validate:"omitempty,oneof=zh en th"`
}

func AdminUpdateUser(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Params("userId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	var req AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "errors": err.Error()})
	}

	if req.Email != nil && *req.Email != user.Email {
		var count int64
		database.DB.Model(&models.User{}).Where("email = ? AND id <> ?", *req.Email, user.ID).Count(&count)
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Email already in use by another user"})
		}
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.LanguagePreference != nil {
		user.LanguagePreference = *req.LanguagePreference
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update user"})
	}
	return c.JSON(fiber.Map{"success": true, "data": user, "message": "User updated"})
}

func AdminDeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid user id"})
	}

	if userID == currentUserID(c) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "You cannot delete your own account"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	if err := deleteUserCascade(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete user"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "User deleted"})
}
