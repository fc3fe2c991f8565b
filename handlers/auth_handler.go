package handlers

import (
	"errors"
	"time"

	config "github.com/anjiri1684/driving_exam/configs"
	"github.com/anjiri1684/driving_exam/database"
	"github.com/anjiri1684/driving_exam/models"
	"github.com/anjiri1684/driving_exam/notifications"
	"github.com/anjiri1684/driving_exam/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

func currentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	return userID
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	LanguagePreference string    `json:"language_preference"`
	CreatedAt          time.Time `json:"created_at"`
}

func RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "errors": err.Error()})
	}

	var count int64
	database.DB.Model(&models.User{}).Where("email = ? OR username = ?", req.Email, req.Username).Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Username or email already exists"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to hash password"})
	}

	newUser := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Username or email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create user"})
	}

	go notifications.SendEmail(newUser.Username, newUser.Email, "Welcome!",
		"<h1>Welcome!</h1><p>Thank you for registering. Good luck with your driving exam practice.</p>")

	response := UserResponse{
		ID:                 newUser.ID.String(),
		Username:           newUser.Username,
		Email:              newUser.Email,
		Role:               newUser.Role,
		LanguagePreference: newUser.LanguagePreference,
		CreatedAt:          newUser.CreatedAt,
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": response, "message": "Registration successful"})
}

func LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "errors": err.Error()})
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid email or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid email or password"})
	}

	if !user.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Account is disabled"})
	}

	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.Config("JWT_SECRET")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create token"})
	}

	now := time.Now()
	database.DB.Model(&user).Update("last_login_at", &now)

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"token": signed,
		"user": UserResponse{
			ID:                 user.ID.String(),
			Username:           user.Username,
			Email:              user.Email,
			Role:               user.Role,
			LanguagePreference: user.LanguagePreference,
			CreatedAt:          user.CreatedAt,
		},
	}})
}

func GetProfile(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.First(&user, "id = ?", currentUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

type UpdateProfileRequest struct {
	Username           *string `json:"username" validate:"omitempty,min=3,max=50"`
	LanguagePreference *string `json:"language_preference" validate:"omitempty,oneof=zh en th"`
}

func UpdateProfile(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.First(&user, "id = ?", currentUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "errors": err.Error()})
	}

	if req.Username != nil && *req.Username != user.Username {
		var count int64
		database.DB.Model(&models.User{}).Where("username = ? AND id <> ?", *req.Username, user.ID).Count(&count)
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Username already taken"})
		}
		user.Username = *req.Username
	}
	if req.LanguagePreference != nil {
		user.LanguagePreference = *req.LanguagePreference
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update profile"})
	}
	return c.JSON(fiber.Map{"success": true, "data": user, "message": "Profile updated"})
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

func ChangePassword(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.First(&user, "id = ?", currentUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "errors": err.Error()})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Current password is incorrect"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to hash password"})
	}

	if err := database.DB.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to change password"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Password changed"})
}

type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

func DeleteAccount(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	var req DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Password is incorrect"})
	}

	if err := deleteUserCascade(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete account"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Account deleted"})
}

// deleteUserCascade removes a user and everything the user owns in a single
// transaction. Children go first so a partial delete is never observable.
func deleteUserCascade(userID uuid.UUID) error {
	// Collect the accident file URLs up front; the rows they hang off are gone
	// once the transaction commits.
	var fileURLs []string
	database.DB.Model(&models.AccidentPhoto{}).
		Joins("JOIN accident_reports ON accident_reports.id = accident_photos.report_id").
		Where("accident_reports.user_id = ?", userID).
		Pluck("accident_photos.image_url", &fileURLs)
	var pdfURLs []string
	database.DB.Model(&models.AccidentReport{}).
		Where("user_id = ? AND pdf_url IS NOT NULL", userID).
		Pluck("pdf_url", &pdfURLs)
	fileURLs = append(fileURLs, pdfURLs...)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var sessionIDs []uuid.UUID
		if err := tx.Model(&models.PracticeSession{}).Where("user_id = ?", userID).Pluck("id", &sessionIDs).Error; err != nil {
			return err
		}
		if len(sessionIDs) > 0 {
			if err := tx.Where("session_id IN ?", sessionIDs).Delete(&models.PracticeAnswer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("session_id IN ?", sessionIDs).Delete(&models.PracticeSessionQuestion{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.PracticeSession{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.PracticeRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}

		var reportIDs []uuid.UUID
		if err := tx.Model(&models.AccidentReport{}).Where("user_id = ?", userID).Pluck("id", &reportIDs).Error; err != nil {
			return err
		}
		if len(reportIDs) > 0 {
			if err := tx.Where("report_id IN ?", reportIDs).Delete(&models.AccidentPhoto{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.AccidentReport{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
	if err != nil {
		return err
	}

	services.RemoveReportFiles(fileURLs)
	return nil
}
