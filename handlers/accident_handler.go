package handlers

import (
	"log"
	"time"

	"github.com/anjiri1684/driving_exam/database"
	"github.com/anjiri1684/driving_exam/models"
	"github.com/anjiri1684/driving_exam/services"
	"github.com/anjiri1684/driving_exam/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListAccidentReports(c *fiber.Ctx) error {
	userID := currentUserID(c)
	page, limit, offset := utils.ParsePagination(c)
	status := c.Query("status")

	query := database.DB.Model(&models.AccidentReport{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var reports []models.AccidentReport
	if err := query.
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load accident reports"})
	}

	type reportRow struct {
		models.AccidentReport
		PhotoCount int64 `json:"photo_count"`
	}
	rows := make([]reportRow, len(reports))
	for i, report := range reports {
		var photoCount int64
		database.DB.Model(&models.AccidentPhoto{}).Where("report_id = ?", report.ID).Count(&photoCount)
		rows[i] = reportRow{AccidentReport: report, PhotoCount: photoCount}
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"reports":    rows,
		"pagination": utils.Pagination(page, limit, total),
	}})
}

func GetAccidentReport(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var report models.AccidentReport
	if err := database.DB.
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC, uploaded_at ASC") }).
		First(&report, "id = ? AND user_id = ?", c.Params("reportId"), userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Accident report not found"})
	}
	return c.JSON(fiber.Map{"success": true, "data": report})
}

type CreateReportRequest struct {
	AccidentTime     time.Time `json:"accident_time" validate:"required"`
	AccidentLocation *string   `json:"accident_location"`
	Description      *string   `json:"description"`
	OtherPartyInfo   *string   `json:"other_party_info"`
}

func CreateAccidentReport(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "errors": err.Error()})
	}

	report := models.AccidentReport{
		UserID:           userID,
		AccidentTime:     req.AccidentTime,
		AccidentLocation: req.AccidentLocation,
		Description:      req.Description,
		OtherPartyInfo:   req.OtherPartyInfo,
		Status:           models.ReportStatusDraft,
	}
	if err := database.DB.Create(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create accident report"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": report, "message": "Accident report created"})
}

type UpdateReportRequest struct {
	AccidentTime     *time.Time `json:"accident_time"`
	AccidentLocation *string    `json:"accident_location"`
	Description      *string    `json:"description"`
	OtherPartyInfo   *string    `json:"other_party_info"`
	Status           *string    `json:"status" validate:"omitempty,oneof=draft submitted archived"`
}

// UpdateAccidentReport patches only the provided fields. Moving a report to
// submitted kicks off PDF generation in the background.
func UpdateAccidentReport(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var report models.AccidentReport
	if err := database.DB.First(&report, "id = ? AND user_id = ?", c.Params("reportId"), userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Accident report not found"})
	}

	var req UpdateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "errors": err.Error()})
	}

	wasSubmitted := report.Status == models.ReportStatusSubmitted

	if req.AccidentTime != nil {
		report.AccidentTime = *req.AccidentTime
	}
	if req.AccidentLocation != nil {
		report.AccidentLocation = req.AccidentLocation
	}
	if req.Description != nil {
		report.Description = req.Description
	}
	if req.OtherPartyInfo != nil {
		report.OtherPartyInfo = req.OtherPartyInfo
	}
	if req.Status != nil {
		report.Status = *req.Status
	}

	if err := database.DB.Save(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update accident report"})
	}

	if !wasSubmitted && report.Status == models.ReportStatusSubmitted {
		go services.GenerateReportDocument(report.ID)
	}

	return c.JSON(fiber.Map{"success": true, "data": report, "message": "Accident report updated"})
}

// DeleteAccidentReport removes photo rows then the report in one transaction,
// then best-effort deletes the files and the generated PDF. A file that cannot
// be removed is logged and left behind; the delete itself never fails for it.
func DeleteAccidentReport(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var report models.AccidentReport
	if err := database.DB.
		Preload("Photos").
		First(&report, "id = ? AND user_id = ?", c.Params("reportId"), userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Accident report not found"})
	}

	fileURLs, err := services.DeleteReport(database.DB, &report)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete accident report"})
	}
	services.RemoveReportFiles(fileURLs)

	return c.JSON(fiber.Map{"success": true, "message": "Accident report deleted"})
}

// AddAccidentPhoto stores the file first, then the row. If the row insert
// fails the stored file is orphaned; that inconsistency is accepted and the
// client just sees the error.
func AddAccidentPhoto(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var report models.AccidentReport
	if err := database.DB.First(&report, "id = ? AND user_id = ?", c.Params("reportId"), userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Accident report not found"})
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Photo file is required"})
	}

	imageURL, err := utils.SaveUpload(c, file, "accidents")
	if err != nil {
		if err == utils.ErrFileType || err == utils.ErrFileTooLarge {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to store photo"})
	}

	photoType := c.FormValue("photo_type", "other")
	caption := c.FormValue("caption", "")

	photo := models.AccidentPhoto{
		ReportID:  report.ID,
		ImageURL:  imageURL,
		PhotoType: photoType,
		Caption:   caption,
	}
	if err := database.DB.Create(&photo).Error; err != nil {
		log.Printf("Photo row insert failed, file %s is orphaned: %v", imageURL, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to save photo"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": photo, "message": "Photo uploaded"})
}

func RemoveAccidentPhoto(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var report models.AccidentReport
	if err := database.DB.First(&report, "id = ? AND user_id = ?", c.Params("reportId"), userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Accident report not found"})
	}

	var photo models.AccidentPhoto
	if err := database.DB.First(&photo, "id = ? AND report_id = ?", c.Params("photoId"), report.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Photo not found"})
	}

	if err := database.DB.Delete(&photo).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete photo"})
	}

	if err := utils.RemoveUploadedFile(photo.ImageURL); err != nil {
		log.Printf("Could not remove photo file %s: %v", photo.ImageURL, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Photo deleted"})
}
