package services

import (
	"log"

	"github.com/anjiri1684/driving_exam/models"
	"github.com/anjiri1684/driving_exam/utils"
	"gorm.io/gorm"
)

// DeleteReport removes the photo rows and the report itself in one transaction
// and returns the relative URLs of the files that backed them. Row deletion is
// atomic; the caller unlinks the files afterwards so a failed unlink can never
// roll the delete back.
func DeleteReport(db *gorm.DB, report *models.AccidentReport) ([]string, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", report.ID).Delete(&models.AccidentPhoto{}).Error; err != nil {
			return err
		}
		return tx.Delete(report).Error
	})
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(report.Photos)+1)
	for _, photo := range report.Photos {
		urls = append(urls, photo.ImageURL)
	}
	if report.PDFURL != nil {
		urls = append(urls, *report.PDFURL)
	}
	return urls, nil
}

// RemoveReportFiles best-effort unlinks the files behind the given upload URLs.
// A file that cannot be removed is logged and left behind.
func RemoveReportFiles(urls []string) {
	for _, url := range urls {
		if err := utils.RemoveUploadedFile(url); err != nil {
			log.Printf("Could not remove file %s: %v", url, err)
		}
	}
}
