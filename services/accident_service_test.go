package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anjiri1684/driving_exam/models"
	"github.com/google/uuid"
)

func TestDeleteReportCascade(t *testing.T) {
	db := newTestDB(t)
	uploadDir := t.TempDir()
	t.Setenv("UPLOAD_PATH", uploadDir)

	for _, dir := range []string{"accidents", "documents"} {
		if err := os.MkdirAll(filepath.Join(uploadDir, dir), 0o755); err != nil {
			t.Fatalf("prepare upload dir: %v", err)
		}
	}
	paths := []string{
		filepath.Join(uploadDir, "accidents", "accidents-scene.jpg"),
		filepath.Join(uploadDir, "accidents", "accidents-damage.jpg"),
		filepath.Join(uploadDir, "documents", "accident-report-test.pdf"),
	}
	for _, path := range paths {
		if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
			t.Fatalf("prepare upload file: %v", err)
		}
	}

	pdfURL := "/uploads/documents/accident-report-test.pdf"
	report := models.AccidentReport{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		AccidentTime: time.Now(),
		Status:       models.ReportStatusSubmitted,
		PDFURL:       &pdfURL,
	}
	if err := db.Create(&report).Error; err != nil {
		t.Fatalf("create report: %v", err)
	}

	photos := []models.AccidentPhoto{
		{ID: uuid.New(), ReportID: report.ID, ImageURL: "/uploads/accidents/accidents-scene.jpg", PhotoType: "scene"},
		{ID: uuid.New(), ReportID: report.ID, ImageURL: "/uploads/accidents/accidents-damage.jpg", PhotoType: "damage"},
	}
	if err := db.Create(&photos).Error; err != nil {
		t.Fatalf("create photos: %v", err)
	}
	report.Photos = photos

	urls, err := DeleteReport(db, &report)
	if err != nil {
		t.Fatalf("delete report: %v", err)
	}
	if len(urls) != 3 {
		t.Fatalf("file urls = %d, want 3 (two photos and the document)", len(urls))
	}

	var photoRows, reportRows int64
	db.Model(&models.AccidentPhoto{}).Where("report_id = ?", report.ID).Count(&photoRows)
	db.Model(&models.AccidentReport{}).Where("id = ?", report.ID).Count(&reportRows)
	if photoRows != 0 || reportRows != 0 {
		t.Fatalf("rows after delete: %d photos, %d reports; want 0 and 0", photoRows, reportRows)
	}

	RemoveReportFiles(urls)
	for _, path := range paths {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("file %s still exists after cleanup", path)
		}
	}
}

func TestRemoveReportFilesToleratesMissing(t *testing.T) {
	t.Setenv("UPLOAD_PATH", t.TempDir())

	// Files that are already gone or were never uploads must not panic or
	// remove anything outside the upload root.
	RemoveReportFiles([]string{"/uploads/accidents/never-existed.jpg", "/etc/passwd", ""})
}
