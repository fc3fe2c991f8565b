package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	config "github.com/anjiri1684/driving_exam/configs"
	"github.com/anjiri1684/driving_exam/database"
	"github.com/anjiri1684/driving_exam/models"
	"github.com/anjiri1684/driving_exam/notifications"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
)

// GenerateReportDocument renders a submitted accident report to PDF and stores
// it under the uploads root. Meant to run in a goroutine after the status
// transition commits; any failure is logged and the report simply keeps a nil
// pdf_url.
func GenerateReportDocument(reportID uuid.UUID) {
	var report models.AccidentReport
	if err := database.DB.Preload("Photos").First(&report, "id = ?", reportID).Error; err != nil {
		log.Printf("🔥 Report %s vanished before PDF generation: %v", reportID, err)
		return
	}

	htmlData, err := renderReportHTML(report)
	if err != nil {
		log.Printf("🔥 Failed to render report HTML for %s: %v", reportID, err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate report PDF for %s: %v", reportID, err)
		return
	}

	pdfURL, err := storeReportPDF(reportID, pdfBytes)
	if err != nil {
		log.Printf("🔥 Failed to store report PDF for %s: %v", reportID, err)
		return
	}

	if err := database.DB.Model(&report).Update("pdf_url", pdfURL).Error; err != nil {
		log.Printf("🔥 Failed to save pdf_url for report %s: %v", reportID, err)
		return
	}

	Notify(report.UserID, NotificationTypeReport,
		"Accident report document ready",
		fmt.Sprintf("The PDF document for your accident report is ready: %s", pdfURL))

	var user models.User
	if err := database.DB.First(&user, "id = ?", report.UserID).Error; err == nil {
		go notifications.SendEmail(user.Username, user.Email,
			"Your Accident Report Document is Ready",
			fmt.Sprintf("<h1>Document Ready</h1><p>The PDF for your accident report of %s has been generated and is available in the app.</p>",
				report.AccidentTime.Format("January 2, 2006")))
	}

	log.Printf("✅ Generated accident report document %s for user %s", pdfURL, report.UserID)
}

func renderReportHTML(report models.AccidentReport) (string, error) {
	tmpl, err := template.ParseFiles("templates/accident_report.html")
	if err != nil {
		return "", err
	}

	location := ""
	if report.AccidentLocation != nil {
		location = *report.AccidentLocation
	}
	description := ""
	if report.Description != nil {
		description = *report.Description
	}
	otherParty := ""
	if report.OtherPartyInfo != nil {
		otherParty = *report.OtherPartyInfo
	}

	data := struct {
		ReportID     string
		AccidentTime string
		Location     string
		Description  string
		OtherParty   string
		PhotoCount   int
		GeneratedAt  string
	}{
		ReportID:     report.ID.String(),
		AccidentTime: report.AccidentTime.Format("2006-01-02 15:04"),
		Location:     location,
		Description:  description,
		OtherParty:   otherParty,
		PhotoCount:   len(report.Photos),
		GeneratedAt:  time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func storeReportPDF(reportID uuid.UUID, pdfBytes []byte) (string, error) {
	root := config.Config("UPLOAD_PATH")
	if root == "" {
		root = "./uploads"
	}
	dir := filepath.Join(root, "documents")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("accident-report-%s.pdf", reportID)
	if err := os.WriteFile(filepath.Join(dir, name), pdfBytes, 0o644); err != nil {
		return "", err
	}
	return path.Join("/uploads", "documents", name), nil
}
