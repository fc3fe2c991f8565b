package handlers

import (
	"net/url"
	"strconv"
	"time"

	config "github.com/anjiri1684/driving_exam/configs"
	"github.com/anjiri1684/driving_exam/utils"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

const questionImageFolder = "driving_exam_questions"

func uploadToDisk(c *fiber.Ctx, field, kind string) error {
	file, err := c.FormFile(field)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "File is required"})
	}

	relativeURL, err := utils.SaveUpload(c, file, kind)
	if err != nil {
		if err == utils.ErrFileType || err == utils.ErrFileTooLarge {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to store file"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{
		"url":      relativeURL,
		"filename": file.Filename,
		"size":     file.Size,
	}, "message": "File uploaded"})
}

func UploadImage(c *fiber.Ctx) error {
	return uploadToDisk(c, "image", "images")
}

func UploadFile(c *fiber.Ctx) error {
	return uploadToDisk(c, "file", "files")
}

// GenerateUploadSignature creates a signed direct-upload request for question
// illustration images, so the admin frontend can push them to Cloudinary
// without the file passing through this server.
func GenerateUploadSignature(c *fiber.Ctx) error {
	cloudinaryURL := config.Config("CLOUDINARY_URL")
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to initialize Cloudinary"})
	}

	parsedURL, err := url.Parse(cloudinaryURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to parse Cloudinary URL"})
	}
	secret, _ := parsedURL.User.Password()

	paramsToSign, err := api.StructToParams(uploader.UploadParams{
		Folder: questionImageFolder,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to prepare signature params"})
	}

	timestamp := time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to sign upload params"})
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"api_key":   cld.Config.Cloud.APIKey,
		"folder":    questionImageFolder,
	}})
}
