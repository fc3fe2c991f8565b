package main

import (
	"log"
	"time"

	config "github.com/anjiri1684/driving_exam/configs"
	"github.com/anjiri1684/driving_exam/database"
	"github.com/anjiri1684/driving_exam/jobs"
	"github.com/anjiri1684/driving_exam/notifications"
	"github.com/anjiri1684/driving_exam/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	startedAt := time.Now()

	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	database.SeedCategories()
	notifications.InitEmailService()

	c := cron.New()
	c.AddFunc("0 * * * *", jobs.CleanupStaleSessions)
	c.AddFunc("0 9 * * *", jobs.SendPracticeReminders)
	go c.Start()
	log.Println("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "Driving Exam Practice",
		CaseSensitive: true,
		StrictRouting: true,
		BodyLimit:     12 * 1024 * 1024,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())

			message := err.Error()
			if code == fiber.StatusInternalServerError && config.Config("APP_ENV") == "production" {
				message = "Internal server error"
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": message,
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	uploadRoot := config.Config("UPLOAD_PATH")
	if uploadRoot == "" {
		uploadRoot = "./uploads"
	}
	app.Static("/uploads", uploadRoot)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(startedAt).Seconds(),
		})
	})

	routes.AuthRoutes(app)
	routes.CategoryRoutes(app)
	routes.QuestionRoutes(app)
	routes.PracticeRoutes(app)
	routes.AccidentRoutes(app)
	routes.SchoolRoutes(app)
	routes.NotificationRoutes(app)
	routes.AdminRoutes(app)
	routes.UploadRoutes(app)

	port := config.Config("PORT")
	if port == "" {
		port = "3001"
	}

	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
