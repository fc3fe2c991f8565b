package database

import (
	"fmt"
	"log"

	config "github.com/anjiri1684/driving_exam/configs"
	"github.com/anjiri1684/driving_exam/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
		TranslateError:                           true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.QuestionCategory{},
		&models.Question{},
		&models.QuestionOption{},
		&models.Bookmark{},
		&models.PracticeSession{},
		&models.PracticeSessionQuestion{},
		&models.PracticeAnswer{},
		&models.PracticeRecord{},
		&models.AccidentReport{},
		&models.AccidentPhoto{},
		&models.DrivingSchool{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		Username: config.Config("ADMIN_USERNAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

// SeedCategories inserts the default question categories on an empty install.
func SeedCategories() {
	var count int64
	if err := DB.Model(&models.QuestionCategory{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check question categories: %v", err)
		return
	}
	if count > 0 {
		return
	}

	defaults := []models.QuestionCategory{
		{Name: "交通法规", Description: "Traffic laws and regulations"},
		{Name: "交通标志", Description: "Road signs and markings"},
		{Name: "安全驾驶", Description: "Safe driving practice"},
	}
	if err := DB.Create(&defaults).Error; err != nil {
		log.Fatalf("🔥 Failed to seed question categories: %v", err)
		return
	}
	log.Println("✅ Default question categories seeded")
}
