package handlers

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anjiri1684/driving_exam/database"
	"github.com/anjiri1684/driving_exam/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testAppWithUser(userID uuid.UUID, method, path string, handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Add(method, path, func(c *fiber.Ctx) error {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": userID.String(),
			"role":    "user",
		})
		c.Locals("user", token)
		return handler(c)
	})
	return app
}

// A store failure on the membership lookup must surface as a server error, not
// masquerade as "question is not part of this session".
func TestSubmitSessionAnswerStoreFailureIsNotNotFound(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	// Only the sessions table exists; the membership lookup against
	// practice_session_questions fails at the store level.
	ddl := `CREATE TABLE practice_sessions (
		id text PRIMARY KEY,
		user_id text NOT NULL,
		category_id text NOT NULL,
		status text NOT NULL,
		started_at datetime,
		completed_at datetime,
		created_at datetime,
		updated_at datetime
	)`
	if err := db.Exec(ddl).Error; err != nil {
		t.Fatalf("create test schema: %v", err)
	}

	previous := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = previous })

	userID := uuid.New()
	session := models.PracticeSession{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: uuid.New(),
		Status:     models.SessionStatusInProgress,
		StartedAt:  time.Now(),
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}

	app := testAppWithUser(userID, fiber.MethodPut, "/sessions/:sessionId/answers", SubmitSessionAnswer)

	body := fmt.Sprintf(`{"question_id":%q,"selected_option_ids":[%q]}`, uuid.New(), uuid.New())
	req := httptest.NewRequest(fiber.MethodPut, "/sessions/"+session.ID.String()+"/answers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusInternalServerError)
	}
}
