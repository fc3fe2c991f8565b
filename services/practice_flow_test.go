package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/driving_exam/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the same GORM settings the
// server uses and the tables the session flow touches.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

	for _, ddl := range []string{
		`CREATE TABLE practice_sessions (
			id text PRIMARY KEY,
			user_id text NOT NULL,
			category_id text NOT NULL,
			status text NOT NULL,
			started_at datetime,
			completed_at datetime,
			created_at datetime,
			updated_at datetime
		)`,
		`CREATE TABLE practice_answers (
			id text,
			session_id text NOT NULL,
			question_id text NOT NULL,
			selected_option_ids text NOT NULL,
			answered_at datetime,
			UNIQUE (session_id, question_id)
		)`,
		`CREATE TABLE practice_records (
			id text,
			user_id text NOT NULL,
			session_id text NOT NULL UNIQUE,
			category_id text NOT NULL,
			total_questions integer NOT NULL,
			correct_answers integer NOT NULL,
			score integer NOT NULL,
			is_passed numeric NOT NULL,
			completed_at datetime NOT NULL,
			created_at datetime
		)`,
		`CREATE TABLE accident_reports (
			id text PRIMARY KEY,
			user_id text NOT NULL,
			accident_time datetime,
			accident_location text,
			description text,
			other_party_info text,
			status text NOT NULL,
			pdf_url text,
			created_at datetime,
			updated_at datetime
		)`,
		`CREATE TABLE accident_photos (
			id text,
			report_id text NOT NULL,
			image_url text NOT NULL,
			photo_type text,
			caption text,
			sort_order integer,
			uploaded_at datetime
		)`,
	} {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("create test schema: %v", err)
		}
	}
	return db
}

func TestUpsertAnswerOverwrites(t *testing.T) {
	db := newTestDB(t)
	sessionID := uuid.New()
	questionID := uuid.New()

	first := models.PracticeAnswer{
		ID:                uuid.New(),
		SessionID:         sessionID,
		QuestionID:        questionID,
		SelectedOptionIDs: JoinOptionIDs([]uuid.UUID{uuid.New()}),
		AnsweredAt:        time.Now(),
	}
	if err := UpsertAnswer(db, &first); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	resubmitted := JoinOptionIDs([]uuid.UUID{uuid.New(), uuid.New()})
	second := models.PracticeAnswer{
		ID:                uuid.New(),
		SessionID:         sessionID,
		QuestionID:        questionID,
		SelectedOptionIDs: resubmitted,
		AnsweredAt:        time.Now(),
	}
	if err := UpsertAnswer(db, &second); err != nil {
		t.Fatalf("resubmit: %v", err)
	}

	var count int64
	db.Model(&models.PracticeAnswer{}).Where("session_id = ?", sessionID).Count(&count)
	if count != 1 {
		t.Fatalf("answer rows = %d, want 1", count)
	}

	var stored models.PracticeAnswer
	if err := db.First(&stored, "session_id = ? AND question_id = ?", sessionID, questionID).Error; err != nil {
		t.Fatalf("reload answer: %v", err)
	}
	if stored.SelectedOptionIDs != resubmitted {
		t.Errorf("stored answer = %q, want %q", stored.SelectedOptionIDs, resubmitted)
	}
}

func TestDuplicateAnswerTranslatesError(t *testing.T) {
	db := newTestDB(t)
	sessionID := uuid.New()
	questionID := uuid.New()

	answer := models.PracticeAnswer{
		ID:                uuid.New(),
		SessionID:         sessionID,
		QuestionID:        questionID,
		SelectedOptionIDs: JoinOptionIDs([]uuid.UUID{uuid.New()}),
		AnsweredAt:        time.Now(),
	}
	if err := db.Create(&answer).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}

	duplicate := answer
	duplicate.ID = uuid.New()
	err := db.Create(&duplicate).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate insert error = %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestFinalizeSessionWritesOneRecord(t *testing.T) {
	db := newTestDB(t)
	session := &models.PracticeSession{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		CategoryID: uuid.New(),
		Status:     models.SessionStatusInProgress,
		StartedAt:  time.Now(),
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}

	score := SessionScore{TotalQuestions: 3, CorrectAnswers: 2, Score: 67, IsPassed: false}
	record, err := FinalizeSession(db, session, score, time.Now())
	if err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if record.SessionID != session.ID || record.Score != 67 || record.CorrectAnswers != 2 {
		t.Errorf("record = %+v, want session %s score 67 correct 2", record, session.ID)
	}

	if _, err := FinalizeSession(db, session, score, time.Now()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second completion error = %v, want gorm.ErrRecordNotFound", err)
	}

	var records int64
	db.Model(&models.PracticeRecord{}).Where("session_id = ?", session.ID).Count(&records)
	if records != 1 {
		t.Fatalf("practice records = %d, want exactly 1", records)
	}

	var reloaded models.PracticeSession
	if err := db.First(&reloaded, "id = ?", session.ID).Error; err != nil {
		t.Fatalf("reload session: %v", err)
	}
	if reloaded.Status != models.SessionStatusCompleted || reloaded.CompletedAt == nil {
		t.Errorf("session after completion = %q completed_at %v", reloaded.Status, reloaded.CompletedAt)
	}
}

func TestFinalizeSessionConcurrent(t *testing.T) {
	db := newTestDB(t)
	session := &models.PracticeSession{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		CategoryID: uuid.New(),
		Status:     models.SessionStatusInProgress,
		StartedAt:  time.Now(),
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}

	score := SessionScore{TotalQuestions: 2, CorrectAnswers: 2, Score: 100, IsPassed: true}

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := FinalizeSession(db, session, score, time.Now())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var wins, losses int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, gorm.ErrRecordNotFound):
			losses++
		default:
			t.Fatalf("unexpected completion error: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("completions: %d succeeded, %d rejected; want 1 and 1", wins, losses)
	}

	var records int64
	db.Model(&models.PracticeRecord{}).Where("session_id = ?", session.ID).Count(&records)
	if records != 1 {
		t.Fatalf("practice records = %d, want exactly 1", records)
	}
}
