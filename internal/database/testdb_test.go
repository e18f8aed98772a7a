package database

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/preplab/pkg/models"
)

// newTestDB points the package at a fresh in-memory database for one test.
func newTestDB(t *testing.T) {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	prev := DB
	DB = db
	t.Cleanup(func() {
		db.Close()
		DB = prev
	})

	if err := initializeSchema(); err != nil {
		t.Fatalf("initialize schema: %v", err)
	}
}

func newTestUser(t *testing.T, telegramID int64) *models.User {
	t.Helper()
	user, err := NewUserRepository().GetOrCreateByTelegramID(context.Background(), telegramID, "tester", "Test")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func newTestTag(t *testing.T, userID int64, name, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{UserID: userID, Name: name, Slug: slug}
	if err := NewTagRepository().Create(context.Background(), tag); err != nil {
		t.Fatalf("create test tag: %v", err)
	}
	return tag
}

func newTestTask(t *testing.T, userID int64, title string, scheduledAt time.Time, tagIDs ...int64) *models.Task {
	t.Helper()
	task := &models.Task{UserID: userID, Title: title, ScheduledAt: scheduledAt}
	if err := NewTaskRepository().Create(context.Background(), task, tagIDs); err != nil {
		t.Fatalf("create test task: %v", err)
	}
	return task
}

// setCompletedAt backdates a completion timestamp directly; the repository
// API always completes at the current time.
func setCompletedAt(t *testing.T, taskID int64, at time.Time) {
	t.Helper()
	if _, err := DB.Exec(DB.Rebind("UPDATE tasks SET completed_at = ? WHERE id = ?"), at, taskID); err != nil {
		t.Fatalf("set completed_at: %v", err)
	}
}
