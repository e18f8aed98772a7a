package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/preplab/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByTelegramID returns a user by Telegram ID, or nil if unknown
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	var user models.User
	query := DB.Rebind(`
		SELECT id, telegram_id, username, first_name, profession, notification_enabled, notification_hour, created_at, updated_at
		FROM users
		WHERE telegram_id = ?
	`)
	err := DB.GetContext(ctx, &user, query, telegramID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetOrCreateByTelegramID returns the user for a Telegram account, creating
// the row on first contact.
func (r *UserRepository) GetOrCreateByTelegramID(ctx context.Context, telegramID int64, username, firstName string) (*models.User, error) {
	user, err := r.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	query := DB.Rebind(`
		INSERT INTO users (telegram_id, username, first_name, created_at, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`)
	if _, err := DB.ExecContext(ctx, query, telegramID, username, firstName); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return r.GetByTelegramID(ctx, telegramID)
}

// UpdateProfession records the user's chosen profession
func (r *UserRepository) UpdateProfession(ctx context.Context, userID int64, profession string) error {
	query := DB.Rebind(`
		UPDATE users
		SET profession = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`)
	result, err := DB.ExecContext(ctx, query, profession, userID)
	if err != nil {
		return fmt.Errorf("failed to update profession: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

// SetNotification updates a user's reminder preferences
func (r *UserRepository) SetNotification(ctx context.Context, userID int64, enabled bool, hour int) error {
	query := DB.Rebind(`
		UPDATE users
		SET notification_enabled = ?,
			notification_hour = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`)
	if _, err := DB.ExecContext(ctx, query, enabled, hour, userID); err != nil {
		return fmt.Errorf("failed to update notification settings: %w", err)
	}
	return nil
}

// GetUsersForNotification returns users who want a reminder at the given hour
func (r *UserRepository) GetUsersForNotification(ctx context.Context, hour int) ([]models.User, error) {
	var users []models.User
	query := DB.Rebind(`
		SELECT id, telegram_id, username, first_name, profession, notification_enabled, notification_hour, created_at, updated_at
		FROM users
		WHERE notification_enabled = ? AND notification_hour = ?
	`)
	err := DB.SelectContext(ctx, &users, query, true, hour)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for notification: %w", err)
	}
	return users, nil
}
