package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/preplab/pkg/models"
)

// ApplicationRepository handles database operations for job applications
type ApplicationRepository struct{}

// NewApplicationRepository creates a new repository instance
func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{}
}

// ListByUser returns a user's applications, newest first. An empty status
// returns all of them.
func (r *ApplicationRepository) ListByUser(ctx context.Context, userID int64, status string) ([]models.Application, error) {
	var apps []models.Application
	var err error
	if status == "" {
		query := DB.Rebind(`
			SELECT id, user_id, company, role, status, applied_at, notes, created_at, updated_at
			FROM applications
			WHERE user_id = ?
			ORDER BY created_at DESC
		`)
		err = DB.SelectContext(ctx, &apps, query, userID)
	} else {
		query := DB.Rebind(`
			SELECT id, user_id, company, role, status, applied_at, notes, created_at, updated_at
			FROM applications
			WHERE user_id = ? AND status = ?
			ORDER BY created_at DESC
		`)
		err = DB.SelectContext(ctx, &apps, query, userID, status)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get applications: %w", err)
	}
	return apps, nil
}

// GetByID returns a user's application, or nil if it doesn't exist
func (r *ApplicationRepository) GetByID(ctx context.Context, userID, appID int64) (*models.Application, error) {
	var app models.Application
	query := DB.Rebind(`
		SELECT id, user_id, company, role, status, applied_at, notes, created_at, updated_at
		FROM applications
		WHERE id = ? AND user_id = ?
	`)
	err := DB.GetContext(ctx, &app, query, appID, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

// Create inserts a new application
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	if app.Status == "" {
		app.Status = models.ApplicationStatusSaved
	}

	query := `
		INSERT INTO applications (user_id, company, role, status, applied_at, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	id, err := insertReturningID(ctx, query,
		app.UserID,
		app.Company,
		app.Role,
		app.Status,
		app.AppliedAt,
		app.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	app.ID = id
	return nil
}

// Update modifies an existing application
func (r *ApplicationRepository) Update(ctx context.Context, app *models.Application) error {
	query := DB.Rebind(`
		UPDATE applications
		SET company = ?,
			role = ?,
			status = ?,
			applied_at = ?,
			notes = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?
	`)
	result, err := DB.ExecContext(ctx, query,
		app.Company,
		app.Role,
		app.Status,
		app.AppliedAt,
		app.Notes,
		app.ID,
		app.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("application not found or user doesn't have permission")
	}
	return nil
}

// Delete removes an application
func (r *ApplicationRepository) Delete(ctx context.Context, userID, appID int64) error {
	result, err := DB.ExecContext(ctx, DB.Rebind("DELETE FROM applications WHERE id = ? AND user_id = ?"), appID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("application not found or user doesn't have permission")
	}
	return nil
}
