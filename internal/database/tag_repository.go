package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/preplab/pkg/models"
)

// TagRepository handles database operations for tags
type TagRepository struct{}

// NewTagRepository creates a new repository instance
func NewTagRepository() *TagRepository {
	return &TagRepository{}
}

// ListByUser returns all tags owned by a user, ordered by name
func (r *TagRepository) ListByUser(ctx context.Context, userID int64) ([]models.Tag, error) {
	var tags []models.Tag
	query := DB.Rebind(`
		SELECT id, user_id, name, slug, created_at, updated_at
		FROM tags
		WHERE user_id = ?
		ORDER BY name
	`)
	err := DB.SelectContext(ctx, &tags, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	return tags, nil
}

// GetBySlug returns a user's tag by slug, or nil if it doesn't exist
func (r *TagRepository) GetBySlug(ctx context.Context, userID int64, slug string) (*models.Tag, error) {
	var tag models.Tag
	query := DB.Rebind(`
		SELECT id, user_id, name, slug, created_at, updated_at
		FROM tags
		WHERE user_id = ? AND slug = ?
	`)
	err := DB.GetContext(ctx, &tag, query, userID, slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &tag, nil
}

// GetByID returns a user's tag by ID, or nil if it doesn't exist
func (r *TagRepository) GetByID(ctx context.Context, userID, tagID int64) (*models.Tag, error) {
	var tag models.Tag
	query := DB.Rebind(`
		SELECT id, user_id, name, slug, created_at, updated_at
		FROM tags
		WHERE id = ? AND user_id = ?
	`)
	err := DB.GetContext(ctx, &tag, query, tagID, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &tag, nil
}

// Create inserts a new tag. The (user_id, slug) pair must be unique.
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := `
		INSERT INTO tags (user_id, name, slug, created_at, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	id, err := insertReturningID(ctx, query, tag.UserID, tag.Name, tag.Slug)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	tag.ID = id

	return nil
}

// SeedDefaults inserts the given tags for a user, skipping slugs that
// already exist. Safe to call repeatedly (e.g. re-running onboarding).
// Returns the number of tags actually created.
func (r *TagRepository) SeedDefaults(ctx context.Context, userID int64, defaults []models.Tag) (int, error) {
	query := DB.Rebind(`
		INSERT INTO tags (user_id, name, slug, created_at, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, slug) DO NOTHING
	`)

	created := 0
	for _, tag := range defaults {
		result, err := DB.ExecContext(ctx, query, userID, tag.Name, tag.Slug)
		if err != nil {
			return created, fmt.Errorf("failed to seed tag %q: %w", tag.Slug, err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return created, fmt.Errorf("failed to get rows affected: %w", err)
		}
		created += int(rows)
	}

	return created, nil
}

// Delete removes a tag along with its task associations
func (r *TagRepository) Delete(ctx context.Context, userID, tagID int64) error {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	// Delete task associations first
	clear := DB.Rebind(`
		DELETE FROM task_tags
		WHERE tag_id = ? AND tag_id IN (SELECT id FROM tags WHERE user_id = ?)
	`)
	if _, err := tx.ExecContext(ctx, clear, tagID, userID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete tag associations: %w", err)
	}

	result, err := tx.ExecContext(ctx, DB.Rebind("DELETE FROM tags WHERE id = ? AND user_id = ?"), tagID, userID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		tx.Rollback()
		return fmt.Errorf("tag not found or user doesn't have permission")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
