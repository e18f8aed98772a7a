package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/preplab/pkg/models"
)

// QuestionRepository handles database operations for SQL practice questions
type QuestionRepository struct{}

// NewQuestionRepository creates a new repository instance
func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{}
}

// ListAll returns every question in display order
func (r *QuestionRepository) ListAll(ctx context.Context) ([]models.SQLQuestion, error) {
	var questions []models.SQLQuestion
	query := `
		SELECT id, slug, title, difficulty, ord, problem_statement, schema_sql, seed_sql, expected_json, created_at, updated_at
		FROM sql_questions
		ORDER BY ord, slug
	`
	err := DB.SelectContext(ctx, &questions, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	return questions, nil
}

// GetBySlug returns a question by slug, or nil if it doesn't exist
func (r *QuestionRepository) GetBySlug(ctx context.Context, slug string) (*models.SQLQuestion, error) {
	var question models.SQLQuestion
	query := DB.Rebind(`
		SELECT id, slug, title, difficulty, ord, problem_statement, schema_sql, seed_sql, expected_json, created_at, updated_at
		FROM sql_questions
		WHERE slug = ?
	`)
	err := DB.GetContext(ctx, &question, query, slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &question, nil
}

// Upsert inserts a question or refreshes it by slug. Used by seeding so the
// question set can be updated in place.
func (r *QuestionRepository) Upsert(ctx context.Context, q *models.SQLQuestion) error {
	query := DB.Rebind(`
		INSERT INTO sql_questions (slug, title, difficulty, ord, problem_statement, schema_sql, seed_sql, expected_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (slug) DO UPDATE SET
			title = excluded.title,
			difficulty = excluded.difficulty,
			ord = excluded.ord,
			problem_statement = excluded.problem_statement,
			schema_sql = excluded.schema_sql,
			seed_sql = excluded.seed_sql,
			expected_json = excluded.expected_json,
			updated_at = CURRENT_TIMESTAMP
	`)
	if _, err := DB.ExecContext(ctx, query,
		q.Slug,
		q.Title,
		q.Difficulty,
		q.Ord,
		q.ProblemStatement,
		q.SchemaSQL,
		q.SeedSQL,
		q.ExpectedJSON,
	); err != nil {
		return fmt.Errorf("failed to upsert question %q: %w", q.Slug, err)
	}
	return nil
}
