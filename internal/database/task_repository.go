package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/preplab/pkg/models"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct{}

// NewTaskRepository creates a new repository instance
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

// Create inserts a new task and attaches the given tags
func (r *TaskRepository) Create(ctx context.Context, task *models.Task, tagIDs []int64) error {
	query := `
		INSERT INTO tasks (user_id, title, duration_minutes, scheduled_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	id, err := insertReturningID(ctx, query,
		task.UserID,
		task.Title,
		task.DurationMinutes,
		task.ScheduledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	task.ID = id

	if err := r.setTags(ctx, task.ID, tagIDs); err != nil {
		return err
	}

	created, err := r.GetByID(ctx, task.UserID, task.ID)
	if err != nil {
		return err
	}
	if created != nil {
		*task = *created
	}
	return nil
}

// GetByID returns a user's task with its tags, or nil if it doesn't exist
func (r *TaskRepository) GetByID(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	var task models.Task
	query := DB.Rebind(`
		SELECT id, user_id, title, duration_minutes, scheduled_at, completed_at, created_at, updated_at
		FROM tasks
		WHERE id = ? AND user_id = ?
	`)
	err := DB.GetContext(ctx, &task, query, taskID, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	tasks := []models.Task{task}
	if err := r.attachTags(ctx, tasks); err != nil {
		return nil, err
	}
	return &tasks[0], nil
}

// Update modifies a task's title, duration and scheduled time, and replaces
// its tag set wholesale.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task, tagIDs []int64) error {
	query := DB.Rebind(`
		UPDATE tasks
		SET title = ?,
			duration_minutes = ?,
			scheduled_at = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?
	`)
	result, err := DB.ExecContext(ctx, query,
		task.Title,
		task.DurationMinutes,
		task.ScheduledAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task not found or user doesn't have permission")
	}

	if err := r.setTags(ctx, task.ID, tagIDs); err != nil {
		return err
	}

	updated, err := r.GetByID(ctx, task.UserID, task.ID)
	if err != nil {
		return err
	}
	if updated != nil {
		*task = *updated
	}
	return nil
}

// SetCompleted marks a task done (completed_at = now) or not done
// (completed_at = NULL). The toggle is idempotent.
func (r *TaskRepository) SetCompleted(ctx context.Context, userID, taskID int64, completed bool) error {
	var completedAt *time.Time
	if completed {
		now := time.Now()
		completedAt = &now
	}

	query := DB.Rebind(`
		UPDATE tasks
		SET completed_at = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?
	`)
	result, err := DB.ExecContext(ctx, query, completedAt, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to update task completion: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task not found or user doesn't have permission")
	}
	return nil
}

// Delete removes a task and its tag associations
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID int64) error {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	clear := DB.Rebind(`
		DELETE FROM task_tags
		WHERE task_id = ? AND task_id IN (SELECT id FROM tasks WHERE user_id = ?)
	`)
	if _, err := tx.ExecContext(ctx, clear, taskID, userID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete task tags: %w", err)
	}

	result, err := tx.ExecContext(ctx, DB.Rebind("DELETE FROM tasks WHERE id = ? AND user_id = ?"), taskID, userID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		tx.Rollback()
		return fmt.Errorf("task not found or user doesn't have permission")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListCompletedByUser returns every completed task the user has, with tags.
// The history is unrestricted in time: the planner needs real "last
// practiced" timestamps however old they are.
func (r *TaskRepository) ListCompletedByUser(ctx context.Context, userID int64) ([]models.Task, error) {
	var tasks []models.Task
	query := DB.Rebind(`
		SELECT id, user_id, title, duration_minutes, scheduled_at, completed_at, created_at, updated_at
		FROM tasks
		WHERE user_id = ? AND completed_at IS NOT NULL
		ORDER BY completed_at
	`)
	err := DB.SelectContext(ctx, &tasks, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed tasks: %w", err)
	}
	if err := r.attachTags(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListCompletedByUserInRange returns completed tasks whose completion time
// falls within [from, to], with tags.
func (r *TaskRepository) ListCompletedByUserInRange(ctx context.Context, userID int64, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	query := DB.Rebind(`
		SELECT id, user_id, title, duration_minutes, scheduled_at, completed_at, created_at, updated_at
		FROM tasks
		WHERE user_id = ? AND completed_at IS NOT NULL AND completed_at >= ? AND completed_at <= ?
		ORDER BY completed_at
	`)
	err := DB.SelectContext(ctx, &tasks, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed tasks in range: %w", err)
	}
	if err := r.attachTags(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByUserAndDate returns tasks scheduled on the given calendar day,
// completed or not, with tags.
func (r *TaskRepository) ListByUserAndDate(ctx context.Context, userID int64, date time.Time) ([]models.Task, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)

	var tasks []models.Task
	query := DB.Rebind(`
		SELECT id, user_id, title, duration_minutes, scheduled_at, completed_at, created_at, updated_at
		FROM tasks
		WHERE user_id = ? AND scheduled_at >= ? AND scheduled_at < ?
		ORDER BY scheduled_at
	`)
	err := DB.SelectContext(ctx, &tasks, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks for date: %w", err)
	}
	if err := r.attachTags(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByUser returns the total number of tasks the user has
func (r *TaskRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := DB.GetContext(ctx, &count, DB.Rebind("SELECT COUNT(*) FROM tasks WHERE user_id = ?"), userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// CountCompletedByUser returns the number of completed tasks the user has
func (r *TaskRepository) CountCompletedByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := DB.GetContext(ctx, &count, DB.Rebind("SELECT COUNT(*) FROM tasks WHERE user_id = ? AND completed_at IS NOT NULL"), userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	return count, nil
}

// setTags replaces a task's tag set
func (r *TaskRepository) setTags(ctx context.Context, taskID int64, tagIDs []int64) error {
	if _, err := DB.ExecContext(ctx, DB.Rebind("DELETE FROM task_tags WHERE task_id = ?"), taskID); err != nil {
		return fmt.Errorf("failed to clear task tags: %w", err)
	}

	query := DB.Rebind("INSERT INTO task_tags (task_id, tag_id) VALUES (?, ?)")
	for _, tagID := range tagIDs {
		if _, err := DB.ExecContext(ctx, query, taskID, tagID); err != nil {
			return fmt.Errorf("failed to assign tag %d: %w", tagID, err)
		}
	}
	return nil
}

// attachTags loads the tags for each task in a single query
func (r *TaskRepository) attachTags(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	taskIDs := make([]int64, len(tasks))
	for i, task := range tasks {
		taskIDs[i] = task.ID
	}

	query, args, err := sqlx.In(`
		SELECT tt.task_id AS task_id, t.id AS id, t.user_id AS user_id, t.name AS name,
		       t.slug AS slug, t.created_at AS created_at, t.updated_at AS updated_at
		FROM task_tags tt
		JOIN tags t ON t.id = tt.tag_id
		WHERE tt.task_id IN (?)
		ORDER BY t.name
	`, taskIDs)
	if err != nil {
		return fmt.Errorf("failed to build tag query: %w", err)
	}

	var rows []struct {
		TaskID int64 `db:"task_id"`
		models.Tag
	}
	if err := DB.SelectContext(ctx, &rows, DB.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to get task tags: %w", err)
	}

	byTask := make(map[int64][]models.Tag)
	for _, row := range rows {
		byTask[row.TaskID] = append(byTask[row.TaskID], row.Tag)
	}
	for i := range tasks {
		tasks[i].Tags = byTask[tasks[i].ID]
	}
	return nil
}
