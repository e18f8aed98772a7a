package models

import "time"

// DefaultDurationMinutes is assumed whenever a task has no explicit duration.
// Every consumer (planner, progress) must apply the same default.
const DefaultDurationMinutes = 30

// Task represents a schedulable, completable study session
type Task struct {
	ID              int64      `json:"id" db:"id"`
	UserID          int64      `json:"user_id" db:"user_id"`
	Title           string     `json:"title" db:"title"`
	DurationMinutes *int       `json:"duration_minutes" db:"duration_minutes"` // nil means "use the default"
	ScheduledAt     time.Time  `json:"scheduled_at" db:"scheduled_at"`
	CompletedAt     *time.Time `json:"completed_at" db:"completed_at"` // nil while the session is not done
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
	Tags            []Tag      `json:"tags" db:"-"` // Loaded from task_tags
}

// Duration returns the task duration in minutes, applying the default for
// tasks saved without one.
func (t *Task) Duration() int {
	if t.DurationMinutes == nil {
		return DefaultDurationMinutes
	}
	return *t.DurationMinutes
}

// IsCompleted reports whether the session has been marked done.
func (t *Task) IsCompleted() bool {
	return t.CompletedAt != nil
}

// TagIDs returns the ids of the tags attached to the task.
func (t *Task) TagIDs() []int64 {
	ids := make([]int64, 0, len(t.Tags))
	for _, tag := range t.Tags {
		ids = append(ids, tag.ID)
	}
	return ids
}
