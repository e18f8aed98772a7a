package models

import "time"

// SQLQuestion is a practice problem executed against a sandboxed database
type SQLQuestion struct {
	ID               int64     `json:"id" db:"id"`
	Slug             string    `json:"slug" db:"slug"`
	Title            string    `json:"title" db:"title"`
	Difficulty       string    `json:"difficulty" db:"difficulty"` // "easy", "medium", "hard"
	Ord              int       `json:"ord" db:"ord"`               // Display order
	ProblemStatement string    `json:"problem_statement" db:"problem_statement"`
	SchemaSQL        string    `json:"schema_sql" db:"schema_sql"`
	SeedSQL          string    `json:"seed_sql" db:"seed_sql"`
	ExpectedJSON     string    `json:"expected_json" db:"expected_json"` // JSON array of expected rows
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}
