package models

import "time"

// Application statuses a job application moves through
const (
	ApplicationStatusSaved     = "saved"
	ApplicationStatusApplied   = "applied"
	ApplicationStatusInterview = "interview"
	ApplicationStatusOffer     = "offer"
	ApplicationStatusRejected  = "rejected"
)

// Application tracks a single job application
type Application struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	Company   string     `json:"company" db:"company"`
	Role      string     `json:"role" db:"role"`
	Status    string     `json:"status" db:"status"`
	AppliedAt *time.Time `json:"applied_at" db:"applied_at"`
	Notes     string     `json:"notes" db:"notes"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
