package models

import "time"

type ContentRequest struct {
	ID               int64     `db:"id" json:"id"`
	ClientID         int64     `db:"client_id" json:"client_id"`
	Platform         string    `db:"platform" json:"platform"`
	Title            string    `db:"title" json:"title"`
	Description      string    `db:"description" json:"description"`
	PreferredDate    time.Time `db:"preferred_date" json:"preferred_date"`
	ReferenceImages  []string  `db:"reference_images" json:"reference_images"`
	Status           string    `db:"status" json:"status"` // pending, in-progress, completed, rejected
	AssignedAgentID  *int64    `db:"assigned_agent_id" json:"assigned_agent_id,omitempty"`
	CreatedContentID *int64    `db:"created_content_id" json:"created_content_id,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

const (
	RequestStatusPending    = "pending"
	RequestStatusInProgress = "in-progress"
	RequestStatusCompleted  = "completed"
	RequestStatusRejected   = "rejected"
)
