package models

import "time"

type Client struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Company   string    `db:"company" json:"company"`
	AgentID   *int64    `db:"agent_id" json:"agent_id,omitempty"`
	Status    string    `db:"status" json:"status"` // active, suspended
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AccessRequest is a client's request to join the platform, reviewed by an admin.
type AccessRequest struct {
	ID         int64      `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Email      string     `db:"email" json:"email"`
	Company    string     `db:"company" json:"company"`
	Status     string     `db:"status" json:"status"` // pending, approved, denied
	ReviewedBy *int64     `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

const (
	ClientStatusActive    = "active"
	ClientStatusSuspended = "suspended"

	AccessRequestPending  = "pending"
	AccessRequestApproved = "approved"
	AccessRequestDenied   = "denied"
)
