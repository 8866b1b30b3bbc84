package models

import "time"

// AuditEntry records best-effort side effects and publish attempts so that
// swallowed failures stay observable.
type AuditEntry struct {
	ID         int64     `db:"id" json:"id"`
	ActorID    int64     `db:"actor_id" json:"actor_id"`
	Action     string    `db:"action" json:"action"`
	EntityType string    `db:"entity_type" json:"entity_type"`
	EntityID   int64     `db:"entity_id" json:"entity_id"`
	Detail     string    `db:"detail" json:"detail"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

const (
	AuditActionRequestClaimFailed    = "request_claim_failed"
	AuditActionRequestCompleteFailed = "request_complete_failed"
	AuditActionPublishAttempt        = "publish_attempt"
	AuditActionPublishFailed         = "publish_failed"
)
