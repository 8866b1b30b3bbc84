package models

import "time"

type ScheduledPost struct {
	ID               int64      `db:"id" json:"id"`
	ClientID         int64      `db:"client_id" json:"client_id"`
	CampaignID       *int64     `db:"campaign_id" json:"campaign_id,omitempty"`
	SocialAccountID  int64      `db:"social_account_id" json:"social_account_id"`
	Platform         string     `db:"platform" json:"platform"`
	Title            string     `db:"title" json:"title"`
	Caption          string     `db:"caption" json:"caption"`
	MediaURL         string     `db:"media_url" json:"media_url"`
	ScheduledFor     time.Time  `db:"scheduled_for" json:"scheduled_for"`
	Status           string     `db:"status" json:"status"` // draft, scheduled, published, failed, cancelled
	PublishedAt      *time.Time `db:"published_at" json:"published_at,omitempty"`
	PostURL          string     `db:"post_url" json:"post_url"`
	PlatformPostID   string     `db:"platform_post_id" json:"platform_post_id"`
	ErrorMessage     string     `db:"error_message" json:"error_message"`
	RetryCount       int        `db:"retry_count" json:"retry_count"`
	Hashtags         []string   `db:"hashtags" json:"hashtags"`
	Mentions         []string   `db:"mentions" json:"mentions"`
	RequiresApproval bool       `db:"requires_approval" json:"requires_approval"`
	ApprovedBy       *int64     `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt       *time.Time `db:"approved_at" json:"approved_at,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`

	// Derived on read, never stored.
	IsOverdue bool `db:"-" json:"is_overdue"`
}

const (
	ScheduledStatusDraft     = "draft"
	ScheduledStatusScheduled = "scheduled"
	ScheduledStatusPublished = "published"
	ScheduledStatusFailed    = "failed"
	ScheduledStatusCancelled = "cancelled"
)
