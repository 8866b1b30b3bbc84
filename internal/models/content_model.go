package models

import "time"

type ContentItem struct {
	ID              int64      `db:"id" json:"id"`
	ClientID        int64      `db:"client_id" json:"client_id"`
	AgentID         int64      `db:"agent_id" json:"agent_id"`
	SocialAccountID int64      `db:"social_account_id" json:"social_account_id"`
	Platform        string     `db:"platform" json:"platform"`
	Title           string     `db:"title" json:"title"`
	Caption         string     `db:"caption" json:"caption"`
	ScheduledDate   time.Time  `db:"scheduled_date" json:"scheduled_date"`
	Status          string     `db:"status" json:"status"` // draft, pending-approval, approved, posted
	PostURL         string     `db:"post_url" json:"post_url"`
	Likes           *int64     `db:"likes" json:"likes,omitempty"`
	Comments        *int64     `db:"comments" json:"comments,omitempty"`
	Shares          *int64     `db:"shares" json:"shares,omitempty"`
	Views           *int64     `db:"views" json:"views,omitempty"`
	RejectReason    string     `db:"reject_reason" json:"reject_reason"`
	ApprovedBy      *int64     `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `db:"approved_at" json:"approved_at,omitempty"`
	PostedAt        *time.Time `db:"posted_at" json:"posted_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

type MediaAsset struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	FileName  string    `db:"file_name" json:"file_name"`
	FileType  string    `db:"file_type" json:"file_type"`
	FileSize  int64     `db:"file_size" json:"file_size"`
	FileURL   string    `db:"file_url" json:"file_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ContentMedia struct {
	ContentID    int64     `db:"content_id" json:"content_id"`
	AssetID      int64     `db:"asset_id" json:"asset_id"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

const (
	ContentStatusDraft           = "draft"
	ContentStatusPendingApproval = "pending-approval"
	ContentStatusApproved        = "approved"
	ContentStatusPosted          = "posted"
)
