package transfer

import "github.com/agencydesk/agencyflow/internal/models"

type ScheduledPostCreation struct {
	ClientID         int64    `json:"client_id" validate:"required"`
	CampaignID       *int64   `json:"campaign_id"`
	SocialAccountID  int64    `json:"social_account_id" validate:"required"`
	Platform         string   `json:"platform" validate:"required"`
	Title            string   `json:"title" validate:"required"`
	Caption          string   `json:"caption" validate:"required"`
	MediaURL         string   `json:"media_url" validate:"omitempty,url"`
	ScheduledFor     string   `json:"scheduled_for" validate:"required"`
	Hashtags         []string `json:"hashtags"`
	Mentions         []string `json:"mentions"`
	RequiresApproval bool     `json:"requires_approval"`
}

type PublishResult struct {
	PostURL        string `json:"post_url" validate:"required,url"`
	PlatformPostID string `json:"platform_post_id"`
}

// AccountSelection backs step 2 of the creation wizard. AutoAdvance is true
// only when a platform filter was given and exactly one account matched, so
// the client may skip the picker; manual flows never auto-advance.
type AccountSelection struct {
	Accounts    []*models.SocialAccount `json:"accounts"`
	AutoAdvance bool                    `json:"auto_advance"`
}
