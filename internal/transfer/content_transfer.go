package transfer

// ContentCreation carries the multipart form fields of the creation wizard.
// RequestID is set when the agent started from a client content request.
type ContentCreation struct {
	RequestID       int64  `json:"request_id"`
	ClientID        int64  `json:"client_id" validate:"required"`
	SocialAccountID int64  `json:"social_account_id" validate:"required"`
	Platform        string `json:"platform" validate:"required"`
	Title           string `json:"title"`
	Caption         string `json:"caption"`
	ScheduledDate   string `json:"scheduled_date"`
	Submit          bool   `json:"submit"` // false = save as draft
}

type ContentUpdate struct {
	Title         string `json:"title"`
	Caption       string `json:"caption"`
	ScheduledDate string `json:"scheduled_date"`
	Submit        bool   `json:"submit"`
}

type ContentRejection struct {
	Reason string `json:"reason"`
}

type MarkPosted struct {
	PostURL  string `json:"post_url" validate:"required,url"`
	Likes    *int64 `json:"likes"`
	Comments *int64 `json:"comments"`
	Shares   *int64 `json:"shares"`
	Views    *int64 `json:"views"`
}

type RequestCreation struct {
	Platform      string   `json:"platform" validate:"required"`
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	PreferredDate string   `json:"preferred_date"`
	ReferenceImages []string `json:"reference_images"`
}

type RequestCompletion struct {
	CreatedContentID int64 `json:"created_content_id" validate:"required"`
}
