package workflow

import (
	"errors"

	"github.com/agencydesk/agencyflow/internal/models"
)

var (
	ErrInvalidTransition = errors.New("transition not allowed from current status")
	ErrMissingPostURL    = errors.New("post_url is required to mark content posted")
	ErrNotEditable       = errors.New("content can only be edited while in draft")
)

// Allowed content item transitions. posted is terminal.
var contentTransitions = map[string][]string{
	models.ContentStatusDraft:           {models.ContentStatusPendingApproval},
	models.ContentStatusPendingApproval: {models.ContentStatusApproved, models.ContentStatusDraft},
	models.ContentStatusApproved:        {models.ContentStatusPosted},
	models.ContentStatusPosted:          {},
}

func ContentTransitionAllowed(from, to string) bool {
	for _, next := range contentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanEditContent reports whether mutable fields (title, caption, images,
// scheduled date) may change in the given status.
func CanEditContent(status string) bool {
	return status == models.ContentStatusDraft
}

// SubmitContent gates draft -> pending-approval on the full submission rules.
func SubmitContent(item *models.ContentItem, imageCount int) error {
	if !ContentTransitionAllowed(item.Status, models.ContentStatusPendingApproval) {
		return ErrInvalidTransition
	}
	if err := ValidateSubmission(item.Title, item.Caption, imageCount, item.Platform); err != nil {
		return err
	}
	item.Status = models.ContentStatusPendingApproval
	return nil
}

// ApproveContent moves pending-approval -> approved.
func ApproveContent(item *models.ContentItem) error {
	if !ContentTransitionAllowed(item.Status, models.ContentStatusApproved) {
		return ErrInvalidTransition
	}
	item.Status = models.ContentStatusApproved
	return nil
}

// RejectContent returns pending-approval content to draft, surfaced to the
// agent as "changes requested".
func RejectContent(item *models.ContentItem, reason string) error {
	if item.Status != models.ContentStatusPendingApproval {
		return ErrInvalidTransition
	}
	item.Status = models.ContentStatusDraft
	item.RejectReason = reason
	return nil
}

// MarkContentPosted moves approved -> posted. A post URL is mandatory;
// engagement metrics stay absent unless supplied.
func MarkContentPosted(item *models.ContentItem, postURL string) error {
	if !ContentTransitionAllowed(item.Status, models.ContentStatusPosted) {
		return ErrInvalidTransition
	}
	if postURL == "" {
		return ErrMissingPostURL
	}
	item.Status = models.ContentStatusPosted
	item.PostURL = postURL
	return nil
}
