package workflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agencydesk/agencyflow/internal/models"
)

func draftItem() *models.ContentItem {
	return &models.ContentItem{
		Platform: PlatformTiktok,
		Title:    "Clip",
		Caption:  "Behind the scenes",
		Status:   models.ContentStatusDraft,
	}
}

func TestSubmitContent(t *testing.T) {
	item := draftItem()
	assert.NoError(t, SubmitContent(item, 1))
	assert.Equal(t, models.ContentStatusPendingApproval, item.Status)

	// Submitting again from pending-approval is not a legal transition.
	assert.ErrorIs(t, SubmitContent(item, 1), ErrInvalidTransition)
}

func TestSubmitContentValidationFailureKeepsDraft(t *testing.T) {
	item := draftItem()
	item.Caption = strings.Repeat("a", 301)

	err := SubmitContent(item, 1)
	assert.ErrorIs(t, err, ErrCaptionTooLong)
	assert.Equal(t, models.ContentStatusDraft, item.Status)
}

func TestApproveRejectFlow(t *testing.T) {
	item := draftItem()
	assert.ErrorIs(t, ApproveContent(item), ErrInvalidTransition)

	item.Status = models.ContentStatusPendingApproval
	assert.NoError(t, RejectContent(item, "tone is off"))
	assert.Equal(t, models.ContentStatusDraft, item.Status)
	assert.Equal(t, "tone is off", item.RejectReason)

	item.Status = models.ContentStatusPendingApproval
	assert.NoError(t, ApproveContent(item))
	assert.Equal(t, models.ContentStatusApproved, item.Status)
}

func TestMarkContentPosted(t *testing.T) {
	item := draftItem()
	item.Status = models.ContentStatusApproved

	err := MarkContentPosted(item, "")
	assert.ErrorIs(t, err, ErrMissingPostURL)
	assert.Equal(t, models.ContentStatusApproved, item.Status)

	assert.NoError(t, MarkContentPosted(item, "https://tiktok.com/@c/video/1"))
	assert.Equal(t, models.ContentStatusPosted, item.Status)
	assert.Equal(t, "https://tiktok.com/@c/video/1", item.PostURL)

	// posted is terminal
	assert.ErrorIs(t, MarkContentPosted(item, "https://example.com"), ErrInvalidTransition)
}

func TestCanEditContent(t *testing.T) {
	assert.True(t, CanEditContent(models.ContentStatusDraft))
	assert.False(t, CanEditContent(models.ContentStatusPendingApproval))
	assert.False(t, CanEditContent(models.ContentStatusApproved))
	assert.False(t, CanEditContent(models.ContentStatusPosted))
}

func TestRequestTransitions(t *testing.T) {
	assert.True(t, RequestTransitionAllowed(models.RequestStatusPending, models.RequestStatusInProgress))
	assert.True(t, RequestTransitionAllowed(models.RequestStatusInProgress, models.RequestStatusCompleted))
	assert.True(t, RequestTransitionAllowed(models.RequestStatusPending, models.RequestStatusRejected))
	assert.False(t, RequestTransitionAllowed(models.RequestStatusCompleted, models.RequestStatusInProgress))
	assert.False(t, RequestTransitionAllowed(models.RequestStatusRejected, models.RequestStatusPending))

	assert.True(t, ClaimableRequest(models.RequestStatusPending))
	assert.False(t, ClaimableRequest(models.RequestStatusInProgress))
}
