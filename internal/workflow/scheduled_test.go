package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agencydesk/agencyflow/internal/models"
)

func TestScheduledTransitions(t *testing.T) {
	assert.True(t, ScheduledTransitionAllowed(models.ScheduledStatusDraft, models.ScheduledStatusScheduled))
	assert.True(t, ScheduledTransitionAllowed(models.ScheduledStatusScheduled, models.ScheduledStatusPublished))
	assert.True(t, ScheduledTransitionAllowed(models.ScheduledStatusScheduled, models.ScheduledStatusFailed))
	assert.True(t, ScheduledTransitionAllowed(models.ScheduledStatusFailed, models.ScheduledStatusScheduled))

	assert.False(t, ScheduledTransitionAllowed(models.ScheduledStatusDraft, models.ScheduledStatusPublished))
	assert.False(t, ScheduledTransitionAllowed(models.ScheduledStatusPublished, models.ScheduledStatusScheduled))
	assert.False(t, ScheduledTransitionAllowed(models.ScheduledStatusCancelled, models.ScheduledStatusScheduled))
}

func TestCancellable(t *testing.T) {
	assert.True(t, Cancellable(models.ScheduledStatusDraft))
	assert.True(t, Cancellable(models.ScheduledStatusScheduled))
	assert.False(t, Cancellable(models.ScheduledStatusPublished))
	assert.False(t, Cancellable(models.ScheduledStatusFailed))
	assert.False(t, Cancellable(models.ScheduledStatusCancelled))
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	assert.True(t, IsOverdue(models.ScheduledStatusScheduled, yesterday, now))
	assert.False(t, IsOverdue(models.ScheduledStatusScheduled, tomorrow, now))
	// Strictly before: a post due exactly now is not overdue yet.
	assert.False(t, IsOverdue(models.ScheduledStatusScheduled, now, now))

	// Only the scheduled status can be overdue, whatever the date says.
	assert.False(t, IsOverdue(models.ScheduledStatusPublished, yesterday, now))
	assert.False(t, IsOverdue(models.ScheduledStatusCancelled, yesterday, now))
	assert.False(t, IsOverdue(models.ScheduledStatusDraft, yesterday, now))
	assert.False(t, IsOverdue(models.ScheduledStatusFailed, yesterday, now))
}
