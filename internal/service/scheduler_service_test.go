package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencydesk/agencyflow/internal/models"
	"github.com/agencydesk/agencyflow/internal/transfer"
	"github.com/agencydesk/agencyflow/internal/workflow"
)

func TestSchedulerCreateValidation(t *testing.T) {
	sp := newFakeScheduledPostRepo()
	sa := &fakeSocialAccountRepo{valid: true}
	s := NewSchedulerService(sp, sa)

	t.Run("unknown platform", func(t *testing.T) {
		_, err := s.Create(context.Background(), &transfer.ScheduledPostCreation{
			ClientID:        1,
			SocialAccountID: 1,
			Platform:        "myspace",
			Title:           "Launch",
			Caption:         "hello",
			ScheduledFor:    "2026-09-10T09:00",
		})
		assert.ErrorIs(t, err, workflow.ErrInvalidPlatform)
	})

	t.Run("caption over platform limit", func(t *testing.T) {
		long := make([]rune, 281)
		for i := range long {
			long[i] = 'x'
		}
		_, err := s.Create(context.Background(), &transfer.ScheduledPostCreation{
			ClientID:        1,
			SocialAccountID: 1,
			Platform:        workflow.PlatformTwitter,
			Title:           "Launch",
			Caption:         string(long),
			ScheduledFor:    "2026-09-10T09:00",
		})
		assert.ErrorIs(t, err, workflow.ErrCaptionTooLong)
	})

	t.Run("valid post starts as draft", func(t *testing.T) {
		id, err := s.Create(context.Background(), &transfer.ScheduledPostCreation{
			ClientID:        1,
			SocialAccountID: 1,
			Platform:        workflow.PlatformInstagram,
			Title:           "Launch",
			Caption:         "hello",
			MediaURL:        "https://cdn.example.com/launch.jpg",
			ScheduledFor:    "2026-09-10T09:00",
		})
		require.NoError(t, err)
		post, err := sp.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, models.ScheduledStatusDraft, post.Status)
	})
}

func TestSchedulerApprove(t *testing.T) {
	t.Run("requires approver when flagged", func(t *testing.T) {
		sp := newFakeScheduledPostRepo(&models.ScheduledPost{
			ID:               1,
			Status:           models.ScheduledStatusDraft,
			ScheduledFor:     time.Now().Add(time.Hour),
			RequiresApproval: true,
		})
		s := NewSchedulerService(sp, &fakeSocialAccountRepo{valid: true})

		_, err := s.Approve(context.Background(), 0, 1)
		require.Error(t, err)

		delay, err := s.Approve(context.Background(), 7, 1)
		require.NoError(t, err)
		assert.Greater(t, delay, time.Duration(0))
		require.NotNil(t, sp.posts[1].ApprovedBy)
		assert.Equal(t, int64(7), *sp.posts[1].ApprovedBy)
	})

	t.Run("past schedule clamps delay to zero", func(t *testing.T) {
		sp := newFakeScheduledPostRepo(&models.ScheduledPost{
			ID:           1,
			Status:       models.ScheduledStatusDraft,
			ScheduledFor: time.Now().Add(-time.Hour),
		})
		s := NewSchedulerService(sp, &fakeSocialAccountRepo{valid: true})

		delay, err := s.Approve(context.Background(), 0, 1)
		require.NoError(t, err)
		assert.Equal(t, time.Duration(0), delay)
	})

	t.Run("published post cannot be rescheduled", func(t *testing.T) {
		sp := newFakeScheduledPostRepo(&models.ScheduledPost{
			ID:     1,
			Status: models.ScheduledStatusPublished,
		})
		s := NewSchedulerService(sp, &fakeSocialAccountRepo{valid: true})

		_, err := s.Approve(context.Background(), 0, 1)
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
	})
}

// A post scheduled in the past reads as overdue until it is cancelled, at
// which point the flag clears because overdue only applies to the scheduled
// state.
func TestSchedulerOverdueClearsOnCancel(t *testing.T) {
	sp := newFakeScheduledPostRepo(&models.ScheduledPost{
		ID:           1,
		ClientID:     1,
		Status:       models.ScheduledStatusScheduled,
		ScheduledFor: time.Now().Add(-24 * time.Hour),
	})
	s := NewSchedulerService(sp, &fakeSocialAccountRepo{valid: true})

	post, err := s.Info(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, post.IsOverdue)

	require.NoError(t, s.Cancel(context.Background(), 1))
	assert.Equal(t, []int64{1}, sp.cancelled)

	post, err = s.Info(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.ScheduledStatusCancelled, post.Status)
	assert.False(t, post.IsOverdue)
}

func TestSchedulerManualPublish(t *testing.T) {
	sp := newFakeScheduledPostRepo(&models.ScheduledPost{
		ID:     1,
		Status: models.ScheduledStatusScheduled,
	})
	s := NewSchedulerService(sp, &fakeSocialAccountRepo{valid: true})

	err := s.Publish(context.Background(), 1, &transfer.PublishResult{})
	assert.ErrorIs(t, err, workflow.ErrMissingPostURL)

	err = s.Publish(context.Background(), 1, &transfer.PublishResult{
		PostURL:        "https://www.instagram.com/p/abc",
		PlatformPostID: "abc",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ScheduledStatusPublished, sp.posts[1].Status)
	assert.Equal(t, "abc", sp.posts[1].PlatformPostID)
}
