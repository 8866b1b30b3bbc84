package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencydesk/agencyflow/internal/models"
)

func newScheduledPostRepoForTest(t *testing.T) (ScheduledPostRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewScheduledPostRepository(db), mock
}

func TestScheduledPostCreate(t *testing.T) {
	repo, mock := newScheduledPostRepoForTest(t)

	scheduledFor := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	post := &models.ScheduledPost{
		ClientID:         1,
		SocialAccountID:  2,
		Platform:         "instagram",
		Title:            "Launch",
		Caption:          "hello",
		MediaURL:         "https://cdn.example.com/launch.jpg",
		ScheduledFor:     scheduledFor,
		Status:           models.ScheduledStatusDraft,
		Hashtags:         []string{"launch"},
		Mentions:         []string{"partner"},
		RequiresApproval: true,
	}

	mock.ExpectQuery(`INSERT INTO scheduled_posts`).
		WithArgs(post.ClientID, post.CampaignID, post.SocialAccountID, post.Platform,
			post.Title, post.Caption, post.MediaURL, post.ScheduledFor, post.Status,
			pq.Array(post.Hashtags), pq.Array(post.Mentions), post.RequiresApproval).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	id, err := repo.Create(context.Background(), post)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledPostGetByIDNotFound(t *testing.T) {
	repo, mock := newScheduledPostRepoForTest(t)

	mock.ExpectQuery(`SELECT (.+) FROM scheduled_posts WHERE id`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	post, err := repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, post)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledPostSetScheduled(t *testing.T) {
	repo, mock := newScheduledPostRepoForTest(t)

	t.Run("with approver", func(t *testing.T) {
		approver := int64(7)
		mock.ExpectExec(`UPDATE scheduled_posts`).
			WithArgs(models.ScheduledStatusScheduled, &approver, sqlmock.AnyArg(), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetScheduled(context.Background(), 1, &approver)
		require.NoError(t, err)
	})

	t.Run("without approver keeps prior value", func(t *testing.T) {
		mock.ExpectExec(`UPDATE scheduled_posts`).
			WithArgs(models.ScheduledStatusScheduled, nil, sqlmock.AnyArg(), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetScheduled(context.Background(), 1, nil)
		require.NoError(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledPostSetFailed(t *testing.T) {
	repo, mock := newScheduledPostRepoForTest(t)

	mock.ExpectExec(`UPDATE scheduled_posts`).
		WithArgs(models.ScheduledStatusFailed, "token expired", sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetFailed(context.Background(), 3, "token expired")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledPostCountOverdue(t *testing.T) {
	repo, mock := newScheduledPostRepoForTest(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM scheduled_posts`).
		WithArgs(models.ScheduledStatusScheduled, now).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountOverdue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
