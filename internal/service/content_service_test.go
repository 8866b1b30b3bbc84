package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencydesk/agencyflow/internal/models"
	"github.com/agencydesk/agencyflow/internal/transfer"
)

func newContentServiceForTest(t *testing.T, cr *fakeContentRepo, rq *fakeRequestRepo, au *fakeAuditRepo) (ContentService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewContentService(db, cr, &fakeContentMediaRepo{}, &fakeMediaAssetRepo{}, &fakeSocialAccountRepo{valid: true}, rq, au, R2Service{})
	return s, mock
}

func TestContentCreateClaimsRequest(t *testing.T) {
	cr := &fakeContentRepo{}
	rq := &fakeRequestRepo{request: &models.ContentRequest{ID: 5, Status: models.RequestStatusPending}}
	au := &fakeAuditRepo{}
	s, mock := newContentServiceForTest(t, cr, rq, au)

	mock.ExpectBegin()
	mock.ExpectCommit()

	id, err := s.Create(context.Background(), 9, &transfer.ContentCreation{
		RequestID:       5,
		ClientID:        1,
		SocialAccountID: 1,
		Platform:        "instagram",
		Title:           "Launch",
		Caption:         "hello",
		ScheduledDate:   "2026-09-10T09:00",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, []int64{5}, rq.inProgressWith)
	assert.Equal(t, []int64{5}, rq.completedWith)
	assert.Empty(t, au.entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failing claim on the source request must not block content creation. The
// failure is recorded in the audit log instead.
func TestContentCreateSurvivesClaimFailure(t *testing.T) {
	cr := &fakeContentRepo{}
	rq := &fakeRequestRepo{
		request:       &models.ContentRequest{ID: 5, Status: models.RequestStatusPending},
		inProgressErr: errors.New("request table locked"),
	}
	au := &fakeAuditRepo{}
	s, mock := newContentServiceForTest(t, cr, rq, au)

	mock.ExpectBegin()
	mock.ExpectCommit()

	id, err := s.Create(context.Background(), 9, &transfer.ContentCreation{
		RequestID:       5,
		ClientID:        1,
		SocialAccountID: 1,
		Platform:        "instagram",
		Title:           "Launch",
		Caption:         "hello",
		ScheduledDate:   "2026-09-10T09:00",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.Len(t, au.entries, 1)
	assert.Equal(t, models.AuditActionRequestClaimFailed, au.entries[0].Action)
	assert.Equal(t, int64(5), au.entries[0].EntityID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentCreateAuditsCompletionFailure(t *testing.T) {
	cr := &fakeContentRepo{}
	rq := &fakeRequestRepo{
		request:      &models.ContentRequest{ID: 5, Status: models.RequestStatusPending},
		completedErr: errors.New("request was rejected meanwhile"),
	}
	au := &fakeAuditRepo{}
	s, mock := newContentServiceForTest(t, cr, rq, au)

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := s.Create(context.Background(), 9, &transfer.ContentCreation{
		RequestID:       5,
		ClientID:        1,
		SocialAccountID: 1,
		Platform:        "instagram",
		Title:           "Launch",
		Caption:         "hello",
		ScheduledDate:   "2026-09-10T09:00",
	}, nil)
	require.NoError(t, err)

	require.Len(t, au.entries, 1)
	assert.Equal(t, models.AuditActionRequestCompleteFailed, au.entries[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentCreateRollsBackOnRepoError(t *testing.T) {
	cr := &fakeContentRepo{
		createFn: func(item *models.ContentItem) (int64, error) {
			return 0, errors.New("insert failed")
		},
	}
	rq := &fakeRequestRepo{}
	s, mock := newContentServiceForTest(t, cr, rq, &fakeAuditRepo{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.Create(context.Background(), 9, &transfer.ContentCreation{
		ClientID:        1,
		SocialAccountID: 1,
		Platform:        "instagram",
		Title:           "Launch",
		Caption:         "hello",
		ScheduledDate:   "2026-09-10T09:00",
	}, nil)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
