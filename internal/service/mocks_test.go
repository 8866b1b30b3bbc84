package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/agencydesk/agencyflow/internal/models"
)

// Hand-rolled repository fakes. Each method delegates to an optional function
// field so tests only stub what they use.

type fakeContentRepo struct {
	createFn    func(item *models.ContentItem) (int64, error)
	getByIDFn   func(id int64) (*models.ContentItem, error)
	setApproved []int64
}

func (f *fakeContentRepo) Create(ctx context.Context, tx *sql.Tx, item *models.ContentItem) (int64, error) {
	if f.createFn != nil {
		return f.createFn(item)
	}
	return 1, nil
}

func (f *fakeContentRepo) GetByID(ctx context.Context, id int64) (*models.ContentItem, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(id)
	}
	return nil, nil
}

func (f *fakeContentRepo) ListByClientID(ctx context.Context, clientID int64, status string) ([]*models.ContentItem, error) {
	return nil, nil
}

func (f *fakeContentRepo) ListByAgentID(ctx context.Context, agentID int64, status string) ([]*models.ContentItem, error) {
	return nil, nil
}

func (f *fakeContentRepo) UpdateDraft(ctx context.Context, item *models.ContentItem) error {
	return nil
}

func (f *fakeContentRepo) UpdateStatus(ctx context.Context, status string, id int64) error {
	return nil
}

func (f *fakeContentRepo) SetApproved(ctx context.Context, id, approvedBy int64) error {
	f.setApproved = append(f.setApproved, id)
	return nil
}

func (f *fakeContentRepo) SetRejected(ctx context.Context, id int64, reason string) error {
	return nil
}

func (f *fakeContentRepo) SetPosted(ctx context.Context, id int64, postURL string, likes, comments, shares, views *int64) error {
	return nil
}

func (f *fakeContentRepo) CheckByAgentID(ctx context.Context, contentID, agentID int64) (bool, error) {
	return true, nil
}

func (f *fakeContentRepo) Remove(ctx context.Context, id int64) error {
	return nil
}

type fakeContentMediaRepo struct {
	count int
}

func (f *fakeContentMediaRepo) Create(ctx context.Context, tx *sql.Tx, cm *models.ContentMedia) error {
	return nil
}

func (f *fakeContentMediaRepo) CountByContentID(ctx context.Context, contentID int64) (int, error) {
	return f.count, nil
}

func (f *fakeContentMediaRepo) ListByContentID(ctx context.Context, contentID int64) ([]*models.MediaAsset, error) {
	return nil, nil
}

func (f *fakeContentMediaRepo) RemoveByContentID(ctx context.Context, tx *sql.Tx, contentID int64) error {
	return nil
}

type fakeMediaAssetRepo struct{}

func (f *fakeMediaAssetRepo) Create(ctx context.Context, tx *sql.Tx, ma *models.MediaAsset) (int64, error) {
	return 1, nil
}

func (f *fakeMediaAssetRepo) GetByID(ctx context.Context, id int64) (*models.MediaAsset, error) {
	return nil, nil
}

type fakeSocialAccountRepo struct {
	accounts []*models.SocialAccount
	valid    bool
}

func (f *fakeSocialAccountRepo) Create(ctx context.Context, tx *sql.Tx, sa *models.SocialAccount) (int64, error) {
	return 1, nil
}

func (f *fakeSocialAccountRepo) GetByID(ctx context.Context, id int64) (*models.SocialAccount, error) {
	for _, acc := range f.accounts {
		if acc.ID == id {
			return acc, nil
		}
	}
	return nil, nil
}

func (f *fakeSocialAccountRepo) ListByClientID(ctx context.Context, clientID int64, platform string) ([]*models.SocialAccount, error) {
	var out []*models.SocialAccount
	for _, acc := range f.accounts {
		if acc.ClientID != clientID {
			continue
		}
		if platform != "" && acc.Platform != platform {
			continue
		}
		out = append(out, acc)
	}
	return out, nil
}

func (f *fakeSocialAccountRepo) ListByTimeInterval(ctx context.Context, initialTime, finalTime time.Time) ([]*models.SocialAccount, error) {
	return nil, nil
}

func (f *fakeSocialAccountRepo) CheckByClientID(ctx context.Context, accountID, clientID int64) (bool, error) {
	return f.valid, nil
}

func (f *fakeSocialAccountRepo) SetToken(ctx context.Context, accountID int64, sa *models.SocialAccount) error {
	return nil
}

func (f *fakeSocialAccountRepo) Remove(ctx context.Context, id int64) error {
	return nil
}

type fakeRequestRepo struct {
	request        *models.ContentRequest
	inProgressErr  error
	completedErr   error
	inProgressWith []int64
	completedWith  []int64
}

func (f *fakeRequestRepo) Create(ctx context.Context, req *models.ContentRequest) (int64, error) {
	return 1, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id int64) (*models.ContentRequest, error) {
	return f.request, nil
}

func (f *fakeRequestRepo) ListByClientID(ctx context.Context, clientID int64, status string) ([]*models.ContentRequest, error) {
	return nil, nil
}

func (f *fakeRequestRepo) ListByStatus(ctx context.Context, status string) ([]*models.ContentRequest, error) {
	return nil, nil
}

func (f *fakeRequestRepo) SetInProgress(ctx context.Context, id, agentID int64) error {
	if f.inProgressErr != nil {
		return f.inProgressErr
	}
	f.inProgressWith = append(f.inProgressWith, id)
	return nil
}

func (f *fakeRequestRepo) SetCompleted(ctx context.Context, id, createdContentID int64) error {
	if f.completedErr != nil {
		return f.completedErr
	}
	f.completedWith = append(f.completedWith, id)
	return nil
}

func (f *fakeRequestRepo) SetRejected(ctx context.Context, id int64) error {
	return nil
}

type fakeAuditRepo struct {
	entries []*models.AuditEntry
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry *models.AuditEntry) (int64, error) {
	f.entries = append(f.entries, entry)
	return int64(len(f.entries)), nil
}

func (f *fakeAuditRepo) ListByEntity(ctx context.Context, entityType string, entityID int64) ([]*models.AuditEntry, error) {
	return f.entries, nil
}

type fakeScheduledPostRepo struct {
	posts     map[int64]*models.ScheduledPost
	failed    []string
	cancelled []int64
	scheduled []int64
}

func newFakeScheduledPostRepo(posts ...*models.ScheduledPost) *fakeScheduledPostRepo {
	f := &fakeScheduledPostRepo{posts: make(map[int64]*models.ScheduledPost)}
	for _, p := range posts {
		f.posts[p.ID] = p
	}
	return f
}

func (f *fakeScheduledPostRepo) Create(ctx context.Context, post *models.ScheduledPost) (int64, error) {
	id := int64(len(f.posts) + 1)
	post.ID = id
	f.posts[id] = post
	return id, nil
}

func (f *fakeScheduledPostRepo) GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error) {
	return f.posts[id], nil
}

func (f *fakeScheduledPostRepo) ListByClientID(ctx context.Context, clientID int64, status string) ([]*models.ScheduledPost, error) {
	var out []*models.ScheduledPost
	for _, p := range f.posts {
		if p.ClientID == clientID && (status == "" || p.Status == status) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeScheduledPostRepo) SetScheduled(ctx context.Context, id int64, approvedBy *int64) error {
	post, ok := f.posts[id]
	if !ok {
		return errors.New("not found")
	}
	post.Status = models.ScheduledStatusScheduled
	post.ApprovedBy = approvedBy
	f.scheduled = append(f.scheduled, id)
	return nil
}

func (f *fakeScheduledPostRepo) SetPublished(ctx context.Context, id int64, postURL, platformPostID string) error {
	post, ok := f.posts[id]
	if !ok {
		return errors.New("not found")
	}
	post.Status = models.ScheduledStatusPublished
	post.PostURL = postURL
	post.PlatformPostID = platformPostID
	return nil
}

func (f *fakeScheduledPostRepo) SetFailed(ctx context.Context, id int64, errorMessage string) error {
	post, ok := f.posts[id]
	if !ok {
		return errors.New("not found")
	}
	post.Status = models.ScheduledStatusFailed
	post.ErrorMessage = errorMessage
	post.RetryCount++
	f.failed = append(f.failed, errorMessage)
	return nil
}

func (f *fakeScheduledPostRepo) SetCancelled(ctx context.Context, id int64) error {
	post, ok := f.posts[id]
	if !ok {
		return errors.New("not found")
	}
	post.Status = models.ScheduledStatusCancelled
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeScheduledPostRepo) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	count := 0
	for _, p := range f.posts {
		if p.Status == models.ScheduledStatusScheduled && p.ScheduledFor.Before(now) {
			count++
		}
	}
	return count, nil
}
