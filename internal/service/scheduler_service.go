package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/agencydesk/agencyflow/internal/models"
	"github.com/agencydesk/agencyflow/internal/repository"
	"github.com/agencydesk/agencyflow/internal/transfer"
	"github.com/agencydesk/agencyflow/internal/workflow"
)

type SchedulerService interface {
	Create(ctx context.Context, sc *transfer.ScheduledPostCreation) (int64, error)
	Info(ctx context.Context, postID int64) (*models.ScheduledPost, error)
	List(ctx context.Context, clientID int64, status string) ([]*models.ScheduledPost, error)
	Approve(ctx context.Context, approverID, postID int64) (time.Duration, error)
	Publish(ctx context.Context, postID int64, result *transfer.PublishResult) error
	Cancel(ctx context.Context, postID int64) error
}

type schedulerService struct {
	sp repository.ScheduledPostRepository
	sa repository.SocialAccountRepository
}

func NewSchedulerService(sp repository.ScheduledPostRepository, sa repository.SocialAccountRepository) SchedulerService {
	return &schedulerService{
		sp: sp,
		sa: sa,
	}
}

func (s *schedulerService) Create(ctx context.Context, sc *transfer.ScheduledPostCreation) (int64, error) {
	if sc == nil {
		err := errors.New("scheduled post data is nil")
		slog.Error(err.Error())
		return 0, err
	}

	rule, err := workflow.RuleFor(sc.Platform)
	if err != nil {
		return 0, err
	}
	if utf8.RuneCountInString(sc.Caption) > rule.MaxChars {
		return 0, workflow.ErrCaptionTooLong
	}

	scheduledFor, err := parseScheduleTime(sc.ScheduledFor)
	if err != nil {
		err = fmt.Errorf("invalid schedule time format: %w", err)
		slog.Error(err.Error())
		return 0, err
	}

	exists, err := s.sa.CheckByClientID(ctx, sc.SocialAccountID, sc.ClientID)
	if err != nil {
		return 0, fmt.Errorf("error checking social account %d: %w", sc.SocialAccountID, err)
	}
	if !exists {
		return 0, fmt.Errorf("social account %d does not belong to client %d", sc.SocialAccountID, sc.ClientID)
	}

	post := models.ScheduledPost{
		ClientID:         sc.ClientID,
		CampaignID:       sc.CampaignID,
		SocialAccountID:  sc.SocialAccountID,
		Platform:         sc.Platform,
		Title:            sc.Title,
		Caption:          sc.Caption,
		MediaURL:         sc.MediaURL,
		ScheduledFor:     scheduledFor,
		Status:           models.ScheduledStatusDraft,
		Hashtags:         sc.Hashtags,
		Mentions:         sc.Mentions,
		RequiresApproval: sc.RequiresApproval,
	}

	id, err := s.sp.Create(ctx, &post)
	if err != nil {
		return 0, fmt.Errorf("error creating scheduled post: %w", err)
	}

	return id, nil
}

func (s *schedulerService) Info(ctx context.Context, postID int64) (*models.ScheduledPost, error) {
	post, err := s.existingPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.IsOverdue = workflow.IsOverdue(post.Status, post.ScheduledFor, time.Now())
	return post, nil
}

func (s *schedulerService) List(ctx context.Context, clientID int64, status string) ([]*models.ScheduledPost, error) {
	posts, err := s.sp.ListByClientID(ctx, clientID, status)
	if err != nil {
		return nil, fmt.Errorf("error listing scheduled posts: %w", err)
	}

	now := time.Now()
	for _, post := range posts {
		post.IsOverdue = workflow.IsOverdue(post.Status, post.ScheduledFor, now)
	}
	return posts, nil
}

// Approve moves a draft into the publish pipeline and returns the delay until
// its publish time so the caller can enqueue the task. Posts that require
// approval record who approved them.
func (s *schedulerService) Approve(ctx context.Context, approverID, postID int64) (time.Duration, error) {
	post, err := s.existingPost(ctx, postID)
	if err != nil {
		return 0, err
	}

	if !workflow.ScheduledTransitionAllowed(post.Status, models.ScheduledStatusScheduled) {
		return 0, workflow.ErrInvalidTransition
	}

	var approvedBy *int64
	if post.RequiresApproval {
		if approverID == 0 {
			err = errors.New("post requires approval")
			slog.Info(err.Error())
			return 0, err
		}
		approvedBy = &approverID
	}

	if err := s.sp.SetScheduled(ctx, postID, approvedBy); err != nil {
		return 0, fmt.Errorf("error scheduling post: %w", err)
	}

	delay := time.Until(post.ScheduledFor)
	if delay < 0 {
		delay = 0
	}
	return delay, nil
}

// Publish records an externally completed publication (the manual path). The
// queue worker uses the repository directly for automatic publication.
func (s *schedulerService) Publish(ctx context.Context, postID int64, result *transfer.PublishResult) error {
	post, err := s.existingPost(ctx, postID)
	if err != nil {
		return err
	}

	if !workflow.ScheduledTransitionAllowed(post.Status, models.ScheduledStatusPublished) {
		return workflow.ErrInvalidTransition
	}
	if result.PostURL == "" {
		return workflow.ErrMissingPostURL
	}

	return s.sp.SetPublished(ctx, postID, result.PostURL, result.PlatformPostID)
}

func (s *schedulerService) Cancel(ctx context.Context, postID int64) error {
	post, err := s.existingPost(ctx, postID)
	if err != nil {
		return err
	}

	if !workflow.Cancellable(post.Status) {
		return workflow.ErrInvalidTransition
	}

	return s.sp.SetCancelled(ctx, postID)
}

func (s *schedulerService) existingPost(ctx context.Context, postID int64) (*models.ScheduledPost, error) {
	if postID == 0 {
		err := errors.New("post id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	post, err := s.sp.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error getting scheduled post")
	}
	if post == nil {
		err = errors.New("scheduled post doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return post, nil
}
