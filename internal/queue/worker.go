package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/agencydesk/agencyflow/internal/models"
)

func (j *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return j.PublishPost(ctx, payload.PostID)
}

// PublishPost delivers one scheduled post to its platform. A delivery error
// is returned so the task queue retries it; the post's retry count and last
// error are tracked alongside.
func (j *Queue) PublishPost(ctx context.Context, postID int64) error {
	post, err := j.sp.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		log.Printf("Scheduled post %d no longer exists, dropping task", postID)
		return nil
	}

	// Cancelled or already published posts keep their state. The stale task
	// is simply dropped.
	if post.Status != models.ScheduledStatusScheduled && post.Status != models.ScheduledStatusFailed {
		log.Printf("Scheduled post %d is %s, dropping task", postID, post.Status)
		return nil
	}

	j.audit(ctx, post, models.AuditActionPublishAttempt, "")

	account, err := j.sa.GetByID(ctx, post.SocialAccountID)
	if err != nil {
		return err
	}
	if account == nil {
		err = errors.New("social account no longer exists")
		if ferr := j.sp.SetFailed(ctx, postID, err.Error()); ferr != nil {
			slog.Info(ferr.Error())
		}
		j.audit(ctx, post, models.AuditActionPublishFailed, err.Error())
		return nil
	}

	result, err := j.pub.Publish(ctx, post, account)
	if err != nil {
		log.Printf("Error publishing post %d to %s: %v", postID, post.Platform, err)
		if ferr := j.sp.SetFailed(ctx, postID, err.Error()); ferr != nil {
			slog.Info(ferr.Error())
		}
		j.audit(ctx, post, models.AuditActionPublishFailed, err.Error())
		return fmt.Errorf("error publishing post %d: %w", postID, err)
	}

	if err := j.sp.SetPublished(ctx, postID, result.PostURL, result.PlatformPostID); err != nil {
		return fmt.Errorf("error marking post %d published: %w", postID, err)
	}

	return nil
}

func (j *Queue) audit(ctx context.Context, post *models.ScheduledPost, action, detail string) {
	entry := models.AuditEntry{
		Action:     action,
		EntityType: "scheduled_post",
		EntityID:   post.ID,
		Detail:     detail,
	}
	if _, err := j.au.Create(ctx, &entry); err != nil {
		log.Printf("Error saving audit entry for post %d: %v", post.ID, err)
	}
}
