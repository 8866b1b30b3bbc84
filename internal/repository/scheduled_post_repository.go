package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/agencydesk/agencyflow/internal/models"
)

type ScheduledPostRepository interface {
	Create(ctx context.Context, post *models.ScheduledPost) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error)
	ListByClientID(ctx context.Context, clientID int64, status string) ([]*models.ScheduledPost, error)
	SetScheduled(ctx context.Context, id int64, approvedBy *int64) error
	SetPublished(ctx context.Context, id int64, postURL, platformPostID string) error
	SetFailed(ctx context.Context, id int64, errorMessage string) error
	SetCancelled(ctx context.Context, id int64) error
	CountOverdue(ctx context.Context, now time.Time) (int, error)
}

type scheduledPostRepository struct {
	db *sql.DB
}

func NewScheduledPostRepository(db *sql.DB) ScheduledPostRepository {
	return &scheduledPostRepository{db: db}
}

const scheduledColumns = `id, client_id, campaign_id, social_account_id, platform, title, caption,
	media_url, scheduled_for, status, published_at, post_url, platform_post_id, error_message, retry_count,
	hashtags, mentions, requires_approval, approved_by, approved_at, created_at, updated_at`

func scanScheduledPost(row interface{ Scan(...interface{}) error }) (*models.ScheduledPost, error) {
	var p models.ScheduledPost
	err := row.Scan(&p.ID, &p.ClientID, &p.CampaignID, &p.SocialAccountID, &p.Platform,
		&p.Title, &p.Caption, &p.MediaURL, &p.ScheduledFor, &p.Status, &p.PublishedAt, &p.PostURL,
		&p.PlatformPostID, &p.ErrorMessage, &p.RetryCount, pq.Array(&p.Hashtags),
		pq.Array(&p.Mentions), &p.RequiresApproval, &p.ApprovedBy, &p.ApprovedAt,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *scheduledPostRepository) Create(ctx context.Context, post *models.ScheduledPost) (int64, error) {
	query := `
		INSERT INTO scheduled_posts (client_id, campaign_id, social_account_id, platform, title,
			caption, media_url, scheduled_for, status, hashtags, mentions, requires_approval)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, post.ClientID, post.CampaignID, post.SocialAccountID,
		post.Platform, post.Title, post.Caption, post.MediaURL, post.ScheduledFor, post.Status,
		pq.Array(post.Hashtags), pq.Array(post.Mentions), post.RequiresApproval).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *scheduledPostRepository) GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error) {
	query := `SELECT ` + scheduledColumns + ` FROM scheduled_posts WHERE id = $1`
	post, err := scanScheduledPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *scheduledPostRepository) ListByClientID(ctx context.Context, clientID int64, status string) ([]*models.ScheduledPost, error) {
	query := `SELECT ` + scheduledColumns + ` FROM scheduled_posts WHERE client_id = $1`
	args := []interface{}{clientID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY scheduled_for`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.ScheduledPost
	for rows.Next() {
		post, err := scanScheduledPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *scheduledPostRepository) SetScheduled(ctx context.Context, id int64, approvedBy *int64) error {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			approved_by = COALESCE($2, approved_by),
			approved_at = CASE WHEN $2 IS NULL THEN approved_at ELSE $3 END,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.ScheduledStatusScheduled, approvedBy, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *scheduledPostRepository) SetPublished(ctx context.Context, id int64, postURL, platformPostID string) error {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			post_url = $2,
			platform_post_id = $3,
			error_message = '',
			published_at = $4,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, models.ScheduledStatusPublished, postURL, platformPostID, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *scheduledPostRepository) SetFailed(ctx context.Context, id int64, errorMessage string) error {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			error_message = $2,
			retry_count = retry_count + 1,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.ScheduledStatusFailed, errorMessage, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *scheduledPostRepository) SetCancelled(ctx context.Context, id int64) error {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, models.ScheduledStatusCancelled, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *scheduledPostRepository) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM scheduled_posts WHERE status = $1 AND scheduled_for < $2`

	var count int
	if err := r.db.QueryRowContext(ctx, query, models.ScheduledStatusScheduled, now).Scan(&count); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}
