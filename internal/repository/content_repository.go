package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/agencydesk/agencyflow/internal/models"
)

type ContentRepository interface {
	Create(ctx context.Context, tx *sql.Tx, item *models.ContentItem) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ContentItem, error)
	ListByClientID(ctx context.Context, clientID int64, status string) ([]*models.ContentItem, error)
	ListByAgentID(ctx context.Context, agentID int64, status string) ([]*models.ContentItem, error)
	UpdateDraft(ctx context.Context, item *models.ContentItem) error
	UpdateStatus(ctx context.Context, status string, id int64) error
	SetApproved(ctx context.Context, id, approvedBy int64) error
	SetRejected(ctx context.Context, id int64, reason string) error
	SetPosted(ctx context.Context, id int64, postURL string, likes, comments, shares, views *int64) error
	CheckByAgentID(ctx context.Context, contentID, agentID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type contentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) ContentRepository {
	return &contentRepository{db: db}
}

const contentColumns = `id, client_id, agent_id, social_account_id, platform, title, caption,
	scheduled_date, status, post_url, likes, comments, shares, views, reject_reason,
	approved_by, approved_at, posted_at, created_at, updated_at`

func scanContentItem(row interface{ Scan(...interface{}) error }) (*models.ContentItem, error) {
	var item models.ContentItem
	err := row.Scan(&item.ID, &item.ClientID, &item.AgentID, &item.SocialAccountID,
		&item.Platform, &item.Title, &item.Caption, &item.ScheduledDate, &item.Status,
		&item.PostURL, &item.Likes, &item.Comments, &item.Shares, &item.Views,
		&item.RejectReason, &item.ApprovedBy, &item.ApprovedAt, &item.PostedAt,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) Create(ctx context.Context, tx *sql.Tx, item *models.ContentItem) (int64, error) {
	query := `
		INSERT INTO content_items (client_id, agent_id, social_account_id, platform, title, caption, scheduled_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	var err error

	args := []interface{}{item.ClientID, item.AgentID, item.SocialAccountID, item.Platform,
		item.Title, item.Caption, item.ScheduledDate, item.Status}

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *contentRepository) GetByID(ctx context.Context, id int64) (*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content_items WHERE id = $1`
	item, err := scanContentItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return item, nil
}

func (r *contentRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.ContentItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var items []*models.ContentItem
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *contentRepository) ListByClientID(ctx context.Context, clientID int64, status string) ([]*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content_items WHERE client_id = $1`
	args := []interface{}{clientID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY scheduled_date DESC`

	return r.list(ctx, query, args...)
}

func (r *contentRepository) ListByAgentID(ctx context.Context, agentID int64, status string) ([]*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content_items WHERE agent_id = $1`
	args := []interface{}{agentID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY scheduled_date DESC`

	return r.list(ctx, query, args...)
}

func (r *contentRepository) UpdateDraft(ctx context.Context, item *models.ContentItem) error {
	query := `
		UPDATE content_items
		SET title = $1,
			caption = $2,
			scheduled_date = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, item.Title, item.Caption, item.ScheduledDate, time.Now(), item.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentRepository) UpdateStatus(ctx context.Context, status string, id int64) error {
	query := `
		UPDATE content_items
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentRepository) SetApproved(ctx context.Context, id, approvedBy int64) error {
	query := `
		UPDATE content_items
		SET status = $1,
			approved_by = $2,
			approved_at = $3,
			reject_reason = '',
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.ContentStatusApproved, approvedBy, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentRepository) SetRejected(ctx context.Context, id int64, reason string) error {
	query := `
		UPDATE content_items
		SET status = $1,
			reject_reason = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.ContentStatusDraft, reason, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentRepository) SetPosted(ctx context.Context, id int64, postURL string, likes, comments, shares, views *int64) error {
	query := `
		UPDATE content_items
		SET status = $1,
			post_url = $2,
			likes = $3,
			comments = $4,
			shares = $5,
			views = $6,
			posted_at = $7,
			updated_at = $7
		WHERE id = $8
	`
	_, err := r.db.ExecContext(ctx, query, models.ContentStatusPosted, postURL, likes, comments, shares, views, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentRepository) CheckByAgentID(ctx context.Context, contentID, agentID int64) (bool, error) {
	query := "SELECT 1 FROM content_items WHERE id = $1 AND agent_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, contentID, agentID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *contentRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM content_items WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
