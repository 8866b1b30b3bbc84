package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/agencydesk/agencyflow/internal/models"
)

type ContentRequestRepository interface {
	Create(ctx context.Context, req *models.ContentRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ContentRequest, error)
	ListByClientID(ctx context.Context, clientID int64, status string) ([]*models.ContentRequest, error)
	ListByStatus(ctx context.Context, status string) ([]*models.ContentRequest, error)
	SetInProgress(ctx context.Context, id, agentID int64) error
	SetCompleted(ctx context.Context, id, createdContentID int64) error
	SetRejected(ctx context.Context, id int64) error
}

type contentRequestRepository struct {
	db *sql.DB
}

func NewContentRequestRepository(db *sql.DB) ContentRequestRepository {
	return &contentRequestRepository{db: db}
}

const requestColumns = `id, client_id, platform, title, description, preferred_date,
	reference_images, status, assigned_agent_id, created_content_id, created_at, updated_at`

func scanContentRequest(row interface{ Scan(...interface{}) error }) (*models.ContentRequest, error) {
	var req models.ContentRequest
	err := row.Scan(&req.ID, &req.ClientID, &req.Platform, &req.Title, &req.Description,
		&req.PreferredDate, pq.Array(&req.ReferenceImages), &req.Status,
		&req.AssignedAgentID, &req.CreatedContentID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *contentRequestRepository) Create(ctx context.Context, req *models.ContentRequest) (int64, error) {
	query := `
		INSERT INTO content_requests (client_id, platform, title, description, preferred_date, reference_images, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, req.ClientID, req.Platform, req.Title,
		req.Description, req.PreferredDate, pq.Array(req.ReferenceImages), models.RequestStatusPending).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *contentRequestRepository) GetByID(ctx context.Context, id int64) (*models.ContentRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM content_requests WHERE id = $1`
	req, err := scanContentRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return req, nil
}

func (r *contentRequestRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.ContentRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var reqs []*models.ContentRequest
	for rows.Next() {
		req, err := scanContentRequest(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *contentRequestRepository) ListByClientID(ctx context.Context, clientID int64, status string) ([]*models.ContentRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM content_requests WHERE client_id = $1`
	args := []interface{}{clientID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	return r.list(ctx, query, args...)
}

func (r *contentRequestRepository) ListByStatus(ctx context.Context, status string) ([]*models.ContentRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM content_requests WHERE status = $1 ORDER BY preferred_date`
	return r.list(ctx, query, status)
}

func (r *contentRequestRepository) SetInProgress(ctx context.Context, id, agentID int64) error {
	query := `
		UPDATE content_requests
		SET status = $1,
			assigned_agent_id = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.RequestStatusInProgress, agentID, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentRequestRepository) SetCompleted(ctx context.Context, id, createdContentID int64) error {
	query := `
		UPDATE content_requests
		SET status = $1,
			created_content_id = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.RequestStatusCompleted, createdContentID, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentRequestRepository) SetRejected(ctx context.Context, id int64) error {
	query := `
		UPDATE content_requests
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, models.RequestStatusRejected, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
