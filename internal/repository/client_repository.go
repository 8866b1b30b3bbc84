package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/agencydesk/agencyflow/internal/models"
)

type ClientRepository interface {
	Create(ctx context.Context, tx *sql.Tx, client *models.Client) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Client, error)
	List(ctx context.Context) ([]*models.Client, error)
	ListByAgentID(ctx context.Context, agentID int64) ([]*models.Client, error)
	SetAgent(ctx context.Context, clientID, agentID int64) error
	CreateAccessRequest(ctx context.Context, ar *models.AccessRequest) (int64, error)
	GetAccessRequest(ctx context.Context, id int64) (*models.AccessRequest, error)
	ListAccessRequests(ctx context.Context, status string) ([]*models.AccessRequest, error)
	ReviewAccessRequest(ctx context.Context, tx *sql.Tx, id int64, status string, reviewedBy int64) error
}

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, name, email, company, agent_id, status, created_at, updated_at`

func scanClient(row interface{ Scan(...interface{}) error }) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Company, &c.AgentID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepository) Create(ctx context.Context, tx *sql.Tx, client *models.Client) (int64, error) {
	query := `
		INSERT INTO clients (name, email, company, agent_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	var err error

	args := []interface{}{client.Name, client.Email, client.Company, client.AgentID, models.ClientStatusActive}

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

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	client, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return client, nil
}

func (r *clientRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Client, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

func (r *clientRepository) List(ctx context.Context) ([]*models.Client, error) {
	return r.list(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY name`)
}

func (r *clientRepository) ListByAgentID(ctx context.Context, agentID int64) ([]*models.Client, error) {
	return r.list(ctx, `SELECT `+clientColumns+` FROM clients WHERE agent_id = $1 ORDER BY name`, agentID)
}

func (r *clientRepository) SetAgent(ctx context.Context, clientID, agentID int64) error {
	query := `
		UPDATE clients
		SET agent_id = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, agentID, time.Now(), clientID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *clientRepository) CreateAccessRequest(ctx context.Context, ar *models.AccessRequest) (int64, error) {
	query := `
		INSERT INTO access_requests (name, email, company, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, ar.Name, ar.Email, ar.Company, models.AccessRequestPending).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *clientRepository) GetAccessRequest(ctx context.Context, id int64) (*models.AccessRequest, error) {
	query := `SELECT id, name, email, company, status, reviewed_by, reviewed_at, created_at FROM access_requests WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var ar models.AccessRequest
	err := row.Scan(&ar.ID, &ar.Name, &ar.Email, &ar.Company, &ar.Status, &ar.ReviewedBy, &ar.ReviewedAt, &ar.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &ar, nil
}

func (r *clientRepository) ListAccessRequests(ctx context.Context, status string) ([]*models.AccessRequest, error) {
	query := `SELECT id, name, email, company, status, reviewed_by, reviewed_at, created_at FROM access_requests`
	args := []interface{}{}

	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var requests []*models.AccessRequest
	for rows.Next() {
		var ar models.AccessRequest
		err := rows.Scan(&ar.ID, &ar.Name, &ar.Email, &ar.Company, &ar.Status, &ar.ReviewedBy, &ar.ReviewedAt, &ar.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		requests = append(requests, &ar)
	}
	return requests, rows.Err()
}

func (r *clientRepository) ReviewAccessRequest(ctx context.Context, tx *sql.Tx, id int64, status string, reviewedBy int64) error {
	query := `
		UPDATE access_requests
		SET status = $1,
			reviewed_by = $2,
			reviewed_at = $3
		WHERE id = $4
	`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, status, reviewedBy, time.Now(), id)
	} else {
		_, err = r.db.ExecContext(ctx, query, status, reviewedBy, time.Now(), id)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
