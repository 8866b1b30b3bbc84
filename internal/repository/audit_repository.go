package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/agencydesk/agencyflow/internal/models"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditEntry) (int64, error)
	ListByEntity(ctx context.Context, entityType string, entityID int64) ([]*models.AuditEntry, error)
}

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditEntry) (int64, error) {
	query := `
		INSERT INTO audit_entries (actor_id, action, entity_type, entity_id, detail)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, entry.ActorID, entry.Action, entry.EntityType, entry.EntityID, entry.Detail).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *auditRepository) ListByEntity(ctx context.Context, entityType string, entityID int64) ([]*models.AuditEntry, error) {
	query := `SELECT id, actor_id, action, entity_type, entity_id, detail, created_at FROM audit_entries WHERE entity_type = $1 AND entity_id = $2 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, entityType, entityID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &e.Detail, &e.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
