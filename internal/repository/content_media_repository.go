package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/agencydesk/agencyflow/internal/models"
)

type ContentMediaRepository interface {
	Create(ctx context.Context, tx *sql.Tx, cm *models.ContentMedia) error
	CountByContentID(ctx context.Context, contentID int64) (int, error)
	ListByContentID(ctx context.Context, contentID int64) ([]*models.MediaAsset, error)
	RemoveByContentID(ctx context.Context, tx *sql.Tx, contentID int64) error
}

type contentMediaRepository struct {
	db *sql.DB
}

func NewContentMediaRepository(db *sql.DB) ContentMediaRepository {
	return &contentMediaRepository{db: db}
}

func (r *contentMediaRepository) Create(ctx context.Context, tx *sql.Tx, cm *models.ContentMedia) error {
	query := `
		INSERT INTO content_media (content_id, asset_id, display_order)
		VALUES ($1, $2, $3)
	`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, cm.ContentID, cm.AssetID, cm.DisplayOrder)
	} else {
		_, err = r.db.ExecContext(ctx, query, cm.ContentID, cm.AssetID, cm.DisplayOrder)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentMediaRepository) CountByContentID(ctx context.Context, contentID int64) (int, error) {
	query := `SELECT COUNT(*) FROM content_media WHERE content_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, contentID).Scan(&count); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

func (r *contentMediaRepository) ListByContentID(ctx context.Context, contentID int64) ([]*models.MediaAsset, error) {
	query := `
		SELECT ma.id, ma.user_id, ma.file_name, ma.file_type, ma.file_size, ma.file_url, ma.created_at
		FROM media_assets ma
		JOIN content_media cm ON cm.asset_id = ma.id
		WHERE cm.content_id = $1
		ORDER BY cm.display_order
	`
	rows, err := r.db.QueryContext(ctx, query, contentID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var assets []*models.MediaAsset
	for rows.Next() {
		var ma models.MediaAsset
		err := rows.Scan(&ma.ID, &ma.UserID, &ma.FileName, &ma.FileType, &ma.FileSize, &ma.FileURL, &ma.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		assets = append(assets, &ma)
	}
	return assets, rows.Err()
}

func (r *contentMediaRepository) RemoveByContentID(ctx context.Context, tx *sql.Tx, contentID int64) error {
	query := `DELETE FROM content_media WHERE content_id = $1`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, contentID)
	} else {
		_, err = r.db.ExecContext(ctx, query, contentID)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
