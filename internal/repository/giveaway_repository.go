package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/agencydesk/agencyflow/internal/models"
)

type GiveawayRepository interface {
	ListByClientID(ctx context.Context, clientID int64) ([]*models.Giveaway, error)
	ListWins(ctx context.Context, giveawayID int64) ([]*models.GiveawayWin, error)
}

type giveawayRepository struct {
	db *sql.DB
}

func NewGiveawayRepository(db *sql.DB) GiveawayRepository {
	return &giveawayRepository{db: db}
}

func (r *giveawayRepository) ListByClientID(ctx context.Context, clientID int64) ([]*models.Giveaway, error) {
	query := `SELECT id, client_id, title, platform, prize, starts_at, ends_at, status, created_at FROM giveaways WHERE client_id = $1 ORDER BY starts_at DESC`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var giveaways []*models.Giveaway
	for rows.Next() {
		var g models.Giveaway
		err := rows.Scan(&g.ID, &g.ClientID, &g.Title, &g.Platform, &g.Prize, &g.StartsAt, &g.EndsAt, &g.Status, &g.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		giveaways = append(giveaways, &g)
	}
	return giveaways, rows.Err()
}

func (r *giveawayRepository) ListWins(ctx context.Context, giveawayID int64) ([]*models.GiveawayWin, error) {
	query := `SELECT id, giveaway_id, winner_handle, won_at FROM giveaway_wins WHERE giveaway_id = $1 ORDER BY won_at DESC`
	rows, err := r.db.QueryContext(ctx, query, giveawayID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var wins []*models.GiveawayWin
	for rows.Next() {
		var w models.GiveawayWin
		err := rows.Scan(&w.ID, &w.GiveawayID, &w.WinnerHandle, &w.WonAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		wins = append(wins, &w)
	}
	return wins, rows.Err()
}
