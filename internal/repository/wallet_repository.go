package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/agencydesk/agencyflow/internal/models"
)

type WalletRepository interface {
	GetByClientID(ctx context.Context, clientID int64) (*models.Wallet, error)
	Create(ctx context.Context, tx *sql.Tx, clientID int64, currency string) (int64, error)
	AdjustBalance(ctx context.Context, tx *sql.Tx, walletID, delta int64) error
	CreateTransaction(ctx context.Context, tx *sql.Tx, t *models.Transaction) (int64, error)
	ListTransactions(ctx context.Context, walletID int64) ([]*models.Transaction, error)
}

type walletRepository struct {
	db *sql.DB
}

func NewWalletRepository(db *sql.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) GetByClientID(ctx context.Context, clientID int64) (*models.Wallet, error) {
	query := `SELECT id, client_id, balance, currency, created_at, updated_at FROM wallets WHERE client_id = $1`
	row := r.db.QueryRowContext(ctx, query, clientID)

	var w models.Wallet
	err := row.Scan(&w.ID, &w.ClientID, &w.Balance, &w.Currency, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &w, nil
}

func (r *walletRepository) Create(ctx context.Context, tx *sql.Tx, clientID int64, currency string) (int64, error) {
	query := `
		INSERT INTO wallets (client_id, balance, currency)
		VALUES ($1, 0, $2)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, clientID, currency).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, clientID, currency).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *walletRepository) AdjustBalance(ctx context.Context, tx *sql.Tx, walletID, delta int64) error {
	query := `
		UPDATE wallets
		SET balance = balance + $1,
			updated_at = $2
		WHERE id = $3
	`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, delta, time.Now(), walletID)
	} else {
		_, err = r.db.ExecContext(ctx, query, delta, time.Now(), walletID)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *walletRepository) CreateTransaction(ctx context.Context, tx *sql.Tx, t *models.Transaction) (int64, error) {
	query := `
		INSERT INTO transactions (wallet_id, kind, amount, status, reference)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	var err error

	args := []interface{}{t.WalletID, t.Kind, t.Amount, t.Status, t.Reference}

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

func (r *walletRepository) ListTransactions(ctx context.Context, walletID int64) ([]*models.Transaction, error) {
	query := `SELECT id, wallet_id, kind, amount, status, reference, created_at FROM transactions WHERE wallet_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, walletID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.WalletID, &t.Kind, &t.Amount, &t.Status, &t.Reference, &t.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		transactions = append(transactions, &t)
	}
	return transactions, rows.Err()
}
