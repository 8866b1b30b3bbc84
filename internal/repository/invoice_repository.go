package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/agencydesk/agencyflow/internal/models"
)

type InvoiceRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Invoice, error)
	ListByClientID(ctx context.Context, clientID int64, status string) ([]*models.Invoice, error)
	SetPaid(ctx context.Context, tx *sql.Tx, id int64) error
}

type invoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, client_id, number, amount, status, due_date, paid_at, created_at`

func (r *invoiceRepository) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var inv models.Invoice
	err := row.Scan(&inv.ID, &inv.ClientID, &inv.Number, &inv.Amount, &inv.Status, &inv.DueDate, &inv.PaidAt, &inv.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &inv, nil
}

func (r *invoiceRepository) ListByClientID(ctx context.Context, clientID int64, status string) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE client_id = $1`
	args := []interface{}{clientID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY due_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		var inv models.Invoice
		err := rows.Scan(&inv.ID, &inv.ClientID, &inv.Number, &inv.Amount, &inv.Status, &inv.DueDate, &inv.PaidAt, &inv.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		invoices = append(invoices, &inv)
	}
	return invoices, rows.Err()
}

func (r *invoiceRepository) SetPaid(ctx context.Context, tx *sql.Tx, id int64) error {
	query := `
		UPDATE invoices
		SET status = $1,
			paid_at = $2
		WHERE id = $3
	`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, models.InvoiceStatusPaid, time.Now(), id)
	} else {
		_, err = r.db.ExecContext(ctx, query, models.InvoiceStatusPaid, time.Now(), id)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
