package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/agencydesk/agencyflow/internal/models"
)

type SupportRepository interface {
	CreateTicket(ctx context.Context, tx *sql.Tx, ticket *models.SupportTicket) (int64, error)
	GetTicket(ctx context.Context, id int64) (*models.SupportTicket, error)
	ListTickets(ctx context.Context, clientID int64, status string) ([]*models.SupportTicket, error)
	SetTicketStatus(ctx context.Context, status string, id int64) error
	CreateMessage(ctx context.Context, tx *sql.Tx, msg *models.Message) (int64, error)
	ListMessages(ctx context.Context, ticketID int64, since time.Time) ([]*models.Message, error)
}

type supportRepository struct {
	db *sql.DB
}

func NewSupportRepository(db *sql.DB) SupportRepository {
	return &supportRepository{db: db}
}

func (r *supportRepository) CreateTicket(ctx context.Context, tx *sql.Tx, ticket *models.SupportTicket) (int64, error) {
	query := `
		INSERT INTO support_tickets (client_id, subject, priority, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	var err error

	args := []interface{}{ticket.ClientID, ticket.Subject, ticket.Priority, models.TicketStatusOpen}

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

func (r *supportRepository) GetTicket(ctx context.Context, id int64) (*models.SupportTicket, error) {
	query := `SELECT id, client_id, subject, priority, status, created_at, updated_at FROM support_tickets WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var t models.SupportTicket
	err := row.Scan(&t.ID, &t.ClientID, &t.Subject, &t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &t, nil
}

func (r *supportRepository) ListTickets(ctx context.Context, clientID int64, status string) ([]*models.SupportTicket, error) {
	query := `SELECT id, client_id, subject, priority, status, created_at, updated_at FROM support_tickets WHERE client_id = $1`
	args := []interface{}{clientID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var tickets []*models.SupportTicket
	for rows.Next() {
		var t models.SupportTicket
		err := rows.Scan(&t.ID, &t.ClientID, &t.Subject, &t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		tickets = append(tickets, &t)
	}
	return tickets, rows.Err()
}

func (r *supportRepository) SetTicketStatus(ctx context.Context, status string, id int64) error {
	query := `
		UPDATE support_tickets
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

func (r *supportRepository) CreateMessage(ctx context.Context, tx *sql.Tx, msg *models.Message) (int64, error) {
	query := `
		INSERT INTO messages (ticket_id, sender_id, sender_role, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	var err error

	args := []interface{}{msg.TicketID, msg.SenderID, msg.SenderRole, msg.Body}

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

// ListMessages returns messages newer than since; a zero since returns the
// whole thread. The since cursor backs the client's polling loop.
func (r *supportRepository) ListMessages(ctx context.Context, ticketID int64, since time.Time) ([]*models.Message, error) {
	query := `SELECT id, ticket_id, sender_id, sender_role, body, created_at FROM messages WHERE ticket_id = $1`
	args := []interface{}{ticketID}

	if !since.IsZero() {
		query += ` AND created_at > $2`
		args = append(args, since)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var m models.Message
		err := rows.Scan(&m.ID, &m.TicketID, &m.SenderID, &m.SenderRole, &m.Body, &m.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}
