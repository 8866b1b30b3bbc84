package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agencydesk/agencyflow/internal/models"
	"github.com/agencydesk/agencyflow/internal/repository"
	"github.com/agencydesk/agencyflow/internal/transfer"
)

type SupportService interface {
	CreateTicket(ctx context.Context, clientID int64, tc *transfer.TicketCreation) (int64, error)
	Ticket(ctx context.Context, ticketID int64) (*models.SupportTicket, error)
	ListTickets(ctx context.Context, clientID int64, status string) ([]*models.SupportTicket, error)
	SetTicketStatus(ctx context.Context, ticketID int64, status string) error
	AddMessage(ctx context.Context, ticketID, senderID int64, senderRole string, mc *transfer.MessageCreation) (int64, error)
	Messages(ctx context.Context, ticketID int64, since time.Time) ([]*models.Message, error)
}

type supportService struct {
	db *sql.DB
	t  repository.SupportRepository
}

func NewSupportService(db *sql.DB, t repository.SupportRepository) SupportService {
	return &supportService{
		db: db,
		t:  t,
	}
}

func (s *supportService) CreateTicket(ctx context.Context, clientID int64, tc *transfer.TicketCreation) (id int64, err error) {
	if clientID == 0 {
		err = errors.New("client id is not valid")
		slog.Info(err.Error())
		return 0, err
	}

	priority := tc.Priority
	if priority == "" {
		priority = "normal"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	id, err = s.t.CreateTicket(ctx, tx, &models.SupportTicket{
		ClientID: clientID,
		Subject:  tc.Subject,
		Priority: priority,
		Status:   models.TicketStatusOpen,
	})
	if err != nil {
		return 0, fmt.Errorf("error creating ticket: %w", err)
	}

	_, err = s.t.CreateMessage(ctx, tx, &models.Message{
		TicketID:   id,
		SenderID:   clientID,
		SenderRole: "client",
		Body:       tc.Body,
	})
	if err != nil {
		return 0, fmt.Errorf("error creating opening message: %w", err)
	}

	if err = tx.Commit(); err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (s *supportService) Ticket(ctx context.Context, ticketID int64) (*models.SupportTicket, error) {
	ticket, err := s.t.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("error getting ticket")
	}
	if ticket == nil {
		err = errors.New("ticket doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}
	return ticket, nil
}

func (s *supportService) ListTickets(ctx context.Context, clientID int64, status string) ([]*models.SupportTicket, error) {
	tickets, err := s.t.ListTickets(ctx, clientID, status)
	if err != nil {
		return nil, fmt.Errorf("error listing tickets")
	}
	return tickets, nil
}

func (s *supportService) SetTicketStatus(ctx context.Context, ticketID int64, status string) error {
	switch status {
	case models.TicketStatusOpen, models.TicketStatusInProgress, models.TicketStatusResolved, models.TicketStatusClosed:
	default:
		err := fmt.Errorf("invalid ticket status: %s", status)
		slog.Info(err.Error())
		return err
	}

	if _, err := s.Ticket(ctx, ticketID); err != nil {
		return err
	}

	return s.t.SetTicketStatus(ctx, status, ticketID)
}

func (s *supportService) AddMessage(ctx context.Context, ticketID, senderID int64, senderRole string, mc *transfer.MessageCreation) (int64, error) {
	ticket, err := s.Ticket(ctx, ticketID)
	if err != nil {
		return 0, err
	}

	if ticket.Status == models.TicketStatusClosed {
		err = errors.New("ticket is closed")
		slog.Info(err.Error())
		return 0, err
	}

	id, err := s.t.CreateMessage(ctx, nil, &models.Message{
		TicketID:   ticketID,
		SenderID:   senderID,
		SenderRole: senderRole,
		Body:       mc.Body,
	})
	if err != nil {
		return 0, fmt.Errorf("error creating message: %w", err)
	}

	return id, nil
}

// Messages returns the ticket thread. A non-zero since narrows the result to
// messages created after that instant, so clients can poll for new ones
// without refetching the whole thread.
func (s *supportService) Messages(ctx context.Context, ticketID int64, since time.Time) ([]*models.Message, error) {
	if _, err := s.Ticket(ctx, ticketID); err != nil {
		return nil, err
	}

	messages, err := s.t.ListMessages(ctx, ticketID, since)
	if err != nil {
		return nil, fmt.Errorf("error listing messages")
	}
	return messages, nil
}
