package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencydesk/agencyflow/internal/models"
	"github.com/agencydesk/agencyflow/internal/transfer"
)

type fakeSupportRepo struct {
	ticket     *models.SupportTicket
	messages   []*models.Message
	sinceCalls []time.Time
}

func (f *fakeSupportRepo) CreateTicket(ctx context.Context, tx *sql.Tx, ticket *models.SupportTicket) (int64, error) {
	f.ticket = ticket
	f.ticket.ID = 1
	return 1, nil
}

func (f *fakeSupportRepo) GetTicket(ctx context.Context, id int64) (*models.SupportTicket, error) {
	if f.ticket != nil && f.ticket.ID == id {
		return f.ticket, nil
	}
	return nil, nil
}

func (f *fakeSupportRepo) ListTickets(ctx context.Context, clientID int64, status string) ([]*models.SupportTicket, error) {
	return nil, nil
}

func (f *fakeSupportRepo) SetTicketStatus(ctx context.Context, status string, id int64) error {
	f.ticket.Status = status
	return nil
}

func (f *fakeSupportRepo) CreateMessage(ctx context.Context, tx *sql.Tx, msg *models.Message) (int64, error) {
	f.messages = append(f.messages, msg)
	return int64(len(f.messages)), nil
}

func (f *fakeSupportRepo) ListMessages(ctx context.Context, ticketID int64, since time.Time) ([]*models.Message, error) {
	f.sinceCalls = append(f.sinceCalls, since)
	var out []*models.Message
	for _, m := range f.messages {
		if m.CreatedAt.After(since) {
			out = append(out, m)
		}
	}
	return out, nil
}

func TestSupportCreateTicket(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeSupportRepo{}
	s := NewSupportService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	id, err := s.CreateTicket(context.Background(), 1, &transfer.TicketCreation{
		Subject: "Post stuck in scheduled",
		Body:    "The launch post never went out.",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, models.TicketStatusOpen, repo.ticket.Status)
	assert.Equal(t, "normal", repo.ticket.Priority)

	// The opening message is written in the same transaction.
	require.Len(t, repo.messages, 1)
	assert.Equal(t, "client", repo.messages[0].SenderRole)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupportAddMessageClosedTicket(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeSupportRepo{ticket: &models.SupportTicket{ID: 1, Status: models.TicketStatusClosed}}
	s := NewSupportService(db, repo)

	_, err = s.AddMessage(context.Background(), 1, 9, "agent", &transfer.MessageCreation{Body: "hello"})
	require.Error(t, err)
	assert.Empty(t, repo.messages)
}

func TestSupportMessagesSinceCursor(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cutoff := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeSupportRepo{
		ticket: &models.SupportTicket{ID: 1, Status: models.TicketStatusOpen},
		messages: []*models.Message{
			{ID: 1, TicketID: 1, Body: "old", CreatedAt: cutoff.Add(-time.Hour)},
			{ID: 2, TicketID: 1, Body: "new", CreatedAt: cutoff.Add(time.Hour)},
		},
	}
	s := NewSupportService(db, repo)

	messages, err := s.Messages(context.Background(), 1, cutoff)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "new", messages[0].Body)

	messages, err = s.Messages(context.Background(), 1, time.Time{})
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}
