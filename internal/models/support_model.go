package models

import "time"

type SupportTicket struct {
	ID        int64     `db:"id" json:"id"`
	ClientID  int64     `db:"client_id" json:"client_id"`
	Subject   string    `db:"subject" json:"subject"`
	Priority  string    `db:"priority" json:"priority"` // low, normal, high
	Status    string    `db:"status" json:"status"`     // open, in-progress, resolved, closed
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Message struct {
	ID         int64     `db:"id" json:"id"`
	TicketID   int64     `db:"ticket_id" json:"ticket_id"`
	SenderID   int64     `db:"sender_id" json:"sender_id"`
	SenderRole string    `db:"sender_role" json:"sender_role"` // client, agent, admin
	Body       string    `db:"body" json:"body"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in-progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)
