package models

import "time"

// Amounts are stored in minor units (cents).

type Wallet struct {
	ID        int64     `db:"id" json:"id"`
	ClientID  int64     `db:"client_id" json:"client_id"`
	Balance   int64     `db:"balance" json:"balance"`
	Currency  string    `db:"currency" json:"currency"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Transaction struct {
	ID        int64     `db:"id" json:"id"`
	WalletID  int64     `db:"wallet_id" json:"wallet_id"`
	Kind      string    `db:"kind" json:"kind"` // credit, debit
	Amount    int64     `db:"amount" json:"amount"`
	Status    string    `db:"status" json:"status"` // pending, completed, failed
	Reference string    `db:"reference" json:"reference"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Invoice struct {
	ID        int64      `db:"id" json:"id"`
	ClientID  int64      `db:"client_id" json:"client_id"`
	Number    string     `db:"number" json:"number"`
	Amount    int64      `db:"amount" json:"amount"`
	Status    string     `db:"status" json:"status"` // unpaid, paid, overdue
	DueDate   time.Time  `db:"due_date" json:"due_date"`
	PaidAt    *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

const (
	TransactionCredit = "credit"
	TransactionDebit  = "debit"

	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"

	InvoiceStatusUnpaid  = "unpaid"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)
