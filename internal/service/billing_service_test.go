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
)

type fakeWalletRepo struct {
	wallet       *models.Wallet
	transactions []*models.Transaction
	adjustments  []int64
}

func (f *fakeWalletRepo) GetByClientID(ctx context.Context, clientID int64) (*models.Wallet, error) {
	if f.wallet != nil && f.wallet.ClientID == clientID {
		return f.wallet, nil
	}
	return nil, nil
}

func (f *fakeWalletRepo) Create(ctx context.Context, tx *sql.Tx, clientID int64, currency string) (int64, error) {
	return 1, nil
}

func (f *fakeWalletRepo) AdjustBalance(ctx context.Context, tx *sql.Tx, walletID, delta int64) error {
	f.adjustments = append(f.adjustments, delta)
	f.wallet.Balance += delta
	return nil
}

func (f *fakeWalletRepo) CreateTransaction(ctx context.Context, tx *sql.Tx, t *models.Transaction) (int64, error) {
	f.transactions = append(f.transactions, t)
	return int64(len(f.transactions)), nil
}

func (f *fakeWalletRepo) ListTransactions(ctx context.Context, walletID int64) ([]*models.Transaction, error) {
	return f.transactions, nil
}

type fakeInvoiceRepo struct {
	invoice *models.Invoice
	paid    []int64
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	if f.invoice != nil && f.invoice.ID == id {
		return f.invoice, nil
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) ListByClientID(ctx context.Context, clientID int64, status string) ([]*models.Invoice, error) {
	return nil, nil
}

func (f *fakeInvoiceRepo) SetPaid(ctx context.Context, tx *sql.Tx, id int64) error {
	f.paid = append(f.paid, id)
	return nil
}

func TestPayInvoice(t *testing.T) {
	newBilling := func(t *testing.T, w *fakeWalletRepo, i *fakeInvoiceRepo) (BillingService, sqlmock.Sqlmock) {
		t.Helper()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		return NewBillingService(db, w, i), mock
	}

	invoice := func(status string) *models.Invoice {
		return &models.Invoice{
			ID:       3,
			ClientID: 1,
			Number:   "INV-2026-014",
			Amount:   5000,
			Status:   status,
			DueDate:  time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("debits wallet and marks paid", func(t *testing.T) {
		w := &fakeWalletRepo{wallet: &models.Wallet{ID: 2, ClientID: 1, Balance: 8000}}
		i := &fakeInvoiceRepo{invoice: invoice(models.InvoiceStatusUnpaid)}
		s, mock := newBilling(t, w, i)

		mock.ExpectBegin()
		mock.ExpectCommit()

		require.NoError(t, s.PayInvoice(context.Background(), 1, 3))
		assert.Equal(t, []int64{-5000}, w.adjustments)
		assert.Equal(t, []int64{3}, i.paid)
		require.Len(t, w.transactions, 1)
		assert.Equal(t, models.TransactionDebit, w.transactions[0].Kind)
		assert.Equal(t, "INV-2026-014", w.transactions[0].Reference)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insufficient balance", func(t *testing.T) {
		w := &fakeWalletRepo{wallet: &models.Wallet{ID: 2, ClientID: 1, Balance: 100}}
		i := &fakeInvoiceRepo{invoice: invoice(models.InvoiceStatusUnpaid)}
		s, mock := newBilling(t, w, i)

		err := s.PayInvoice(context.Background(), 1, 3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insufficient")
		assert.Empty(t, w.adjustments)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already paid", func(t *testing.T) {
		w := &fakeWalletRepo{wallet: &models.Wallet{ID: 2, ClientID: 1, Balance: 8000}}
		i := &fakeInvoiceRepo{invoice: invoice(models.InvoiceStatusPaid)}
		s, mock := newBilling(t, w, i)

		err := s.PayInvoice(context.Background(), 1, 3)
		require.Error(t, err)
		assert.Empty(t, i.paid)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invoice owned by another client", func(t *testing.T) {
		w := &fakeWalletRepo{wallet: &models.Wallet{ID: 2, ClientID: 1, Balance: 8000}}
		i := &fakeInvoiceRepo{invoice: invoice(models.InvoiceStatusUnpaid)}
		s, _ := newBilling(t, w, i)

		err := s.PayInvoice(context.Background(), 99, 3)
		require.Error(t, err)
	})
}
