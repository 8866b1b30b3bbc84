package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agencydesk/agencyflow/internal/models"
	"github.com/agencydesk/agencyflow/internal/repository"
	"github.com/agencydesk/agencyflow/internal/transfer"
)

type BillingService interface {
	Wallet(ctx context.Context, clientID int64) (*models.Wallet, error)
	TopUp(ctx context.Context, clientID int64, topUp *transfer.WalletTopUp) error
	Transactions(ctx context.Context, clientID int64) ([]*models.Transaction, error)
	Invoices(ctx context.Context, clientID int64, status string) ([]*models.Invoice, error)
	PayInvoice(ctx context.Context, clientID, invoiceID int64) error
}

type billingService struct {
	db *sql.DB
	w  repository.WalletRepository
	i  repository.InvoiceRepository
}

func NewBillingService(db *sql.DB, w repository.WalletRepository, i repository.InvoiceRepository) BillingService {
	return &billingService{
		db: db,
		w:  w,
		i:  i,
	}
}

func (s *billingService) Wallet(ctx context.Context, clientID int64) (*models.Wallet, error) {
	if clientID == 0 {
		err := errors.New("client id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	wallet, err := s.w.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("error getting wallet")
	}
	if wallet == nil {
		err = errors.New("wallet doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return wallet, nil
}

func (s *billingService) TopUp(ctx context.Context, clientID int64, topUp *transfer.WalletTopUp) (err error) {
	wallet, err := s.Wallet(ctx, clientID)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	err = s.w.AdjustBalance(ctx, tx, wallet.ID, topUp.Amount)
	if err != nil {
		return fmt.Errorf("error adjusting balance: %w", err)
	}

	_, err = s.w.CreateTransaction(ctx, tx, &models.Transaction{
		WalletID:  wallet.ID,
		Kind:      models.TransactionCredit,
		Amount:    topUp.Amount,
		Status:    models.TransactionStatusCompleted,
		Reference: topUp.Reference,
	})
	if err != nil {
		return fmt.Errorf("error recording transaction: %w", err)
	}

	if err = tx.Commit(); err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}

func (s *billingService) Transactions(ctx context.Context, clientID int64) ([]*models.Transaction, error) {
	wallet, err := s.Wallet(ctx, clientID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.w.ListTransactions(ctx, wallet.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions")
	}
	return transactions, nil
}

func (s *billingService) Invoices(ctx context.Context, clientID int64, status string) ([]*models.Invoice, error) {
	if clientID == 0 {
		err := errors.New("client id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	invoices, err := s.i.ListByClientID(ctx, clientID, status)
	if err != nil {
		return nil, fmt.Errorf("error listing invoices")
	}
	return invoices, nil
}

// PayInvoice debits the client's wallet for the invoice amount. The debit,
// the transaction record, and the invoice status flip commit together.
func (s *billingService) PayInvoice(ctx context.Context, clientID, invoiceID int64) (err error) {
	invoice, err := s.i.GetByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("error getting invoice")
	}
	if invoice == nil || invoice.ClientID != clientID {
		err = errors.New("invoice doesn't exist")
		slog.Info(err.Error())
		return err
	}
	if invoice.Status == models.InvoiceStatusPaid {
		err = errors.New("invoice is already paid")
		slog.Info(err.Error())
		return err
	}

	wallet, err := s.Wallet(ctx, clientID)
	if err != nil {
		return err
	}

	if wallet.Balance < invoice.Amount {
		err = errors.New("insufficient wallet balance")
		slog.Info(err.Error())
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	err = s.w.AdjustBalance(ctx, tx, wallet.ID, -invoice.Amount)
	if err != nil {
		return fmt.Errorf("error adjusting balance: %w", err)
	}

	_, err = s.w.CreateTransaction(ctx, tx, &models.Transaction{
		WalletID:  wallet.ID,
		Kind:      models.TransactionDebit,
		Amount:    invoice.Amount,
		Status:    models.TransactionStatusCompleted,
		Reference: invoice.Number,
	})
	if err != nil {
		return fmt.Errorf("error recording transaction: %w", err)
	}

	err = s.i.SetPaid(ctx, tx, invoiceID)
	if err != nil {
		return fmt.Errorf("error marking invoice paid: %w", err)
	}

	if err = tx.Commit(); err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
