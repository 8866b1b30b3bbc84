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

type ClientService interface {
	Info(ctx context.Context, clientID int64) (*models.Client, error)
	List(ctx context.Context) ([]*models.Client, error)
	ListByAgent(ctx context.Context, agentID int64) ([]*models.Client, error)
	AssignAgent(ctx context.Context, clientID, agentID int64) error
	RequestAccess(ctx context.Context, ar *transfer.AccessRequestCreation) (int64, error)
	ListAccessRequests(ctx context.Context, status string) ([]*models.AccessRequest, error)
	ApproveAccess(ctx context.Context, adminID, requestID int64) (int64, error)
	DenyAccess(ctx context.Context, adminID, requestID int64) error
}

type clientService struct {
	db *sql.DB
	c  repository.ClientRepository
	u  repository.UserRepository
	w  repository.WalletRepository
}

func NewClientService(db *sql.DB, c repository.ClientRepository, u repository.UserRepository, w repository.WalletRepository) ClientService {
	return &clientService{
		db: db,
		c:  c,
		u:  u,
		w:  w,
	}
}

func (s *clientService) Info(ctx context.Context, clientID int64) (*models.Client, error) {
	if clientID == 0 {
		err := errors.New("client id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	client, err := s.c.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("error getting client info")
	}
	if client == nil {
		err = errors.New("client doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return client, nil
}

func (s *clientService) List(ctx context.Context) ([]*models.Client, error) {
	clients, err := s.c.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing clients")
	}
	return clients, nil
}

func (s *clientService) ListByAgent(ctx context.Context, agentID int64) ([]*models.Client, error) {
	if agentID == 0 {
		err := errors.New("agent id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	clients, err := s.c.ListByAgentID(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("error listing clients")
	}
	return clients, nil
}

// AssignAgent assigns or transfers a client to an agent. The same call
// handles both cases since the previous assignment is simply replaced.
func (s *clientService) AssignAgent(ctx context.Context, clientID, agentID int64) error {
	if _, err := s.Info(ctx, clientID); err != nil {
		return err
	}

	agent, isExist, err := s.u.GetByID(ctx, agentID)
	if err != nil {
		return fmt.Errorf("error getting agent info")
	}
	if !isExist {
		err = errors.New("agent doesn't exist")
		slog.Info(err.Error())
		return err
	}
	if agent.Role != models.RoleAgent {
		err = errors.New("user is not an agent")
		slog.Info(err.Error())
		return err
	}

	if err := s.c.SetAgent(ctx, clientID, agentID); err != nil {
		return fmt.Errorf("error assigning agent: %w", err)
	}
	return nil
}

func (s *clientService) RequestAccess(ctx context.Context, ar *transfer.AccessRequestCreation) (int64, error) {
	request := models.AccessRequest{
		Name:    ar.Name,
		Email:   ar.Email,
		Company: ar.Company,
		Status:  models.AccessRequestPending,
	}

	id, err := s.c.CreateAccessRequest(ctx, &request)
	if err != nil {
		return 0, fmt.Errorf("error creating access request: %w", err)
	}
	return id, nil
}

func (s *clientService) ListAccessRequests(ctx context.Context, status string) ([]*models.AccessRequest, error) {
	requests, err := s.c.ListAccessRequests(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("error listing access requests")
	}
	return requests, nil
}

// ApproveAccess reviews a pending request and provisions the client record
// and its wallet in one transaction.
func (s *clientService) ApproveAccess(ctx context.Context, adminID, requestID int64) (int64, error) {
	request, err := s.pendingRequest(ctx, requestID)
	if err != nil {
		return 0, err
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

	err = s.c.ReviewAccessRequest(ctx, tx, requestID, models.AccessRequestApproved, adminID)
	if err != nil {
		return 0, fmt.Errorf("error reviewing access request: %w", err)
	}

	clientID, err := s.c.Create(ctx, tx, &models.Client{
		Name:    request.Name,
		Email:   request.Email,
		Company: request.Company,
		Status:  models.ClientStatusActive,
	})
	if err != nil {
		return 0, fmt.Errorf("error creating client: %w", err)
	}

	_, err = s.w.Create(ctx, tx, clientID, "USD")
	if err != nil {
		return 0, fmt.Errorf("error creating wallet: %w", err)
	}

	if err = tx.Commit(); err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return clientID, nil
}

func (s *clientService) DenyAccess(ctx context.Context, adminID, requestID int64) error {
	if _, err := s.pendingRequest(ctx, requestID); err != nil {
		return err
	}

	err := s.c.ReviewAccessRequest(ctx, nil, requestID, models.AccessRequestDenied, adminID)
	if err != nil {
		return fmt.Errorf("error reviewing access request: %w", err)
	}
	return nil
}

func (s *clientService) pendingRequest(ctx context.Context, requestID int64) (*models.AccessRequest, error) {
	request, err := s.c.GetAccessRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("error getting access request")
	}
	if request == nil {
		err = errors.New("access request doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}
	if request.Status != models.AccessRequestPending {
		err = errors.New("access request was already reviewed")
		slog.Info(err.Error())
		return nil, err
	}

	return request, nil
}
