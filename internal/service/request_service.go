package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agencydesk/agencyflow/internal/models"
	"github.com/agencydesk/agencyflow/internal/repository"
	"github.com/agencydesk/agencyflow/internal/transfer"
	"github.com/agencydesk/agencyflow/internal/workflow"
)

type RequestService interface {
	Create(ctx context.Context, clientID int64, rc *transfer.RequestCreation) (int64, error)
	Info(ctx context.Context, requestID int64) (*models.ContentRequest, error)
	ListByClient(ctx context.Context, clientID int64, status string) ([]*models.ContentRequest, error)
	ListOpen(ctx context.Context) ([]*models.ContentRequest, error)
	StartProgress(ctx context.Context, agentID, requestID int64) error
	Complete(ctx context.Context, agentID, requestID, createdContentID int64) error
	Reject(ctx context.Context, requestID int64) error
}

type requestService struct {
	rq repository.ContentRequestRepository
	au repository.AuditRepository
}

func NewRequestService(rq repository.ContentRequestRepository, au repository.AuditRepository) RequestService {
	return &requestService{
		rq: rq,
		au: au,
	}
}

func (s *requestService) Create(ctx context.Context, clientID int64, rc *transfer.RequestCreation) (int64, error) {
	if _, err := workflow.RuleFor(rc.Platform); err != nil {
		return 0, err
	}

	preferredDate := time.Now()
	if rc.PreferredDate != "" {
		parsed, err := parseScheduleTime(rc.PreferredDate)
		if err != nil {
			return 0, fmt.Errorf("invalid preferred date format: %w", err)
		}
		preferredDate = parsed
	}

	req := models.ContentRequest{
		ClientID:        clientID,
		Platform:        rc.Platform,
		Title:           rc.Title,
		Description:     rc.Description,
		PreferredDate:   preferredDate,
		ReferenceImages: rc.ReferenceImages,
	}

	id, err := s.rq.Create(ctx, &req)
	if err != nil {
		return 0, fmt.Errorf("error creating content request: %w", err)
	}

	return id, nil
}

func (s *requestService) Info(ctx context.Context, requestID int64) (*models.ContentRequest, error) {
	req, err := s.existingRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *requestService) ListByClient(ctx context.Context, clientID int64, status string) ([]*models.ContentRequest, error) {
	reqs, err := s.rq.ListByClientID(ctx, clientID, status)
	if err != nil {
		return nil, fmt.Errorf("error listing content requests: %w", err)
	}
	return reqs, nil
}

func (s *requestService) ListOpen(ctx context.Context) ([]*models.ContentRequest, error) {
	reqs, err := s.rq.ListByStatus(ctx, models.RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("error listing content requests: %w", err)
	}
	return reqs, nil
}

// StartProgress claims a pending request for an agent. The status write is
// best-effort: a failure is audited and returned, but callers treat it as
// non-blocking and may still proceed to author content.
func (s *requestService) StartProgress(ctx context.Context, agentID, requestID int64) error {
	req, err := s.existingRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if !workflow.ClaimableRequest(req.Status) {
		err = fmt.Errorf("request is %s, not claimable", req.Status)
		slog.Info(err.Error())
		return err
	}

	if err := s.rq.SetInProgress(ctx, requestID, agentID); err != nil {
		s.audit(ctx, agentID, models.AuditActionRequestClaimFailed, requestID, err.Error())
		return fmt.Errorf("error starting progress: %w", err)
	}

	return nil
}

func (s *requestService) Complete(ctx context.Context, agentID, requestID, createdContentID int64) error {
	req, err := s.existingRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if !workflow.RequestTransitionAllowed(req.Status, models.RequestStatusCompleted) {
		err = fmt.Errorf("request is %s, cannot complete", req.Status)
		slog.Info(err.Error())
		return err
	}

	if err := s.rq.SetCompleted(ctx, requestID, createdContentID); err != nil {
		s.audit(ctx, agentID, models.AuditActionRequestCompleteFailed, requestID, err.Error())
		return fmt.Errorf("error completing request: %w", err)
	}

	return nil
}

func (s *requestService) Reject(ctx context.Context, requestID int64) error {
	req, err := s.existingRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if !workflow.RequestTransitionAllowed(req.Status, models.RequestStatusRejected) {
		err = fmt.Errorf("request is %s, cannot reject", req.Status)
		slog.Info(err.Error())
		return err
	}

	return s.rq.SetRejected(ctx, requestID)
}

func (s *requestService) audit(ctx context.Context, actorID int64, action string, requestID int64, detail string) {
	if _, err := s.au.Create(ctx, &models.AuditEntry{
		ActorID:    actorID,
		Action:     action,
		EntityType: "content_request",
		EntityID:   requestID,
		Detail:     detail,
	}); err != nil {
		slog.Info(err.Error())
	}
}

func (s *requestService) existingRequest(ctx context.Context, requestID int64) (*models.ContentRequest, error) {
	if requestID == 0 {
		err := errors.New("request id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	req, err := s.rq.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("error getting request info")
	}
	if req == nil {
		err = errors.New("request doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return req, nil
}
