package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/agencydesk/agencyflow/internal/models"
	"github.com/agencydesk/agencyflow/internal/repository"
	"github.com/agencydesk/agencyflow/internal/transfer"
	"github.com/agencydesk/agencyflow/internal/workflow"
)

type ContentService interface {
	Create(ctx context.Context, agentID int64, cc *transfer.ContentCreation, files []*multipart.FileHeader) (int64, error)
	Update(ctx context.Context, agentID, contentID int64, cu *transfer.ContentUpdate, files []*multipart.FileHeader) error
	Submit(ctx context.Context, agentID, contentID int64) error
	Approve(ctx context.Context, approverID, contentID int64) error
	Reject(ctx context.Context, contentID int64, reason string) error
	MarkPosted(ctx context.Context, agentID, contentID int64, mp *transfer.MarkPosted) error
	Info(ctx context.Context, contentID int64) (*models.ContentItem, []*models.MediaAsset, error)
	ListByClient(ctx context.Context, clientID int64, status string) ([]*models.ContentItem, error)
	ListByAgent(ctx context.Context, agentID int64, status string) ([]*models.ContentItem, error)
	Remove(ctx context.Context, agentID, contentID int64) error
}

type contentService struct {
	db *sql.DB
	cr repository.ContentRepository
	cm repository.ContentMediaRepository
	ma repository.MediaAssetRepository
	sa repository.SocialAccountRepository
	rq repository.ContentRequestRepository
	au repository.AuditRepository
	r2 R2Service
}

func NewContentService(
	db *sql.DB,
	cr repository.ContentRepository,
	cm repository.ContentMediaRepository,
	ma repository.MediaAssetRepository,
	sa repository.SocialAccountRepository,
	rq repository.ContentRequestRepository,
	au repository.AuditRepository,
	r2 R2Service) ContentService {
	return &contentService{
		db: db,
		cr: cr,
		cm: cm,
		ma: ma,
		sa: sa,
		rq: rq,
		au: au,
		r2: r2,
	}
}

func (s *contentService) Create(ctx context.Context, agentID int64, cc *transfer.ContentCreation, files []*multipart.FileHeader) (int64, error) {
	if cc == nil {
		err := errors.New("content creation data is nil")
		slog.Error(err.Error())
		return 0, err
	}

	// Draft saves only need title and caption; submission runs the full
	// platform rule set before anything is persisted.
	if cc.Submit {
		if err := workflow.ValidateSubmission(cc.Title, cc.Caption, len(files), cc.Platform); err != nil {
			return 0, err
		}
	} else {
		if err := workflow.ValidateDraft(cc.Title, cc.Caption); err != nil {
			return 0, err
		}
	}

	scheduledDate, err := parseScheduleTime(cc.ScheduledDate)
	if err != nil {
		err = fmt.Errorf("invalid scheduled date format: %w", err)
		slog.Error(err.Error())
		return 0, err
	}

	exists, err := s.sa.CheckByClientID(ctx, cc.SocialAccountID, cc.ClientID)
	if err != nil {
		return 0, fmt.Errorf("error checking social account %d: %w", cc.SocialAccountID, err)
	}
	if !exists {
		return 0, fmt.Errorf("social account %d does not belong to client %d", cc.SocialAccountID, cc.ClientID)
	}

	// Claiming the source request is best-effort: a failure is audited and
	// the agent keeps going.
	if cc.RequestID != 0 {
		s.claimRequest(ctx, agentID, cc.RequestID)
	}

	status := models.ContentStatusDraft
	if cc.Submit {
		status = models.ContentStatusPendingApproval
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	item := models.ContentItem{
		ClientID:        cc.ClientID,
		AgentID:         agentID,
		SocialAccountID: cc.SocialAccountID,
		Platform:        cc.Platform,
		Title:           cc.Title,
		Caption:         cc.Caption,
		ScheduledDate:   scheduledDate,
		Status:          status,
	}

	contentID, err := s.cr.Create(ctx, tx, &item)
	if err != nil {
		return 0, fmt.Errorf("error creating content: %w", err)
	}

	if err = s.processFiles(ctx, tx, agentID, contentID, files); err != nil {
		return 0, fmt.Errorf("error processing files: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Completing the source request never rolls the content back.
	if cc.RequestID != 0 {
		s.completeRequest(ctx, agentID, cc.RequestID, contentID)
	}

	return contentID, nil
}

// claimRequest moves the source request to in-progress. Failure is audited,
// not surfaced: the agent may proceed to author content regardless.
func (s *contentService) claimRequest(ctx context.Context, agentID, requestID int64) {
	req, err := s.rq.GetByID(ctx, requestID)
	if err == nil && req != nil && workflow.ClaimableRequest(req.Status) {
		err = s.rq.SetInProgress(ctx, requestID, agentID)
	}
	if err != nil {
		slog.Info(err.Error())
		if _, auditErr := s.au.Create(ctx, &models.AuditEntry{
			ActorID:    agentID,
			Action:     models.AuditActionRequestClaimFailed,
			EntityType: "content_request",
			EntityID:   requestID,
			Detail:     err.Error(),
		}); auditErr != nil {
			slog.Info(auditErr.Error())
		}
	}
}

func (s *contentService) completeRequest(ctx context.Context, agentID, requestID, contentID int64) {
	if err := s.rq.SetCompleted(ctx, requestID, contentID); err != nil {
		slog.Info(err.Error())
		if _, auditErr := s.au.Create(ctx, &models.AuditEntry{
			ActorID:    agentID,
			Action:     models.AuditActionRequestCompleteFailed,
			EntityType: "content_request",
			EntityID:   requestID,
			Detail:     err.Error(),
		}); auditErr != nil {
			slog.Info(auditErr.Error())
		}
	}
}

func (s *contentService) processFiles(ctx context.Context, tx *sql.Tx, agentID, contentID int64, files []*multipart.FileHeader) error {
	allowedTypes := map[string]struct{}{
		"mp4": {}, "mov": {}, "jpeg": {}, "png": {}, "jpg": {},
	}

	for i, file := range files {
		fileContent, err := file.Open()
		if err != nil {
			return fmt.Errorf("error opening file: %w", err)
		}
		defer fileContent.Close()

		fileBytes, err := io.ReadAll(fileContent)
		if err != nil {
			return fmt.Errorf("error reading file content: %w", err)
		}

		fileType, err := filetype.Match(fileBytes)
		if err != nil || fileType == types.Unknown {
			return fmt.Errorf("unsupported file type: %w", err)
		}
		if _, ok := allowedTypes[fileType.Extension]; !ok {
			return fmt.Errorf("file type %s is not allowed", fileType.Extension)
		}

		assetID, err := s.saveFile(ctx, tx, agentID, fileType.MIME.Value, fileBytes)
		if err != nil {
			return fmt.Errorf("error uploading file: %w", err)
		}

		contentMedia := models.ContentMedia{
			ContentID:    contentID,
			AssetID:      assetID,
			DisplayOrder: i,
		}
		if err := s.cm.Create(ctx, tx, &contentMedia); err != nil {
			return fmt.Errorf("error saving media file: %w", err)
		}
	}
	return nil
}

func (s *contentService) saveFile(ctx context.Context, tx *sql.Tx, agentID int64, fileType string, file []byte) (int64, error) {
	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	if err = s.r2.UploadToR2(ctx, id, file, fileType); err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	ma := models.MediaAsset{
		UserID:   agentID,
		FileName: id,
		FileType: fileType,
		FileSize: int64(len(file)),
		FileURL:  s.r2.PublicURL(id),
	}

	assetID, err := s.ma.Create(ctx, tx, &ma)
	if err != nil {
		return 0, err
	}

	return assetID, nil
}

func (s *contentService) Update(ctx context.Context, agentID, contentID int64, cu *transfer.ContentUpdate, files []*multipart.FileHeader) error {
	item, err := s.ownedContent(ctx, agentID, contentID)
	if err != nil {
		return err
	}

	if !workflow.CanEditContent(item.Status) {
		return workflow.ErrNotEditable
	}

	if cu.Title != "" {
		item.Title = cu.Title
	}
	if cu.Caption != "" {
		item.Caption = cu.Caption
	}
	if cu.ScheduledDate != "" {
		scheduledDate, err := parseScheduleTime(cu.ScheduledDate)
		if err != nil {
			return fmt.Errorf("invalid scheduled date format: %w", err)
		}
		item.ScheduledDate = scheduledDate
	}

	imageCount, err := s.cm.CountByContentID(ctx, contentID)
	if err != nil {
		return err
	}
	if len(files) > 0 {
		imageCount = len(files)
	}

	if cu.Submit {
		if err := workflow.ValidateSubmission(item.Title, item.Caption, imageCount, item.Platform); err != nil {
			return err
		}
	} else {
		if err := workflow.ValidateDraft(item.Title, item.Caption); err != nil {
			return err
		}
	}

	if err := s.cr.UpdateDraft(ctx, item); err != nil {
		return fmt.Errorf("error updating content: %w", err)
	}

	if len(files) > 0 {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
		if err != nil {
			return fmt.Errorf("failed to start transaction: %w", err)
		}
		defer func() {
			if p := recover(); p != nil {
				tx.Rollback()
				panic(p)
			}
		}()

		if err = s.cm.RemoveByContentID(ctx, tx, contentID); err != nil {
			tx.Rollback()
			return fmt.Errorf("error replacing media: %w", err)
		}
		if err = s.processFiles(ctx, tx, agentID, contentID, files); err != nil {
			tx.Rollback()
			return fmt.Errorf("error processing files: %w", err)
		}

		if err = tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
	}

	if cu.Submit {
		return s.cr.UpdateStatus(ctx, models.ContentStatusPendingApproval, contentID)
	}
	return nil
}

func (s *contentService) Submit(ctx context.Context, agentID, contentID int64) error {
	item, err := s.ownedContent(ctx, agentID, contentID)
	if err != nil {
		return err
	}

	imageCount, err := s.cm.CountByContentID(ctx, contentID)
	if err != nil {
		return err
	}

	if err := workflow.SubmitContent(item, imageCount); err != nil {
		return err
	}

	return s.cr.UpdateStatus(ctx, item.Status, contentID)
}

func (s *contentService) Approve(ctx context.Context, approverID, contentID int64) error {
	item, err := s.existingContent(ctx, contentID)
	if err != nil {
		return err
	}

	if err := workflow.ApproveContent(item); err != nil {
		return err
	}

	return s.cr.SetApproved(ctx, contentID, approverID)
}

func (s *contentService) Reject(ctx context.Context, contentID int64, reason string) error {
	item, err := s.existingContent(ctx, contentID)
	if err != nil {
		return err
	}

	if err := workflow.RejectContent(item, reason); err != nil {
		return err
	}

	return s.cr.SetRejected(ctx, contentID, reason)
}

func (s *contentService) MarkPosted(ctx context.Context, agentID, contentID int64, mp *transfer.MarkPosted) error {
	item, err := s.ownedContent(ctx, agentID, contentID)
	if err != nil {
		return err
	}

	if err := workflow.MarkContentPosted(item, mp.PostURL); err != nil {
		return err
	}

	return s.cr.SetPosted(ctx, contentID, mp.PostURL, mp.Likes, mp.Comments, mp.Shares, mp.Views)
}

func (s *contentService) Info(ctx context.Context, contentID int64) (*models.ContentItem, []*models.MediaAsset, error) {
	item, err := s.existingContent(ctx, contentID)
	if err != nil {
		return nil, nil, err
	}

	assets, err := s.cm.ListByContentID(ctx, contentID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading content media: %w", err)
	}

	return item, assets, nil
}

func (s *contentService) ListByClient(ctx context.Context, clientID int64, status string) ([]*models.ContentItem, error) {
	items, err := s.cr.ListByClientID(ctx, clientID, status)
	if err != nil {
		return nil, fmt.Errorf("error listing content: %w", err)
	}
	return items, nil
}

func (s *contentService) ListByAgent(ctx context.Context, agentID int64, status string) ([]*models.ContentItem, error) {
	items, err := s.cr.ListByAgentID(ctx, agentID, status)
	if err != nil {
		return nil, fmt.Errorf("error listing content: %w", err)
	}
	return items, nil
}

func (s *contentService) Remove(ctx context.Context, agentID, contentID int64) error {
	if _, err := s.ownedContent(ctx, agentID, contentID); err != nil {
		return err
	}

	if err := s.cr.Remove(ctx, contentID); err != nil {
		return fmt.Errorf("error removing content: %w", err)
	}
	return nil
}

func (s *contentService) existingContent(ctx context.Context, contentID int64) (*models.ContentItem, error) {
	if contentID == 0 {
		err := errors.New("content id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	item, err := s.cr.GetByID(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("error getting content info")
	}
	if item == nil {
		err = errors.New("content doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return item, nil
}

func (s *contentService) ownedContent(ctx context.Context, agentID, contentID int64) (*models.ContentItem, error) {
	if agentID == 0 {
		err := errors.New("agent is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	isValid, err := s.cr.CheckByAgentID(ctx, contentID, agentID)
	if err != nil {
		return nil, err
	}
	if !isValid {
		err = errors.New("content doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return s.existingContent(ctx, contentID)
}
