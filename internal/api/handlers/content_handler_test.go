package handlers

import (
	"context"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencydesk/agencyflow/internal/models"
	"github.com/agencydesk/agencyflow/internal/transfer"
	"github.com/agencydesk/agencyflow/internal/workflow"
)

type stubContentService struct {
	submitErr     error
	markPostedErr error
}

func (s *stubContentService) Create(ctx context.Context, agentID int64, cc *transfer.ContentCreation, files []*multipart.FileHeader) (int64, error) {
	return 1, nil
}

func (s *stubContentService) Update(ctx context.Context, agentID, contentID int64, cu *transfer.ContentUpdate, files []*multipart.FileHeader) error {
	return nil
}

func (s *stubContentService) Submit(ctx context.Context, agentID, contentID int64) error {
	return s.submitErr
}

func (s *stubContentService) Approve(ctx context.Context, approverID, contentID int64) error {
	return nil
}

func (s *stubContentService) Reject(ctx context.Context, contentID int64, reason string) error {
	return nil
}

func (s *stubContentService) MarkPosted(ctx context.Context, agentID, contentID int64, mp *transfer.MarkPosted) error {
	return s.markPostedErr
}

func (s *stubContentService) Info(ctx context.Context, contentID int64) (*models.ContentItem, []*models.MediaAsset, error) {
	return nil, nil, nil
}

func (s *stubContentService) ListByClient(ctx context.Context, clientID int64, status string) ([]*models.ContentItem, error) {
	return nil, nil
}

func (s *stubContentService) ListByAgent(ctx context.Context, agentID int64, status string) ([]*models.ContentItem, error) {
	return nil, nil
}

func (s *stubContentService) Remove(ctx context.Context, agentID, contentID int64) error {
	return nil
}

func newContentTestApp(stub *stubContentService) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "9")
		c.Locals("role", "agent")
		return c.Next()
	})

	h := &ContentHandler{s: stub}
	app.Post("/content/:id/submit", h.SubmitContent)
	return app
}

func TestSubmitContentStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation failure", workflow.ErrCaptionTooLong, fiber.StatusUnprocessableEntity},
		{"invalid transition", workflow.ErrInvalidTransition, fiber.StatusConflict},
		{"missing post url", workflow.ErrMissingPostURL, fiber.StatusBadRequest},
		{"success", nil, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newContentTestApp(&stubContentService{submitErr: tt.err})

			req := httptest.NewRequest(fiber.MethodPost, "/content/1/submit", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.code, resp.StatusCode)
		})
	}
}
