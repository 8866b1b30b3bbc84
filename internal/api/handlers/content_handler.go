package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/agencydesk/agencyflow/internal/service"
	"github.com/agencydesk/agencyflow/internal/transfer"
	"github.com/agencydesk/agencyflow/internal/workflow"
)

type ContentHandler struct {
	s service.ContentService
}

func NewContentHandler(service service.ContentService) *ContentHandler {
	return &ContentHandler{s: service}
}

// contentError maps the lifecycle errors onto status codes. Validation
// failures are the caller's fault; transition failures mean the item moved
// on since the caller last looked.
func contentError(c *fiber.Ctx, err error) error {
	switch {
	case workflow.IsValidationError(err):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, workflow.ErrInvalidTransition), errors.Is(err, workflow.ErrNotEditable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, workflow.ErrMissingPostURL):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

func (h *ContentHandler) CreateContent(c *fiber.Ctx) error {
	agentID := GetUserID(c)

	form, err := c.MultipartForm()
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}

	clientID, _ := strconv.ParseInt(c.FormValue("client_id"), 10, 64)
	accountID, _ := strconv.ParseInt(c.FormValue("social_account_id"), 10, 64)
	requestID, _ := strconv.ParseInt(c.FormValue("request_id"), 10, 64)
	submit, _ := strconv.ParseBool(c.FormValue("submit"))

	cc := transfer.ContentCreation{
		RequestID:       requestID,
		ClientID:        clientID,
		SocialAccountID: accountID,
		Platform:        c.FormValue("platform"),
		Title:           c.FormValue("title"),
		Caption:         c.FormValue("caption"),
		ScheduledDate:   c.FormValue("scheduled_date"),
		Submit:          submit,
	}

	if err := validate.Struct(&cc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	files := form.File["files"]

	contentID, err := h.s.Create(c.Context(), agentID, &cc, files)
	if err != nil {
		return contentError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id": contentID,
	})
}

func (h *ContentHandler) UpdateContent(c *fiber.Ctx) error {
	agentID := GetUserID(c)
	contentID, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	form, err := c.MultipartForm()
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}

	submit, _ := strconv.ParseBool(c.FormValue("submit"))

	cu := transfer.ContentUpdate{
		Title:         c.FormValue("title"),
		Caption:       c.FormValue("caption"),
		ScheduledDate: c.FormValue("scheduled_date"),
		Submit:        submit,
	}

	err = h.s.Update(c.Context(), agentID, contentID, &cu, form.File["files"])
	if err != nil {
		return contentError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *ContentHandler) SubmitContent(c *fiber.Ctx) error {
	agentID := GetUserID(c)
	contentID, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	if err := h.s.Submit(c.Context(), agentID, contentID); err != nil {
		return contentError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *ContentHandler) ApproveContent(c *fiber.Ctx) error {
	approverID := GetUserID(c)
	contentID, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	if err := h.s.Approve(c.Context(), approverID, contentID); err != nil {
		return contentError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *ContentHandler) RejectContent(c *fiber.Ctx) error {
	contentID, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	var cr transfer.ContentRejection
	if err := c.BodyParser(&cr); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	if err := h.s.Reject(c.Context(), contentID, cr.Reason); err != nil {
		return contentError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *ContentHandler) MarkPosted(c *fiber.Ctx) error {
	agentID := GetUserID(c)
	contentID, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	var mp transfer.MarkPosted
	if err := c.BodyParser(&mp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	if err := validate.Struct(&mp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.s.MarkPosted(c.Context(), agentID, contentID, &mp); err != nil {
		return contentError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *ContentHandler) ListContent(c *fiber.Ctx) error {
	contentID := c.QueryInt("id", 0)
	clientID := c.QueryInt("client", 0)
	status := c.Query("status")

	if contentID != 0 {
		item, media, err := h.s.Info(c.Context(), int64(contentID))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to get content item",
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"content": item,
			"media":   media,
		})
	}

	if clientID != 0 {
		items, err := h.s.ListByClient(c.Context(), int64(clientID), status)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to list content items",
			})
		}
		return c.Status(fiber.StatusOK).JSON(items)
	}

	items, err := h.s.ListByAgent(c.Context(), GetUserID(c), status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list content items",
		})
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

func (h *ContentHandler) RemoveContent(c *fiber.Ctx) error {
	agentID := GetUserID(c)
	contentID := c.QueryInt("id", 0)

	err := h.s.Remove(c.Context(), agentID, int64(contentID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove content item",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
