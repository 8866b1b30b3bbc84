package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/agencydesk/agencyflow/internal/service"
	"github.com/agencydesk/agencyflow/internal/transfer"
)

type RequestHandler struct {
	s service.RequestService
}

func NewRequestHandler(service service.RequestService) *RequestHandler {
	return &RequestHandler{s: service}
}

func (h *RequestHandler) CreateRequest(c *fiber.Ctx) error {
	clientID, _ := strconv.ParseInt(c.Params("client"), 10, 64)

	var rc transfer.RequestCreation
	if err := c.BodyParser(&rc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	if err := validate.Struct(&rc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	requestID, err := h.s.Create(c.Context(), clientID, &rc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id": requestID,
	})
}

func (h *RequestHandler) ListRequests(c *fiber.Ctx) error {
	requestID := c.QueryInt("id", 0)
	clientID := c.QueryInt("client", 0)
	status := c.Query("status")

	if requestID != 0 {
		request, err := h.s.Info(c.Context(), int64(requestID))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to get content request",
			})
		}
		return c.Status(fiber.StatusOK).JSON(request)
	}

	if clientID != 0 {
		requests, err := h.s.ListByClient(c.Context(), int64(clientID), status)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to list content requests",
			})
		}
		return c.Status(fiber.StatusOK).JSON(requests)
	}

	requests, err := h.s.ListOpen(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list content requests",
		})
	}
	return c.Status(fiber.StatusOK).JSON(requests)
}

func (h *RequestHandler) StartProgress(c *fiber.Ctx) error {
	agentID := GetUserID(c)
	requestID, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	if err := h.s.StartProgress(c.Context(), agentID, requestID); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *RequestHandler) CompleteRequest(c *fiber.Ctx) error {
	agentID := GetUserID(c)
	requestID, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	var rc transfer.RequestCompletion
	if err := c.BodyParser(&rc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	if err := validate.Struct(&rc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.s.Complete(c.Context(), agentID, requestID, rc.CreatedContentID); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *RequestHandler) RejectRequest(c *fiber.Ctx) error {
	requestID, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	if err := h.s.Reject(c.Context(), requestID); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusOK)
}
