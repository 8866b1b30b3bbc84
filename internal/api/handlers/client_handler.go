package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/agencydesk/agencyflow/internal/models"
	"github.com/agencydesk/agencyflow/internal/service"
	"github.com/agencydesk/agencyflow/internal/transfer"
)

type ClientHandler struct {
	s service.ClientService
}

func NewClientHandler(service service.ClientService) *ClientHandler {
	return &ClientHandler{s: service}
}

func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	clientID := c.QueryInt("id", 0)

	if clientID != 0 {
		client, err := h.s.Info(c.Context(), int64(clientID))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to get client",
			})
		}
		return c.Status(fiber.StatusOK).JSON(client)
	}

	// Agents see their own roster, admins see everyone.
	if GetUserRole(c) == models.RoleAdmin {
		clients, err := h.s.List(c.Context())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to list clients",
			})
		}
		return c.Status(fiber.StatusOK).JSON(clients)
	}

	clients, err := h.s.ListByAgent(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list clients",
		})
	}
	return c.Status(fiber.StatusOK).JSON(clients)
}

func (h *ClientHandler) AssignAgent(c *fiber.Ctx) error {
	clientID, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	var aa transfer.AgentAssignment
	if err := c.BodyParser(&aa); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	if err := validate.Struct(&aa); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.s.AssignAgent(c.Context(), clientID, aa.AgentID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *ClientHandler) RequestAccess(c *fiber.Ctx) error {
	var ar transfer.AccessRequestCreation
	if err := c.BodyParser(&ar); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	if err := validate.Struct(&ar); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	requestID, err := h.s.RequestAccess(c.Context(), &ar)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id": requestID,
	})
}

func (h *ClientHandler) ListAccessRequests(c *fiber.Ctx) error {
	status := c.Query("status")

	requests, err := h.s.ListAccessRequests(c.Context(), status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list access requests",
		})
	}
	return c.Status(fiber.StatusOK).JSON(requests)
}

func (h *ClientHandler) ApproveAccess(c *fiber.Ctx) error {
	adminID := GetUserID(c)
	requestID, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	clientID, err := h.s.ApproveAccess(c.Context(), adminID, requestID)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"client_id": clientID,
	})
}

func (h *ClientHandler) DenyAccess(c *fiber.Ctx) error {
	adminID := GetUserID(c)
	requestID, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	if err := h.s.DenyAccess(c.Context(), adminID, requestID); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusOK)
}
