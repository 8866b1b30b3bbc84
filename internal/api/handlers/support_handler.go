package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/agencydesk/agencyflow/internal/service"
	"github.com/agencydesk/agencyflow/internal/transfer"
)

type SupportHandler struct {
	s service.SupportService
}

func NewSupportHandler(service service.SupportService) *SupportHandler {
	return &SupportHandler{s: service}
}

func (h *SupportHandler) CreateTicket(c *fiber.Ctx) error {
	clientID, _ := strconv.ParseInt(c.Params("client"), 10, 64)

	var tc transfer.TicketCreation
	if err := c.BodyParser(&tc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	if err := validate.Struct(&tc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ticketID, err := h.s.CreateTicket(c.Context(), clientID, &tc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id": ticketID,
	})
}

func (h *SupportHandler) ListTickets(c *fiber.Ctx) error {
	ticketID := c.QueryInt("id", 0)
	clientID := c.QueryInt("client", 0)
	status := c.Query("status")

	if ticketID != 0 {
		ticket, err := h.s.Ticket(c.Context(), int64(ticketID))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to get ticket",
			})
		}
		return c.Status(fiber.StatusOK).JSON(ticket)
	}

	tickets, err := h.s.ListTickets(c.Context(), int64(clientID), status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list tickets",
		})
	}
	return c.Status(fiber.StatusOK).JSON(tickets)
}

func (h *SupportHandler) SetTicketStatus(c *fiber.Ctx) error {
	ticketID, _ := strconv.ParseInt(c.Params("id"), 10, 64)
	status := c.Query("status")

	if err := h.s.SetTicketStatus(c.Context(), ticketID, status); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *SupportHandler) AddMessage(c *fiber.Ctx) error {
	ticketID, _ := strconv.ParseInt(c.Params("id"), 10, 64)
	senderID := GetUserID(c)
	senderRole := GetUserRole(c)

	var mc transfer.MessageCreation
	if err := c.BodyParser(&mc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	if err := validate.Struct(&mc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	messageID, err := h.s.AddMessage(c.Context(), ticketID, senderID, senderRole, &mc)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id": messageID,
	})
}

// ListMessages returns the ticket thread. The optional since parameter
// (RFC 3339) limits the response to messages added after that time, which
// keeps the polling clients cheap.
func (h *SupportHandler) ListMessages(c *fiber.Ctx) error {
	ticketID, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	var since time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid since parameter",
			})
		}
		since = parsed
	}

	messages, err := h.s.Messages(c.Context(), ticketID, since)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list messages",
		})
	}
	return c.Status(fiber.StatusOK).JSON(messages)
}
