package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/agencydesk/agencyflow/internal/service"
)

type GiveawayHandler struct {
	s service.GiveawayService
}

func NewGiveawayHandler(service service.GiveawayService) *GiveawayHandler {
	return &GiveawayHandler{s: service}
}

func (h *GiveawayHandler) ListGiveaways(c *fiber.Ctx) error {
	clientID := c.QueryInt("client", 0)

	giveaways, err := h.s.List(c.Context(), int64(clientID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list giveaways",
		})
	}

	return c.Status(fiber.StatusOK).JSON(giveaways)
}

func (h *GiveawayHandler) ListWins(c *fiber.Ctx) error {
	giveawayID := c.QueryInt("id", 0)

	wins, err := h.s.Wins(c.Context(), int64(giveawayID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list giveaway wins",
		})
	}

	return c.Status(fiber.StatusOK).JSON(wins)
}
