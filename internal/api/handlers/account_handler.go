package handlers

import (
	"fmt"
	"log"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	config "github.com/agencydesk/agencyflow/configs"
	"github.com/agencydesk/agencyflow/internal/service"
	"github.com/agencydesk/agencyflow/pkg/utils"
)

type AccountHandler struct {
	s   service.AccountService
	cfg config.Config
}

func NewAccountHandler(cfg config.Config, service service.AccountService) *AccountHandler {
	return &AccountHandler{s: service, cfg: cfg}
}

func (h *AccountHandler) AddSocialAccount(c *fiber.Ctx) error {
	authURL := h.s.GetAuthURL(c.Context(), c.Params("platform"), c.Query("state"))
	return c.Redirect(authURL)
}

// CallbackHandler finishes the OAuth dance. The state carries a token whose
// subject is the client the account is being connected for.
func (h *AccountHandler) CallbackHandler(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	platform := c.Params("platform")

	claims, err := utils.ValidateToken(h.cfg.SecretKey, state)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to validate user",
		})
	}

	clientID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to validate user",
		})
	}

	switch platform {
	case "instagram":
		err = h.s.ConnectInstagram(c.Context(), code, clientID)
	case "tiktok":
		err = h.s.ConnectTiktok(c.Context(), code, clientID)
	case "youtube":
		err = h.s.ConnectYoutube(c.Context(), code, clientID)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown platform",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	redirectURL := fmt.Sprintf("%s/dashboard/accounts", h.cfg.FrontendURL)
	return c.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}

func (h *AccountHandler) ListSocialAccounts(c *fiber.Ctx) error {
	clientID := c.QueryInt("client", 0)
	platform := c.Query("platform")

	accountList, err := h.s.List(c.Context(), int64(clientID), platform)
	if err != nil {
		log.Println(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch social accounts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(accountList)
}

// SelectSocialAccounts serves the wizard's account picker. The response says
// whether the picker can be skipped.
func (h *AccountHandler) SelectSocialAccounts(c *fiber.Ctx) error {
	clientID := c.QueryInt("client", 0)
	platform := c.Query("platform")

	selection, err := h.s.Select(c.Context(), int64(clientID), platform)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(selection)
}

func (h *AccountHandler) DeleteSocialAccount(c *fiber.Ctx) error {
	clientID := c.QueryInt("client", 0)
	accountID := c.QueryInt("id", 0)

	err := h.s.Delete(c.Context(), int64(clientID), int64(accountID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to delete social account",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
