package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/agencydesk/agencyflow/internal/service"
	"github.com/agencydesk/agencyflow/internal/transfer"
)

type BillingHandler struct {
	s service.BillingService
}

func NewBillingHandler(service service.BillingService) *BillingHandler {
	return &BillingHandler{s: service}
}

func (h *BillingHandler) GetWallet(c *fiber.Ctx) error {
	clientID := c.QueryInt("client", 0)

	wallet, err := h.s.Wallet(c.Context(), int64(clientID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to get wallet",
		})
	}
	return c.Status(fiber.StatusOK).JSON(wallet)
}

func (h *BillingHandler) TopUpWallet(c *fiber.Ctx) error {
	clientID, _ := strconv.ParseInt(c.Params("client"), 10, 64)

	var topUp transfer.WalletTopUp
	if err := c.BodyParser(&topUp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	if err := validate.Struct(&topUp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.s.TopUp(c.Context(), clientID, &topUp); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *BillingHandler) ListTransactions(c *fiber.Ctx) error {
	clientID := c.QueryInt("client", 0)

	transactions, err := h.s.Transactions(c.Context(), int64(clientID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list transactions",
		})
	}
	return c.Status(fiber.StatusOK).JSON(transactions)
}

func (h *BillingHandler) ListInvoices(c *fiber.Ctx) error {
	clientID := c.QueryInt("client", 0)
	status := c.Query("status")

	invoices, err := h.s.Invoices(c.Context(), int64(clientID), status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list invoices",
		})
	}
	return c.Status(fiber.StatusOK).JSON(invoices)
}

func (h *BillingHandler) PayInvoice(c *fiber.Ctx) error {
	clientID, _ := strconv.ParseInt(c.Params("client"), 10, 64)
	invoiceID, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	if err := h.s.PayInvoice(c.Context(), clientID, invoiceID); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusOK)
}
