package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"glimmer/internal/config"
	applog "glimmer/internal/log"
	"glimmer/internal/payments"
)

type PaymentHandler struct {
	Gateway *payments.Gateway
	Cfg     config.Config
}

type createIntentPayload struct {
	Amount decimal.Decimal `json:"amount"`
}

// POST /api/create-payment-intent
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var body createIntentPayload
	if err := c.BodyParser(&body); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "amount"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid amount"})
	}

	secret, err := h.Gateway.CreateAuthorization(body.Amount)
	if errors.Is(err, payments.ErrInvalidAmount) {
		applog.Security(c, "payment.intent.reject", map[string]any{"amount": body.Amount.String()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid amount"})
	}
	if err != nil {
		applog.Error(c, "payment.intent.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not create payment intent"})
	}

	applog.Audit(c, "payment.intent.create", map[string]any{
		"amount":      body.Amount.String(),
		"minor_units": payments.MinorUnits(body.Amount),
	})
	return c.JSON(fiber.Map{"clientSecret": secret})
}

// GET /api/config
//
// The payment UI needs the publishable key before it can render.
func (h *PaymentHandler) ClientConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"publishableKey": h.Cfg.StripePublicKey})
}
