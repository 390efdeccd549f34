package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"glimmer/internal/domain"
	applog "glimmer/internal/log"
	"glimmer/internal/repos"
	"glimmer/internal/validate"
)

type OrderHandler struct {
	Store repos.Store
}

type orderItemPayload struct {
	ProductID int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
}

type createOrderPayload struct {
	UserID          int                `json:"userId"`
	Total           decimal.Decimal    `json:"total"`
	Items           []orderItemPayload `json:"items"`
	StripeSessionID string             `json:"stripeSessionId"`
}

// POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var body createOrderPayload
	if err := c.BodyParser(&body); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "order"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed order payload"})
	}
	if len(body.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "order has no items"})
	}

	order, err := h.Store.CreateOrder(domain.Order{
		UserID:          body.UserID,
		Total:           body.Total,
		Status:          domain.OrderStatusPending,
		StripeSessionID: body.StripeSessionID,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		applog.Error(c, "orders.create.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not create order"})
	}

	// The order row exists before any of its items.
	items := make([]domain.OrderItem, 0, len(body.Items))
	for _, it := range body.Items {
		stored, err := h.Store.AddOrderItem(domain.OrderItem{
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Quantity:  validate.Qty(it.Quantity),
			Price:     it.Price,
			Size:      validate.Variant(it.Size),
			Color:     validate.Variant(it.Color),
		})
		if err != nil {
			applog.Error(c, "orders.item.fail", err, map[string]any{"order_id": order.ID})
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not record order items"})
		}
		items = append(items, stored)
	}

	applog.Audit(c, "orders.create", map[string]any{
		"order_id": order.ID,
		"total":    order.Total.String(),
		"items":    len(items),
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": order, "items": items})
}

// GET /api/orders/:id
func (h *OrderHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	order, err := h.Store.GetOrder(id)
	if errors.Is(err, repos.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}
	if err != nil {
		applog.Error(c, "orders.get.fail", err, map[string]any{"order_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load order"})
	}
	items, err := h.Store.GetOrderItems(id)
	if err != nil {
		applog.Error(c, "orders.items.fail", err, map[string]any{"order_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load order items"})
	}
	return c.JSON(fiber.Map{"order": order, "items": items})
}

type updateStatusPayload struct {
	Status string `json:"status"`
}

// POST /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	var body updateStatusPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed payload"})
	}
	status, ok := validate.Status(body.Status)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "status"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status"})
	}

	order, err := h.Store.UpdateOrderStatus(id, status)
	if errors.Is(err, repos.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}
	if err != nil {
		applog.Error(c, "orders.status.fail", err, map[string]any{"order_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update status"})
	}
	applog.Audit(c, "orders.status.update", map[string]any{"order_id": id, "status": status})
	return c.JSON(order)
}
