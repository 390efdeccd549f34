package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "glimmer/internal/log"
	"glimmer/internal/repos"
	"glimmer/internal/validate"
)

type PreviewHandler struct {
	Store repos.Store
}

// GET /social-preview/product/:id
//
// Crawlers from social platforms don't run the client app, so this route
// serves a plain HTML page carrying the product's sharing metadata.
func (h *PreviewHandler) Product(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).SendString("Product not found")
	}
	p, err := h.Store.GetProduct(id)
	if errors.Is(err, repos.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).SendString("Product not found")
	}
	if err != nil {
		applog.Error(c, "preview.product.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong")
	}

	base := c.BaseURL()
	return c.Render("social_preview", fiber.Map{
		"Title":       p.Title,
		"Description": p.Description,
		"Price":       "$" + p.Price.StringFixed(2),
		"Image":       base + p.Image,
		"URL":         base + "/products/" + c.Params("id"),
	})
}
