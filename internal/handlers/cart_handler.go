package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"bakeshop/internal/cart"
)

// CartHandler exposes the cart provider to the storefront UI. Every route
// goes through the provider; nothing here talks to the remote API directly.
type CartHandler struct {
	cart     *cart.Provider
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(provider *cart.Provider) *CartHandler {
	return &CartHandler{
		cart:     provider,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleView)
	cartRoutes.Post("/refresh", h.HandleRefresh)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:productId", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Put("/panel", h.HandlePanel)
}

// HandleView renders the held cart with its derived totals and the
// provider's loading/error state.
func (h *CartHandler) HandleView(c *fiber.Ctx) error {
	held := h.cart.Cart()
	return c.JSON(fiber.Map{
		"cart":          held,
		"totalQuantity": held.TotalQuantity(),
		"subtotal":      held.Subtotal(),
		"loading":       h.cart.Loading(),
		"error":         h.cart.Err(),
		"open":          h.cart.IsOpen(),
	})
}

// HandleRefresh forces a full re-fetch from the remote API.
func (h *CartHandler) HandleRefresh(c *fiber.Ctx) error {
	if err := h.cart.FetchCart(c.Context()); err != nil {
		log.Printf("Cart refresh failed: %v", err)
		return remoteErrorResponse(c, err)
	}
	return h.HandleView(c)
}

// AddItemRequest is the request body for adding a product to the cart.
// Quantity defaults to 1 when omitted.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,gt=0"`
}

// HandleAddItem adds a product to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := h.cart.AddToCart(c.Context(), req.ProductID, req.Quantity); err != nil {
		log.Printf("Add to cart failed for %s: %v", req.ProductID, err)
		return remoteErrorResponse(c, err)
	}
	return h.HandleView(c)
}

// UpdateItemRequest is the request body for changing a line's quantity. A
// quantity of 0 or below removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdateItem sets the quantity of a product's line.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	productID := c.Params("productId")
	if err := h.cart.UpdateItemQuantity(c.Context(), productID, req.Quantity); err != nil {
		log.Printf("Cart update failed for %s: %v", productID, err)
		return remoteErrorResponse(c, err)
	}
	return h.HandleView(c)
}

// HandleRemoveItem drops a product's line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if err := h.cart.RemoveItem(c.Context(), productID); err != nil {
		log.Printf("Cart remove failed for %s: %v", productID, err)
		return remoteErrorResponse(c, err)
	}
	return h.HandleView(c)
}

// PanelRequest is the request body for opening or closing the cart panel.
type PanelRequest struct {
	Open bool `json:"open"`
}

// HandlePanel opens or closes the cart side panel.
func (h *CartHandler) HandlePanel(c *fiber.Ctx) error {
	var req PanelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	h.cart.SetOpen(req.Open)
	return c.JSON(fiber.Map{
		"open": h.cart.IsOpen(),
	})
}
