package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"bakeshop/internal/cart"
	"bakeshop/internal/remote"
)

// OrderHandler exposes checkout and order history. Placing an order empties
// the server-side cart, so the held cart is re-fetched afterwards.
type OrderHandler struct {
	api      remote.OrderAPI
	cart     *cart.Provider
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(api remote.OrderAPI, provider *cart.Provider) *OrderHandler {
	return &OrderHandler{
		api:      api,
		cart:     provider,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, requireUser, requireAdmin fiber.Handler) {
	orderRoutes := router.Group("/orders", requireUser)
	orderRoutes.Get("/", h.HandleList)
	orderRoutes.Get("/:id", h.HandleGet)
	orderRoutes.Post("/", h.HandleCheckout)
	orderRoutes.Patch("/:id/status", requireAdmin, h.HandleUpdateStatus)
}

// HandleList returns the shopper's order history; the remote API returns
// every order when the caller is an administrator.
func (h *OrderHandler) HandleList(c *fiber.Ctx) error {
	orders, err := h.api.List(c.Context())
	if err != nil {
		log.Printf("Failed to fetch orders: %v", err)
		return remoteErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"orders": orders,
	})
}

// HandleGet returns a single order, as shown on the confirmation page.
func (h *OrderHandler) HandleGet(c *fiber.Ctx) error {
	order, err := h.api.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		log.Printf("Failed to fetch order %s: %v", c.Params("id"), err)
		return remoteErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"order": order,
	})
}

// CheckoutRequest is the request body for placing an order.
type CheckoutRequest struct {
	AddressID     string `json:"addressId" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=COD Online QR"`
}

// HandleCheckout places an order from the current cart contents.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}
	if len(h.cart.Cart().Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Your cart is empty",
		})
	}

	order, err := h.api.Place(c.Context(), req.AddressID, req.PaymentMethod)
	if err != nil {
		log.Printf("Failed to place order: %v", err)
		return remoteErrorResponse(c, err)
	}

	// The remote API clears the cart on checkout; resynchronize the held one.
	if err := h.cart.FetchCart(c.Context()); err != nil {
		log.Printf("Cart refresh after checkout failed: %v", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// StatusUpdateRequest is the request body for moving an order to a new status.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// HandleUpdateStatus moves an order to a new status (admin only).
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	order, err := h.api.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		log.Printf("Failed to update order %s status: %v", c.Params("id"), err)
		return remoteErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated",
		"order":   order,
	})
}
