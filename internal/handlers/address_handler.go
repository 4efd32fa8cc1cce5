package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"bakeshop/internal/models"
	"bakeshop/internal/remote"
)

// AddressHandler exposes the shopper's address book.
type AddressHandler struct {
	api      remote.AddressAPI
	validate *validator.Validate
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(api remote.AddressAPI) *AddressHandler {
	return &AddressHandler{
		api:      api,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the address-book routes.
func (h *AddressHandler) RegisterRoutes(router fiber.Router, requireUser fiber.Handler) {
	addressRoutes := router.Group("/addresses", requireUser)
	addressRoutes.Get("/", h.HandleList)
	addressRoutes.Post("/", h.HandleCreate)
	addressRoutes.Patch("/:id", h.HandleUpdate)
	addressRoutes.Delete("/:id", h.HandleDelete)
	addressRoutes.Patch("/:id/set-default", h.HandleSetDefault)
}

// HandleList returns the address book.
func (h *AddressHandler) HandleList(c *fiber.Ctx) error {
	addresses, err := h.api.List(c.Context())
	if err != nil {
		log.Printf("Failed to fetch addresses: %v", err)
		return remoteErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"addresses": addresses,
	})
}

// HandleCreate adds an address.
func (h *AddressHandler) HandleCreate(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(address); err != nil {
		return validationErrorResponse(c, err)
	}

	created, err := h.api.Create(c.Context(), &address)
	if err != nil {
		log.Printf("Failed to add address: %v", err)
		return remoteErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Address added",
		"address": created,
	})
}

// HandleUpdate replaces an address.
func (h *AddressHandler) HandleUpdate(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(address); err != nil {
		return validationErrorResponse(c, err)
	}

	updated, err := h.api.Update(c.Context(), c.Params("id"), &address)
	if err != nil {
		log.Printf("Failed to update address %s: %v", c.Params("id"), err)
		return remoteErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Address updated",
		"address": updated,
	})
}

// HandleDelete removes an address.
func (h *AddressHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.api.Delete(c.Context(), c.Params("id")); err != nil {
		log.Printf("Failed to delete address %s: %v", c.Params("id"), err)
		return remoteErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Address deleted",
	})
}

// HandleSetDefault marks an address as default.
func (h *AddressHandler) HandleSetDefault(c *fiber.Ctx) error {
	address, err := h.api.SetDefault(c.Context(), c.Params("id"))
	if err != nil {
		log.Printf("Failed to set default address %s: %v", c.Params("id"), err)
		return remoteErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Address set as default",
		"address": address,
	})
}
