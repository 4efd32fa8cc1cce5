package handlers

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"bakeshop/internal/models"
	"bakeshop/internal/remote"
)

// ProductHandler exposes the catalog: public browsing with category and
// search filters, and the admin-only management operations.
type ProductHandler struct {
	api      remote.ProductAPI
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(api remote.ProductAPI) *ProductHandler {
	return &ProductHandler{
		api:      api,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the catalog routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, requireUser, requireAdmin fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleList)

	// Management routes carry the admin gate per route: a group-level
	// middleware would match the public listing prefix too.
	productRoutes.Get("/all", requireUser, requireAdmin, h.HandleListAll)
	productRoutes.Post("/", requireUser, requireAdmin, h.HandleCreate)
	productRoutes.Patch("/:id", requireUser, requireAdmin, h.HandleUpdate)
	productRoutes.Delete("/:id", requireUser, requireAdmin, h.HandleDelete)
}

// HandleList returns the public catalog, optionally narrowed by the
// `category` and `search` query parameters.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	products, err := h.api.List(c.Context())
	if err != nil {
		log.Printf("Failed to fetch products: %v", err)
		return remoteErrorResponse(c, err)
	}

	category := c.Query("category")
	search := strings.ToLower(c.Query("search"))
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != "all" && p.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		filtered = append(filtered, p)
	}

	return c.JSON(fiber.Map{
		"products": filtered,
	})
}

// HandleListAll returns the full catalog including out-of-stock products.
func (h *ProductHandler) HandleListAll(c *fiber.Ctx) error {
	products, err := h.api.ListAll(c.Context())
	if err != nil {
		log.Printf("Failed to fetch full catalog: %v", err)
		return remoteErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"products": products,
	})
}

// HandleCreate adds a product to the catalog.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(product); err != nil {
		return validationErrorResponse(c, err)
	}

	created, err := h.api.Create(c.Context(), &product)
	if err != nil {
		log.Printf("Failed to create product %s: %v", product.Name, err)
		return remoteErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created",
		"product": created,
	})
}

// HandleUpdate applies a change to a catalog product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(product); err != nil {
		return validationErrorResponse(c, err)
	}

	updated, err := h.api.Update(c.Context(), c.Params("id"), &product)
	if err != nil {
		log.Printf("Failed to update product %s: %v", c.Params("id"), err)
		return remoteErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product updated",
		"product": updated,
	})
}

// HandleDelete removes a product from the catalog.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.api.Delete(c.Context(), c.Params("id")); err != nil {
		log.Printf("Failed to delete product %s: %v", c.Params("id"), err)
		return remoteErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted",
	})
}
