package handler

import (
	"go-stockledger/internal/service"
	"go-stockledger/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// CreateProduct registers a catalog entry.
// POST /create-product
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(&req)
	if err != nil {
		// Duplicate products report as 400 on this route.
		if apperr.Is(err, apperr.Conflict) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": req.ProductName + " added successfully",
		"data":    product,
	})
}

// AddProduct provisions the inventory row for a catalogued product.
// POST /add-product
func (h *CatalogHandler) AddProduct(c *fiber.Ctx) error {
	var req service.ProvisionInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	rec, err := h.service.ProvisionInventory(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "product added successfully",
		"data":    rec,
	})
}

// GetAllRecords lists every inventory record.
// GET /get-all-records
func (h *CatalogHandler) GetAllRecords(c *fiber.Ctx) error {
	records, err := h.service.GetAllRecords()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	if len(records) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(records)
}

// GetItem searches inventory by id or name fragment.
// GET /get-item?search_item=
func (h *CatalogHandler) GetItem(c *fiber.Ctx) error {
	term := c.Query("search_item")

	refs, err := h.service.SearchItems(term)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(refs)
}

// DeleteProduct removes a product and its dependent rows.
// DELETE /delete-product?product_name=&packaging=
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	name := c.Query("product_name")
	packaging := c.Query("packaging")

	if err := h.service.DeleteProduct(name, packaging); err != nil {
		// A missing product is 204 on this route.
		if apperr.Is(err, apperr.NotFound) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "product '" + name + "' with packaging '" + packaging + "' deleted successfully",
	})
}
