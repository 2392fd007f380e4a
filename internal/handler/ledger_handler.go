package handler

import (
	"strconv"

	"go-stockledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type LedgerHandler struct {
	service service.LedgerService
}

func NewLedgerHandler(s service.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: s}
}

// UpdateStock applies a stock movement and logs the transaction.
// POST /update-stock
func (h *LedgerHandler) UpdateStock(c *fiber.Ctx) error {
	var req service.MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.ApplyMovement(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message":     "transaction logged successfully",
		"new_balance": result.NewBalance,
		"transaction": result.Transaction,
	})
}

// GetTransactions lists the full ledger, newest first.
// GET /transactions
func (h *LedgerHandler) GetTransactions(c *fiber.Ctx) error {
	entries, err := h.service.GetAllTransactions()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}

// GetProductHistory lists the ledger entries of one product.
// GET /transactions/product/:id
func (h *LedgerHandler) GetProductHistory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	entries, err := h.service.GetProductHistory(uint(id))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}
