package handler

import (
	"strconv"

	"go-stockledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// StockMovement returns per-day in/out aggregates for charts.
// GET /reports/stock-movement?days=7
func (h *ReportHandler) StockMovement(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}

	points, err := h.service.StockMovement(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock movement"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   points,
	})
}

// Overview returns product count, below-minimum count and valuation.
// GET /reports/overview
func (h *ReportHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.service.GetOverview()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch overview"})
	}
	return c.JSON(overview)
}
