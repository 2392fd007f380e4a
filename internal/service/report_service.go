package service

import (
	"time"

	"go-stockledger/internal/repository"
)

// Overview summarizes the inventory: minimum_balance is advisory, so
// below-minimum products are reported here rather than enforced by the
// ledger.
type Overview struct {
	TotalProducts  int64   `json:"total_products"`
	BelowMinimum   int64   `json:"below_minimum"`
	TotalValuation float64 `json:"total_valuation"`
}

type ReportService interface {
	StockMovement(days int) ([]repository.MovementPoint, error)
	GetOverview() (*Overview, error)
}

type reportService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	txRepo        repository.TransactionRepository
}

func NewReportService(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	txRepo repository.TransactionRepository,
) ReportService {
	return &reportService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		txRepo:        txRepo,
	}
}

func (s *reportService) StockMovement(days int) ([]repository.MovementPoint, error) {
	if days <= 0 {
		days = 7
	}
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.txRepo.StockMovement(startDate, endDate)
}

func (s *reportService) GetOverview() (*Overview, error) {
	total, err := s.productRepo.CountAll()
	if err != nil {
		return nil, err
	}
	below, err := s.inventoryRepo.CountBelowMinimum()
	if err != nil {
		return nil, err
	}
	valuation, err := s.inventoryRepo.TotalValuation()
	if err != nil {
		return nil, err
	}
	return &Overview{
		TotalProducts:  total,
		BelowMinimum:   below,
		TotalValuation: valuation,
	}, nil
}
