package service

import (
	"errors"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/internal/ws"
	"go-stockledger/pkg/apperr"
	"go-stockledger/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MovementRequest is a single stock-in or stock-out against one product.
type MovementRequest struct {
	ProductID        uint   `json:"product_id" validate:"required"`
	ProductName      string `json:"product_name" validate:"required"`
	Quantity         int    `json:"quantity" validate:"required,gt=0"`
	TransactionParty string `json:"transaction_party" validate:"required"`
	UserID           *uint  `json:"user_id"`
	TransactionType  string `json:"transaction_type" validate:"required,oneof='stock in' 'stock out'"`
}

// MovementResult reports the appended ledger entry and the balance it
// produced.
type MovementResult struct {
	Transaction model.Transaction `json:"transaction"`
	NewBalance  int               `json:"new_balance"`
}

type LedgerService interface {
	ApplyMovement(req *MovementRequest) (*MovementResult, error)
	GetAllTransactions() ([]model.Transaction, error)
	GetProductHistory(productID uint) ([]model.Transaction, error)
}

type ledgerService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	txRepo        repository.TransactionRepository
	db            *gorm.DB
	hub           *ws.Hub
}

func NewLedgerService(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	txRepo repository.TransactionRepository,
	db *gorm.DB,
	hub *ws.Hub,
) LedgerService {
	return &ledgerService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		txRepo:        txRepo,
		db:            db,
		hub:           hub,
	}
}

// ApplyMovement validates the movement, mutates the inventory balance and
// appends the transaction row in one database transaction. Either both
// writes commit or neither is visible.
func (s *ledgerService) ApplyMovement(req *MovementRequest) (*MovementResult, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.New(apperr.Validation, validator.Describe(errs))
	}

	var result MovementResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Re-check the product reference inside the transaction: id and
		// name must match, not just the id.
		if _, err := s.productRepo.FindMatch(tx, req.ProductID, req.ProductName); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Newf(apperr.ProductMismatch,
					"product id %d with name %q does not exist or mismatch", req.ProductID, req.ProductName)
			}
			return err
		}

		var affected int64
		var err error
		switch req.TransactionType {
		case model.TxStockIn:
			affected, err = s.inventoryRepo.Credit(tx, req.ProductID, req.Quantity)
		case model.TxStockOut:
			affected, err = s.inventoryRepo.Debit(tx, req.ProductID, req.Quantity)
		}
		if err != nil {
			return err
		}

		if affected == 0 {
			rec, findErr := s.inventoryRepo.FindByProductID(tx, req.ProductID)
			if findErr != nil {
				return apperr.Newf(apperr.NotFound,
					"no inventory record for product id %d", req.ProductID)
			}
			return apperr.Newf(apperr.InsufficientStock,
				"insufficient stock for product id %d: have %d, requested %d",
				req.ProductID, rec.QuantityAvailable, req.Quantity)
		}

		entry := &model.Transaction{
			ProductID:        req.ProductID,
			ProductName:      req.ProductName,
			Quantity:         req.Quantity,
			TransactionParty: req.TransactionParty,
			EnteredBy:        req.UserID,
			TransactionType:  req.TransactionType,
		}
		if err := s.txRepo.Create(tx, entry); err != nil {
			return apperr.Wrap(apperr.Constraint, err, "unable to log transaction")
		}

		rec, err := s.inventoryRepo.FindByProductID(tx, req.ProductID)
		if err != nil {
			return err
		}

		result = MovementResult{Transaction: *entry, NewBalance: rec.QuantityAvailable}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"product_id":  req.ProductID,
		"type":        req.TransactionType,
		"quantity":    req.Quantity,
		"new_balance": result.NewBalance,
	}).Info("movement applied")

	s.hub.Publish("stock_update", map[string]interface{}{
		"product_id":   req.ProductID,
		"product_name": req.ProductName,
		"type":         req.TransactionType,
		"quantity":     req.Quantity,
		"new_balance":  result.NewBalance,
	})

	return &result, nil
}

func (s *ledgerService) GetAllTransactions() ([]model.Transaction, error) {
	return s.txRepo.FindAll()
}

func (s *ledgerService) GetProductHistory(productID uint) ([]model.Transaction, error) {
	return s.txRepo.FindByProductID(productID)
}
