package service

import (
	"errors"
	"time"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/internal/ws"
	"go-stockledger/pkg/apperr"
	"go-stockledger/pkg/validator"

	"gorm.io/gorm"
)

type CreateProductRequest struct {
	ProductName string `json:"product_name" validate:"required"`
	Packaging   string `json:"packaging" validate:"required"`
	Supplier    string `json:"supplier" validate:"required"`
}

type ProvisionInventoryRequest struct {
	ProductName    string  `json:"product_name" validate:"required"`
	Packaging      string  `json:"packaging" validate:"required"`
	Category       string  `json:"category" validate:"required"`
	UnitPrice      float64 `json:"unit_price" validate:"gte=0"`
	Quantity       int     `json:"quantity" validate:"gte=0"`
	MinimumBalance int     `json:"minimum_balance" validate:"gte=0"`
	Supplier       string  `json:"supplier" validate:"required"`
}

type CatalogService interface {
	CreateProduct(req *CreateProductRequest) (*model.Product, error)
	ProvisionInventory(req *ProvisionInventoryRequest) (*model.InventoryRecord, error)
	GetAllRecords() ([]model.InventoryRecord, error)
	SearchItems(term string) ([]repository.ItemRef, error)
	DeleteProduct(name, packaging string) error
}

type catalogService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	hub           *ws.Hub
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		hub:           hub,
	}
}

// CreateProduct registers a catalog entry. A duplicate natural key is a
// normal negative result, not a server failure.
func (s *catalogService) CreateProduct(req *CreateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.New(apperr.Validation, validator.Describe(errs))
	}

	existing, err := s.productRepo.FindByNaturalKey(req.ProductName, req.Packaging, req.Supplier)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Newf(apperr.Conflict,
			"product with name %q, packaging %q, and supplier %q already exists",
			req.ProductName, req.Packaging, req.Supplier)
	}

	product := &model.Product{
		ProductName: req.ProductName,
		Packaging:   req.Packaging,
		Supplier:    req.Supplier,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, apperr.Wrap(apperr.Constraint, err, "unable to add product")
	}

	s.hub.Publish("product_created", map[string]interface{}{
		"product_id":   product.ProductID,
		"product_name": product.ProductName,
	})

	return product, nil
}

// ProvisionInventory creates the single inventory row for an already
// catalogued product. The product is looked up by name and packaging;
// re-provisioning a stocked product fails on the one-row-per-product
// primary key.
func (s *catalogService) ProvisionInventory(req *ProvisionInventoryRequest) (*model.InventoryRecord, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.New(apperr.Validation, validator.Describe(errs))
	}

	product, err := s.productRepo.FindByNameAndPackaging(req.ProductName, req.Packaging)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.NotFound,
				"product with name %q does not exist", req.ProductName)
		}
		return nil, err
	}

	stocked, err := s.inventoryRepo.Exists(product.ProductID)
	if err != nil {
		return nil, err
	}
	if stocked {
		return nil, apperr.Newf(apperr.Conflict,
			"product %q is already stocked", req.ProductName)
	}

	rec := &model.InventoryRecord{
		ProductID:         product.ProductID,
		ProductName:       product.ProductName,
		Packaging:         product.Packaging,
		Category:          req.Category,
		UnitPrice:         req.UnitPrice,
		QuantityAvailable: req.Quantity,
		MinimumBalance:    req.MinimumBalance,
		Supplier:          req.Supplier,
		UpdatedAt:         time.Now(),
	}
	if err := s.inventoryRepo.Create(rec); err != nil {
		return nil, apperr.Wrap(apperr.Constraint, err, "unable to add inventory record")
	}

	return rec, nil
}

func (s *catalogService) GetAllRecords() ([]model.InventoryRecord, error) {
	return s.inventoryRepo.FindAll()
}

func (s *catalogService) SearchItems(term string) ([]repository.ItemRef, error) {
	if term == "" {
		return nil, apperr.New(apperr.Validation, "no search item provided")
	}

	refs, err := s.inventoryRepo.Search(term)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, apperr.New(apperr.NotFound, "item not found")
	}
	return refs, nil
}

// DeleteProduct removes a product by name and packaging. Inventory and
// transaction rows follow through the cascading foreign keys.
func (s *catalogService) DeleteProduct(name, packaging string) error {
	if name == "" || packaging == "" {
		return apperr.New(apperr.Validation, "product_name and packaging are required")
	}

	affected, err := s.productRepo.DeleteByNameAndPackaging(name, packaging)
	if err != nil {
		return apperr.Wrap(apperr.Constraint, err, "unable to delete product")
	}
	if affected == 0 {
		return apperr.Newf(apperr.NotFound,
			"no item found for %q with packaging %q", name, packaging)
	}

	s.hub.Publish("product_deleted", map[string]interface{}{
		"product_name": name,
		"packaging":    packaging,
	})

	return nil
}
