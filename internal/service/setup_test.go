package service

import (
	"testing"
	"time"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/internal/ws"
	"go-stockledger/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory store with the real schema, foreign
// keys enforced. A single connection keeps the memory database alive
// and serializes writers the way row locks would.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Migrate(db))

	return db
}

type testEnv struct {
	db            *gorm.DB
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	txRepo        repository.TransactionRepository
	userRepo      repository.UserRepository
	ledger        LedgerService
	catalog       CatalogService
	auth          AuthService
	reports       ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	hub := ws.NewHub()

	productRepo := repository.NewProductRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)

	return &testEnv{
		db:            db,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		txRepo:        txRepo,
		userRepo:      userRepo,
		ledger:        NewLedgerService(productRepo, inventoryRepo, txRepo, db, hub),
		catalog:       NewCatalogService(productRepo, inventoryRepo, hub),
		auth:          NewAuthService(userRepo),
		reports:       NewReportService(productRepo, inventoryRepo, txRepo),
	}
}

func (e *testEnv) seedProduct(t *testing.T, name, packaging, supplier string) *model.Product {
	t.Helper()
	product := &model.Product{ProductName: name, Packaging: packaging, Supplier: supplier}
	require.NoError(t, e.productRepo.Create(product))
	return product
}

func (e *testEnv) seedInventory(t *testing.T, product *model.Product, quantity int) *model.InventoryRecord {
	t.Helper()
	rec := &model.InventoryRecord{
		ProductID:         product.ProductID,
		ProductName:       product.ProductName,
		Packaging:         product.Packaging,
		Category:          "general",
		UnitPrice:         10.50,
		QuantityAvailable: quantity,
		MinimumBalance:    5,
		Supplier:          product.Supplier,
		UpdatedAt:         time.Now(),
	}
	require.NoError(t, e.inventoryRepo.Create(rec))
	return rec
}

func (e *testEnv) seedUser(t *testing.T, userName, accountName string) *model.User {
	t.Helper()
	user := &model.User{
		UserName:    userName,
		AccountName: accountName,
		Role:        "clerk",
		Email:       userName + "@example.com",
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, e.userRepo.Create(user))
	return user
}

func (e *testEnv) balance(t *testing.T, productID uint) int {
	t.Helper()
	rec, err := e.inventoryRepo.FindByProductID(e.db, productID)
	require.NoError(t, err)
	return rec.QuantityAvailable
}

func (e *testEnv) transactionCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&model.Transaction{}).Count(&count).Error)
	return count
}
