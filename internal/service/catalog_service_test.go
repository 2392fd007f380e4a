package service

import (
	"testing"

	"go-stockledger/internal/model"
	"go-stockledger/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	req := &CreateProductRequest{ProductName: "Rice", Packaging: "5kg bag", Supplier: "AgroSupplier"}

	t.Run("Success", func(t *testing.T) {
		product, err := env.catalog.CreateProduct(req)

		require.NoError(t, err)
		assert.NotZero(t, product.ProductID)
		assert.Equal(t, "Rice", product.ProductName)
	})

	t.Run("Duplicate natural key rejected", func(t *testing.T) {
		_, err := env.catalog.CreateProduct(req)

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.Conflict))
	})

	t.Run("Same name with different packaging allowed", func(t *testing.T) {
		other := &CreateProductRequest{ProductName: "Rice", Packaging: "25kg bag", Supplier: "AgroSupplier"}
		_, err := env.catalog.CreateProduct(other)

		require.NoError(t, err)
	})

	t.Run("Missing fields rejected", func(t *testing.T) {
		_, err := env.catalog.CreateProduct(&CreateProductRequest{ProductName: "Rice"})

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.Validation))
	})
}

func TestProvisionInventory(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "Rice", "5kg bag", "AgroSupplier")

	req := &ProvisionInventoryRequest{
		ProductName:    "Rice",
		Packaging:      "5kg bag",
		Category:       "grain",
		UnitPrice:      12.75,
		Quantity:       100,
		MinimumBalance: 10,
		Supplier:       "AgroSupplier",
	}

	t.Run("Unknown product", func(t *testing.T) {
		unknown := *req
		unknown.ProductName = "Maize"
		_, err := env.catalog.ProvisionInventory(&unknown)

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.NotFound))
	})

	t.Run("Success", func(t *testing.T) {
		rec, err := env.catalog.ProvisionInventory(req)

		require.NoError(t, err)
		assert.Equal(t, "Rice", rec.ProductName)
		assert.Equal(t, 100, rec.QuantityAvailable)
		assert.Equal(t, 12.75, rec.UnitPrice)
	})

	t.Run("Re-provisioning a stocked product rejected", func(t *testing.T) {
		_, err := env.catalog.ProvisionInventory(req)

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.Conflict))
	})

	t.Run("Negative price rejected", func(t *testing.T) {
		bad := *req
		bad.UnitPrice = -1
		_, err := env.catalog.ProvisionInventory(&bad)

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.Validation))
	})
}

func TestSearchItems(t *testing.T) {
	env := newTestEnv(t)
	rice := env.seedProduct(t, "Rice", "5kg bag", "AgroSupplier")
	beans := env.seedProduct(t, "Brown Beans", "1kg bag", "FarmCo")
	env.seedInventory(t, rice, 100)
	env.seedInventory(t, beans, 50)

	t.Run("By numeric id", func(t *testing.T) {
		refs, err := env.catalog.SearchItems("1")

		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, rice.ProductID, refs[0].ProductID)
	})

	t.Run("By case-insensitive name fragment", func(t *testing.T) {
		refs, err := env.catalog.SearchItems("beans")

		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "Brown Beans", refs[0].ProductName)
	})

	t.Run("Empty term rejected", func(t *testing.T) {
		_, err := env.catalog.SearchItems("")

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.Validation))
	})

	t.Run("No match", func(t *testing.T) {
		_, err := env.catalog.SearchItems("cassava")

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.NotFound))
	})
}

func TestGetAllRecords(t *testing.T) {
	env := newTestEnv(t)

	records, err := env.catalog.GetAllRecords()
	require.NoError(t, err)
	assert.Empty(t, records)

	product := env.seedProduct(t, "Rice", "5kg bag", "AgroSupplier")
	env.seedInventory(t, product, 100)

	records, err = env.catalog.GetAllRecords()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestDeleteProductCascades(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Rice", "5kg bag", "AgroSupplier")
	env.seedInventory(t, product, 100)

	_, err := env.ledger.ApplyMovement(movement(product.ProductID, "Rice", 20, model.TxStockOut))
	require.NoError(t, err)

	require.NoError(t, env.catalog.DeleteProduct("Rice", "5kg bag"))

	var inventoryCount, txCount int64
	require.NoError(t, env.db.Model(&model.InventoryRecord{}).Where("product_id = ?", product.ProductID).Count(&inventoryCount).Error)
	require.NoError(t, env.db.Model(&model.Transaction{}).Where("product_id = ?", product.ProductID).Count(&txCount).Error)
	assert.EqualValues(t, 0, inventoryCount)
	assert.EqualValues(t, 0, txCount)
}

func TestDeleteProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.catalog.DeleteProduct("Ghost", "1kg bag")

	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestUserDeletionNullsEnteredBy(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Rice", "5kg bag", "AgroSupplier")
	env.seedInventory(t, product, 100)
	user := env.seedUser(t, "jdoe", "jdoe-account")

	req := movement(product.ProductID, "Rice", 10, model.TxStockOut)
	req.UserID = &user.UserID
	result, err := env.ledger.ApplyMovement(req)
	require.NoError(t, err)

	require.NoError(t, env.userRepo.Delete(user.UserID))

	// The transaction survives the user; only entered_by is nulled.
	var entry model.Transaction
	require.NoError(t, env.db.First(&entry, "transaction_id = ?", result.Transaction.TransactionID).Error)
	assert.Nil(t, entry.EnteredBy)
	assert.Equal(t, product.ProductID, entry.ProductID)
}
