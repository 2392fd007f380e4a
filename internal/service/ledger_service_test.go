package service

import (
	"testing"

	"go-stockledger/internal/model"
	"go-stockledger/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movement(productID uint, name string, quantity int, txType string) *MovementRequest {
	return &MovementRequest{
		ProductID:        productID,
		ProductName:      name,
		Quantity:         quantity,
		TransactionParty: "AgroSupplier",
		TransactionType:  txType,
	}
}

func TestApplyMovementStockOut(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Rice", "5kg bag", "AgroSupplier")
	env.seedInventory(t, product, 100)

	t.Run("Success", func(t *testing.T) {
		result, err := env.ledger.ApplyMovement(movement(product.ProductID, "Rice", 30, model.TxStockOut))

		require.NoError(t, err)
		assert.Equal(t, 70, result.NewBalance)
		assert.Equal(t, model.TxStockOut, result.Transaction.TransactionType)
		assert.Equal(t, 70, env.balance(t, product.ProductID))
		assert.EqualValues(t, 1, env.transactionCount(t))
	})

	t.Run("Insufficient stock rejected without mutation", func(t *testing.T) {
		_, err := env.ledger.ApplyMovement(movement(product.ProductID, "Rice", 80, model.TxStockOut))

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.InsufficientStock))
		assert.Equal(t, 70, env.balance(t, product.ProductID))
		assert.EqualValues(t, 1, env.transactionCount(t))
	})
}

func TestApplyMovementStockIn(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Beans", "1kg bag", "FarmCo")
	env.seedInventory(t, product, 10)

	result, err := env.ledger.ApplyMovement(movement(product.ProductID, "Beans", 25, model.TxStockIn))

	require.NoError(t, err)
	assert.Equal(t, 35, result.NewBalance)
	assert.Equal(t, 35, env.balance(t, product.ProductID))
}

func TestApplyMovementProductMismatch(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Rice", "5kg bag", "AgroSupplier")
	env.seedInventory(t, product, 100)

	t.Run("Wrong name for a valid id", func(t *testing.T) {
		_, err := env.ledger.ApplyMovement(movement(product.ProductID, "Maize", 10, model.TxStockOut))

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.ProductMismatch))
		assert.Equal(t, 100, env.balance(t, product.ProductID))
		assert.EqualValues(t, 0, env.transactionCount(t))
	})

	t.Run("Unknown id", func(t *testing.T) {
		_, err := env.ledger.ApplyMovement(movement(9999, "Rice", 10, model.TxStockIn))

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.ProductMismatch))
	})
}

func TestApplyMovementWithoutInventoryRecord(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Sugar", "2kg bag", "SweetCo")

	_, err := env.ledger.ApplyMovement(movement(product.ProductID, "Sugar", 5, model.TxStockIn))

	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.NotFound))
	assert.EqualValues(t, 0, env.transactionCount(t))
}

func TestApplyMovementValidation(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Rice", "5kg bag", "AgroSupplier")
	env.seedInventory(t, product, 100)

	cases := []struct {
		name string
		req  *MovementRequest
	}{
		{"Zero quantity", movement(product.ProductID, "Rice", 0, model.TxStockIn)},
		{"Negative quantity", movement(product.ProductID, "Rice", -5, model.TxStockOut)},
		{"Bad movement type", movement(product.ProductID, "Rice", 5, "stock-in")},
		{"Missing party", &MovementRequest{ProductID: product.ProductID, ProductName: "Rice", Quantity: 5, TransactionType: model.TxStockIn}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.ledger.ApplyMovement(tc.req)

			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.Validation))
		})
	}

	assert.Equal(t, 100, env.balance(t, product.ProductID))
	assert.EqualValues(t, 0, env.transactionCount(t))
}

func TestMovementConservation(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Flour", "10kg bag", "MillWorks")
	env.seedInventory(t, product, 0)

	steps := []struct {
		txType string
		qty    int
	}{
		{model.TxStockIn, 40},
		{model.TxStockIn, 60},
		{model.TxStockOut, 25},
		{model.TxStockIn, 5},
		{model.TxStockOut, 50},
	}

	expected := 0
	for _, step := range steps {
		_, err := env.ledger.ApplyMovement(movement(product.ProductID, "Flour", step.qty, step.txType))
		require.NoError(t, err)
		if step.txType == model.TxStockIn {
			expected += step.qty
		} else {
			expected -= step.qty
		}
	}

	assert.Equal(t, expected, env.balance(t, product.ProductID))
	assert.EqualValues(t, len(steps), env.transactionCount(t))
}

func TestJointOverdraw(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Oil", "1L bottle", "PressCo")
	env.seedInventory(t, product, 50)

	// Two movements that individually fit but jointly exceed the
	// balance: exactly one succeeds.
	_, err1 := env.ledger.ApplyMovement(movement(product.ProductID, "Oil", 30, model.TxStockOut))
	_, err2 := env.ledger.ApplyMovement(movement(product.ProductID, "Oil", 30, model.TxStockOut))

	require.NoError(t, err1)
	require.Error(t, err2)
	assert.True(t, apperr.Is(err2, apperr.InsufficientStock))
	assert.Equal(t, 20, env.balance(t, product.ProductID))
	assert.GreaterOrEqual(t, env.balance(t, product.ProductID), 0)
}

func TestMovementRecordsEnteredBy(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Rice", "5kg bag", "AgroSupplier")
	env.seedInventory(t, product, 100)
	user := env.seedUser(t, "jdoe", "jdoe-account")

	req := movement(product.ProductID, "Rice", 10, model.TxStockOut)
	req.UserID = &user.UserID

	result, err := env.ledger.ApplyMovement(req)

	require.NoError(t, err)
	require.NotNil(t, result.Transaction.EnteredBy)
	assert.Equal(t, user.UserID, *result.Transaction.EnteredBy)
}

func TestMovementRollsBackOnConstraintViolation(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Rice", "5kg bag", "AgroSupplier")
	env.seedInventory(t, product, 100)

	// entered_by references a user that does not exist; the foreign
	// key fires on the transaction insert, after the balance update.
	// The whole unit must roll back.
	unknownUser := uint(424242)
	req := movement(product.ProductID, "Rice", 10, model.TxStockOut)
	req.UserID = &unknownUser

	_, err := env.ledger.ApplyMovement(req)

	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Constraint))
	assert.Equal(t, 100, env.balance(t, product.ProductID))
	assert.EqualValues(t, 0, env.transactionCount(t))
}

func TestGetAllTransactionsOrder(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Rice", "5kg bag", "AgroSupplier")
	env.seedInventory(t, product, 100)

	for i := 0; i < 3; i++ {
		_, err := env.ledger.ApplyMovement(movement(product.ProductID, "Rice", 10, model.TxStockIn))
		require.NoError(t, err)
	}

	entries, err := env.ledger.GetAllTransactions()
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
