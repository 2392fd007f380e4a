package repository

import (
	"strconv"
	"strings"
	"time"

	"go-stockledger/internal/model"

	"gorm.io/gorm"
)

// ItemRef is the slim search result for get-item lookups.
type ItemRef struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
}

type InventoryRepository interface {
	Create(rec *model.InventoryRecord) error
	FindAll() ([]model.InventoryRecord, error)
	FindByProductID(tx *gorm.DB, productID uint) (*model.InventoryRecord, error)
	Exists(productID uint) (bool, error)
	Search(term string) ([]ItemRef, error)
	// Credit and Debit run inside the caller's transaction and report
	// how many rows changed; zero means no inventory row matched (or,
	// for Debit, the balance could not cover the quantity).
	Credit(tx *gorm.DB, productID uint, quantity int) (int64, error)
	Debit(tx *gorm.DB, productID uint, quantity int) (int64, error)
	CountBelowMinimum() (int64, error)
	TotalValuation() (float64, error)
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) Create(rec *model.InventoryRecord) error {
	return r.db.Create(rec).Error
}

func (r *inventoryRepo) FindAll() ([]model.InventoryRecord, error) {
	var records []model.InventoryRecord
	err := r.db.Order("product_id ASC").Find(&records).Error
	return records, err
}

func (r *inventoryRepo) FindByProductID(tx *gorm.DB, productID uint) (*model.InventoryRecord, error) {
	var rec model.InventoryRecord
	if err := tx.First(&rec, "product_id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *inventoryRepo) Exists(productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.InventoryRecord{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count > 0, err
}

// Search treats a numeric term as a product_id lookup and anything else
// as a case-insensitive substring match on product_name.
func (r *inventoryRepo) Search(term string) ([]ItemRef, error) {
	var refs []ItemRef
	q := r.db.Model(&model.InventoryRecord{}).Select("product_id, product_name")

	if id, err := strconv.Atoi(term); err == nil {
		q = q.Where("product_id = ?", id)
	} else {
		q = q.Where("LOWER(product_name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}

	err := q.Find(&refs).Error
	return refs, err
}

func (r *inventoryRepo) Credit(tx *gorm.DB, productID uint, quantity int) (int64, error) {
	res := tx.Model(&model.InventoryRecord{}).
		Where("product_id = ?", productID).
		Updates(map[string]interface{}{
			"quantity_available": gorm.Expr("quantity_available + ?", quantity),
			"updated_at":         time.Now(),
		})
	return res.RowsAffected, res.Error
}

// Debit decrements only when the balance covers the quantity. The
// condition rides in the UPDATE itself, so two concurrent stock-outs
// cannot both pass a stale read: the store serializes them and the
// loser matches zero rows.
func (r *inventoryRepo) Debit(tx *gorm.DB, productID uint, quantity int) (int64, error) {
	res := tx.Model(&model.InventoryRecord{}).
		Where("product_id = ? AND quantity_available >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"quantity_available": gorm.Expr("quantity_available - ?", quantity),
			"updated_at":         time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *inventoryRepo) CountBelowMinimum() (int64, error) {
	var count int64
	err := r.db.Model(&model.InventoryRecord{}).
		Where("quantity_available < minimum_balance").
		Count(&count).Error
	return count, err
}

func (r *inventoryRepo) TotalValuation() (float64, error) {
	var total float64
	err := r.db.Model(&model.InventoryRecord{}).
		Select("COALESCE(SUM(quantity_available * unit_price), 0)").
		Scan(&total).Error
	return total, err
}
