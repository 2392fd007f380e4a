package repository

import (
	"go-stockledger/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindByNaturalKey(name, packaging, supplier string) (*model.Product, error)
	FindByNameAndPackaging(name, packaging string) (*model.Product, error)
	// FindMatch looks a product up by id AND name inside the given
	// transaction, so a stale or forged name accompanying a valid id
	// is caught before the ledger mutates anything.
	FindMatch(tx *gorm.DB, id uint, name string) (*model.Product, error)
	DeleteByNameAndPackaging(name, packaging string) (int64, error)
	CountAll() (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindByNaturalKey(name, packaging, supplier string) (*model.Product, error) {
	var product model.Product
	err := r.db.
		Where("product_name = ? AND packaging = ? AND supplier = ?", name, packaging, supplier).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByNameAndPackaging(name, packaging string) (*model.Product, error) {
	var product model.Product
	err := r.db.
		Where("product_name = ? AND packaging = ?", name, packaging).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindMatch(tx *gorm.DB, id uint, name string) (*model.Product, error) {
	var product model.Product
	err := tx.
		Where("product_id = ? AND product_name = ?", id, name).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteByNameAndPackaging removes the product row; dependent inventory
// and transaction rows go with it via ON DELETE CASCADE.
func (r *productRepo) DeleteByNameAndPackaging(name, packaging string) (int64, error) {
	res := r.db.
		Where("product_name = ? AND packaging = ?", name, packaging).
		Delete(&model.Product{})
	return res.RowsAffected, res.Error
}

func (r *productRepo) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}
