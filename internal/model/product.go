package model

import "time"

// Product is a catalog entry. The natural key is
// (product_name, packaging, supplier); product_id is the surrogate key.
// Deleting a product cascades to its inventory record and transactions.
type Product struct {
	ProductID   uint      `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id"`
	ProductName string    `gorm:"column:product_name;type:varchar(100);not null;uniqueIndex:idx_products_natural_key" json:"product_name"`
	Packaging   string    `gorm:"type:varchar(100);uniqueIndex:idx_products_natural_key" json:"packaging"`
	Supplier    string    `gorm:"type:varchar(100);uniqueIndex:idx_products_natural_key" json:"supplier"`
	AddedAt     time.Time `gorm:"column:added_at;not null;autoCreateTime" json:"added_at"`

	Inventory    *InventoryRecord `gorm:"foreignKey:ProductID;references:ProductID;constraint:OnDelete:CASCADE" json:"inventory,omitempty"`
	Transactions []Transaction    `gorm:"foreignKey:ProductID;references:ProductID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
