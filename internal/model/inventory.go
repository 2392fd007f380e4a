package model

import "time"

// InventoryRecord is the current-balance row of the ledger. There is at
// most one per product: product_id is both primary key and foreign key.
// quantity_available may never go negative; the check constraint backs
// up the conditional update in the ledger service.
type InventoryRecord struct {
	ProductID         uint      `gorm:"column:product_id;primaryKey" json:"product_id"`
	ProductName       string    `gorm:"column:product_name;type:varchar(100);not null" json:"product_name"`
	Packaging         string    `gorm:"type:varchar(100)" json:"packaging"`
	Category          string    `gorm:"type:varchar(100)" json:"category"`
	UnitPrice         float64   `gorm:"column:unit_price;type:decimal(10,2);not null;check:unit_price >= 0" json:"unit_price"`
	QuantityAvailable int       `gorm:"column:quantity_available;not null;check:quantity_available >= 0" json:"quantity_available"`
	MinimumBalance    int       `gorm:"column:minimum_balance" json:"minimum_balance"`
	Supplier          string    `gorm:"type:varchar(100)" json:"supplier"`
	UpdatedAt         time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (InventoryRecord) TableName() string {
	return "inventory"
}
