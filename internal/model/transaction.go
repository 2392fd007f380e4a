package model

import "time"

// Transaction types as stored in the check constraint. The spelling is
// part of the schema contract, spacing included.
const (
	TxStockIn  = "stock in"
	TxStockOut = "stock out"
)

// Transaction is an append-only ledger entry. The application never
// updates or deletes rows here; they disappear only when their product
// is deleted (ON DELETE CASCADE). entered_by survives user deletion as
// NULL (ON DELETE SET NULL).
type Transaction struct {
	TransactionID    uint      `gorm:"column:transaction_id;primaryKey;autoIncrement" json:"transaction_id"`
	ProductID        uint      `gorm:"column:product_id;not null" json:"product_id"`
	ProductName      string    `gorm:"column:product_name;type:varchar(100)" json:"product_name"`
	Quantity         int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	TransactionParty string    `gorm:"column:transaction_party;type:varchar(100)" json:"transaction_party"`
	EnteredBy        *uint     `gorm:"column:entered_by" json:"entered_by"`
	TransactionDate  time.Time `gorm:"column:transaction_date;not null;autoCreateTime" json:"transaction_date"`
	TransactionType  string    `gorm:"column:transaction_type;type:varchar(20);not null;check:transaction_type IN ('stock in', 'stock out')" json:"transaction_type"`

	EnteredByUser *User `gorm:"foreignKey:EnteredBy;references:UserID;constraint:OnDelete:SET NULL" json:"entered_by_user,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}
