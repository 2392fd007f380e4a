package repository

import (
	"time"

	"go-stockledger/internal/model"

	"gorm.io/gorm"
)

// MovementPoint is one day of aggregated ledger traffic.
type MovementPoint struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

type TransactionRepository interface {
	// Create appends a ledger entry inside the caller's transaction so
	// the insert commits together with the balance mutation.
	Create(tx *gorm.DB, entry *model.Transaction) error
	FindAll() ([]model.Transaction, error)
	FindByProductID(productID uint) ([]model.Transaction, error)
	StockMovement(startDate, endDate time.Time) ([]MovementPoint, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(tx *gorm.DB, entry *model.Transaction) error {
	return tx.Create(entry).Error
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var entries []model.Transaction
	err := r.db.Order("transaction_date DESC").Find(&entries).Error
	return entries, err
}

func (r *transactionRepo) FindByProductID(productID uint) ([]model.Transaction, error) {
	var entries []model.Transaction
	err := r.db.
		Where("product_id = ?", productID).
		Order("transaction_date DESC").
		Find(&entries).Error
	return entries, err
}

func (r *transactionRepo) StockMovement(startDate, endDate time.Time) ([]MovementPoint, error) {
	var points []MovementPoint

	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			DATE(transaction_date) as date,
			COALESCE(SUM(CASE WHEN transaction_type = 'stock in' THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN transaction_type = 'stock out' THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("transaction_date BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(transaction_date)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p MovementPoint
		if err := rows.Scan(&p.Date, &p.Inbound, &p.Outbound); err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return points, rows.Err()
}
