package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an append-only ledger entry. Rows are never updated or
// deleted once written.
type Sale struct {
	ID               int64           `json:"id"`
	GoodID           int64           `json:"good_id"`
	CustomerUsername string          `json:"customer_username"`
	Quantity         int             `json:"quantity"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	SaleDate         time.Time       `json:"sale_date"`
}

func (Sale) TableName() string { return "sales" }

// PurchaseHistory snapshots the good's name at time of sale so the
// entry stays meaningful if the good is later renamed or deleted.
type PurchaseHistory struct {
	ID               int64           `json:"id"`
	CustomerUsername string          `json:"customer_username"`
	GoodName         string          `json:"good_name"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	PurchaseDate     time.Time       `json:"purchase_date"`
}

func (PurchaseHistory) TableName() string { return "purchase_history" }

type PurchaseRequest struct {
	GoodID   int64 `json:"good_id"`
	Quantity int   `json:"quantity"`
}
