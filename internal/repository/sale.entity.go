package repository

import (
	"time"

	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/shopspring/decimal"
)

type SaleEntity struct {
	ID               int64           `db:"id"                gorm:"primaryKey;autoIncrement;column:id"`
	GoodID           int64           `db:"good_id"           gorm:"column:good_id;not null;index"`
	CustomerUsername string          `db:"customer_username" gorm:"column:customer_username;not null;index"`
	Quantity         int             `db:"quantity"          gorm:"column:quantity;not null"`
	TotalPrice       decimal.Decimal `db:"total_price"       gorm:"column:total_price;type:numeric;not null"`
	SaleDate         time.Time       `db:"sale_date"         gorm:"column:sale_date;not null;autoCreateTime"`
}

func (SaleEntity) TableName() string {
	return "sales"
}

type PurchaseHistoryEntity struct {
	ID               int64           `db:"id"                gorm:"primaryKey;autoIncrement;column:id"`
	CustomerUsername string          `db:"customer_username" gorm:"column:customer_username;not null;index"`
	GoodName         string          `db:"good_name"         gorm:"column:good_name;not null"`
	TotalPrice       decimal.Decimal `db:"total_price"       gorm:"column:total_price;type:numeric;not null"`
	PurchaseDate     time.Time       `db:"purchase_date"     gorm:"column:purchase_date;not null;autoCreateTime"`
}

func (PurchaseHistoryEntity) TableName() string {
	return "purchase_history"
}

func toSaleEntity(m *model.Sale) *SaleEntity {
	if m == nil {
		return nil
	}
	return &SaleEntity{
		ID:               m.ID,
		GoodID:           m.GoodID,
		CustomerUsername: m.CustomerUsername,
		Quantity:         m.Quantity,
		TotalPrice:       m.TotalPrice,
		SaleDate:         m.SaleDate,
	}
}

func toSaleModel(e *SaleEntity) *model.Sale {
	if e == nil {
		return nil
	}
	return &model.Sale{
		ID:               e.ID,
		GoodID:           e.GoodID,
		CustomerUsername: e.CustomerUsername,
		Quantity:         e.Quantity,
		TotalPrice:       e.TotalPrice,
		SaleDate:         e.SaleDate,
	}
}

func toSaleModels(entities []*SaleEntity) []*model.Sale {
	if entities == nil {
		return nil
	}
	models := make([]*model.Sale, len(entities))
	for i, e := range entities {
		models[i] = toSaleModel(e)
	}
	return models
}

func toHistoryEntity(m *model.PurchaseHistory) *PurchaseHistoryEntity {
	if m == nil {
		return nil
	}
	return &PurchaseHistoryEntity{
		ID:               m.ID,
		CustomerUsername: m.CustomerUsername,
		GoodName:         m.GoodName,
		TotalPrice:       m.TotalPrice,
		PurchaseDate:     m.PurchaseDate,
	}
}

func toHistoryModel(e *PurchaseHistoryEntity) *model.PurchaseHistory {
	if e == nil {
		return nil
	}
	return &model.PurchaseHistory{
		ID:               e.ID,
		CustomerUsername: e.CustomerUsername,
		GoodName:         e.GoodName,
		TotalPrice:       e.TotalPrice,
		PurchaseDate:     e.PurchaseDate,
	}
}

func toHistoryModels(entities []*PurchaseHistoryEntity) []*model.PurchaseHistory {
	if entities == nil {
		return nil
	}
	models := make([]*model.PurchaseHistory, len(entities))
	for i, e := range entities {
		models[i] = toHistoryModel(e)
	}
	return models
}
