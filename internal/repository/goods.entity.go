package repository

import (
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/shopspring/decimal"
)

type GoodsEntity struct {
	ID           int64           `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	Name         string          `db:"name"           gorm:"column:name;not null"`
	Category     string          `db:"category"       gorm:"column:category;not null"`
	PricePerItem decimal.Decimal `db:"price_per_item" gorm:"column:price_per_item;type:numeric;not null"`
	Description  *string         `db:"description"    gorm:"column:description"`
	CountInStock int             `db:"count_in_stock" gorm:"column:count_in_stock;not null;default:0"`
}

func (GoodsEntity) TableName() string {
	return "goods"
}

func toGoodsEntity(m *model.Goods) *GoodsEntity {
	if m == nil {
		return nil
	}
	return &GoodsEntity{
		ID:           m.ID,
		Name:         m.Name,
		Category:     m.Category,
		PricePerItem: m.PricePerItem,
		Description:  m.Description,
		CountInStock: m.CountInStock,
	}
}

func toGoodsModel(e *GoodsEntity) *model.Goods {
	if e == nil {
		return nil
	}
	return &model.Goods{
		ID:           e.ID,
		Name:         e.Name,
		Category:     e.Category,
		PricePerItem: e.PricePerItem,
		Description:  e.Description,
		CountInStock: e.CountInStock,
	}
}

func toGoodsModels(entities []*GoodsEntity) []*model.Goods {
	if entities == nil {
		return nil
	}
	models := make([]*model.Goods, len(entities))
	for i, e := range entities {
		models[i] = toGoodsModel(e)
	}
	return models
}
