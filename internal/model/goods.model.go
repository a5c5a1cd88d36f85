package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Goods struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	PricePerItem decimal.Decimal `json:"price_per_item"`
	Description  *string         `json:"description"`
	CountInStock int             `json:"count_in_stock"`
}

func (Goods) TableName() string { return "goods" }

type GoodsCreateRequest struct {
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	PricePerItem *decimal.Decimal `json:"price_per_item"`
	Description  *string          `json:"description"`
	CountInStock *int             `json:"count_in_stock"`
}

func (r GoodsCreateRequest) Validate() error {
	var missing []string
	if r.Name == nil || *r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Category == nil || *r.Category == "" {
		missing = append(missing, "category")
	}
	if r.PricePerItem == nil {
		missing = append(missing, "price_per_item")
	}
	if r.CountInStock == nil {
		missing = append(missing, "count_in_stock")
	}
	if len(missing) > 0 {
		return NewValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}
	if !r.PricePerItem.IsPositive() {
		return NewValidationError("Price per item must be positive")
	}
	if *r.CountInStock < 0 {
		return NewValidationError("Count in stock cannot be negative")
	}
	return nil
}

type GoodsUpdateRequest struct {
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	PricePerItem *decimal.Decimal `json:"price_per_item"`
	Description  *string          `json:"description"`
	CountInStock *int             `json:"count_in_stock"`
}

func (r GoodsUpdateRequest) Validate() error {
	if r.PricePerItem != nil && !r.PricePerItem.IsPositive() {
		return NewValidationError("Price per item must be positive")
	}
	if r.CountInStock != nil && *r.CountInStock < 0 {
		return NewValidationError("Count in stock cannot be negative")
	}
	return nil
}

func (r GoodsUpdateRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	if r.PricePerItem != nil {
		fields["price_per_item"] = *r.PricePerItem
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.CountInStock != nil {
		fields["count_in_stock"] = *r.CountInStock
	}
	return fields
}

// CatalogItem is the public shop-window projection of a good.
type CatalogItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
