package repository

import (
	"context"

	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/pg"
)

// SaleRepository writes the two append-only ledgers produced by a
// purchase. No update or delete methods exist on purpose.
type SaleRepository struct {
	*pg.DB
}

func NewSaleRepository(db *pg.DB) *SaleRepository {
	return &SaleRepository{
		db,
	}
}

func (r *SaleRepository) CreateSale(ctx context.Context, s *model.Sale) (*model.Sale, error) {
	entity := toSaleEntity(s)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toSaleModel(entity), nil
}

func (r *SaleRepository) CreateHistory(ctx context.Context, h *model.PurchaseHistory) (*model.PurchaseHistory, error) {
	entity := toHistoryEntity(h)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toHistoryModel(entity), nil
}

func (r *SaleRepository) ListSalesByCustomer(ctx context.Context, username string) ([]*model.Sale, error) {
	var entities []*SaleEntity
	if err := r.Read(ctx).WithContext(ctx).
		Where("customer_username = ?", username).
		Order("id ASC").
		Find(&entities).Error; err != nil {
		return nil, err
	}
	return toSaleModels(entities), nil
}

func (r *SaleRepository) ListHistoryByCustomer(ctx context.Context, username string) ([]*model.PurchaseHistory, error) {
	var entities []*PurchaseHistoryEntity
	if err := r.Read(ctx).WithContext(ctx).
		Where("customer_username = ?", username).
		Order("id ASC").
		Find(&entities).Error; err != nil {
		return nil, err
	}
	return toHistoryModels(entities), nil
}
