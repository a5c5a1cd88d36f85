package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/repository"
)

var (
	ErrGoodsNotFound     = errors.New("Good not found")
	ErrInsufficientStock = errors.New("Insufficient stock")
	ErrInvalidQuantity   = errors.New("Quantity must be positive")
)

type GoodsRepository interface {
	Create(ctx context.Context, g *model.Goods) (*model.Goods, error)
	GetByID(ctx context.Context, id int64) (*model.Goods, error)
	List(ctx context.Context) ([]*model.Goods, error)
	ListInStock(ctx context.Context) ([]*model.Goods, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*model.Goods, error)
	DeductStock(ctx context.Context, id int64, quantity int) (*model.Goods, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// InventoryService owns the goods catalog and stock counts.
type InventoryService struct {
	goodsRepo GoodsRepository
}

func NewInventoryService(goodsRepo GoodsRepository) *InventoryService {
	return &InventoryService{goodsRepo: goodsRepo}
}

func (s *InventoryService) Add(ctx context.Context, req model.GoodsCreateRequest) (*model.Goods, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	g := &model.Goods{
		Name:         *req.Name,
		Category:     *req.Category,
		PricePerItem: *req.PricePerItem,
		Description:  req.Description,
		CountInStock: *req.CountInStock,
	}
	return s.goodsRepo.Create(ctx, g)
}

func (s *InventoryService) Update(ctx context.Context, id int64, req model.GoodsUpdateRequest) (*model.Goods, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	g, err := s.goodsRepo.Update(ctx, id, req.Fields())
	if err != nil {
		if errors.Is(err, repository.ErrGoodsNotFound) {
			return nil, ErrGoodsNotFound
		}
		return nil, fmt.Errorf("update goods: %w", err)
	}
	return g, nil
}

// Deduct removes quantity units of stock, refusing to go below zero.
func (s *InventoryService) Deduct(ctx context.Context, id int64, quantity int) (*model.Goods, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	g, err := s.goodsRepo.DeductStock(ctx, id, quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrGoodsNotFound):
			return nil, ErrGoodsNotFound
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, ErrInsufficientStock
		}
		return nil, fmt.Errorf("deduct stock: %w", err)
	}
	return g, nil
}

func (s *InventoryService) GetByID(ctx context.Context, id int64) (*model.Goods, error) {
	g, err := s.goodsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGoodsNotFound) {
			return nil, ErrGoodsNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *InventoryService) List(ctx context.Context) ([]*model.Goods, error) {
	return s.goodsRepo.List(ctx)
}

func (s *InventoryService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.goodsRepo.Delete(ctx, id)
}
