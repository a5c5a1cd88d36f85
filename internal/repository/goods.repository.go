package repository

import (
	"context"
	"errors"

	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrGoodsNotFound = errors.New("goods not found")
	// ErrInsufficientStock is kept distinct from ErrGoodsNotFound;
	// inventory tooling depends on telling the two apart.
	ErrInsufficientStock = errors.New("insufficient stock available")
)

type GoodsRepository struct {
	*pg.DB
}

func NewGoodsRepository(db *pg.DB) *GoodsRepository {
	return &GoodsRepository{
		db,
	}
}

func (r *GoodsRepository) Create(ctx context.Context, g *model.Goods) (*model.Goods, error) {
	entity := toGoodsEntity(g)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toGoodsModel(entity), nil
}

func (r *GoodsRepository) GetByID(ctx context.Context, id int64) (*model.Goods, error) {
	var entity GoodsEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoodsNotFound
		}
		return nil, err
	}
	return toGoodsModel(&entity), nil
}

func (r *GoodsRepository) List(ctx context.Context) ([]*model.Goods, error) {
	var entities []*GoodsEntity
	if err := r.Read(ctx).WithContext(ctx).Order("id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toGoodsModels(entities), nil
}

// ListInStock returns goods with remaining stock, for the public
// catalog.
func (r *GoodsRepository) ListInStock(ctx context.Context) ([]*model.Goods, error) {
	var entities []*GoodsEntity
	if err := r.Read(ctx).WithContext(ctx).
		Where("count_in_stock > 0").
		Order("id ASC").
		Find(&entities).Error; err != nil {
		return nil, err
	}
	return toGoodsModels(entities), nil
}

// Update applies the allow-listed column set and returns the updated
// row, or ErrGoodsNotFound when the id is absent.
func (r *GoodsRepository) Update(ctx context.Context, id int64, fields map[string]any) (*model.Goods, error) {
	if len(fields) > 0 {
		result := r.Write(ctx).WithContext(ctx).
			Model(&GoodsEntity{}).
			Where("id = ?", id).
			Updates(fields)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrGoodsNotFound
		}
	}
	return r.GetByID(ctx, id)
}

// DeductStock subtracts quantity in one conditional update so two
// concurrent deductions never both succeed when only one can be
// satisfied. When no row is affected a follow-up read decides whether
// the good was missing or the stock was short.
func (r *GoodsRepository) DeductStock(ctx context.Context, id int64, quantity int) (*model.Goods, error) {
	result := r.Write(ctx).WithContext(ctx).
		Model(&GoodsEntity{}).
		Where("id = ? AND count_in_stock >= ?", id, quantity).
		Update("count_in_stock", gorm.Expr("count_in_stock - ?", quantity))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, r.checkDeductionFailureReason(ctx, id, quantity)
	}
	return r.GetByID(ctx, id)
}

// checkDeductionFailureReason determines why the conditional deduction
// matched no row.
func (r *GoodsRepository) checkDeductionFailureReason(ctx context.Context, id int64, quantity int) error {
	var entity GoodsEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGoodsNotFound
		}
		return err
	}
	if entity.CountInStock < quantity {
		return ErrInsufficientStock
	}
	// stock was sufficient on re-read: a concurrent restock landed
	// between the update and this check
	return ErrInsufficientStock
}

func (r *GoodsRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.Write(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&GoodsEntity{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
