package repository

import (
	"context"
	"errors"

	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/pg"
	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository struct {
	*pg.DB
}

func NewReviewRepository(db *pg.DB) *ReviewRepository {
	return &ReviewRepository{
		db,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *model.Review) (*model.Review, error) {
	entity := toReviewEntity(rev)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toReviewModel(entity), nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	var entity ReviewEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return toReviewModel(&entity), nil
}

func (r *ReviewRepository) Update(ctx context.Context, id int64, fields map[string]any) (*model.Review, error) {
	if len(fields) > 0 {
		result := r.Write(ctx).WithContext(ctx).
			Model(&ReviewEntity{}).
			Where("id = ?", id).
			Updates(fields)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrReviewNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.Write(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&ReviewEntity{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ReviewRepository) ListByProduct(ctx context.Context, productID int64) ([]*model.Review, error) {
	var entities []*ReviewEntity
	if err := r.Read(ctx).WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&entities).Error; err != nil {
		return nil, err
	}
	return toReviewModels(entities), nil
}

func (r *ReviewRepository) ListByCustomer(ctx context.Context, username string) ([]*model.Review, error) {
	var entities []*ReviewEntity
	if err := r.Read(ctx).WithContext(ctx).
		Where("customer_username = ?", username).
		Order("id ASC").
		Find(&entities).Error; err != nil {
		return nil, err
	}
	return toReviewModels(entities), nil
}
