package repository

import (
	"time"

	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
)

type ReviewEntity struct {
	ID               int64     `db:"id"                gorm:"primaryKey;autoIncrement;column:id"`
	CustomerUsername string    `db:"customer_username" gorm:"column:customer_username;not null;index"`
	ProductID        int64     `db:"product_id"        gorm:"column:product_id;not null;index"`
	Rating           int       `db:"rating"            gorm:"column:rating;not null"`
	Comment          *string   `db:"comment"           gorm:"column:comment"`
	CreatedAt        time.Time `db:"created_at"        gorm:"column:created_at"`
	UpdatedAt        time.Time `db:"updated_at"        gorm:"column:updated_at"`
	Status           string    `db:"status"            gorm:"column:status;not null;default:pending"`
}

func (ReviewEntity) TableName() string {
	return "reviews"
}

func toReviewEntity(m *model.Review) *ReviewEntity {
	if m == nil {
		return nil
	}
	return &ReviewEntity{
		ID:               m.ID,
		CustomerUsername: m.CustomerUsername,
		ProductID:        m.ProductID,
		Rating:           m.Rating,
		Comment:          m.Comment,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		Status:           string(m.Status),
	}
}

func toReviewModel(e *ReviewEntity) *model.Review {
	if e == nil {
		return nil
	}
	return &model.Review{
		ID:               e.ID,
		CustomerUsername: e.CustomerUsername,
		ProductID:        e.ProductID,
		Rating:           e.Rating,
		Comment:          e.Comment,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
		Status:           model.ReviewStatus(e.Status),
	}
}

func toReviewModels(entities []*ReviewEntity) []*model.Review {
	if entities == nil {
		return nil
	}
	models := make([]*model.Review, len(entities))
	for i, e := range entities {
		models[i] = toReviewModel(e)
	}
	return models
}
