package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/repository"
)

var (
	ErrReviewNotFound = errors.New("Review not found")
	ErrInvalidRating  = errors.New("Rating must be between 1 and 5")
	ErrInvalidStatus  = errors.New("Status must be 'approved' or 'flagged'")
)

type ReviewRepository interface {
	Create(ctx context.Context, rev *model.Review) (*model.Review, error)
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*model.Review, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListByProduct(ctx context.Context, productID int64) ([]*model.Review, error)
	ListByCustomer(ctx context.Context, username string) ([]*model.Review, error)
}

// ReviewService owns product reviews and their moderation lifecycle.
// New reviews always start out pending.
type ReviewService struct {
	reviewRepo   ReviewRepository
	customerRepo CustomerRepository
	goodsRepo    GoodsRepository
}

func NewReviewService(reviewRepo ReviewRepository, customerRepo CustomerRepository, goodsRepo GoodsRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		customerRepo: customerRepo,
		goodsRepo:    goodsRepo,
	}
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func (s *ReviewService) Submit(ctx context.Context, username string, req model.ReviewCreateRequest) (*model.Review, error) {
	if !validRating(req.Rating) {
		return nil, ErrInvalidRating
	}
	if _, err := s.customerRepo.GetByUsername(ctx, username); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("resolve customer: %w", err)
	}
	if _, err := s.goodsRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrGoodsNotFound) {
			return nil, ErrGoodsNotFound
		}
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	return s.reviewRepo.Create(ctx, &model.Review{
		CustomerUsername: username,
		ProductID:        req.ProductID,
		Rating:           req.Rating,
		Comment:          req.Comment,
		Status:           model.ReviewStatusPending,
	})
}

func (s *ReviewService) Update(ctx context.Context, id int64, req model.ReviewUpdateRequest) (*model.Review, error) {
	if req.Rating != nil && !validRating(*req.Rating) {
		return nil, ErrInvalidRating
	}

	fields := map[string]any{}
	if req.Rating != nil {
		fields["rating"] = *req.Rating
	}
	if req.Comment != nil {
		fields["comment"] = *req.Comment
	}

	rev, err := s.reviewRepo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("update review: %w", err)
	}
	return rev, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.reviewRepo.Delete(ctx, id)
}

// Moderate sets a review's status to approved or flagged. Moderation
// can never move a review back to pending.
func (s *ReviewService) Moderate(ctx context.Context, id int64, status model.ReviewStatus) (*model.Review, error) {
	if !status.ValidModerationTarget() {
		return nil, ErrInvalidStatus
	}
	rev, err := s.reviewRepo.Update(ctx, id, map[string]any{"status": status})
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("moderate review: %w", err)
	}
	return rev, nil
}

func (s *ReviewService) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	rev, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return rev, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID int64) ([]*model.Review, error) {
	if _, err := s.goodsRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrGoodsNotFound) {
			return nil, ErrGoodsNotFound
		}
		return nil, err
	}
	return s.reviewRepo.ListByProduct(ctx, productID)
}

func (s *ReviewService) ListByCustomer(ctx context.Context, username string) ([]*model.Review, error) {
	if _, err := s.customerRepo.GetByUsername(ctx, username); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return s.reviewRepo.ListByCustomer(ctx, username)
}
