package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/services"
	xhttp "github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/http"
)

type ReviewService interface {
	Submit(ctx context.Context, username string, req model.ReviewCreateRequest) (*model.Review, error)
	Update(ctx context.Context, id int64, req model.ReviewUpdateRequest) (*model.Review, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Moderate(ctx context.Context, id int64, status model.ReviewStatus) (*model.Review, error)
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]*model.Review, error)
	ListByCustomer(ctx context.Context, username string) ([]*model.Review, error)
}

type ReviewHandler struct {
	svc ReviewService
}

func NewReviewHandler(reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: reviewService}
}

func RegisterReviewRoutes(e *router.Group, h *ReviewHandler, gate *AccessGate) {
	e.POST("/reviews/", gate.Authenticated(h.SubmitReview))
	e.GET("/reviews/{id}", h.GetReview)
	e.PUT("/reviews/{id}", gate.Authenticated(h.UpdateReview))
	e.DELETE("/reviews/{id}", gate.Authenticated(h.DeleteReview))
	e.PUT("/reviews/{id}/moderate", gate.AdminOnly(h.ModerateReview))
	e.GET("/reviews/product/{id}", h.ListProductReviews)
	e.GET("/reviews/customer/{username}", h.ListCustomerReviews)
}

/* --------------------------------- Routes ----------------------------------- */

func (h *ReviewHandler) SubmitReview(ctx *xhttp.RequestCtx) {
	var req model.ReviewCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	rev, err := h.svc.Submit(ctx, AuthCustomer(ctx).Username, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGoodsNotFound):
			writeError(ctx, xhttp.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrInvalidRating):
			writeError(ctx, xhttp.StatusBadRequest, err.Error())
		default:
			writeInternalError(ctx, err)
		}
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, rev)
}

// ownedReview loads the review and enforces that the caller owns it or
// is an admin. A nil return means the response has been written.
func (h *ReviewHandler) ownedReview(ctx *xhttp.RequestCtx) *model.Review {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return nil
	}
	rev, err := h.svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrReviewNotFound) {
			writeError(ctx, xhttp.StatusNotFound, err.Error())
			return nil
		}
		writeInternalError(ctx, err)
		return nil
	}

	c := AuthCustomer(ctx)
	if c.Role != model.RoleAdmin && c.Username != rev.CustomerUsername {
		writeError(ctx, xhttp.StatusForbidden, "Access forbidden")
		return nil
	}
	return rev
}

func (h *ReviewHandler) UpdateReview(ctx *xhttp.RequestCtx) {
	rev := h.ownedReview(ctx)
	if rev == nil {
		return
	}

	var req model.ReviewUpdateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	updated, err := h.svc.Update(ctx, rev.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating):
			writeError(ctx, xhttp.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrReviewNotFound):
			writeError(ctx, xhttp.StatusNotFound, err.Error())
		default:
			writeInternalError(ctx, err)
		}
		return
	}
	writeJSON(ctx, xhttp.StatusOK, updated)
}

func (h *ReviewHandler) DeleteReview(ctx *xhttp.RequestCtx) {
	rev := h.ownedReview(ctx)
	if rev == nil {
		return
	}

	ok, err := h.svc.Delete(ctx, rev.ID)
	if err != nil {
		writeInternalError(ctx, err)
		return
	}
	if !ok {
		writeError(ctx, xhttp.StatusNotFound, "Review not found")
		return
	}
	writeMessage(ctx, xhttp.StatusOK, "Review deleted successfully")
}

func (h *ReviewHandler) ModerateReview(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}

	var req model.ReviewModerateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	rev, err := h.svc.Moderate(ctx, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			writeError(ctx, xhttp.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrReviewNotFound):
			writeError(ctx, xhttp.StatusNotFound, err.Error())
		default:
			writeInternalError(ctx, err)
		}
		return
	}
	writeJSON(ctx, xhttp.StatusOK, rev)
}

func (h *ReviewHandler) GetReview(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	rev, err := h.svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrReviewNotFound) {
			writeError(ctx, xhttp.StatusNotFound, err.Error())
			return
		}
		writeInternalError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, rev)
}

func (h *ReviewHandler) ListProductReviews(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	reviews, err := h.svc.ListByProduct(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrGoodsNotFound) {
			writeError(ctx, xhttp.StatusNotFound, err.Error())
			return
		}
		writeInternalError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, reviews)
}

func (h *ReviewHandler) ListCustomerReviews(ctx *xhttp.RequestCtx) {
	reviews, err := h.svc.ListByCustomer(ctx, pathString(ctx, "username"))
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			writeError(ctx, xhttp.StatusNotFound, err.Error())
			return
		}
		writeInternalError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, reviews)
}
