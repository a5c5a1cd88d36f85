package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/services"
	xhttp "github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/http"
)

type InventoryService interface {
	Add(ctx context.Context, req model.GoodsCreateRequest) (*model.Goods, error)
	Update(ctx context.Context, id int64, req model.GoodsUpdateRequest) (*model.Goods, error)
	Deduct(ctx context.Context, id int64, quantity int) (*model.Goods, error)
	GetByID(ctx context.Context, id int64) (*model.Goods, error)
	List(ctx context.Context) ([]*model.Goods, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type InventoryHandler struct {
	svc InventoryService
}

func NewInventoryHandler(inventoryService InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: inventoryService}
}

func RegisterInventoryRoutes(e *router.Group, h *InventoryHandler, gate *AccessGate) {
	e.POST("/inventory/", gate.AdminOnly(h.AddGoods))
	e.GET("/inventory/", h.ListGoods)
	e.GET("/inventory/{id}", h.GetGoods)
	e.PUT("/inventory/{id}", gate.AdminOnly(h.UpdateGoods))
	e.DELETE("/inventory/{id}", gate.AdminOnly(h.DeleteGoods))
	e.POST("/inventory/{id}/deduct", gate.AdminOnly(h.DeductStock))
}

type deductStockRequest struct {
	Quantity int `json:"quantity"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *InventoryHandler) AddGoods(ctx *xhttp.RequestCtx) {
	var req model.GoodsCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	g, err := h.svc.Add(ctx, req)
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			writeError(ctx, xhttp.StatusBadRequest, ve.Error())
			return
		}
		writeInternalError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, g)
}

func (h *InventoryHandler) ListGoods(ctx *xhttp.RequestCtx) {
	goods, err := h.svc.List(ctx)
	if err != nil {
		writeInternalError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, goods)
}

func (h *InventoryHandler) GetGoods(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	g, err := h.svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrGoodsNotFound) {
			writeError(ctx, xhttp.StatusNotFound, err.Error())
			return
		}
		writeInternalError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, g)
}

func (h *InventoryHandler) UpdateGoods(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}

	var req model.GoodsUpdateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	g, err := h.svc.Update(ctx, id, req)
	if err != nil {
		var ve *model.ValidationError
		switch {
		case errors.Is(err, services.ErrGoodsNotFound):
			writeError(ctx, xhttp.StatusNotFound, err.Error())
		case errors.As(err, &ve):
			writeError(ctx, xhttp.StatusBadRequest, ve.Error())
		default:
			writeInternalError(ctx, err)
		}
		return
	}
	writeJSON(ctx, xhttp.StatusOK, g)
}

func (h *InventoryHandler) DeleteGoods(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	ok, err := h.svc.Delete(ctx, id)
	if err != nil {
		writeInternalError(ctx, err)
		return
	}
	if !ok {
		writeError(ctx, xhttp.StatusNotFound, "Good not found")
		return
	}
	writeMessage(ctx, xhttp.StatusOK, "Good deleted successfully")
}

func (h *InventoryHandler) DeductStock(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}

	var req deductStockRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	g, err := h.svc.Deduct(ctx, id, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGoodsNotFound):
			writeError(ctx, xhttp.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrInsufficientStock),
			errors.Is(err, services.ErrInvalidQuantity):
			writeError(ctx, xhttp.StatusBadRequest, err.Error())
		default:
			writeInternalError(ctx, err)
		}
		return
	}
	writeJSON(ctx, xhttp.StatusOK, g)
}
