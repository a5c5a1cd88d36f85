package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/services"
	xhttp "github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/http"
)

type SalesService interface {
	DisplayGoods(ctx context.Context) ([]model.CatalogItem, error)
	GetGoodDetails(ctx context.Context, id int64) (*model.Goods, error)
	ProcessSale(ctx context.Context, username string, req model.PurchaseRequest) (*model.Sale, error)
	ListPurchaseHistory(ctx context.Context, username string) ([]*model.PurchaseHistory, error)
}

type SalesHandler struct {
	svc SalesService
}

func NewSalesHandler(salesService SalesService) *SalesHandler {
	return &SalesHandler{svc: salesService}
}

func RegisterSalesRoutes(e *router.Group, h *SalesHandler, gate *AccessGate) {
	e.GET("/sales/goods", h.DisplayGoods)
	e.GET("/sales/goods/{id}", h.GetGoodDetails)
	e.POST("/sales/purchase", gate.Authenticated(h.Purchase))
	e.GET("/sales/history/{username}", gate.OwnerOnly("username", h.PurchaseHistory))
}

/* --------------------------------- Routes ----------------------------------- */

func (h *SalesHandler) DisplayGoods(ctx *xhttp.RequestCtx) {
	items, err := h.svc.DisplayGoods(ctx)
	if err != nil {
		writeInternalError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, items)
}

func (h *SalesHandler) GetGoodDetails(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	g, err := h.svc.GetGoodDetails(ctx, id)
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

// Purchase buys on behalf of the token holder; the buyer is never taken
// from the request body.
func (h *SalesHandler) Purchase(ctx *xhttp.RequestCtx) {
	var req model.PurchaseRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	buyer := AuthCustomer(ctx)
	sale, err := h.svc.ProcessSale(ctx, buyer.Username, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGoodsNotFound),
			errors.Is(err, services.ErrCustomerNotFound):
			writeError(ctx, xhttp.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrInsufficientFunds),
			errors.Is(err, services.ErrInsufficientStock),
			errors.Is(err, services.ErrInvalidQuantity):
			writeError(ctx, xhttp.StatusBadRequest, err.Error())
		default:
			writeInternalError(ctx, err)
		}
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, sale)
}

func (h *SalesHandler) PurchaseHistory(ctx *xhttp.RequestCtx) {
	history, err := h.svc.ListPurchaseHistory(ctx, pathString(ctx, "username"))
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			writeError(ctx, xhttp.StatusNotFound, err.Error())
			return
		}
		writeInternalError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, history)
}
