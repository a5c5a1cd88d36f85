package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/fasthttp/router"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/services"
	xhttp "github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/http"
	"github.com/shopspring/decimal"
)

type CustomerService interface {
	Register(ctx context.Context, req model.CustomerCreateRequest) (*model.Customer, error)
	Login(ctx context.Context, username, password string) (string, error)
	GetByUsername(ctx context.Context, username string) (*model.Customer, error)
	List(ctx context.Context) ([]*model.Customer, error)
	Update(ctx context.Context, username string, req model.CustomerUpdateRequest) (bool, error)
	Delete(ctx context.Context, username string) (bool, error)
	ChargeWallet(ctx context.Context, username string, amount decimal.Decimal) (bool, error)
	DeductWallet(ctx context.Context, username string, amount decimal.Decimal) (bool, error)
}

type CustomerHandler struct {
	svc CustomerService
}

func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: customerService}
}

func RegisterCustomerRoutes(e *router.Group, h *CustomerHandler, gate *AccessGate) {
	e.POST("/customer", h.Register)
	e.POST("/login", h.Login)
	e.GET("/customer/{username}", h.GetCustomer)
	e.PUT("/customer/{username}", gate.OwnerOnly("username", h.UpdateCustomer))
	e.DELETE("/customer/{username}", gate.OwnerOnly("username", h.DeleteCustomer))
	e.GET("/customers", gate.AdminOnly(h.ListCustomers))
	e.POST("/customer/{username}/wallet/charge", gate.OwnerOnly("username", h.ChargeWallet))
	e.POST("/customer/{username}/wallet/deduct", gate.OwnerOnly("username", h.DeductWallet))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *CustomerHandler) Register(ctx *xhttp.RequestCtx) {
	var req model.CustomerCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	c, err := h.svc.Register(ctx, req)
	if err != nil {
		var ve *model.ValidationError
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			writeError(ctx, xhttp.StatusConflict, err.Error())
		case errors.As(err, &ve):
			writeError(ctx, xhttp.StatusBadRequest, ve.Error())
		default:
			writeInternalError(ctx, err)
		}
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, c)
}

func (h *CustomerHandler) Login(ctx *xhttp.RequestCtx) {
	var req loginRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(ctx, xhttp.StatusBadRequest, "Username and password are required")
		return
	}
	// Quoted usernames are never legal; refuse before hitting the store.
	if strings.ContainsAny(req.Username, `'"`) {
		writeError(ctx, xhttp.StatusBadRequest, "Invalid credentials")
		return
	}

	accessToken, err := h.svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(ctx, xhttp.StatusUnauthorized, err.Error())
			return
		}
		writeInternalError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"access_token": accessToken})
}

func (h *CustomerHandler) GetCustomer(ctx *xhttp.RequestCtx) {
	c, err := h.svc.GetByUsername(ctx, pathString(ctx, "username"))
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			writeError(ctx, xhttp.StatusNotFound, err.Error())
			return
		}
		writeInternalError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, c)
}

func (h *CustomerHandler) ListCustomers(ctx *xhttp.RequestCtx) {
	customers, err := h.svc.List(ctx)
	if err != nil {
		writeInternalError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, customers)
}

func (h *CustomerHandler) UpdateCustomer(ctx *xhttp.RequestCtx) {
	username := pathString(ctx, "username")

	var req model.CustomerUpdateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	ok, err := h.svc.Update(ctx, username, req)
	if err != nil {
		if errors.Is(err, services.ErrNegativeAmount) {
			writeError(ctx, xhttp.StatusBadRequest, err.Error())
			return
		}
		writeInternalError(ctx, err)
		return
	}
	if !ok {
		writeError(ctx, xhttp.StatusNotFound, "Customer not found")
		return
	}

	c, err := h.svc.GetByUsername(ctx, username)
	if err != nil {
		writeInternalError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, c)
}

func (h *CustomerHandler) DeleteCustomer(ctx *xhttp.RequestCtx) {
	ok, err := h.svc.Delete(ctx, pathString(ctx, "username"))
	if err != nil {
		writeInternalError(ctx, err)
		return
	}
	if !ok {
		writeError(ctx, xhttp.StatusNotFound, "Customer not found")
		return
	}
	writeMessage(ctx, xhttp.StatusOK, "Customer deleted successfully")
}

func (h *CustomerHandler) ChargeWallet(ctx *xhttp.RequestCtx) {
	var req amountRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	ok, err := h.svc.ChargeWallet(ctx, pathString(ctx, "username"), req.Amount)
	if err != nil {
		if errors.Is(err, services.ErrNegativeAmount) {
			writeError(ctx, xhttp.StatusBadRequest, err.Error())
			return
		}
		writeInternalError(ctx, err)
		return
	}
	if !ok {
		writeError(ctx, xhttp.StatusInternalServerError, "Failed to charge wallet")
		return
	}
	writeMessage(ctx, xhttp.StatusOK, "Wallet charged successfully")
}

func (h *CustomerHandler) DeductWallet(ctx *xhttp.RequestCtx) {
	var req amountRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	ok, err := h.svc.DeductWallet(ctx, pathString(ctx, "username"), req.Amount)
	if err != nil {
		if errors.Is(err, services.ErrNegativeAmount) {
			writeError(ctx, xhttp.StatusBadRequest, err.Error())
			return
		}
		writeInternalError(ctx, err)
		return
	}
	if !ok {
		// A single false covers both unknown customers and short funds.
		writeError(ctx, xhttp.StatusBadRequest, "Insufficient balance")
		return
	}
	writeMessage(ctx, xhttp.StatusOK, "Wallet deducted successfully")
}
