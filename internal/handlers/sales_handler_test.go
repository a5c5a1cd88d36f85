package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/services"
	xhttp "github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/http"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSalesService struct {
	mock.Mock
}

func (m *MockSalesService) DisplayGoods(ctx context.Context) ([]model.CatalogItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CatalogItem), args.Error(1)
}

func (m *MockSalesService) GetGoodDetails(ctx context.Context, id int64) (*model.Goods, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Goods), args.Error(1)
}

func (m *MockSalesService) ProcessSale(ctx context.Context, username string, req model.PurchaseRequest) (*model.Sale, error) {
	args := m.Called(ctx, username, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Sale), args.Error(1)
}

func (m *MockSalesService) ListPurchaseHistory(ctx context.Context, username string) ([]*model.PurchaseHistory, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PurchaseHistory), args.Error(1)
}

func authedContext(method, path string, body []byte, c *model.Customer) *xhttp.RequestCtx {
	ctx := setupTestContext(method, path, body)
	ctx.SetUserValue(authCustomerKey, c)
	return ctx
}

func TestSalesHandler_Purchase(t *testing.T) {
	t.Run("successful purchase", func(t *testing.T) {
		svc := new(MockSalesService)
		handler := NewSalesHandler(svc)

		svc.On("ProcessSale", mock.Anything, "alice", model.PurchaseRequest{GoodID: 7, Quantity: 2}).
			Return(&model.Sale{ID: 1, GoodID: 7, CustomerUsername: "alice", Quantity: 2,
				TotalPrice: decimal.NewFromFloat(20)}, nil)

		body, _ := json.Marshal(model.PurchaseRequest{GoodID: 7, Quantity: 2})
		ctx := authedContext("POST", "/sales/purchase", body, customerWithRole("alice", model.RoleCustomer))
		handler.Purchase(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())

		var response model.Sale
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, "alice", response.CustomerUsername)
		svc.AssertExpectations(t)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		svc := new(MockSalesService)
		handler := NewSalesHandler(svc)

		svc.On("ProcessSale", mock.Anything, "alice", mock.Anything).
			Return(nil, services.ErrInsufficientFunds)

		body, _ := json.Marshal(model.PurchaseRequest{GoodID: 7, Quantity: 2})
		ctx := authedContext("POST", "/sales/purchase", body, customerWithRole("alice", model.RoleCustomer))
		handler.Purchase(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		assert.Equal(t, "Insufficient balance", errorBody(t, ctx))
	})

	t.Run("unknown good", func(t *testing.T) {
		svc := new(MockSalesService)
		handler := NewSalesHandler(svc)

		svc.On("ProcessSale", mock.Anything, "alice", mock.Anything).
			Return(nil, services.ErrGoodsNotFound)

		body, _ := json.Marshal(model.PurchaseRequest{GoodID: 9999, Quantity: 1})
		ctx := authedContext("POST", "/sales/purchase", body, customerWithRole("alice", model.RoleCustomer))
		handler.Purchase(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})

	t.Run("buyer comes from the token, not the body", func(t *testing.T) {
		svc := new(MockSalesService)
		handler := NewSalesHandler(svc)

		svc.On("ProcessSale", mock.Anything, "alice", mock.Anything).
			Return(&model.Sale{ID: 1, CustomerUsername: "alice"}, nil)

		// A customer_username field in the body is silently ignored.
		body := []byte(`{"good_id": 7, "quantity": 1, "customer_username": "bob"}`)
		ctx := authedContext("POST", "/sales/purchase", body, customerWithRole("alice", model.RoleCustomer))
		handler.Purchase(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})
}

func TestSalesHandler_DisplayGoods(t *testing.T) {
	t.Run("returns the catalog projection", func(t *testing.T) {
		svc := new(MockSalesService)
		handler := NewSalesHandler(svc)

		svc.On("DisplayGoods", mock.Anything).Return([]model.CatalogItem{
			{Name: "widget", Price: decimal.NewFromFloat(10)},
		}, nil)

		ctx := setupTestContext("GET", "/sales/goods", nil)
		handler.DisplayGoods(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var items []model.CatalogItem
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &items))
		require.Len(t, items, 1)
		assert.Equal(t, "widget", items[0].Name)
	})
}

func TestSalesHandler_PurchaseHistory(t *testing.T) {
	t.Run("unknown customer", func(t *testing.T) {
		svc := new(MockSalesService)
		handler := NewSalesHandler(svc)

		svc.On("ListPurchaseHistory", mock.Anything, "ghost").
			Return(nil, services.ErrCustomerNotFound)

		ctx := setupTestContext("GET", "/sales/history/ghost", nil)
		ctx.SetUserValue("username", "ghost")
		handler.PurchaseHistory(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})
}
