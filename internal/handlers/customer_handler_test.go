package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Register(ctx context.Context, req model.CustomerCreateRequest) (*model.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockCustomerService) GetByUsername(ctx context.Context, username string) (*model.Customer, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) List(ctx context.Context) ([]*model.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Update(ctx context.Context, username string, req model.CustomerUpdateRequest) (bool, error) {
	args := m.Called(ctx, username, req)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerService) ChargeWallet(ctx context.Context, username string, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, username, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerService) DeductWallet(ctx context.Context, username string, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, username, amount)
	return args.Bool(0), args.Error(1)
}

func intPtr(i int) *int { return &i }

func TestCustomerHandler_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		body, _ := json.Marshal(map[string]any{
			"full_name": "Alice Smith", "username": "alice", "password": "secret",
			"age": 30, "address": "12 Main St", "gender": "female", "marital_status": "single",
		})

		svc.On("Register", mock.Anything, mock.MatchedBy(func(req model.CustomerCreateRequest) bool {
			return req.Username != nil && *req.Username == "alice"
		})).Return(&model.Customer{ID: 1, Username: "alice"}, nil)

		ctx := setupTestContext("POST", "/customer", body)
		handler.Register(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("validation failure", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("Register", mock.Anything, mock.Anything).
			Return(nil, model.NewValidationError("Missing required fields: full_name, password"))

		body, _ := json.Marshal(map[string]any{"username": "alice"})
		ctx := setupTestContext("POST", "/customer", body)
		handler.Register(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		assert.Contains(t, errorBody(t, ctx), "Missing required fields")
	})

	t.Run("store failure stays generic", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("Register", mock.Anything, mock.Anything).
			Return(nil, errors.New("create customer: connection refused"))

		body, _ := json.Marshal(map[string]any{"username": "alice"})
		ctx := setupTestContext("POST", "/customer", body)
		handler.Register(ctx)

		assert.Equal(t, 500, ctx.Response.StatusCode())
		assert.Equal(t, "An error occurred. Please try again.", errorBody(t, ctx))
		assert.NotContains(t, string(ctx.Response.Body()), "connection refused")
	})

	t.Run("duplicate username", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("Register", mock.Anything, mock.Anything).Return(nil, services.ErrUsernameTaken)

		body, _ := json.Marshal(map[string]any{"username": "alice"})
		ctx := setupTestContext("POST", "/customer", body)
		handler.Register(ctx)

		assert.Equal(t, 409, ctx.Response.StatusCode())
		assert.Equal(t, "Username already exists", errorBody(t, ctx))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		handler := NewCustomerHandler(new(MockCustomerService))

		ctx := setupTestContext("POST", "/customer", []byte("not json"))
		handler.Register(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		assert.Contains(t, errorBody(t, ctx), "invalid JSON")
	})
}

func TestCustomerHandler_Login(t *testing.T) {
	t.Run("successful login returns an access token", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("Login", mock.Anything, "alice", "secret").Return("signed-token", nil)

		body, _ := json.Marshal(loginRequest{Username: "alice", Password: "secret"})
		ctx := setupTestContext("POST", "/login", body)
		handler.Login(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		var response map[string]string
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, "signed-token", response["access_token"])
	})

	t.Run("wrong credentials", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("Login", mock.Anything, "alice", "wrong").Return("", services.ErrInvalidCredentials)

		body, _ := json.Marshal(loginRequest{Username: "alice", Password: "wrong"})
		ctx := setupTestContext("POST", "/login", body)
		handler.Login(ctx)

		assert.Equal(t, 401, ctx.Response.StatusCode())
		assert.Equal(t, "Invalid credentials", errorBody(t, ctx))
	})

	t.Run("quoted username is refused before the store is touched", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		body, _ := json.Marshal(loginRequest{Username: `ali'ce`, Password: "secret"})
		ctx := setupTestContext("POST", "/login", body)
		handler.Login(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		assert.Equal(t, "Invalid credentials", errorBody(t, ctx))
		svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing fields", func(t *testing.T) {
		handler := NewCustomerHandler(new(MockCustomerService))

		body, _ := json.Marshal(loginRequest{Username: "alice"})
		ctx := setupTestContext("POST", "/login", body)
		handler.Login(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})
}

func TestCustomerHandler_Wallet(t *testing.T) {
	t.Run("charge success", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("ChargeWallet", mock.Anything, "alice", mock.MatchedBy(func(a decimal.Decimal) bool {
			return a.Equal(decimal.NewFromFloat(50))
		})).Return(true, nil)

		body, _ := json.Marshal(map[string]any{"amount": 50})
		ctx := setupTestContext("POST", "/customer/alice/wallet/charge", body)
		ctx.SetUserValue("username", "alice")
		handler.ChargeWallet(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
	})

	t.Run("negative charge", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("ChargeWallet", mock.Anything, "alice", mock.Anything).Return(false, services.ErrNegativeAmount)

		body, _ := json.Marshal(map[string]any{"amount": -5})
		ctx := setupTestContext("POST", "/customer/alice/wallet/charge", body)
		ctx.SetUserValue("username", "alice")
		handler.ChargeWallet(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		assert.Equal(t, "Amount cannot be negative", errorBody(t, ctx))
	})

	t.Run("charge to unknown customer is a server error", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("ChargeWallet", mock.Anything, "ghost", mock.Anything).Return(false, nil)

		body, _ := json.Marshal(map[string]any{"amount": 5})
		ctx := setupTestContext("POST", "/customer/ghost/wallet/charge", body)
		ctx.SetUserValue("username", "ghost")
		handler.ChargeWallet(ctx)

		assert.Equal(t, 500, ctx.Response.StatusCode())
	})

	t.Run("deduct with short funds", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("DeductWallet", mock.Anything, "alice", mock.Anything).Return(false, nil)

		body, _ := json.Marshal(map[string]any{"amount": 30})
		ctx := setupTestContext("POST", "/customer/alice/wallet/deduct", body)
		ctx.SetUserValue("username", "alice")
		handler.DeductWallet(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		assert.Equal(t, "Insufficient balance", errorBody(t, ctx))
	})
}

func TestCustomerHandler_GetCustomer(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("GetByUsername", mock.Anything, "ghost").Return(nil, services.ErrCustomerNotFound)

		ctx := setupTestContext("GET", "/customer/ghost", nil)
		ctx.SetUserValue("username", "ghost")
		handler.GetCustomer(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
		assert.Equal(t, "Customer not found", errorBody(t, ctx))
	})
}
