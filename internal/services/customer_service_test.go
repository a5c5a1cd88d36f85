package services

import (
	"context"
	"testing"

	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func validCreateRequest(username string) model.CustomerCreateRequest {
	return model.CustomerCreateRequest{
		FullName:      strPtr("Alice Smith"),
		Username:      &username,
		Password:      strPtr("secret"),
		Age:           intPtr(30),
		Address:       strPtr("12 Main St"),
		Gender:        strPtr("female"),
		MaritalStatus: strPtr("single"),
	}
}

func TestCustomerService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("should create a customer with a zero wallet and customer role", func(t *testing.T) {
		e := setupTestEnv(t)
		svc := NewCustomerService(e.customerRepo, staticTokenIssuer{token: "t"})

		c, err := svc.Register(ctx, validCreateRequest("alice"))
		require.NoError(t, err)
		assert.Equal(t, "alice", c.Username)
		assert.True(t, c.WalletBalance.IsZero())
		assert.Equal(t, model.RoleCustomer, c.Role)
	})

	t.Run("should report every missing field at once", func(t *testing.T) {
		e := setupTestEnv(t)
		svc := NewCustomerService(e.customerRepo, staticTokenIssuer{token: "t"})

		_, err := svc.Register(ctx, model.CustomerCreateRequest{Username: strPtr("alice")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Missing required fields")
		assert.Contains(t, err.Error(), "full_name")
		assert.Contains(t, err.Error(), "password")
	})

	t.Run("should reject angle brackets in the username", func(t *testing.T) {
		e := setupTestEnv(t)
		svc := NewCustomerService(e.customerRepo, staticTokenIssuer{token: "t"})

		_, err := svc.Register(ctx, validCreateRequest("<script>"))
		require.Error(t, err)
		assert.Equal(t, "Invalid username", err.Error())
	})

	t.Run("should reject a taken username", func(t *testing.T) {
		e := setupTestEnv(t)
		svc := NewCustomerService(e.customerRepo, staticTokenIssuer{token: "t"})

		_, err := svc.Register(ctx, validCreateRequest("alice"))
		require.NoError(t, err)

		_, err = svc.Register(ctx, validCreateRequest("alice"))
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestCustomerService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("should issue a token on matching credentials", func(t *testing.T) {
		e := setupTestEnv(t)
		e.seedCustomer(t, "alice", 0)
		svc := NewCustomerService(e.customerRepo, staticTokenIssuer{token: "signed-token"})

		token, err := svc.Login(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
	})

	t.Run("should not reveal whether the username or the password was wrong", func(t *testing.T) {
		e := setupTestEnv(t)
		e.seedCustomer(t, "alice", 0)
		svc := NewCustomerService(e.customerRepo, staticTokenIssuer{token: "t"})

		_, err := svc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Login(ctx, "ghost", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestCustomerService_Wallet(t *testing.T) {
	ctx := context.Background()

	t.Run("should charge then deduct until funds run out", func(t *testing.T) {
		e := setupTestEnv(t)
		e.seedCustomer(t, "alice", 0)
		svc := NewCustomerService(e.customerRepo, staticTokenIssuer{token: "t"})

		ok, err := svc.ChargeWallet(ctx, "alice", decimal.NewFromFloat(50))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.DeductWallet(ctx, "alice", decimal.NewFromFloat(30))
		require.NoError(t, err)
		assert.True(t, ok)

		// 20 left, another 30 must not go through.
		ok, err = svc.DeductWallet(ctx, "alice", decimal.NewFromFloat(30))
		require.NoError(t, err)
		assert.False(t, ok)

		c, err := svc.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, c.WalletBalance.Equal(decimal.NewFromFloat(20)), "balance was %s", c.WalletBalance)
	})

	t.Run("should reject negative amounts before touching the wallet", func(t *testing.T) {
		e := setupTestEnv(t)
		e.seedCustomer(t, "alice", 10)
		svc := NewCustomerService(e.customerRepo, staticTokenIssuer{token: "t"})

		_, err := svc.ChargeWallet(ctx, "alice", decimal.NewFromFloat(-5))
		assert.ErrorIs(t, err, ErrNegativeAmount)

		_, err = svc.DeductWallet(ctx, "alice", decimal.NewFromFloat(-5))
		assert.ErrorIs(t, err, ErrNegativeAmount)

		c, err := svc.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, c.WalletBalance.Equal(decimal.NewFromFloat(10)))
	})

	t.Run("should return false for an unknown customer", func(t *testing.T) {
		e := setupTestEnv(t)
		svc := NewCustomerService(e.customerRepo, staticTokenIssuer{token: "t"})

		ok, err := svc.ChargeWallet(ctx, "ghost", decimal.NewFromFloat(5))
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = svc.DeductWallet(ctx, "ghost", decimal.NewFromFloat(5))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("should patch only the provided fields", func(t *testing.T) {
		e := setupTestEnv(t)
		e.seedCustomer(t, "alice", 5)
		svc := NewCustomerService(e.customerRepo, staticTokenIssuer{token: "t"})

		ok, err := svc.Update(ctx, "alice", model.CustomerUpdateRequest{FullName: strPtr("Alice Jones")})
		require.NoError(t, err)
		assert.True(t, ok)

		c, err := svc.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "Alice Jones", c.FullName)
		assert.True(t, c.WalletBalance.Equal(decimal.NewFromFloat(5)))
	})

	t.Run("should refuse to set a negative wallet balance", func(t *testing.T) {
		e := setupTestEnv(t)
		e.seedCustomer(t, "alice", 5)
		svc := NewCustomerService(e.customerRepo, staticTokenIssuer{token: "t"})

		neg := decimal.NewFromFloat(-1)
		_, err := svc.Update(ctx, "alice", model.CustomerUpdateRequest{WalletBalance: &neg})
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("should report whether a row was removed", func(t *testing.T) {
		e := setupTestEnv(t)
		e.seedCustomer(t, "alice", 0)
		svc := NewCustomerService(e.customerRepo, staticTokenIssuer{token: "t"})

		ok, err := svc.Delete(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.Delete(ctx, "alice")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
