package services

import (
	"context"
	"reflect"
	"testing"

	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/repository"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/pg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv wires real repositories against an in-memory sqlite database
// so service tests exercise the same SQL paths as production.
type testEnv struct {
	db           *pg.DB
	customerRepo *repository.CustomerRepository
	goodsRepo    *repository.GoodsRepository
	saleRepo     *repository.SaleRepository
	reviewRepo   *repository.ReviewRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.CustomerEntity{},
		&repository.GoodsEntity{},
		&repository.SaleEntity{},
		&repository.PurchaseHistoryEntity{},
		&repository.ReviewEntity{},
	)
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()
	for _, name := range []string{"read", "write"} {
		field := pgDBValue.FieldByName(name)
		field = reflect.NewAt(field.Type(), field.Addr().UnsafePointer()).Elem()
		field.Set(reflect.ValueOf(db))
	}

	return &testEnv{
		db:           pgDB,
		customerRepo: repository.NewCustomerRepository(pgDB),
		goodsRepo:    repository.NewGoodsRepository(pgDB),
		saleRepo:     repository.NewSaleRepository(pgDB),
		reviewRepo:   repository.NewReviewRepository(pgDB),
	}
}

func (e *testEnv) seedCustomer(t *testing.T, username string, balance float64) *model.Customer {
	t.Helper()
	c, err := e.customerRepo.Create(context.Background(), &model.Customer{
		FullName:      "Test Customer",
		Username:      username,
		Password:      "secret",
		Age:           30,
		WalletBalance: decimal.NewFromFloat(balance),
		Role:          model.RoleCustomer,
	})
	require.NoError(t, err)
	return c
}

func (e *testEnv) seedGoods(t *testing.T, name string, price float64, stock int) *model.Goods {
	t.Helper()
	g, err := e.goodsRepo.Create(context.Background(), &model.Goods{
		Name:         name,
		Category:     "electronics",
		PricePerItem: decimal.NewFromFloat(price),
		CountInStock: stock,
	})
	require.NoError(t, err)
	return g
}

// staticTokenIssuer hands back a fixed token for any subject.
type staticTokenIssuer struct {
	token string
	err   error
}

func (s staticTokenIssuer) Issue(int64) (string, error) {
	return s.token, s.err
}
