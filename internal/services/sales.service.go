package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/repository"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/cache"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/logger"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/prom"
	"github.com/shopspring/decimal"
)

var ErrInsufficientFunds = errors.New("Insufficient balance")

const catalogCacheKey = "catalog:instock"

type SaleRepository interface {
	CreateSale(ctx context.Context, s *model.Sale) (*model.Sale, error)
	CreateHistory(ctx context.Context, h *model.PurchaseHistory) (*model.PurchaseHistory, error)
	ListSalesByCustomer(ctx context.Context, username string) ([]*model.Sale, error)
	ListHistoryByCustomer(ctx context.Context, username string) ([]*model.PurchaseHistory, error)
}

// TransactionRunner runs fn inside a single database transaction.
type TransactionRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SalesService coordinates a purchase across the goods catalog, the
// customer wallet and the sales ledger.
type SalesService struct {
	customerRepo CustomerRepository
	goodsRepo    GoodsRepository
	saleRepo     SaleRepository
	tx           TransactionRunner
	cache        cache.Adapter
	cacheTTL     time.Duration
}

func NewSalesService(
	customerRepo CustomerRepository,
	goodsRepo GoodsRepository,
	saleRepo SaleRepository,
	tx TransactionRunner,
	catalogCache cache.Adapter,
	cacheTTL time.Duration,
) *SalesService {
	return &SalesService{
		customerRepo: customerRepo,
		goodsRepo:    goodsRepo,
		saleRepo:     saleRepo,
		tx:           tx,
		cache:        catalogCache,
		cacheTTL:     cacheTTL,
	}
}

// DisplayGoods returns the shop window: name and price of every good
// with stock on hand. Results are served from cache when fresh.
func (s *SalesService) DisplayGoods(ctx context.Context) ([]model.CatalogItem, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(catalogCacheKey); err == nil {
			var items []model.CatalogItem
			if err := json.Unmarshal(raw, &items); err == nil {
				return items, nil
			}
		} else if !errors.Is(err, cache.NilError) {
			logger.Warn("catalog cache read failed", "error", err)
		}
	}

	goods, err := s.goodsRepo.ListInStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goods in stock: %w", err)
	}
	items := make([]model.CatalogItem, 0, len(goods))
	for _, g := range goods {
		items = append(items, model.CatalogItem{Name: g.Name, Price: g.PricePerItem})
	}

	if s.cache != nil {
		if buf, err := json.Marshal(items); err == nil {
			if err := s.cache.Set(catalogCacheKey, buf, s.cacheTTL); err != nil {
				logger.Warn("catalog cache write failed", "error", err)
			}
		}
	}
	return items, nil
}

func (s *SalesService) GetGoodDetails(ctx context.Context, id int64) (*model.Goods, error) {
	g, err := s.goodsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGoodsNotFound) {
			return nil, ErrGoodsNotFound
		}
		return nil, err
	}
	return g, nil
}

// ProcessSale executes a purchase for username. Stock deduction, wallet
// deduction and both ledger inserts happen in one transaction; any
// failure rolls back the whole purchase.
func (s *SalesService) ProcessSale(ctx context.Context, username string, req model.PurchaseRequest) (*model.Sale, error) {
	started := time.Now()

	sale, err := s.processSale(ctx, username, req)
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	prom.IncCounterVec(prom.SystemSales, prom.MetricSaleProcessedTotal, outcome)
	prom.ObserveHistogram(prom.SystemSales, prom.MetricSaleDurationSeconds, time.Since(started).Seconds())
	return sale, err
}

func (s *SalesService) processSale(ctx context.Context, username string, req model.PurchaseRequest) (*model.Sale, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	customer, err := s.customerRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("resolve customer: %w", err)
	}

	good, err := s.goodsRepo.GetByID(ctx, req.GoodID)
	if err != nil {
		if errors.Is(err, repository.ErrGoodsNotFound) {
			return nil, ErrGoodsNotFound
		}
		return nil, fmt.Errorf("resolve good: %w", err)
	}

	total := good.PricePerItem.Mul(decimal.NewFromInt(int64(req.Quantity)))
	if customer.WalletBalance.LessThan(total) {
		return nil, ErrInsufficientFunds
	}

	var sale *model.Sale
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// The conditional updates are the authoritative checks; the
		// reads above only fail fast before a transaction is opened.
		if _, err := s.goodsRepo.DeductStock(ctx, good.ID, req.Quantity); err != nil {
			switch {
			case errors.Is(err, repository.ErrGoodsNotFound):
				return ErrGoodsNotFound
			case errors.Is(err, repository.ErrInsufficientStock):
				return ErrInsufficientStock
			}
			return fmt.Errorf("deduct stock: %w", err)
		}

		ok, err := s.customerRepo.DeductWallet(ctx, username, total)
		if err != nil {
			return fmt.Errorf("deduct wallet: %w", err)
		}
		if !ok {
			return ErrInsufficientFunds
		}

		sale, err = s.saleRepo.CreateSale(ctx, &model.Sale{
			GoodID:           good.ID,
			CustomerUsername: username,
			Quantity:         req.Quantity,
			TotalPrice:       total,
		})
		if err != nil {
			return fmt.Errorf("record sale: %w", err)
		}

		if _, err := s.saleRepo.CreateHistory(ctx, &model.PurchaseHistory{
			CustomerUsername: username,
			GoodName:         good.Name,
			TotalPrice:       total,
		}); err != nil {
			return fmt.Errorf("record purchase history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("sale processed",
		"customer", username, "good_id", good.ID, "quantity", req.Quantity, "total", total.String())
	return sale, nil
}

func (s *SalesService) ListSales(ctx context.Context, username string) ([]*model.Sale, error) {
	return s.saleRepo.ListSalesByCustomer(ctx, username)
}

// ListPurchaseHistory returns the denormalized purchase trail for a
// customer in insertion order.
func (s *SalesService) ListPurchaseHistory(ctx context.Context, username string) ([]*model.PurchaseHistory, error) {
	if _, err := s.customerRepo.GetByUsername(ctx, username); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return s.saleRepo.ListHistoryByCustomer(ctx, username)
}
