package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/config"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/handlers"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/repository"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/services"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/token"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/cache"
	xhttp "github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/http"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/logger"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/pg"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/prom"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	if config.Get().JWTSecret == "" {
		logger.Error("JWT_SECRET must be set")
		return
	}

	// transport
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(handlers.MetricsMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	// catalog cache is optional; the shop window falls back to the
	// database when redis is not configured
	var catalogCache cache.Adapter
	if config.Get().RedisAddr != "" {
		catalogCache, err = cache.NewAdapter("default", config.Get().RedisKeyPrefix, &cache.Options{
			Addrs:      []string{config.Get().RedisAddr},
			ClientName: "default",
			DB:         config.Get().RedisDatabase,
			Username:   config.Get().RedisUsername,
			Password:   config.Get().RedisPassword,
		})
		if err != nil {
			logger.Error("failed connecting to redis", "error", err)
			return
		}
	}

	if config.Get().MetricsAddr != "" {
		if err := prom.Create("", config.Get().AppEnv, config.Get().PromNamespace); err != nil {
			logger.Error("failed creating metrics registry", "error", err)
			return
		}
		go prom.ListenAndServe(config.Get().MetricsAddr, config.Get().MetricsEndpoint)
	}

	customerRepo := repository.NewCustomerRepository(db)
	goodsRepo := repository.NewGoodsRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	tokenService := token.NewService(config.Get().JWTSecret, config.Get().JWTTTL)

	// services
	customerService := services.NewCustomerService(customerRepo, tokenService)
	inventoryService := services.NewInventoryService(goodsRepo)
	salesService := services.NewSalesService(customerRepo, goodsRepo, saleRepo, db, catalogCache, config.Get().CatalogCacheTTL)
	reviewService := services.NewReviewService(reviewRepo, customerRepo, goodsRepo)

	gate := handlers.NewAccessGate(tokenService, customerRepo)

	// handlers
	customerHandler := handlers.NewCustomerHandler(customerService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	salesHandler := handlers.NewSalesHandler(salesService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	healthHandler := handlers.NewHealthHandler()

	g := s.Router.Group("/api/v1")
	handlers.RegisterCustomerRoutes(g, customerHandler, gate)
	handlers.RegisterInventoryRoutes(g, inventoryHandler, gate)
	handlers.RegisterSalesRoutes(g, salesHandler, gate)
	handlers.RegisterReviewRoutes(g, reviewHandler, gate)
	handlers.RegisterHealthRoutes(g, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
