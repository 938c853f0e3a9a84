package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/bdmarket/storefront/internal/buyer"
	"github.com/bdmarket/storefront/internal/config"
	"github.com/bdmarket/storefront/internal/es"
	"github.com/bdmarket/storefront/internal/events"
	"github.com/bdmarket/storefront/internal/httpserver"
	"github.com/bdmarket/storefront/internal/logging"
	"github.com/bdmarket/storefront/internal/middleware/loggingmw"
	"github.com/bdmarket/storefront/internal/repo"
	"github.com/bdmarket/storefront/internal/service"
	"github.com/bdmarket/storefront/internal/uricomposer"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
	} else {
		logger.Warn("KAFKA_BROKERS not set, domain events disabled")
	}

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("elasticsearch unavailable, catalog search disabled", "error", err)
			esClient = nil
		}
	} else {
		logger.Warn("ES_URL not set, catalog search disabled")
	}

	gormRepo := &repo.GormRepo{DB: db}
	composer := uricomposer.New(cfg.CatalogBaseURL)

	basketSvc := &service.BasketService{Repo: gormRepo}
	catalogSvc := &service.CatalogService{Repo: gormRepo}
	orderSvc := &service.OrderService{Repo: gormRepo, Composer: composer}
	authSvc := &service.AuthService{Repo: gormRepo, JWTSecret: cfg.JWTSecret, RefreshSecret: cfg.RefreshSecret}
	viewSvc := &service.BasketViewService{Repo: gormRepo, Composer: composer}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Buyer: &buyer.Resolver{JWTSecret: cfg.JWTSecret},
		Basket: &httpserver.BasketHTTP{
			Svc:      basketSvc,
			Catalog:  catalogSvc,
			View:     viewSvc,
			Producer: producer,
		},
		Order: &httpserver.OrderHTTP{
			Svc:      orderSvc,
			Producer: producer,
		},
		Catalog: &httpserver.CatalogHTTP{
			Svc:      catalogSvc,
			ES:       esClient,
			ESIndex:  cfg.ESIndex,
			Producer: producer,
		},
		Auth: &httpserver.AuthHTTP{
			Svc:      authSvc,
			Baskets:  basketSvc,
			Producer: producer,
		},
	})

	go func() {
		addr := ":" + strconv.Itoa(cfg.ServerPort)
		logger.Info("starting storefront", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close", "error", err)
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("stopped")
}
