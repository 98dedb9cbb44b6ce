package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"shopapi/internal/catalog"
	"shopapi/internal/config"
	"shopapi/internal/httpx"
	kafkax "shopapi/internal/kafka"
	"shopapi/internal/memstore"
	"shopapi/internal/orders"
	"shopapi/internal/postgres"
	"shopapi/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stores
	var catStore catalog.Store
	var ordStore orders.Store
	switch cfg.StorageDriver {
	case config.DriverMemory:
		m := memstore.New()
		catStore, ordStore = m, m
		logger.Info("using in-memory storage")
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Fatalf("db connect: %v", err)
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			logger.Fatalf("db schema: %v", err)
		}
		catStore = &catalog.Repo{DB: pool}
		ordStore = &orders.Repo{DB: pool}
	}

	// Kafka producer (optional)
	var events orders.EventPublisher
	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024, logger)
		prod.Start(ctx)
		events = prod
	}

	// Redis cache (optional)
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redisx.New(cfg.RedisAddr)
		defer rdb.Close()
	}

	// Services
	catSvc := catalog.NewService(catStore, logger)
	ordSvc := orders.NewService(ordStore, events, cfg.ServiceName, logger)

	if err := catalog.Seed(ctx, catSvc); err != nil {
		logger.Fatalf("seed catalog: %v", err)
	}

	// Router & handlers
	router := httpx.NewRouter()
	(&httpx.ProductsHandler{Catalog: catSvc, Log: logger}).Register(router)
	(&httpx.OrdersHandler{Orders: ordSvc, Redis: rdb, Log: logger}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logger.Infof("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %v", err)
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	if prod != nil {
		prod.Close()
		prod.WaitClosed()
	}
}
