package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-boxoffice/internal/config"
	"ms-boxoffice/internal/database/migrations"
	"ms-boxoffice/internal/inventory"
	"ms-boxoffice/internal/inventory/cache"
	inventorydb "ms-boxoffice/internal/inventory/db"
	"ms-boxoffice/internal/inventory/inventory_api"
	"ms-boxoffice/internal/inventory/receipt"
	"ms-boxoffice/internal/kafka"
	"ms-boxoffice/internal/logger"
)

func connectDatabase(cfg *config.Config, log *logger.Logger) *bun.DB {
	sqldb, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to open Postgres: %v", err))
	}
	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := sqldb.Ping(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to Postgres: %v", err))
	}
	log.Info("DATABASE", "Postgres connection successful")

	return bun.NewDB(sqldb, pgdialect.New())
}

func main() {
	_ = godotenv.Load() // Loads .env file if present

	cfg := config.Load()
	log := logger.NewLogger()
	defer log.Close()

	bunDB := connectDatabase(cfg, log)
	defer bunDB.Close()

	runner := migrations.NewRunner(bunDB, migrations.DefaultOptions())
	if err := runner.MigrateUp(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Warn("REDIS", fmt.Sprintf("Redis unavailable, sold-out cache disabled: %v", err))
		rdb = nil
	}
	var soldOutCache *cache.SoldOutCache
	if rdb != nil {
		soldOutCache = cache.NewSoldOutCache(rdb, cfg.Redis.SoldOutTTL)
	}

	var producer *kafka.Producer
	if cfg.Kafka.Enabled && !cfg.Kafka.MockMode {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		log.LogKafka("INIT", cfg.Kafka.Topic, "Purchase event producer ready")
	} else {
		log.Warn("KAFKA", "Kafka disabled, purchase events will not be published")
	}

	store := &inventorydb.DB{Bun: bunDB}
	receipts := receipt.NewGenerator(cfg.Receipt.SecretKey)

	service := inventory.NewPurchaseService(store, soldOutCache, producerOrNil(producer), receipts, log)
	handler := inventory_api.NewHandler(service, log)

	r := chi.NewRouter()
	r.Get("/events", handler.ListEvents)
	r.Post("/events/{id}/purchase", handler.PurchaseTicket)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", fmt.Sprintf("🚀 Client service on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", fmt.Sprintf("HTTP error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctxShutdown)
	log.Info("SERVER", "✅ Client service shutdown complete")
}

// producerOrNil keeps a typed-nil *kafka.Producer from sneaking into the
// service's interface field.
func producerOrNil(p *kafka.Producer) inventory.PurchasePublisher {
	if p == nil {
		return nil
	}
	return p
}
