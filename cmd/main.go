package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Jeffrey-hendell/shaypos/internal/catalog"
	"github.com/Jeffrey-hendell/shaypos/internal/checkout"
	poshttp "github.com/Jeffrey-hendell/shaypos/internal/http"
	"github.com/Jeffrey-hendell/shaypos/internal/poller"
	"github.com/Jeffrey-hendell/shaypos/internal/publisher"
	"github.com/Jeffrey-hendell/shaypos/internal/sales"
	"github.com/Jeffrey-hendell/shaypos/internal/sellers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Config struct {
	HTTPPort              string
	CatalogDBPath         string
	CatalogMigrationsPath string
	SalesMigrationsPath   string
	RedisAddr             string
	RedisPassword         string
	KafkaBrokers          []string
	RequestTimeout        time.Duration
	ShutdownTimeout       time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		CatalogDBPath:         getEnv("CATALOG_DB_PATH", "./shaypos.db"),
		CatalogMigrationsPath: getEnv("CATALOG_MIGRATIONS_PATH", "./internal/catalog/migrations"),
		SalesMigrationsPath:   getEnv("SALES_MIGRATIONS_PATH", "./internal/sales/migrations"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:          []string{getEnv("KAFKA_BROKER", "localhost:9092")},
		RequestTimeout:        30 * time.Second,
		ShutdownTimeout:       10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("shaypos starting...")

	cfg := loadConfig()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalog database (embedded)
	catalogRepo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer catalogRepo.Close()

	if err := catalogRepo.RunMigrations(cfg.CatalogMigrationsPath); err != nil {
		log.Fatalf("Failed to run catalog migrations: %v", err)
	}
	log.Println("Catalog migrations completed")

	// Sales database
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		log.Fatalf("Invalid DB_PORT: %v", err)
	}
	creds := &sales.Credentials{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              dbPort,
		User:              getEnv("DB_USER", "postgres"),
		Password:          getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "shaypos"),
		MigrationsDirPath: cfg.SalesMigrationsPath,
	}

	salesRepo, err := sales.NewRepository(creds)
	if err != nil {
		log.Fatalf("Failed to connect to sales database: %v", err)
	}
	defer salesRepo.Close()

	if err := salesRepo.RunMigrations(creds); err != nil {
		log.Fatalf("Failed to run sales migrations: %v", err)
	}
	log.Println("Sales migrations completed")

	// Redis product cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Println("Redis ping succeeded")

	catalogService := catalog.NewService(catalogRepo, catalog.NewRedisCache(redisClient))
	sellerRepo := sellers.NewRepository(catalogRepo.DB())

	// Checkout engine
	sessionStore := checkout.NewMemoryStore()
	defer sessionStore.Close()
	checkoutService := checkout.NewService(
		sessionStore,
		catalogService,
		sales.NewCreator(salesRepo),
		checkout.LogNotifier{},
	)

	// Outbox publisher and stock reconciliation
	outboxPoller := publisher.NewOutboxPoller(salesRepo, cfg.KafkaBrokers...)
	defer outboxPoller.Close()
	go outboxPoller.Run(ctx)

	stockPoller := poller.NewStockPoller(catalogService, cfg.KafkaBrokers...)
	defer stockPoller.Close()
	go stockPoller.Run(ctx)

	// Handlers
	productHandler := poshttp.NewProductHandler(catalogService)
	checkoutHandler := poshttp.NewCheckoutHandler(checkoutService)
	salesHandler := poshttp.NewSalesHandler(salesRepo)
	sellerHandler := poshttp.NewSellerHandler(sellerRepo)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(poshttp.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(poshttp.OperatorRoleMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{id}", productHandler.Get)
			r.With(poshttp.RequireAdmin).Post("/", productHandler.Create)
			r.With(poshttp.RequireAdmin).Put("/{id}", productHandler.Update)
			r.With(poshttp.RequireAdmin).Delete("/{id}", productHandler.Delete)
		})
		r.Route("/sellers", func(r chi.Router) {
			r.Use(poshttp.RequireAdmin)
			r.Get("/", sellerHandler.List)
			r.Get("/{id}", sellerHandler.Get)
			r.Post("/", sellerHandler.Create)
			r.Put("/{id}", sellerHandler.Update)
			r.Delete("/{id}", sellerHandler.Delete)
		})
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Open)
			r.Get("/{session_id}", checkoutHandler.Get)
			r.Delete("/{session_id}", checkoutHandler.Cancel)
			r.Post("/{session_id}/items", checkoutHandler.AddItem)
			r.Put("/{session_id}/items/{product_id}", checkoutHandler.UpdateQuantity)
			r.Delete("/{session_id}/items/{product_id}", checkoutHandler.RemoveItem)
			r.Put("/{session_id}/details", checkoutHandler.SetDetails)
			r.Post("/{session_id}/submit", checkoutHandler.Submit)
		})
		r.Route("/sales", func(r chi.Router) {
			r.Get("/", salesHandler.List)
			r.Get("/{id}", salesHandler.Get)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "shaypos-api"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("shaypos API listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
