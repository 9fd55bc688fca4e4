package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/towfit/towbar-filter-service/config"
	"github.com/towfit/towbar-filter-service/internal/auth"
	"github.com/towfit/towbar-filter-service/pkg/broker"
	"github.com/towfit/towbar-filter-service/pkg/cache"
	"github.com/towfit/towbar-filter-service/pkg/database/postgres"
	"github.com/towfit/towbar-filter-service/pkg/logger"
	"github.com/towfit/towbar-filter-service/pkg/middleware"

	catListenerPkg "github.com/towfit/towbar-filter-service/internal/catalog/listener"
	catRepoPkg "github.com/towfit/towbar-filter-service/internal/catalog/repository"
	filterH "github.com/towfit/towbar-filter-service/internal/filter/handler"
	filterUCPkg "github.com/towfit/towbar-filter-service/internal/filter/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     false,
		DisableStacktrace: false,
	}

	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repository
	catRepo := catRepoPkg.NewPGRepository(db, cfg.Catalog.ProductBaseURL)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis (term caching disabled)", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 5.5 Initialize Kafka Consumer
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 6. Initialize UseCase
	filterUC := filterUCPkg.NewFilterUseCase(catRepo, redisClient, cfg.Widget, appLogger)

	// 6.5 Initialize Listener
	catListener := catListenerPkg.NewCatalogListener(kafkaConsumer, filterUC, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go catListener.Start(ctx)

	// 7. Initialize Handler
	nonce := auth.NewNonce(cfg.Nonce.Secret, time.Duration(cfg.Nonce.Lifetime)*time.Second)
	filterHandler := filterH.NewFilterHandler(filterUC, nonce, appLogger)

	mux := filterHandler.SetupRoutes()
	root := middleware.RequestID(middleware.AccessLog(appLogger, mux))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPPort,
		Handler: root,
	}

	appLogger.Info("Starting HTTP server", zap.String("addr", srv.Addr))

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
