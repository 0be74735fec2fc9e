package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/handoff"
	"github.com/fekuna/omnipos-storefront-service/internal/server"
	"github.com/fekuna/omnipos-storefront-service/pkg/broker"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/search"

	catH "github.com/fekuna/omnipos-storefront-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-storefront-service/internal/category/usecase"

	checkoutH "github.com/fekuna/omnipos-storefront-service/internal/checkout/handler"

	offerH "github.com/fekuna/omnipos-storefront-service/internal/offer/handler"
	offerRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/offer/repository"
	offerUCPkg "github.com/fekuna/omnipos-storefront-service/internal/offer/usecase"

	orderH "github.com/fekuna/omnipos-storefront-service/internal/order/handler"
	orderRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-storefront-service/internal/order/usecase"

	prodH "github.com/fekuna/omnipos-storefront-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-storefront-service/internal/product/usecase"

	roleH "github.com/fekuna/omnipos-storefront-service/internal/role/handler"
	roleRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/role/repository"
	roleUCPkg "github.com/fekuna/omnipos-storefront-service/internal/role/usecase"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
	} else {
		gin.SetMode(gin.ReleaseMode)
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

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	offerRepo := offerRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	roleRepo := roleRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis. Listing caches are skipped when it is unavailable.
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, caching disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 6. Initialize Kafka Producer
	var publisher broker.Publisher
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.OrderTopic,
		})
		defer producer.Close()
		publisher = producer
		appLogger.Info("Kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.OrderTopic))
	}

	// 7. Initialize Elasticsearch
	var indexer prodUCPkg.Indexer
	if cfg.Elastic.Enabled {
		esClient, err := search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch (Search features might be limited)", zap.Error(err))
		} else {
			indexer = esClient
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 8. Initialize UseCases
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	roleUC := roleUCPkg.NewRoleUseCase(roleRepo, redisClient, cfg.Storefront.RoleCacheTTL, appLogger)
	offerUC := offerUCPkg.NewOfferUseCase(offerRepo, redisClient, cfg.Storefront.CatalogCacheTTL, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, catUC, offerUC, redisClient, indexer, prodUCPkg.Config{
		Index:    cfg.Elastic.Index,
		CacheTTL: cfg.Storefront.CatalogCacheTTL,
	}, appLogger)

	dispatcher := handoff.NewDispatcher(handoff.Config{
		ChatNumber:    cfg.Storefront.ChatNumber,
		StoreName:     cfg.Storefront.StoreName,
		CountryCode:   cfg.Storefront.CountryCode,
		DeliveryLines: cfg.Storefront.DeliveryLines,
	}, publisher, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, dispatcher, appLogger)
	checkoutSvc := checkout.NewService(orderUC, dispatcher, appLogger)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := catUC.SeedDefaults(seedCtx); err != nil {
		appLogger.Warn("Failed to seed default categories", zap.Error(err))
	}
	seedCancel()

	// 9. Initialize Handlers
	router := server.NewRouter(server.Handlers{
		Products:   prodH.NewProductHandler(prodUC, appLogger),
		Categories: catH.NewCategoryHandler(catUC, appLogger),
		Offers:     offerH.NewOfferHandler(offerUC, appLogger),
		Orders:     orderH.NewOrderHandler(orderUC, appLogger),
		Checkout:   checkoutH.NewCheckoutHandler(checkoutSvc, prodUC, appLogger),
		Roles:      roleH.NewRoleHandler(roleUC, appLogger),
	}, roleUC, cfg.Server.CORSOrigins, appLogger)

	httpServer := &http.Server{
		Addr:              normalizePort(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 10. Start gRPC Server
	grpcServer, healthServer := server.NewGRPCServer(server.NewPricingService(prodUC, offerUC, appLogger), appLogger)

	lis, err := net.Listen("tcp", normalizePort(cfg.Server.GRPCPort))
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}

	go func() {
		appLogger.Info("Starting gRPC server", zap.String("port", cfg.Server.GRPCPort))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.Server.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func normalizePort(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
