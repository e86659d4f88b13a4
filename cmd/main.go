package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-service/internal/clients"
	"catalog-service/internal/config"
	"catalog-service/internal/events"
	"catalog-service/internal/handlers"
	"catalog-service/internal/metrics"
	"catalog-service/internal/middleware"
	"catalog-service/internal/repository"
	"catalog-service/internal/subscribers"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Catalog API
// @version 1.0.0
// @description Product catalog with spreadsheet import and variant matrices, multi-tenant

// @host localhost:8087
// @BasePath /api/v1

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := config.NewLogger(cfg)
	if envErr != nil {
		logger.Debug("No .env file found, using system environment variables")
	}

	db, err := config.InitDB(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	redisClient := newRedisClient(cfg, logger)

	productsRepo := repository.NewProductsRepository(db, redisClient, cfg.DefaultCurrency, logrus.NewEntry(logger))
	categoriesClient := clients.NewCategoriesClient(cfg.CategoriesServiceURL, redisClient, logrus.NewEntry(logger))

	// Event publishing and cache invalidation only run when NATS_URL is set
	var productEvents handlers.ProductEvents
	var categorySubscriber *subscribers.CategorySubscriber
	if cfg.NATSURL != "" {
		publisher, err := events.NewPublisher(cfg.NATSURL, logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize events publisher (continuing without event publishing)")
		} else {
			defer publisher.Close()
			productEvents = publisher
			logger.Info("Events publisher initialized (NATS connected)")

			categorySubscriber = subscribers.NewCategorySubscriber(publisher.Conn(), categoriesClient, logger)
			if err := categorySubscriber.Start(); err != nil {
				logger.WithError(err).Warn("Failed to start category subscriber")
				categorySubscriber = nil
			}
		}
	} else {
		logger.Info("NATS_URL not set, skipping event publishing initialization")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	serviceMetrics := metrics.New("tesseract", "catalog_service", registry)

	importHandler := handlers.NewImportHandler(productsRepo, categoriesClient, productEvents, serviceMetrics, cfg.MaxImportFileBytes(), logrus.NewEntry(logger))
	productsHandler := handlers.NewProductsHandler(productsRepo, categoriesClient, productEvents, handlers.ProductLimits{
		MaxImages:   cfg.MaxProductImages,
		MaxVariants: cfg.MaxProductVariants,
	}, logrus.NewEntry(logger))
	healthHandler := handlers.NewHealthHandler(db, redisClient)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(serviceMetrics.Middleware())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Health check endpoints (no auth required)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/metrics", metrics.Handler(registry))

	api := router.Group("/api/v1")
	api.Use(middleware.UserContext(cfg.IsProduction()))
	api.Use(middleware.TenantMiddleware())
	{
		products := api.Group("/products")
		{
			products.GET("/import/template", importHandler.GetImportTemplate)
			products.POST("/import", importHandler.ImportProducts)
			products.POST("/variants/regenerate", productsHandler.RegenerateVariants)
			products.POST("", productsHandler.CreateProduct)
			products.GET("/:id", productsHandler.GetProduct)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Catalog service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down catalog-service...")

	if categorySubscriber != nil {
		categorySubscriber.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Info("Catalog service stopped")
}

// newRedisClient connects to Redis. Caching is optional: nil is returned
// when the URL is invalid or the server does not answer.
func newRedisClient(cfg *config.Config, logger *logrus.Logger) *redis.Client {
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.WithError(err).Warn("Failed to parse Redis URL (caching will be disabled)")
		return nil
	}
	if cfg.RedisPassword != "" {
		redisOpts.Password = cfg.RedisPassword
	}
	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("Failed to connect to Redis (caching will be disabled)")
		_ = client.Close()
		return nil
	}
	logger.Info("Redis connected successfully")
	return client
}
