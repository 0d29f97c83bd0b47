package main

import (
	"net/http"

	"catalog-service/internal/handler"
	mid "catalog-service/internal/middleware"
	"catalog-service/internal/store"
	"catalog-service/pkg/config"
	"catalog-service/pkg/database"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if present; in production the environment is set
	// externally and the fallback defaults apply.
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting catalog-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	if appConfig.Auth.APIKey == "" {
		log.Fatal("API_KEY must be configured; every route requires it")
	}

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	products := store.NewProductStore(database.GetDB())
	productHandler := handler.NewProductHandler(products)
	verifier := mid.StaticKey(appConfig.Auth.APIKey)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Every application route sits behind the API key gate. Pagination is
	// composed onto the listing route only.
	auth := mid.APIKeyAuth(verifier)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello World!")
	}, auth)

	productAPI := e.Group("/api/products", auth)
	productAPI.GET("", productHandler.ListProducts, mid.Paginate)
	productAPI.GET("/category", productHandler.ListByCategory)
	productAPI.GET("/:id", productHandler.GetProduct)
	productAPI.POST("", productHandler.CreateProduct)
	productAPI.PUT("/:id", productHandler.UpdateProduct)
	productAPI.DELETE("/:id", productHandler.DeleteProduct)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
