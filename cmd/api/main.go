package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cloudnotes/cloudnotes-api/config"
	"github.com/cloudnotes/cloudnotes-api/internal/cache"
	"github.com/cloudnotes/cloudnotes-api/internal/handlers"
	"github.com/cloudnotes/cloudnotes-api/internal/middleware"
	"github.com/cloudnotes/cloudnotes-api/internal/repository"
	"github.com/cloudnotes/cloudnotes-api/internal/services"
	"github.com/cloudnotes/cloudnotes-api/pkg/airtable"
	"github.com/cloudnotes/cloudnotes-api/pkg/httpclient"
	"github.com/cloudnotes/cloudnotes-api/pkg/logger"
	"github.com/cloudnotes/cloudnotes-api/pkg/metrics"
	"github.com/cloudnotes/cloudnotes-api/pkg/profiling"
	"github.com/cloudnotes/cloudnotes-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// buildStores wires the record stores against Airtable when credentials are
// present, or falls back to log-only stores otherwise. Log-only mode is a
// supported configuration for local development and demos.
func buildStores(cfg *config.Config) (repository.ContactMessageStore, repository.SubscriberStore, error) {
	if !cfg.Airtable.StoreEnabled() {
		logger.Warn("Record store not configured: running in log-only mode, submissions will not be persisted")
		return repository.NewDisabledContactStore(), repository.NewDisabledSubscriberStore(), nil
	}

	httpClient := httpclient.New(time.Duration(cfg.Airtable.TimeoutSeconds) * time.Second)
	client, err := airtable.NewClient(cfg.Airtable.PersonalAccessToken, cfg.Airtable.BaseID, httpClient)
	if err != nil {
		return nil, nil, err
	}

	contactStore := repository.NewAirtableContactStore(client, cfg.Airtable.ContactTable)
	subscriberStore := repository.NewAirtableSubscriberStore(client, cfg.Airtable.SubscribersTable)
	return contactStore, subscriberStore, nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting CloudNotes API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling (no-op unless enabled)
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Record stores (Airtable or log-only)
	contactStore, subscriberStore, err := buildStores(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize record store client", zap.Error(err))
	}

	subscriberCache := cache.NewSubscriberCache(time.Duration(cfg.Cache.SubscriberTTLSeconds) * time.Second)

	// Initialize services
	contactService := services.NewContactService(contactStore)
	newsletterService := services.NewNewsletterService(subscriberStore, subscriberCache)

	// Initialize handlers
	contactHandler := handlers.NewContactHandler(contactService)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService)
	healthHandler := handlers.NewHealthHandler(cfg.Airtable.StoreEnabled())

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - only the website origins may call the API
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// A wrong verb on a form endpoint is a 405, not a 404
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	// Rate limiters: form endpoints get a tight limit to curb spam
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	formRateLimiter := middleware.NewRateLimiter(5, 10)       // 5 req/sec, burst of 10

	// Utility endpoints (not versioned - operational endpoints)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.POST("/contact", formRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), contactHandler.SubmitContact)
	v1.POST("/newsletter/subscribe", formRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), newsletterHandler.Subscribe)

	// Bind to all interfaces for Docker Compose networking; isolation is
	// enforced at the compose network level
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
