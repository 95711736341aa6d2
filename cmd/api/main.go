package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/impulso-stone/mentores-api/config"
	"github.com/impulso-stone/mentores-api/internal/cache"
	"github.com/impulso-stone/mentores-api/internal/database/postgres"
	"github.com/impulso-stone/mentores-api/internal/handlers"
	"github.com/impulso-stone/mentores-api/internal/middleware"
	"github.com/impulso-stone/mentores-api/internal/notifier"
	"github.com/impulso-stone/mentores-api/internal/repository"
	"github.com/impulso-stone/mentores-api/internal/services"
	"github.com/impulso-stone/mentores-api/pkg/db"
	"github.com/impulso-stone/mentores-api/pkg/httpclient"
	"github.com/impulso-stone/mentores-api/pkg/logger"
	"github.com/impulso-stone/mentores-api/pkg/metrics"
	"github.com/impulso-stone/mentores-api/pkg/profiling"
	"github.com/impulso-stone/mentores-api/pkg/storage"
	"github.com/impulso-stone/mentores-api/pkg/tracing"
	"github.com/impulso-stone/mentores-api/pkg/whatsapp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const (
	formBodyLimit  = 100 * 1024
	photoBodyLimit = 10 * 1024 * 1024
)

type publicHandlers struct {
	mentor     *handlers.MentorHandler
	category   *handlers.CategoryHandler
	submission *handlers.SubmissionHandler
}

// registerAPIRoutes registers the public browsing and submission routes
func registerAPIRoutes(
	group *gin.RouterGroup,
	generalRateLimiter, submissionRateLimiter *middleware.RateLimiter,
	h publicHandlers,
) {
	group.GET("/mentors", generalRateLimiter.Middleware(), h.mentor.ListMentors)
	group.GET("/mentors/:id", generalRateLimiter.Middleware(), h.mentor.GetMentor)
	group.POST("/mentors/:id/choose", submissionRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(formBodyLimit), h.submission.ChooseMentor)
	group.GET("/categories", generalRateLimiter.Middleware(), h.category.ListCategories)
	group.GET("/categories/:slug/mentors", generalRateLimiter.Middleware(), h.category.GetCategoryMentors)
}

// registerAdminRoutes registers the admin gate and the routes behind it
func registerAdminRoutes(
	group *gin.RouterGroup,
	cfg *config.Config,
	loginRateLimiter, adminRateLimiter *middleware.RateLimiter,
	authService services.AdminAuthServiceInterface,
	submissionsHandler *handlers.AdminSubmissionsHandler,
	mentorsHandler *handlers.AdminMentorsHandler,
) {
	if !cfg.AdminEnabled() {
		logger.Warn("Admin routes disabled: ADMIN_EMAIL and ADMIN_PASSWORD_HASH not configured")
		return
	}

	sessionMiddleware := middleware.AdminSessionMiddleware(authService, cfg.Admin.CookieDomain, cfg.Admin.CookieSecure)
	authHandler := handlers.NewAdminAuthHandler(authService)

	auth := group.Group("/auth/admin")
	auth.POST("/login", loginRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(formBodyLimit), authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", sessionMiddleware, authHandler.GetSession)

	admin := group.Group("/admin")
	admin.Use(adminRateLimiter.Middleware(), sessionMiddleware)
	admin.GET("/submissions", submissionsHandler.ListSubmissions)
	admin.POST("/mentors/:id/availability", middleware.BodySizeLimitMiddleware(formBodyLimit), mentorsHandler.SetAvailability)
	admin.POST("/mentors/:id/photo", middleware.BodySizeLimitMiddleware(photoBodyLimit), mentorsHandler.UploadPhoto)
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

	logger.Info("Starting Impulso mentores API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize metrics with service name from config
	metrics.Init(cfg.Observability.ServiceName)
	metrics.RecordInfrastructureMetrics()

	tracerShutdown, err := tracing.InitTracer(tracing.Options{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.AppEnv,
		Endpoint:          cfg.Observability.ExporterEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}

	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	pgClient := postgres.NewClient(pool)
	defer pgClient.Close()

	// Schema migrations run separately: ./migrate up

	mentorCache := cache.NewMentorCache(pgClient, cfg.Cache.MentorTTLSeconds, cfg.Cache.DisableMentorsCache)
	if cfg.Cache.DisableMentorsCache {
		logger.Warn("Mentor cache is DISABLED - reading from database on every request")
	} else {
		warmCtx, cancelWarm := context.WithTimeout(context.Background(), 30*time.Second)
		if err := mentorCache.Warm(warmCtx); err != nil {
			logger.Error("Failed to warm mentor cache, will load on first request", zap.Error(err))
		}
		cancelWarm()
	}

	mentorRepo := repository.NewMentorRepository(pgClient, mentorCache)
	submissionRepo := repository.NewSubmissionRepository(pgClient)

	// A nil Enqueuer disables notifications; never pass a typed nil pointer.
	var notifications notifier.Enqueuer
	var dispatcher *notifier.Dispatcher
	if cfg.NotificationsEnabled() {
		sender := whatsapp.NewClient(cfg.WhatsApp.APIURL, cfg.WhatsApp.APIKey, httpclient.NewStandardClient())
		dispatcher = notifier.NewDispatcher(sender, submissionRepo, notifier.Config{
			Workers:   cfg.Notifier.Workers,
			QueueSize: cfg.Notifier.QueueSize,
		})
		dispatcher.Start()
		notifications = dispatcher
	} else {
		logger.Warn("WhatsApp notifications disabled: EVOLUTION_API_URL or EVOLUTION_API_KEY not set")
	}

	var uploader storage.ImageUploader
	if cfg.StorageEnabled() {
		uploader = storage.NewClient(storage.Options{
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			BucketName:      cfg.Storage.BucketName,
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
		})
	}

	// Initialize services
	mentorService := services.NewMentorService(mentorRepo)
	submissionService := services.NewSubmissionService(mentorRepo, submissionRepo, notifications)
	adminAuthService := services.NewAdminAuthService(cfg)
	adminSubmissionsService := services.NewAdminSubmissionsService(submissionRepo)
	adminMentorsService := services.NewAdminMentorsService(mentorRepo, uploader)

	// Initialize handlers
	handlers.RegisterValidators()
	public := publicHandlers{
		mentor:     handlers.NewMentorHandler(mentorService),
		category:   handlers.NewCategoryHandler(mentorService),
		submission: handlers.NewSubmissionHandler(submissionService),
	}
	healthHandler := handlers.NewHealthHandler(pgClient.Ping, mentorCache.IsReady)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "Retry-After"},
		AllowCredentials: true, // admin session cookie
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters live until shutdown
	limiterCtx, stopLimiters := context.WithCancel(context.Background())
	defer stopLimiters()
	generalRateLimiter := middleware.NewRateLimiter(limiterCtx, 100, 200)
	submissionRateLimiter := middleware.NewRateLimiter(limiterCtx, 1, 5)
	// 3 req/min per IP
	loginRateLimiter := middleware.NewRateLimiter(limiterCtx, 0.05, 5)
	adminRateLimiter := middleware.NewRateLimiter(limiterCtx, 20, 40)

	api := router.Group("/api")
	api.GET("/healthcheck", healthHandler.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	registerAPIRoutes(v1, generalRateLimiter, submissionRateLimiter, public)
	registerAdminRoutes(v1, cfg, loginRateLimiter, adminRateLimiter,
		adminAuthService,
		handlers.NewAdminSubmissionsHandler(adminSubmissionsService),
		handlers.NewAdminMentorsHandler(adminMentorsService),
	)

	router.NoRoute(handlers.NotFound)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if dispatcher != nil {
		drainCtx, cancelDrain := context.WithTimeout(context.Background(), 10*time.Second)
		if err := dispatcher.Stop(drainCtx); err != nil {
			logger.Warn("Notification queue not fully drained", zap.Error(err))
		}
		cancelDrain()
	}

	flushCtx, cancelFlush := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelFlush()
	if err := tracerShutdown(flushCtx); err != nil {
		logger.Error("Failed to shutdown tracer", zap.Error(err))
	}

	logger.Info("Server exited")
}
