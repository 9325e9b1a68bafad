package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"vendor-hub.backend/internal/config"
	"vendor-hub.backend/internal/infrastructure/jobs"
	"vendor-hub.backend/internal/infrastructure/metrics"
	"vendor-hub.backend/internal/infrastructure/notifier"
	"vendor-hub.backend/internal/infrastructure/objectstore"
	"vendor-hub.backend/internal/infrastructure/repositories"
	"vendor-hub.backend/internal/interfaces/http/handlers"
	"vendor-hub.backend/internal/interfaces/http/middleware"
	"vendor-hub.backend/internal/usecases"
	"vendor-hub.backend/pkg/jwt"
	"vendor-hub.backend/pkg/logger"
	"vendor-hub.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newObjectStore = func(dir string) (objectstore.ObjectStore, error) { return objectstore.NewLocalStore(dir) }
	runServer      = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB       = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize document object store
	store, err := newObjectStore(cfg.Storage.DocumentDir)
	if err != nil {
		return fmt.Errorf("failed to initialize document store: %w", err)
	}

	// Initialize metrics
	onboardingMetrics := metrics.NewOnboardingMetrics()

	// Initialize notifier
	credentialNotifier := notifier.NewWebhookNotifier(cfg.Notifier.WebhookURL)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	merchantRepo := repositories.NewMerchantRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	historyRepo := repositories.NewVerificationHistoryRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, merchantRepo, jwtService)
	verificationUsecase := usecases.NewVerificationUsecase(merchantRepo, documentRepo, historyRepo, onboardingMetrics)
	provisioningUsecase := usecases.NewProvisioningUsecase(merchantRepo, documentRepo, historyRepo, credentialNotifier, onboardingMetrics, cfg.Onboarding.SetupTokenTTL)
	documentUsecase := usecases.NewDocumentUsecase(merchantRepo, documentRepo, historyRepo, store, verificationUsecase, onboardingMetrics)
	bulkUsecase := usecases.NewBulkUsecase(verificationUsecase, onboardingMetrics)
	ratingAggregator := usecases.NewRatingAggregator(reviewRepo, merchantRepo, onboardingMetrics)
	reviewUsecase := usecases.NewReviewUsecase(reviewRepo, merchantRepo, ratingAggregator)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	merchantHandler := handlers.NewMerchantHandler(provisioningUsecase, verificationUsecase, merchantRepo)
	documentHandler := handlers.NewDocumentHandler(documentUsecase)
	adminHandler := handlers.NewAdminHandler(bulkUsecase)
	reviewHandler := handlers.NewReviewHandler(reviewUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewSetupTokenExpiryJob(merchantRepo, onboardingMetrics)
	go expiryJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:     authHandler,
		merchantHandler: merchantHandler,
		documentHandler: documentHandler,
		adminHandler:    adminHandler,
		reviewHandler:   reviewHandler,
		authMiddleware:  authMiddleware,
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		expiryJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Vendor-Hub Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
