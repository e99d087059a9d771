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

	"realty-crm.backend/internal/config"
	"realty-crm.backend/internal/infrastructure/jobs"
	"realty-crm.backend/internal/infrastructure/repositories"
	"realty-crm.backend/internal/interfaces/http/handlers"
	"realty-crm.backend/internal/interfaces/http/middleware"
	"realty-crm.backend/internal/usecases"
	"realty-crm.backend/pkg/jwt"
	"realty-crm.backend/pkg/logger"
	"realty-crm.backend/pkg/metrics"
	"realty-crm.backend/pkg/redis"
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
			PrepareStmt:    false,
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
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
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.IsProduction() {
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

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	agentRepo := repositories.NewAgentRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	followUpRepo := repositories.NewFollowUpRepository(db)
	activityRepo := repositories.NewActivityRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	unitRepo := repositories.NewUnitRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, sessionRepo, agentRepo, jwtService)
	leadUsecase := usecases.NewLeadUsecase(leadRepo, followUpRepo, activityRepo, userRepo, agentRepo)
	projectUsecase := usecases.NewProjectUsecase(projectRepo, unitRepo)
	bookingUsecase := usecases.NewBookingUsecase(bookingRepo, paymentRepo, leadRepo, unitRepo, activityRepo)
	adminUsecase := usecases.NewAdminUsecase(userRepo, sessionRepo, leadRepo, bookingRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase, jwtService, cfg.JWT, cfg.Cookie)
	leadHandler := handlers.NewLeadHandler(leadUsecase)
	projectHandler := handlers.NewProjectHandler(projectUsecase)
	bookingHandler := handlers.NewBookingHandler(bookingUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService, userRepo)
	optionalAuth := middleware.OptionalAuth(jwtService, userRepo)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reminderJob := jobs.NewFollowUpReminderJob(followUpRepo, nil)
	go reminderJob.Start(ctx)

	cleanupJob := jobs.NewSessionCleanupJob(sessionRepo)
	go cleanupJob.Start(ctx)

	// Initialize router
	metrics.MustRegister()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.CORS.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		leadHandler:    leadHandler,
		projectHandler: projectHandler,
		bookingHandler: bookingHandler,
		adminHandler:   adminHandler,
		authMiddleware: authMiddleware,
		optionalAuth:   optionalAuth,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		reminderJob.Stop()
		cleanupJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Realty CRM Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
