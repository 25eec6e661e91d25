package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/stridephysio/practice-engine/pkg/auth"
	"github.com/stridephysio/practice-engine/pkg/config"
	"github.com/stridephysio/practice-engine/pkg/database"
	"github.com/stridephysio/practice-engine/pkg/handlers"
	"github.com/stridephysio/practice-engine/pkg/importer"
	"github.com/stridephysio/practice-engine/pkg/logging"
	"github.com/stridephysio/practice-engine/pkg/middleware"
	"github.com/stridephysio/practice-engine/pkg/repositories"
	"github.com/stridephysio/practice-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("database", cfg.Database.Database),
		zap.String("redis_host", cfg.Redis.Host))

	ctx := context.Background()

	// Database
	db, err := database.NewConnection(ctx, &database.Config{
		URL:             cfg.Database.ConnectionString(),
		MaxConnections:  cfg.Database.MaxConnections,
		MaxConnLifetime: cfg.Database.MaxConnLifetime(),
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime(),
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Migrations run over database/sql; golang-migrate does not speak pgxpool.
	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, "migrations", logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := migrationDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	// Redis (optional; nil client falls back to the in-process run lock)
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	// Authentication
	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		JWKSEndpoints:      cfg.Auth.JWKSEndpoints,
	})
	if err != nil {
		logger.Fatal("Failed to create JWKS client", zap.Error(err))
	}
	defer jwksClient.Close()

	authService := auth.NewAuthService(jwksClient, logger)
	authMiddleware := auth.NewMiddleware(authService, logger)
	tenantMiddleware := handlers.TenantMiddleware(database.WithTenantContext(db, logger))

	// Repositories
	appointmentTypeRepo := repositories.NewAppointmentTypeRepository()
	clientRepo := repositories.NewClientRepository()
	horseRepo := repositories.NewHorseRepository()
	appointmentRepo := repositories.NewAppointmentRepository()
	treatmentRepo := repositories.NewTreatmentRepository()
	settingsRepo := repositories.NewSettingsRepository()

	// Import pipeline
	pipeline := importer.NewImporter(importer.Stores{
		AppointmentTypes: appointmentTypeRepo,
		Clients:          clientRepo,
		Horses:           horseRepo,
		Appointments:     appointmentRepo,
		Treatments:       treatmentRepo,
		Settings:         settingsRepo,
	}, cfg.Import.RecordDelay(), cfg.Import.BurstPause(), cfg.Import.BurstSize, logger)
	runLock := importer.NewRunLock(redisClient, cfg.Import.LockTTL())

	// Services
	importService := services.NewImportService(pipeline, runLock, logger)
	adminService := services.NewAdminService(
		appointmentTypeRepo, clientRepo, horseRepo,
		appointmentRepo, treatmentRepo, settingsRepo, logger)
	transcriptionService := services.NewTranscriptionService(&cfg.Transcription, logger)
	clientService := services.NewClientService(clientRepo)
	horseService := services.NewHorseService(horseRepo, treatmentRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo)
	appointmentTypeService := services.NewAppointmentTypeService(appointmentTypeRepo)
	settingsService := services.NewSettingsService(settingsRepo)

	mux := http.NewServeMux()

	// Register handlers
	handlers.NewHealthHandler(cfg).RegisterRoutes(mux)
	handlers.NewImportHandler(importService, logger).RegisterRoutes(mux, authMiddleware, tenantMiddleware)
	handlers.NewAdminHandler(adminService, logger).RegisterRoutes(mux, authMiddleware, tenantMiddleware)
	handlers.NewTranscriptionHandler(transcriptionService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewClientHandler(clientService, horseService, logger).RegisterRoutes(mux, authMiddleware, tenantMiddleware)
	handlers.NewHorseHandler(horseService, logger).RegisterRoutes(mux, authMiddleware, tenantMiddleware)
	handlers.NewAppointmentHandler(appointmentService, logger).RegisterRoutes(mux, authMiddleware, tenantMiddleware)
	handlers.NewAppointmentTypeHandler(appointmentTypeService, logger).RegisterRoutes(mux, authMiddleware, tenantMiddleware)
	handlers.NewSettingsHandler(settingsService, logger).RegisterRoutes(mux, authMiddleware, tenantMiddleware)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting practice-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
