package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hospital-booking/config"
	deliveryHttp "go-hospital-booking/internal/delivery/http"
	"go-hospital-booking/internal/delivery/http/handler"
	"go-hospital-booking/internal/delivery/http/middleware"
	"go-hospital-booking/internal/infrastructure/cache"
	"go-hospital-booking/internal/infrastructure/database"
	"go-hospital-booking/internal/repository"
	"go-hospital-booking/internal/service"
	"go-hospital-booking/internal/usecase"
	"go-hospital-booking/pkg/jwt"
	"go-hospital-booking/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis, logrus.StandardLogger())
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           NewHandler(cfg, db, redisClient, logrus.StandardLogger()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// SetupLogger configures the standard logrus logger
func SetupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// NewHandler wires repositories, services, usecases and handlers into the
// HTTP handler tree.
func NewHandler(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) http.Handler {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Initialize repositories
	transactor := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	sessions := service.NewSessionStore(redisClient, log)
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, customValidator, transactor, userRepo, auditService, sessions, jwtService)
	doctorUsecase := usecase.NewDoctorUsecase(log, customValidator, transactor, userRepo, auditService)
	bookingUsecase := usecase.NewBookingUsecase(log, customValidator, transactor, userRepo, bookingRepo, auditService)
	adminUsecase := usecase.NewAdminUsecase(log, customValidator, transactor, userRepo, bookingRepo, auditService, sessions)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Initialize router
	router := deliveryHttp.NewRouter(
		log,
		handler.NewAuthHandler(authUsecase, log),
		handler.NewPatientHandler(authUsecase, doctorUsecase, bookingUsecase, log),
		handler.NewDoctorHandler(doctorUsecase, bookingUsecase, log),
		handler.NewAdminHandler(adminUsecase, bookingUsecase, log),
		handler.NewAuditLogHandler(auditLogUsecase, log),
		middleware.NewAuthMiddleware(authUsecase, log),
		middleware.NewCORSMiddleware(cfg.App.CORSOrigins),
	)

	return router.Setup()
}

// Run starts the HTTP server and blocks until it is shut down
func (app *App) Run() error {
	serverErr := make(chan error, 1)

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	return app.shutdown()
}

func (app *App) shutdown() error {
	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Shutdown HTTP server gracefully
	err := app.Server.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
	return err
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
