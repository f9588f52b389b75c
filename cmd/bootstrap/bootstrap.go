package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sagarmamodia/RemediX/config"
	"github.com/sagarmamodia/RemediX/internal/clock"
	deliveryHttp "github.com/sagarmamodia/RemediX/internal/delivery/http"
	"github.com/sagarmamodia/RemediX/internal/delivery/http/handler"
	"github.com/sagarmamodia/RemediX/internal/delivery/http/middleware"
	"github.com/sagarmamodia/RemediX/internal/infrastructure/cache"
	"github.com/sagarmamodia/RemediX/internal/infrastructure/database"
	"github.com/sagarmamodia/RemediX/internal/infrastructure/queue"
	"github.com/sagarmamodia/RemediX/internal/integrations/square"
	"github.com/sagarmamodia/RemediX/internal/integrations/videosdk"
	"github.com/sagarmamodia/RemediX/internal/repository"
	"github.com/sagarmamodia/RemediX/internal/service"
	"github.com/sagarmamodia/RemediX/internal/usecase"
	"github.com/sagarmamodia/RemediX/pkg/jwt"
	"github.com/sagarmamodia/RemediX/pkg/metrics"
	"github.com/sagarmamodia/RemediX/pkg/validator"
)

const migrationsDir = "migrations"

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	AMQPConn    *amqp.Connection
	SlotLocks   *service.SlotLockService
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	if err := database.RunMigrations(cfg.DB, migrationsDir); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logrus.Info("Migrations applied")

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	amqpConn, err := queue.NewRabbitMQConnection(cfg.AMQP)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	app.AMQPConn = amqpConn
	logrus.Info("RabbitMQ connected successfully")

	server, slotLocks, err := initializeServer(cfg, db, redisClient, amqpConn)
	if err != nil {
		return nil, err
	}
	app.Server = server
	app.SlotLocks = slotLocks

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, amqpConn *amqp.Connection) (*http.Server, *service.SlotLockService, error) {
	log := logrus.StandardLogger()

	clinicClock, err := clock.New(cfg.Clinic.Timezone)
	if err != nil {
		return nil, nil, err
	}

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	m := metrics.New("remedix")

	// Integrations
	squareClient := square.NewClient(cfg.Square, log)
	videoClient := videosdk.NewClient(cfg.VideoSDK, log)

	// Services
	slotLocks := service.NewSlotLockService(log)
	notifier, err := service.NewNotificationService(amqpConn, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up notifications: %w", err)
	}

	// Repositories
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	consultationRepo := repository.NewConsultationRepository()

	// Usecases
	authUsecase := usecase.NewAuthUsecase(db, log, doctorRepo, patientRepo, jwtService, redisClient)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, clinicClock, doctorRepo, consultationRepo)
	bookingUsecase := usecase.NewBookingUsecase(db, log, clinicClock, availabilityUsecase, doctorRepo, consultationRepo, squareClient, slotLocks, notifier, m)
	consultationUsecase := usecase.NewConsultationUsecase(db, log, consultationRepo, videoClient, notifier)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, clinicClock, doctorRepo, consultationRepo)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase, customValidator)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()
	metricsMiddleware := middleware.NewMetricsMiddleware(m)

	// Router
	router := deliveryHttp.NewRouter(authHandler, doctorHandler, patientHandler, bookingHandler, consultationHandler, authMiddleware, corsMiddleware, metricsMiddleware, m)
	httpRouter := router.Setup()

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, slotLocks, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, queue)
func (app *App) Close() {
	if app.SlotLocks != nil {
		app.SlotLocks.Stop()
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	if app.AMQPConn != nil {
		app.AMQPConn.Close()
	}
}
