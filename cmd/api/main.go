package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/eduly-api/internal/auth"
	"github.com/noah-isme/eduly-api/internal/config"
	"github.com/noah-isme/eduly-api/internal/database"
	"github.com/noah-isme/eduly-api/internal/handler"
	"github.com/noah-isme/eduly-api/internal/middleware"
	"github.com/noah-isme/eduly-api/internal/models"
	"github.com/noah-isme/eduly-api/internal/notify"
	"github.com/noah-isme/eduly-api/internal/repository"
	"github.com/noah-isme/eduly-api/internal/router"
	"github.com/noah-isme/eduly-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.Employee{},
		&models.Parent{},
		&models.ParentLink{},
		&models.Course{},
		&models.Booking{},
		&models.Payment{},
		&models.Attendance{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, dashboard caching disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	notifier := notify.NewNoopNotifier()
	if cfg.NATSURL != "" {
		conn, err := notify.Connect(cfg.NATSURL)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, notifications disabled")
		} else {
			defer conn.Drain()
			notifier = notify.NewNATSNotifier(conn, logger)
		}
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	parentRepo := repository.NewParentRepository(db)
	parentLinkRepo := repository.NewParentLinkRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	authService := service.NewAuthService(studentRepo, employeeRepo, parentRepo, tokens, validate, logger)
	catalogService := service.NewCatalogService(courseRepo, validate, logger)
	bookingService := service.NewBookingService(bookingRepo, courseRepo, validate, logger)
	paymentService := service.NewPaymentService(paymentRepo, bookingRepo, validate, notifier, cfg.VodafoneWalletNumber, logger)
	dashboardService := service.NewDashboardService(dashboardRepo, redisClient, cfg.DashboardCacheTTL, cfg.DashboardRecentLimit, logger)
	parentService := service.NewParentService(parentLinkRepo, studentRepo, paymentRepo, bookingRepo, attendanceRepo, validate, logger)
	studentAccountService := service.NewStudentAccountService(studentRepo, validate, logger)
	employeeAccountService := service.NewEmployeeAccountService(employeeRepo, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:      handler.NewAuthHandler(authService, logger),
		CourseHandler:    handler.NewCourseHandler(catalogService, logger),
		BookingHandler:   handler.NewBookingHandler(bookingService, logger),
		PaymentHandler:   handler.NewPaymentHandler(paymentService, logger),
		DashboardHandler: handler.NewDashboardHandler(dashboardService, logger),
		ParentHandler:    handler.NewParentHandler(parentService, logger),
		StudentHandler:   handler.NewStudentHandler(studentAccountService, logger),
		EmployeeHandler:  handler.NewEmployeeHandler(employeeAccountService, logger),
		Protect:          middleware.Protect(tokens, authService),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
