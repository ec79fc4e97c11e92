package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"vexpo/internal/events"
	"vexpo/internal/handlers"
	"vexpo/internal/middleware"
	"vexpo/internal/models"
	"vexpo/internal/realtime"
	"vexpo/internal/repositories"
	"vexpo/internal/services"
	"vexpo/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// Viper reads configuration from environment variables with defaults.
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=vexpo port=5432 sslmode=disable")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("FRONTEND_URL", "http://localhost:5173")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseDSN := viper.GetString("DATABASE_DSN")
	jwtSecret := viper.GetString("JWT_SECRET")
	frontendURL := viper.GetString("FRONTEND_URL")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Database ---
	db, err := gorm.Open(postgres.Open(databaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Expo{},
		&models.ExpoRegistration{},
		&models.Exhibitor{},
		&models.VirtualBooth{},
		&models.UserInteraction{},
		&models.Notification{},
		&models.AdminActivityLog{},
		&models.EventSchedule{},
		&models.Feedback{},
	); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	// --- RabbitMQ Client (optional event mirror) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set; events will not be mirrored to a broker")
	}

	// --- Real-time hub and fan-out ---
	hub := realtime.NewHub()
	emitter := events.NewFanout(hub, mqClient)

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	expoRepo := repositories.NewGORMExpoRepository(db)
	registrationRepo := repositories.NewGORMExpoRegistrationRepository(db)
	scheduleRepo := repositories.NewGORMEventScheduleRepository(db)
	exhibitorRepo := repositories.NewGORMExhibitorRepository(db)
	boothRepo := repositories.NewGORMVirtualBoothRepository(db)
	interactionRepo := repositories.NewGORMUserInteractionRepository(db)
	notificationRepo := repositories.NewGORMNotificationRepository(db)
	adminLogRepo := repositories.NewGORMAdminActivityLogRepository(db)
	feedbackRepo := repositories.NewGORMFeedbackRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, emitter, jwtSecret)
	userService := services.NewUserService(userRepo, emitter)
	expoService := services.NewExpoService(expoRepo, registrationRepo, scheduleRepo, notificationRepo, emitter)
	exhibitorService := services.NewExhibitorService(exhibitorRepo, boothRepo, interactionRepo, emitter)
	notificationService := services.NewNotificationService(notificationRepo, adminLogRepo, feedbackRepo, emitter)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	expoHandler := handlers.NewExpoHandler(expoService)
	exhibitorHandler := handlers.NewExhibitorHandler(exhibitorService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	wsHandler := realtime.NewHandler(hub, exhibitorService, notificationService)

	// --- Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	app.Use(cors.New(cors.Config{
		AllowOrigins:     frontendURL,
		AllowCredentials: true,
	}))

	// --- API Routes ---
	api := app.Group("/api")

	// Public routes
	authHandler.RegisterRoutes(api)
	expoHandler.RegisterPublicRoutes(api)
	exhibitorHandler.RegisterPublicRoutes(api)

	// Protected routes (require a bearer token)
	protected := api.Group("", middleware.AuthRequired(authService))
	userHandler.RegisterProtectedRoutes(protected)
	expoHandler.RegisterProtectedRoutes(protected)
	exhibitorHandler.RegisterProtectedRoutes(protected)
	notificationHandler.RegisterProtectedRoutes(protected)

	// Real-time endpoint; the handshake is authenticated before the upgrade.
	wsHandler.RegisterRoutes(app, middleware.WebSocketAuth(authService))

	// --- Health Check Endpoint ---
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   "1.0.0",
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	// RabbitMQ connection close is handled by defer in main
	log.Println("Server gracefully stopped")
}
