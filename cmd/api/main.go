package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"hidrocascavel/internal/config"
	"hidrocascavel/internal/domain"
	"hidrocascavel/internal/handler"
	"hidrocascavel/internal/middleware"
	"hidrocascavel/internal/repository"
	"hidrocascavel/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (photo upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	go runNotificationSweep(services.Notification, cfg.NotificationRetention)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.RequestInfo())

	setupRoutes(app, handlers, services.Auth)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// runNotificationSweep deletes notifications older than the configured
// retention once a day.
func runNotificationSweep(notifService service.NotificationService, retention time.Duration) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		deleted, err := notifService.PurgeOld(ctx, retention)
		cancel()
		if err != nil {
			log.Printf("Notification sweep failed: %v", err)
			continue
		}
		if deleted > 0 {
			log.Printf("Notification sweep removed %d old notifications", deleted)
		}
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService service.AuthService) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.RefreshToken)
	auth.Post("/forgot-password", h.Auth.ForgotPassword)
	auth.Post("/reset-password", h.Auth.ResetPassword)
	auth.Get("/verify-email", h.Auth.VerifyEmail)
	auth.Post("/resend-verification", h.Auth.ResendVerification)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Get("/auth/me", h.Auth.Me)

	admin := string(domain.RoleAdmin)
	analyst := string(domain.RoleAnalyst)

	users := protected.Group("/users")
	users.Get("/", middleware.RequireRole(admin), h.User.List)
	users.Post("/assign-role", middleware.RequireRole(admin), h.User.AssignRole)
	users.Get("/:userId", h.User.Get)
	users.Put("/:userId", h.User.Update)
	users.Delete("/:userId", middleware.RequireRole(admin), h.User.Delete)

	wells := protected.Group("/wells")
	wells.Post("/", h.Well.Create)
	wells.Get("/", h.Well.List)
	wells.Get("/:wellId", h.Well.Get)
	wells.Put("/:wellId", h.Well.Update)
	wells.Delete("/:wellId", h.Well.Delete)
	wells.Post("/:wellId/photo", h.Media.UploadWellPhoto)
	wells.Delete("/:wellId/photo", h.Media.RemoveWellPhoto)

	requests := protected.Group("/analysis-requests")
	requests.Post("/", middleware.RequireRole(analyst), h.Analysis.CreateRequest)
	requests.Get("/", middleware.RequireRole(analyst), h.Analysis.ListRequests)
	requests.Get("/:requestId", middleware.RequireRole(analyst), h.Analysis.GetRequest)
	requests.Post("/:requestId/approve", middleware.RequireRole(admin), h.Analysis.Approve)
	requests.Post("/:requestId/reject", middleware.RequireRole(admin), h.Analysis.Reject)

	analyses := protected.Group("/analyses")
	analyses.Get("/", h.Analysis.ListAnalyses)
	analyses.Get("/export", middleware.RequireRole(analyst), h.Analysis.ExportCSV)
	analyses.Get("/:analysisId", h.Analysis.GetAnalysis)

	visits := protected.Group("/visits")
	visits.Post("/", middleware.RequireRole(analyst), h.Visit.Schedule)
	visits.Get("/", h.Visit.List)
	visits.Get("/:visitId", h.Visit.Get)
	visits.Put("/:visitId", middleware.RequireRole(analyst), h.Visit.Update)
	visits.Post("/:visitId/complete", middleware.RequireRole(analyst), h.Visit.Complete)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:notificationId/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", middleware.RequireRole(admin), h.Dashboard.GetStats)

	audit := protected.Group("/audit")
	audit.Get("/recent", middleware.RequireRole(admin), h.Audit.GetRecentActivities)
}
