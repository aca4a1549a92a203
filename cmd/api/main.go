package main

import (
	"log"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rankwatch/internal/config"
	"rankwatch/internal/handler"
	"rankwatch/internal/middleware"
	"rankwatch/internal/repository"
	"rankwatch/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := config.RunMigrations(cfg); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

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
		log.Printf("Warning: Failed to connect to MinIO: %v (keyword import will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-User-ID",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")

	projects := v1.Group("/projects")
	projects.Post("/", h.Project.Create)
	projects.Get("/", h.Project.List)
	projects.Get("/:projectId", h.Project.Get)
	projects.Put("/:projectId", h.Project.Update)
	projects.Delete("/:projectId", h.Project.Delete)
	projects.Get("/:projectId/members", h.Project.ListMembers)
	projects.Post("/:projectId/members", h.Project.AddMember)
	projects.Delete("/:projectId/members/:userId", h.Project.RemoveMember)

	projects.Post("/:projectId/keywords", h.Keyword.Create)
	projects.Get("/:projectId/keywords", h.Keyword.List)
	projects.Post("/:projectId/keywords/import", h.Keyword.Import)

	projects.Get("/:projectId/dashboard", h.Dashboard.GetStats)
	projects.Get("/:projectId/preferences", h.Preference.Get)
	projects.Put("/:projectId/preferences", h.Preference.Update)

	projects.Post("/:projectId/pagespeed", h.PageSpeed.Analyze)
	projects.Get("/:projectId/pagespeed", h.PageSpeed.History)

	projects.Post("/:projectId/sync", h.Sync.Trigger)
	projects.Get("/:projectId/sync-runs", h.Sync.ListRuns)

	keywords := v1.Group("/keywords")
	keywords.Get("/:keywordId", h.Keyword.Get)
	keywords.Put("/:keywordId", h.Keyword.Update)
	keywords.Delete("/:keywordId", h.Keyword.Delete)
	keywords.Get("/:keywordId/rankings", h.Ranking.History)
	keywords.Get("/:keywordId/rankings/latest", h.Ranking.Latest)
	keywords.Get("/:keywordId/history", h.Dashboard.GetPositionHistory)

	notifications := v1.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
}
