package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"hunian-marketplace/internal/config"
	"hunian-marketplace/internal/db"
	"hunian-marketplace/internal/handler"
	"hunian-marketplace/internal/middleware"
	"hunian-marketplace/internal/repository"
	"hunian-marketplace/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	database, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (attachment upload will not work)", err)
	}

	repos := repository.NewRepositories(database)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

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

	setupRoutes(app, handlers, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1", middleware.AuthRequired(cfg))

	threads := v1.Group("/threads")
	threads.Get("/", h.Thread.List)
	threads.Post("/direct", h.Thread.ResolveDirect)
	threads.Post("/group", h.Thread.CreateGroup)
	threads.Get("/:threadId/messages", h.Messaging.ListByThread)
	threads.Post("/:threadId/attachments", h.Attachment.Upload)

	v1.Post("/messages", h.Messaging.Send)
	v1.Get("/properties/:propertyId/messages", h.Messaging.ListByProperty)

	broadcasts := v1.Group("/broadcasts")
	broadcasts.Post("/", h.Broadcast.Send)
	broadcasts.Get("/deliveries", h.Broadcast.ListDeliveries)

	notifications := v1.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/counter", h.Notification.GetCounter)
	notifications.Post("/read", h.Notification.MarkAsRead)
	notifications.Post("/unread", h.Notification.MarkAsUnread)
	notifications.Post("/read-by-type", h.Notification.MarkAsReadByType)
	notifications.Delete("/", h.Notification.Delete)
}
