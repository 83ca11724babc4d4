package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/streadway/amqp"

	"weapondb/internal/config"
	"weapondb/internal/database"
	"weapondb/internal/handlers"
	"weapondb/internal/middleware"
	"weapondb/internal/repositories"
	"weapondb/internal/services"
	"weapondb/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.Seed(db, cfg.AdminUsername); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// --- RabbitMQ (optional: absence only disables catalog events) ---
	var publisher services.EventPublisher
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("RabbitMQ unavailable, catalog events disabled: %v", err)
	} else {
		defer mqClient.Close()
		publisher = mqClient

		go func() {
			log.Println("Starting RabbitMQ consumer for catalog events...")
			handler := func(msg amqp.Delivery) error {
				log.Printf("Catalog event (tag %d): %s", msg.DeliveryTag, msg.Body)
				return nil
			}
			if consumerErr := mqClient.ConsumeCatalogEvents(handler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Repositories ---
	weaponRepo := repositories.NewGORMWeaponRepository(db)
	gadgetRepo := repositories.NewGORMGadgetRepository(db)
	specRepo := repositories.NewGORMSpecializationRepository(db)
	mapRepo := repositories.NewGORMGameMapRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Services ---
	catalogService := services.NewCatalogService(weaponRepo, gadgetRepo, specRepo, mapRepo, publisher, cfg.PageSize)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	userService := services.NewUserService(userRepo)

	// --- Sessions & views ---
	store := session.New(session.Config{
		Expiration:     cfg.SessionDuration,
		KeyLookup:      "cookie:session_id",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	engine := html.New(cfg.ViewsDir, ".html")
	engine.AddFunc("pageRange", func(n int) []int {
		pages := make([]int, n)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	})
	engine.AddFunc("add", func(a, b int) int { return a + b })

	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: int(cfg.MaxUploadBytes) + 1<<20,
	})

	// --- Middleware ---
	app.Use(logger.New())
	app.Use(middleware.LoadSession(store))

	// --- Static assets ---
	app.Static("/img", cfg.UploadDir)
	app.Static("/css", "public/css")

	// --- Handlers ---
	uploads := handlers.NewImageUploader(cfg.UploadDir, cfg.MaxUploadBytes)
	sessionGate := []fiber.Handler{middleware.RequireSession()}
	adminGate := []fiber.Handler{middleware.RequireSession(), middleware.RequireAdmin(cfg.AdminUsername)}

	handlers.NewClassHandler(catalogService).RegisterRoutes(app)
	handlers.NewAuthHandler(authService, store).RegisterRoutes(app, sessionGate...)
	handlers.NewWeaponHandler(catalogService, uploads).RegisterRoutes(app, adminGate...)
	handlers.NewGadgetHandler(catalogService, uploads).RegisterRoutes(app, adminGate...)
	handlers.NewSpecializationHandler(catalogService, uploads).RegisterRoutes(app, adminGate...)
	handlers.NewGameMapHandler(catalogService, uploads).RegisterRoutes(app, adminGate...)
	handlers.NewUserHandler(userService).RegisterRoutes(app, adminGate...)

	apiV1 := app.Group("/api/v1")
	handlers.NewAPIHandler(catalogService, authService).RegisterRoutes(apiV1, middleware.APIAuthRequired(authService))

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
