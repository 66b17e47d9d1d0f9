package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ellavondegurechaff/deckvault/deckvault"
	"github.com/ellavondegurechaff/deckvault/deckvault/database"
	"github.com/ellavondegurechaff/deckvault/deckvault/database/repositories"
	"github.com/ellavondegurechaff/deckvault/deckvault/logger"
	"github.com/ellavondegurechaff/deckvault/server/handlers"
	"github.com/ellavondegurechaff/deckvault/server/middleware"
	webmodels "github.com/ellavondegurechaff/deckvault/server/models"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	resetTables := flag.Bool("reset", false, "truncate all application tables after schema setup")
	flag.Parse()

	// Initialize logger first
	customHandler := logger.NewHandler("DeckVault")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting DeckVault API",
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("type", "sys"))

	// Load configuration
	cfg, err := deckvault.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slog.Info("Connecting to database...")
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *resetTables {
		if err := db.ResetAppTables(ctx); err != nil {
			slog.Error("Failed to reset tables", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	slog.Info("Database connected successfully")

	// Initialize repositories
	repos := webmodels.NewRepositories(
		repositories.NewCollectionRepository(db.BunDB()),
		repositories.NewCardRepository(db.BunDB()),
		repositories.NewUserRepository(db.BunDB()),
		repositories.NewDeckRepository(db.BunDB()),
	)

	// Initialize Fiber as API-only backend
	app := fiber.New(fiber.Config{
		AppName:      "DeckVault API",
		ServerHeader: "DeckVault",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(middleware.LoggingMiddleware())

	webApp := handlers.NewWebApp(db, repos)
	setupRoutes(app, webApp)

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	slog.Info("Starting server", slog.String("address", address))

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	slog.Info("Shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}

	db.Close()

	slog.Info("Server shutdown complete")
}

// setupRoutes configures all application routes. Static paths are registered
// before their parameterized siblings so Fiber matches them first.
func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	collections := app.Group("/collections")
	collections.Post("/", handlers.CreateCollection(webApp))
	collections.Get("/", handlers.ListCollections(webApp))
	collections.Get("/search/:name", handlers.SearchCollections(webApp))
	collections.Get("/:id", handlers.GetCollection(webApp))
	collections.Put("/:id", handlers.UpdateCollection(webApp))
	collections.Delete("/:id", handlers.DeleteCollection(webApp))

	cards := app.Group("/cards")
	cards.Post("/", handlers.CreateCard(webApp))
	cards.Get("/", handlers.ListCards(webApp))
	cards.Get("/search/:name", handlers.SearchCards(webApp))
	cards.Get("/collection/:id", handlers.GetCardsByCollection(webApp))
	cards.Get("/stats/by-collection", handlers.CardStatsByCollection(webApp))
	cards.Get("/stats/by-rarity", handlers.CardStatsByRarity(webApp))
	cards.Get("/stats/by-type", handlers.CardStatsByType(webApp))
	cards.Get("/:id", handlers.GetCard(webApp))
	cards.Put("/:id", handlers.UpdateCard(webApp))
	cards.Delete("/:id", handlers.DeleteCard(webApp))

	users := app.Group("/users")
	users.Post("/", handlers.CreateUser(webApp))
	users.Get("/", handlers.ListUsers(webApp))
	users.Get("/:id", handlers.GetUser(webApp))
	users.Put("/:id", handlers.UpdateUser(webApp))
	users.Delete("/:id", handlers.DeleteUser(webApp))
	users.Get("/:id/decks", handlers.GetUserDecks(webApp))
	users.Get("/:id/decks/count", handlers.CountUserDecks(webApp))
	users.Get("/:id/decks/count-by-format", handlers.UserDeckFormatBreakdown(webApp))

	decks := app.Group("/decks")
	decks.Post("/", handlers.CreateDeck(webApp))
	decks.Get("/", handlers.ListDecks(webApp))
	decks.Get("/stats/decks-by-format", handlers.DeckStatsByFormat(webApp))
	decks.Get("/average-cards-per-deck", handlers.DeckAverageCardCount(webApp))
	decks.Get("/:id", handlers.GetDeck(webApp))
	decks.Put("/:id", handlers.UpdateDeck(webApp))
	decks.Delete("/:id", handlers.DeleteDeck(webApp))
	decks.Get("/:id/with-cards", handlers.GetDeckCards(webApp))
	decks.Get("/:id/cards/count", handlers.CountDeckCards(webApp))
	decks.Post("/:id/cards/:card_id", handlers.AddCardToDeck(webApp))
	decks.Delete("/:id/cards/:card_id", handlers.RemoveCardFromDeck(webApp))

	// Anything still unmatched is a 404
	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
		)
		return fiber.NewError(fiber.StatusNotFound, "The requested endpoint does not exist")
	})
}
