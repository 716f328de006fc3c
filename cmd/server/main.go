// cmd/server/main.go
// Entry point for the club management API server. Wires configuration, the
// database, the live-score hub, and the settlement cache into a Fiber app and
// registers every route. cmd/ holds executables; internal/ holds the packages
// they are built from.
package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/config"
	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/database"
	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/handlers"
	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/middleware"
	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/scorecache"
	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/websocket"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Migrations run on every startup so the schema is always current.
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// The hub fans score writes out to everyone watching a game or an event
	// leaderboard. One goroutine owns all connection state.
	hub := websocket.NewHub()
	go hub.Run()

	// Settlement results are cached per game for a short TTL and invalidated
	// on every score write.
	settlements := scorecache.New(cfg.ScoreCacheTTL)

	app := fiber.New(fiber.Config{
		AppName: "Club Management API",
	})

	app.Use(logger.New())
	app.Use(cors.New())

	// Liveness check for the load balancer; no auth.
	app.Get("/health", handlers.HealthCheck)

	// Everything under /api/v1 requires a valid JWT. Auth also lazily syncs
	// the caller into the members table on first sight.
	api := app.Group("/api/v1", middleware.Auth(cfg, db))

	// Members
	api.Get("/members", handlers.GetMembers(db))
	api.Get("/members/:id", handlers.GetMember(db))
	api.Patch("/members/:id", middleware.RequireRole("admin", "manager"), handlers.UpdateMember(db))
	api.Get("/members/:id/balance", middleware.RequireRole("admin"), handlers.GetMemberBalance(db))

	// Events and registration
	api.Get("/events", handlers.GetEvents(db))
	api.Post("/events", middleware.RequireRole("admin", "manager"), handlers.CreateEvent(db))
	api.Get("/events/:id", handlers.GetEvent(db))
	api.Get("/events/:id/registrations", handlers.ListRegistrations(db))
	api.Post("/events/:id/registrations", handlers.RegisterForEvent(db))
	api.Delete("/events/:id/registrations", handlers.WithdrawFromEvent(db))

	// Tee sheet
	api.Get("/events/:id/groups", handlers.ListTeeGroups(db))
	api.Post("/events/:id/groups", handlers.BuildTeeGroups(db))

	// Event scoring
	api.Get("/registrations/:id/scores", handlers.ListScores(db))
	api.Put("/registrations/:id/scores/:hole", handlers.UpsertScore(db, hub))

	// Season leaderboard
	api.Get("/rolex/standings", handlers.GetStandings(db))
	api.Post("/events/:id/rolex", handlers.AwardPoints(db))

	// Ledger and payments
	api.Get("/transactions", middleware.RequireRole("admin"), handlers.ListTransactions(db))
	api.Post("/transactions", middleware.RequireRole("admin"), handlers.CreateTransaction(db))
	api.Get("/payments", handlers.ListPayments(db))
	api.Post("/payments", handlers.RecordPayment(db))

	// Side-bet games and settlement
	api.Get("/games", handlers.ListGames(db))
	api.Post("/games", handlers.CreateGame(db))
	api.Get("/games/:id", handlers.GetGame(db))
	api.Put("/games/:id/players/:position/scores/:hole", handlers.UpsertGameScore(db, hub, settlements))
	api.Get("/games/:id/settlement", handlers.GetSettlement(db, settlements))

	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
