package main // Entry point package

import (
	"log"  // Logging library
	"os"   // Environment access
	"time" // TTL for persisted visit state

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/kamilags232/cinestar-checkout/internal/checkout" // Visit registry and state machine
	"github.com/kamilags232/cinestar-checkout/internal/config"   // Internal config loader
	"github.com/kamilags232/cinestar-checkout/internal/gateway"  // Ticketing backend client
	"github.com/kamilags232/cinestar-checkout/internal/handler"  // HTTP handlers
	"github.com/kamilags232/cinestar-checkout/internal/queue"    // Order event consumer
	"github.com/kamilags232/cinestar-checkout/internal/router"   // Internal router setup
	"github.com/kamilags232/cinestar-checkout/internal/store"    // Persisted per-visit state
)

func main() {
	_ = godotenv.Load() // Load .env if present; real env wins

	cfg := config.Load()            // Load environment config
	rdb := config.NewRedisClient()  // Connect to Redis; nil when unreachable
	backend := gateway.New(cfg.BackendURL) // Client for the ticketing backend

	var st store.Store // Persisted state survives page reloads
	if rdb != nil {
		st = store.NewRedis(rdb, 24*time.Hour) // Keep visit state for a day
	} else {
		log.Println("redis unavailable, using in-memory visit store") // Degrade to process-local state
		st = store.NewMemory()
	}

	reg := checkout.NewRegistry(cfg.GridRows, cfg.GridCols, backend, st)   // One visit per browser tab
	h := handler.NewCheckoutHandler(reg, cfg.VisitSecret, cfg.VisitTTLMin) // Handlers bound to the registry

	if os.Getenv("ORDER_CONSUMER") == "true" { // Optional in-process consumer for confirmed orders
		go queue.StartOrderConsumer()
	}

	e := echo.New()                    // Create Echo instance
	router.RegisterRoutes(e, h, cfg, rdb) // Register application routes

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
