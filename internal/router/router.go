package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/kamilags232/cinestar-checkout/internal/config"
	"github.com/kamilags232/cinestar-checkout/internal/handler"
	"github.com/kamilags232/cinestar-checkout/internal/middleware"
)

// RegisterRoutes wires the whole checkout surface onto the provided
// Echo instance.  The health check and visit opening are public;
// everything under /v1/checkout requires a valid visit token.  The
// rate limiter guards the endpoints a hostile client could hammer:
// opening visits and finalizing orders.
func RegisterRoutes(e *echo.Echo, h *handler.CheckoutHandler, cfg config.Config, rdb *redis.Client) {
	limiter := middleware.RateLimit(rdb, cfg.RateLimitPerMin)

	// health check for load balancers and monitoring
	e.GET("/healthz", handler.Health)

	// arriving from the listing screen opens a fresh visit
	e.POST("/v1/visits", h.OpenVisit, limiter)

	// everything below acts on one visit's state
	g := e.Group("/v1/checkout", middleware.VisitAuth(cfg.VisitSecret))

	// seat grid and per-seat fares
	g.GET("/seats", h.GetSeats)
	g.POST("/seats/:id/toggle", h.ToggleSeat)
	g.PUT("/seats/:id/fare", h.SetFare)

	// reference tables for rendering pickers
	g.GET("/catalog", h.GetCatalog)

	// snack cart with per-unit customization
	g.PUT("/snacks/:id", h.SetSnackQuantity)
	g.PUT("/snacks/:id/units/:unit", h.SetExtraSelection)

	// customer and showing fields; changing the showing re-syncs occupancy
	g.PUT("/details", h.SetDetails)
	g.POST("/occupancy/sync", h.SyncOccupancy)

	// pricing summary, recomputed on demand
	g.GET("/summary", h.GetSummary)

	// the confirm -> submit protocol
	g.POST("/finalize", h.Finalize, limiter)
	g.POST("/cancel", h.Cancel)
	g.POST("/confirm", h.Confirm)
}
