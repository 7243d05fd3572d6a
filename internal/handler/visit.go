package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kamilags232/cinestar-checkout/internal/checkout"
	"github.com/kamilags232/cinestar-checkout/internal/utils"
)

// CheckoutHandler groups the dependencies of the checkout HTTP
// surface.  One handler serves every visit; per-visit state lives in
// the registry.
type CheckoutHandler struct {
	Registry    *checkout.Registry // live checkout visits
	VisitSecret string             // secret for signing visit tokens
	VisitTTLMin int                // visit token lifetime in minutes
}

// NewCheckoutHandler constructs a CheckoutHandler.  The registry must
// be non-nil.
func NewCheckoutHandler(reg *checkout.Registry, secret string, ttlMin int) *CheckoutHandler {
	if reg == nil {
		panic("nil registry passed to NewCheckoutHandler")
	}
	return &CheckoutHandler{Registry: reg, VisitSecret: secret, VisitTTLMin: ttlMin}
}

// OpenVisit handles POST /v1/visits.  A customer arriving from the
// listing screen opens a checkout visit for a movie: the grid is
// built, the session identity is resolved (never failing outward)
// and the initial occupancy sync runs.  Responds 201 with the visit
// token, the seat snapshot and a warning when the initial sync could
// not reach the backend.
func (h *CheckoutHandler) OpenVisit(c echo.Context) error {
	var body struct {
		Movie string `json:"movie"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	v, err := h.Registry.Open(ctx, body.Movie)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to open visit"})
	}

	v.ResolveSession(ctx)
	var warn string
	if err := v.SyncOccupancy(ctx); err != nil {
		log.Printf("visit %s: initial occupancy sync: %v", v.ID(), err)
		warn = "could not load occupied seats; the grid may be stale"
	}

	tok, err := utils.NewVisitToken(h.VisitSecret, v.ID(), h.VisitTTLMin)
	if err != nil {
		h.Registry.Remove(v.ID())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue visit token"})
	}

	resp := echo.Map{
		"token":      tok.Token,
		"expires_at": tok.Exp,
		"seats":      v.Seats(),
	}
	if warn != "" {
		resp["warning"] = warn
	}
	return c.JSON(http.StatusCreated, resp)
}

// visitFromContext resolves the visit injected by the VisitAuth
// middleware.  A token for a visit this instance no longer holds
// (restart, finished order) yields 404 so the client reopens.
func (h *CheckoutHandler) visitFromContext(c echo.Context) (*checkout.Visit, error) {
	vid, _ := c.Get("visit_id").(string)
	if vid == "" {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	v, ok := h.Registry.Get(vid)
	if !ok {
		return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "visit not found"})
	}
	return v, nil
}
