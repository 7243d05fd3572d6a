package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kamilags232/cinestar-checkout/internal/checkout"
	"github.com/kamilags232/cinestar-checkout/internal/grid"
	"github.com/kamilags232/cinestar-checkout/internal/model"
)

// GetSeats handles GET /v1/checkout/seats.  Returns the full grid
// snapshot; the client renders from this state and never the other
// way around.
func (h *CheckoutHandler) GetSeats(c echo.Context) error {
	v, err := h.visitFromContext(c)
	if v == nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"seats": v.Seats()})
}

// ToggleSeat handles POST /v1/checkout/seats/:id/toggle.  Flips the
// seat's selection; toggling an occupied seat succeeds without
// changing anything, so the response always carries the seat's
// current status.
func (h *CheckoutHandler) ToggleSeat(c echo.Context) error {
	v, err := h.visitFromContext(c)
	if v == nil {
		return err
	}
	status, err := v.ToggleSeat(c.Param("id"))
	if err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"seat":    c.Param("id"),
		"status":  status,
		"summary": v.Summary(),
	})
}

// SetFare handles PUT /v1/checkout/seats/:id/fare.  Assigns a fare
// class to a selected seat; an empty fare_class resets the slot.
func (h *CheckoutHandler) SetFare(c echo.Context) error {
	v, err := h.visitFromContext(c)
	if v == nil {
		return err
	}
	var body struct {
		FareClass string `json:"fare_class"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := v.SetFare(c.Param("id"), body.FareClass); err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"summary": v.Summary()})
}

// GetCatalog handles GET /v1/checkout/catalog.  Returns the fixed
// reference tables the client needs to render pickers: fare classes,
// session types and the snack menu.
func (h *CheckoutHandler) GetCatalog(c echo.Context) error {
	if v, err := h.visitFromContext(c); v == nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"fare_classes":  model.FareClasses(),
		"session_types": model.SessionTypes(),
		"snacks":        model.SnackMenu(),
	})
}

// SetSnackQuantity handles PUT /v1/checkout/snacks/:id.
func (h *CheckoutHandler) SetSnackQuantity(c echo.Context) error {
	v, err := h.visitFromContext(c)
	if v == nil {
		return err
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := v.SetSnackQuantity(c.Param("id"), body.Quantity); err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"cart":    v.Cart(),
		"summary": v.Summary(),
	})
}

// SetExtraSelection handles PUT /v1/checkout/snacks/:id/units/:unit.
// Records the extra-option choice for one unit of a customizable
// product; the unit index is 0-based.
func (h *CheckoutHandler) SetExtraSelection(c echo.Context) error {
	v, err := h.visitFromContext(c)
	if v == nil {
		return err
	}
	unit, err := strconv.Atoi(c.Param("unit"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit index"})
	}
	var body struct {
		Value string `json:"value"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := v.SetExtraSelection(c.Param("id"), unit, body.Value); err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"cart":    v.Cart(),
		"summary": v.Summary(),
	})
}

// SetDetails handles PUT /v1/checkout/details.  Applies the customer
// and showing fields; a showtime or session-type change re-triggers
// the occupancy sync, and a sync failure is reported as a warning
// while the fields still apply.
func (h *CheckoutHandler) SetDetails(c echo.Context) error {
	v, err := h.visitFromContext(c)
	if v == nil {
		return err
	}
	var body checkout.Details
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	warn, err := v.SetDetails(c.Request().Context(), body)
	if err != nil {
		return checkoutError(c, err)
	}
	resp := echo.Map{
		"summary": v.Summary(),
		"seats":   v.Seats(),
	}
	if warn != nil {
		resp["warning"] = "could not refresh occupied seats"
	}
	return c.JSON(http.StatusOK, resp)
}

// SyncOccupancy handles POST /v1/checkout/occupancy/sync.  Explicitly
// reconciles the backend's sold seats into the grid.
func (h *CheckoutHandler) SyncOccupancy(c echo.Context) error {
	v, err := h.visitFromContext(c)
	if v == nil {
		return err
	}
	if err := v.SyncOccupancy(c.Request().Context()); err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{
			"error": "could not refresh occupied seats",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"seats": v.Seats()})
}

// GetSummary handles GET /v1/checkout/summary.  Re-runs the pricing
// engine over the visit's current state.
func (h *CheckoutHandler) GetSummary(c echo.Context) error {
	v, err := h.visitFromContext(c)
	if v == nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"summary": v.Summary(),
		"details": v.Details(),
	})
}

// checkoutError translates checkout and grid errors into HTTP
// responses with the uniform error body.
func checkoutError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, grid.ErrUnknownSeat):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown seat"})
	case errors.Is(err, checkout.ErrUnknownSnack):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown snack product"})
	case errors.Is(err, checkout.ErrSubmitInFlight):
		return c.JSON(http.StatusConflict, echo.Map{"error": "submission in flight"})
	case errors.Is(err, checkout.ErrNotIdle),
		errors.Is(err, checkout.ErrNotConfirming):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, checkout.ErrSeatNotSelected),
		errors.Is(err, checkout.ErrUnknownFare),
		errors.Is(err, checkout.ErrNoExtras),
		errors.Is(err, checkout.ErrUnknownOption),
		errors.Is(err, checkout.ErrBadUnit),
		errors.Is(err, checkout.ErrNegativeQuantity):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
