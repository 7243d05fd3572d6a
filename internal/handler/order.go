package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kamilags232/cinestar-checkout/internal/checkout"
	"github.com/kamilags232/cinestar-checkout/internal/gateway"
	"github.com/kamilags232/cinestar-checkout/internal/model"
	"github.com/kamilags232/cinestar-checkout/internal/queue"
	queue_publisher "github.com/kamilags232/cinestar-checkout/internal/service"
)

// Finalize handles POST /v1/checkout/finalize.  Runs the validation
// gate and, when it passes, advances the visit to Confirming and
// returns the recap for the confirmation dialog.  Validation failures
// respond 422 with the one message to surface; nothing reaches the
// network.
func (h *CheckoutHandler) Finalize(c echo.Context) error {
	v, err := h.visitFromContext(c)
	if v == nil {
		return err
	}
	recap, err := v.Finalize(c.Request().Context())
	if err != nil {
		var ve *checkout.ValidationError
		if errors.As(err, &ve) {
			resp := echo.Map{"error": ve.Message}
			if ve.RedirectToListing {
				resp["redirect"] = "listing"
			}
			return c.JSON(http.StatusUnprocessableEntity, resp)
		}
		return checkoutError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"recap": recap})
}

// Cancel handles POST /v1/checkout/cancel.  Backs out of the
// confirmation dialog; no state is mutated and no network call is
// made.
func (h *CheckoutHandler) Cancel(c echo.Context) error {
	v, err := h.visitFromContext(c)
	if v == nil {
		return err
	}
	if err := v.Cancel(); err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"phase": v.Phase()})
}

// Confirm handles POST /v1/checkout/confirm.  Submits the order to
// the backend.  On success the visit is discarded, both persisted
// keys are already cleared, an order.confirmed event is published
// (failures ignored) and the response carries the display message
// plus the auto-redirect window.  On failure the visit returns to
// Idle with every selection intact for a manual retry.
func (h *CheckoutHandler) Confirm(c echo.Context) error {
	v, err := h.visitFromContext(c)
	if v == nil {
		return err
	}
	out, err := v.Confirm(c.Request().Context())
	if err != nil {
		return submitError(c, err)
	}

	h.Registry.Remove(v.ID())
	go func(order model.Order) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := queue_publisher.PublishOrderConfirmed(ctx, confirmedEvent(v.ID(), order)); err != nil {
			log.Printf("visit %s: publish order.confirmed: %v", v.ID(), err)
		}
	}(out.Order)

	return c.JSON(http.StatusOK, echo.Map{
		"message":                out.Message,
		"redirect_after_seconds": out.RedirectAfterSeconds,
	})
}

// submitError translates a failed submission per the error taxonomy:
// network problems get a generic connectivity message, server errors
// surface the backend's message when it sent one.
func submitError(c echo.Context, err error) error {
	var ve *checkout.ValidationError
	if errors.As(err, &ve) {
		resp := echo.Map{"error": ve.Message}
		if ve.RedirectToListing {
			resp["redirect"] = "listing"
		}
		return c.JSON(http.StatusUnprocessableEntity, resp)
	}
	if errors.Is(err, gateway.ErrNetwork) {
		return c.JSON(http.StatusBadGateway, echo.Map{
			"error": "could not reach the ticketing service; please try again",
		})
	}
	var se *gateway.ServerError
	if errors.As(err, &se) {
		msg := se.Message
		if msg == "" {
			msg = "the ticketing service rejected the order; please try again"
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": msg})
	}
	return checkoutError(c, err)
}

// confirmedEvent maps an accepted order to its broker payload.
func confirmedEvent(visitID string, order model.Order) queue.OrderConfirmedEvent {
	seats := make([]string, 0, len(order.Seats))
	for _, s := range order.Seats {
		seats = append(seats, s.ID)
	}
	return queue.OrderConfirmedEvent{
		VisitID:       visitID,
		SessionID:     order.SessionID,
		Movie:         order.Movie,
		SessionType:   order.SessionType,
		Showtime:      order.Showtime,
		Seats:         seats,
		Snacks:        order.Snacks,
		PaymentMethod: order.PaymentMethod,
		Total:         order.Total.String(),
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}
