package checkout

import (
	"context"
	"log"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/kamilags232/cinestar-checkout/internal/model"
	"github.com/kamilags232/cinestar-checkout/internal/store"
)

// redirectDelaySeconds is how long the success screen waits before
// sending the customer back to the listing when they never click OK.
const redirectDelaySeconds = 20

// Validation messages surfaced by the finalize gate.
const (
	msgFillAll  = "Please fill in all fields and select a payment method."
	msgBadEmail = "Please enter a valid email address (e.g. nome@email.com)."
	msgNoMovie  = "No movie selected. Please pick a movie on the listing screen."
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Recap is the itemized summary presented between finalize and
// confirm.  Nothing in it is mutable; cancel throws it away.
type Recap struct {
	Movie         string          `json:"movie"`
	SessionLabel  string          `json:"session_label"`
	Showtime      string          `json:"showtime"`
	SeatCount     int             `json:"seat_count"`
	Snacks        string          `json:"snacks"`
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
}

// Outcome reports a successful submission: the display message (the
// server's when it sent one) and the auto-redirect window.  Order is
// the accepted snapshot, available to the caller for event publishing
// but never rendered back to the client.
type Outcome struct {
	Message              string      `json:"message"`
	RedirectAfterSeconds int         `json:"redirect_after_seconds"`
	Order                model.Order `json:"-"`
}

// Finalize runs the validation gate and, when everything passes,
// advances Idle -> Confirming and returns the recap.  On a validation
// failure the visit stays Idle and the returned *ValidationError
// carries the one message to surface; no network call is made either
// way.
func (v *Visit) Finalize(ctx context.Context) (Recap, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch v.phase {
	case PhaseSubmitting:
		return Recap{}, ErrSubmitInFlight
	case PhaseConfirming:
		return Recap{}, ErrNotIdle
	}

	movie, err := v.store.Get(ctx, v.id, store.KeySelectedMovie)
	if err != nil || movie == "" {
		return Recap{}, &ValidationError{Message: msgNoMovie, RedirectToListing: true}
	}

	d := v.details
	validEmail := emailRe.MatchString(d.Email)
	if d.CustomerName == "" || d.Showtime == "" || d.SessionType == "" ||
		d.Email == "" || !validEmail || d.PaymentMethod == "" ||
		len(v.grid.Selected()) == 0 {
		// a filled-in but malformed email gets the specific message
		if d.Email != "" && !validEmail {
			return Recap{}, &ValidationError{Message: msgBadEmail}
		}
		return Recap{}, &ValidationError{Message: msgFillAll}
	}

	sum := v.summaryLocked()
	v.phase = PhaseConfirming
	return Recap{
		Movie:         movie,
		SessionLabel:  model.SessionTypeLabel(d.SessionType),
		Showtime:      d.Showtime,
		SeatCount:     sum.SeatCount,
		Snacks:        sum.SnackLabel(),
		PaymentMethod: d.PaymentMethod,
		Total:         sum.Total,
	}, nil
}

// Cancel backs out of the confirmation step.  Nothing is mutated and
// no network traffic happens; the visit returns to Idle.  Cancelling
// an in-flight submission is not possible.
func (v *Visit) Cancel() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.phase == PhaseSubmitting {
		return ErrSubmitInFlight
	}
	v.phase = PhaseIdle
	return nil
}

// Confirm advances Confirming -> Submitting, builds the immutable
// order snapshot and submits it.  Session resolution is a
// precondition here, never re-run.  On success both persisted keys
// are cleared and the caller should discard the visit; on any
// failure the visit returns to Idle with every selection intact and
// the gateway error is returned for the handler to translate.
func (v *Visit) Confirm(ctx context.Context) (Outcome, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch v.phase {
	case PhaseSubmitting:
		return Outcome{}, ErrSubmitInFlight
	case PhaseIdle:
		return Outcome{}, ErrNotConfirming
	}
	if v.sessState != SessionResolved {
		return Outcome{}, ErrSessionUnresolved
	}
	movie, err := v.store.Get(ctx, v.id, store.KeySelectedMovie)
	if err != nil || movie == "" {
		v.phase = PhaseIdle
		return Outcome{}, &ValidationError{Message: msgNoMovie, RedirectToListing: true}
	}

	v.phase = PhaseSubmitting
	sum := v.summaryLocked()
	order := model.Order{
		CustomerName:  v.details.CustomerName,
		Email:         v.details.Email,
		NationalID:    v.details.NationalID,
		SessionType:   model.SessionTypeLabel(v.details.SessionType),
		SessionID:     v.sessionID,
		Showtime:      v.details.Showtime,
		Movie:         movie,
		Seats:         v.assignmentsLocked(),
		Snacks:        sum.SnackLabel(),
		PaymentMethod: v.details.PaymentMethod,
		Total:         sum.Total,
	}

	ack, err := v.backend.SubmitOrder(ctx, order)
	if err != nil {
		v.phase = PhaseIdle
		return Outcome{}, err
	}

	// success: both persisted keys go together, the visit is finished
	if err := v.store.Clear(ctx, v.id, store.KeySelectedMovie, store.KeySessionID); err != nil {
		log.Printf("checkout: clear persisted state for visit %s: %v", v.id, err)
	}
	msg := ack.Mensagem
	if msg == "" {
		msg = "Compra confirmada com sucesso!"
	}
	return Outcome{Message: msg, RedirectAfterSeconds: redirectDelaySeconds, Order: order}, nil
}
