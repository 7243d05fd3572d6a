// Package checkout owns the state machine of one checkout visit: the
// seat grid, per-seat fare assignments, the snack cart, the session
// identity and the confirm -> submit protocol.  These sentinel values
// let the handler layer distinguish failure scenarios; every one of
// them is a local validation problem that never reaches the network.
package checkout

import "errors"

// ErrSubmitInFlight is returned when an operation arrives while an
// order submission is running.  Exactly one submission may be in
// flight per visit.
var ErrSubmitInFlight = errors.New("submission in flight")

// ErrNotIdle is returned when finalize is attempted outside the Idle
// phase.
var ErrNotIdle = errors.New("checkout not idle")

// ErrNotConfirming is returned when confirm is attempted without a
// preceding finalize.
var ErrNotConfirming = errors.New("nothing to confirm")

// ErrSessionUnresolved is returned when submission starts before the
// session identity was resolved.  Resolution is a precondition of the
// protocol, not something submission performs itself.
var ErrSessionUnresolved = errors.New("session identity not resolved")

// ErrSeatNotSelected is returned when a fare is assigned to a seat
// the customer has not selected.
var ErrSeatNotSelected = errors.New("seat not selected")

// ErrUnknownFare is returned for a fare class code missing from the
// catalog.
var ErrUnknownFare = errors.New("unknown fare class")

// ErrUnknownSnack is returned for a product id missing from the menu.
var ErrUnknownSnack = errors.New("unknown snack product")

// ErrNoExtras is returned when a per-unit choice is made on a product
// that has no extra options.
var ErrNoExtras = errors.New("product has no extra options")

// ErrUnknownOption is returned when a per-unit choice is not one of
// the product's configured options.
var ErrUnknownOption = errors.New("unknown extra option")

// ErrBadUnit is returned when a per-unit choice names a unit index
// outside the current quantity.
var ErrBadUnit = errors.New("unit index out of range")

// ErrNegativeQuantity is returned when a cart quantity below zero is
// requested.
var ErrNegativeQuantity = errors.New("quantity must not be negative")

// ValidationError reports a finalize gate failure with the exact
// message to surface.  RedirectToListing is set when no movie was
// chosen upstream and the customer must go back to the listing
// screen.
type ValidationError struct {
	Message           string
	RedirectToListing bool
}

func (e *ValidationError) Error() string { return e.Message }
