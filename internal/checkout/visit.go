package checkout

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kamilags232/cinestar-checkout/internal/gateway"
	"github.com/kamilags232/cinestar-checkout/internal/grid"
	"github.com/kamilags232/cinestar-checkout/internal/model"
	"github.com/kamilags232/cinestar-checkout/internal/pricing"
	"github.com/kamilags232/cinestar-checkout/internal/store"
)

// Backend is the slice of the ticketing backend the checkout needs.
// Satisfied by *gateway.Client; tests substitute function-field mocks.
type Backend interface {
	FetchSessionID(ctx context.Context) (string, error)
	OccupiedSeats(ctx context.Context, sessionID string) ([]string, error)
	SubmitOrder(ctx context.Context, order model.Order) (gateway.Ack, error)
}

// Phase is the submission protocol state of a visit.
type Phase string

const (
	PhaseIdle       Phase = "IDLE"
	PhaseConfirming Phase = "CONFIRMING"
	PhaseSubmitting Phase = "SUBMITTING"
)

// SessionState tracks the lifecycle of the visit's session identity.
type SessionState string

const (
	SessionUnset     SessionState = "UNSET"
	SessionResolving SessionState = "RESOLVING"
	SessionResolved  SessionState = "RESOLVED"
)

// Details carries the customer and showing fields of the checkout
// form.  The national id is cosmetic and never required.
type Details struct {
	CustomerName  string `json:"customer_name"`
	Email         string `json:"email"`
	NationalID    string `json:"national_id"`
	Showtime      string `json:"showtime"`
	SessionType   string `json:"session_type"`
	PaymentMethod string `json:"payment_method"`
}

// cartLine is one product's cart state.  selections holds the
// per-unit extra choice for customizable products and always has
// exactly quantity entries for them.
type cartLine struct {
	product    model.SnackProduct
	quantity   int
	selections []string
}

// Visit is the whole state of one checkout screen instance.  Every
// exported method takes the visit lock: there is exactly one mutator
// at a time, and a submission in flight blocks all mutation until it
// finishes.
type Visit struct {
	mu        sync.Mutex
	id        string
	grid      *grid.Grid
	fares     map[string]string // selected seat id -> fare code, "" while unset
	cart      map[string]*cartLine
	details   Details
	phase     Phase
	sessState SessionState
	sessionID string
	backend   Backend
	store     store.Store
}

// NewVisit builds the visit state for a fresh checkout screen.  The
// grid is created exactly once here and lives for the whole visit.
func NewVisit(id string, rows, cols int, backend Backend, st store.Store) (*Visit, error) {
	g, err := grid.New(rows, cols)
	if err != nil {
		return nil, err
	}
	return &Visit{
		id:        id,
		grid:      g,
		fares:     make(map[string]string),
		cart:      make(map[string]*cartLine),
		phase:     PhaseIdle,
		sessState: SessionUnset,
		backend:   backend,
		store:     st,
	}, nil
}

// ID returns the visit identifier.
func (v *Visit) ID() string { return v.id }

// Phase returns the current protocol phase.
func (v *Visit) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// guardMutable rejects state mutation while a submission is running.
func (v *Visit) guardMutable() error {
	if v.phase == PhaseSubmitting {
		return ErrSubmitInFlight
	}
	return nil
}

// ToggleSeat flips a seat's selection and keeps fare slots in step:
// a newly selected seat gets a fresh "unset" slot, a deselected seat
// loses its slot entirely so a later reselect never inherits the old
// fare.  Toggling an occupied seat is a no-op.
func (v *Visit) ToggleSeat(id string) (model.SeatStatus, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.guardMutable(); err != nil {
		return "", err
	}
	if err := v.grid.Toggle(id); err != nil {
		return "", err
	}
	st, _ := v.grid.Status(id)
	switch st {
	case model.SeatSelected:
		v.fares[id] = ""
	case model.SeatAvailable:
		delete(v.fares, id)
	}
	return st, nil
}

// SetFare assigns a fare class to a selected seat.  An empty code
// resets the slot to unset.
func (v *Visit) SetFare(seatID, fareClass string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.guardMutable(); err != nil {
		return err
	}
	if _, ok := v.fares[seatID]; !ok {
		return ErrSeatNotSelected
	}
	if fareClass != "" {
		if _, ok := model.FareBasePrice(fareClass); !ok {
			return ErrUnknownFare
		}
	}
	v.fares[seatID] = fareClass
	return nil
}

// SetSnackQuantity updates a product's quantity.  For customizable
// products the per-unit selections follow the quantity: growing
// appends fresh empty slots and preserves choices already made,
// shrinking discards entries beyond the new length.
func (v *Visit) SetSnackQuantity(productID string, quantity int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.guardMutable(); err != nil {
		return err
	}
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	product, ok := model.SnackByID(productID)
	if !ok {
		return ErrUnknownSnack
	}
	if quantity == 0 {
		delete(v.cart, productID)
		return nil
	}
	line := v.cart[productID]
	if line == nil {
		line = &cartLine{product: product}
		v.cart[productID] = line
	}
	line.quantity = quantity
	if product.RequiresExtra {
		for len(line.selections) < quantity {
			line.selections = append(line.selections, "")
		}
		line.selections = line.selections[:quantity]
	}
	return nil
}

// SetExtraSelection records the extra-option choice for one unit of a
// customizable product.  An empty value clears the unit's choice.
func (v *Visit) SetExtraSelection(productID string, unit int, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.guardMutable(); err != nil {
		return err
	}
	product, ok := model.SnackByID(productID)
	if !ok {
		return ErrUnknownSnack
	}
	if !product.RequiresExtra {
		return ErrNoExtras
	}
	line := v.cart[productID]
	if line == nil || unit < 0 || unit >= line.quantity {
		return ErrBadUnit
	}
	if value != "" && !validOption(product, value) {
		return ErrUnknownOption
	}
	line.selections[unit] = value
	return nil
}

func validOption(p model.SnackProduct, value string) bool {
	for _, opt := range p.Extras {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// SetDetails applies the customer and showing fields.  Occupancy is
// scoped per showing, so a change of showtime or session type
// re-triggers the sync; a sync failure leaves the grid unchanged and
// is returned as warn while the fields still apply.
func (v *Visit) SetDetails(ctx context.Context, d Details) (warn error, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.guardMutable(); err != nil {
		return nil, err
	}
	showingChanged := d.Showtime != v.details.Showtime || d.SessionType != v.details.SessionType
	v.details = d
	if showingChanged && (d.Showtime != "" || d.SessionType != "") {
		warn = v.syncOccupancyLocked(ctx)
	}
	return warn, nil
}

// Details returns a copy of the current form fields.
func (v *Visit) Details() Details {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.details
}

// Seats returns the grid snapshot for rendering.
func (v *Visit) Seats() []model.Seat {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.grid.Seats()
}

// Assignments lists the selected seats with their fare classes,
// ordered by grid position.  Fare may be empty when still unset.
func (v *Visit) Assignments() []model.OrderSeat {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.assignmentsLocked()
}

func (v *Visit) assignmentsLocked() []model.OrderSeat {
	selected := v.grid.Selected()
	out := make([]model.OrderSeat, 0, len(selected))
	for _, id := range selected {
		out = append(out, model.OrderSeat{ID: id, FareClass: v.fares[id]})
	}
	return out
}

// Cart returns the snack lines in menu order.
func (v *Visit) Cart() []model.SnackLine {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cartLocked()
}

func (v *Visit) cartLocked() []model.SnackLine {
	var out []model.SnackLine
	for _, p := range model.SnackMenu() {
		line := v.cart[p.ID]
		if line == nil {
			continue
		}
		selections := make([]string, len(line.selections))
		copy(selections, line.selections)
		out = append(out, model.SnackLine{
			Product:    line.product,
			Quantity:   line.quantity,
			Selections: selections,
		})
	}
	return out
}

// Summary re-runs the pricing engine over the current state.
func (v *Visit) Summary() pricing.Summary {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.summaryLocked()
}

func (v *Visit) summaryLocked() pricing.Summary {
	return pricing.Quote(v.assignmentsLocked(), v.details.SessionType, v.cartLocked())
}

// ResolveSession obtains the visit's session identifier, once.  A
// persisted identifier wins without a network call; otherwise the
// backend issues one, and on any failure a locally generated,
// provenance-tagged identifier is synthesized instead.  Resolution
// never fails outward.
func (v *Visit) ResolveSession(ctx context.Context) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.resolveSessionLocked(ctx)
}

func (v *Visit) resolveSessionLocked(ctx context.Context) string {
	if v.sessState == SessionResolved {
		return v.sessionID
	}
	v.sessState = SessionResolving
	if persisted, err := v.store.Get(ctx, v.id, store.KeySessionID); err == nil && persisted != "" {
		v.sessionID = persisted
		v.sessState = SessionResolved
		return v.sessionID
	}
	id, err := v.backend.FetchSessionID(ctx)
	if err != nil || id == "" {
		id = localSessionID()
		log.Printf("checkout: backend session unavailable, using local id %s", id)
	}
	if err := v.store.Set(ctx, v.id, store.KeySessionID, id); err != nil {
		log.Printf("checkout: persist session id: %v", err)
	}
	v.sessionID = id
	v.sessState = SessionResolved
	return v.sessionID
}

// localSessionID synthesizes a fallback identifier.  The "local-"
// prefix keeps it distinguishable from a server-issued one.
func localSessionID() string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("local-%d", time.Now().UnixMilli())
	}
	return fmt.Sprintf("local-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}

// SyncOccupancy reconciles the backend's sold-seat set into the grid.
// Session resolution strictly precedes the fetch.  On failure the
// grid is left unchanged and the error is reported as a warning; the
// sync is never retried automatically.
func (v *Visit) SyncOccupancy(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.syncOccupancyLocked(ctx)
}

func (v *Visit) syncOccupancyLocked(ctx context.Context) error {
	sessionID := v.resolveSessionLocked(ctx)
	occupied, err := v.backend.OccupiedSeats(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("occupancy sync: %w", err)
	}
	v.grid.MarkOccupied(occupied)
	// a sync may steal a selected seat; its fare slot goes with it
	for id := range v.fares {
		if st, _ := v.grid.Status(id); st != model.SeatSelected {
			delete(v.fares, id)
		}
	}
	return nil
}
