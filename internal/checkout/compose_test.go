package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kamilags232/cinestar-checkout/internal/gateway"
	"github.com/kamilags232/cinestar-checkout/internal/model"
	"github.com/kamilags232/cinestar-checkout/internal/store"
)

// readyVisit builds a visit with a movie persisted, a full valid form
// and two seats with fares, matching the worked pricing example.
func readyVisit(t *testing.T, backend *mockBackend) (*Visit, *store.Memory) {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemory()
	if err := st.Set(ctx, "visit-1", store.KeySelectedMovie, "O Poderoso Chefão"); err != nil {
		t.Fatal(err)
	}
	v := newTestVisit(t, backend, st)
	if _, err := v.SetDetails(ctx, Details{
		CustomerName:  "Maria Silva",
		Email:         "maria@email.com",
		Showtime:      "21h",
		SessionType:   "IMAX-leg",
		PaymentMethod: "pix",
	}); err != nil {
		t.Fatal(err)
	}
	for seat, fare := range map[string]string{"A1": model.FareInteira, "A2": model.FareMeiaEstudante} {
		if _, err := v.ToggleSeat(seat); err != nil {
			t.Fatal(err)
		}
		if err := v.SetFare(seat, fare); err != nil {
			t.Fatal(err)
		}
	}
	if err := v.SetSnackQuantity("refrigerante", 2); err != nil {
		t.Fatal(err)
	}
	v.ResolveSession(ctx)
	return v, st
}

func TestFinalizeValidationGate(t *testing.T) {
	ctx := context.Background()
	backend := &mockBackend{}
	v, _ := readyVisit(t, backend)

	// name cleared: generic message, stays Idle, no network call
	d := v.Details()
	d.CustomerName = ""
	if _, err := v.SetDetails(ctx, d); err != nil {
		t.Fatal(err)
	}
	_, err := v.Finalize(ctx)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message != msgFillAll || ve.RedirectToListing {
		t.Errorf("got %+v", ve)
	}
	if v.Phase() != PhaseIdle {
		t.Errorf("phase = %s", v.Phase())
	}
	if backend.submitCalls != 0 {
		t.Error("validation failure reached the network")
	}
}

func TestFinalizeEmailSpecificMessage(t *testing.T) {
	ctx := context.Background()
	v, _ := readyVisit(t, &mockBackend{})
	d := v.Details()
	d.Email = "not-an-email"
	if _, err := v.SetDetails(ctx, d); err != nil {
		t.Fatal(err)
	}
	_, err := v.Finalize(ctx)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Message != msgBadEmail {
		t.Fatalf("got %v", err)
	}
}

func TestFinalizeNationalIDNeverRequired(t *testing.T) {
	ctx := context.Background()
	v, _ := readyVisit(t, &mockBackend{})
	// readyVisit leaves NationalID empty on purpose
	if _, err := v.Finalize(ctx); err != nil {
		t.Fatalf("finalize without CPF: %v", err)
	}
}

func TestFinalizeWithoutMovieRedirects(t *testing.T) {
	ctx := context.Background()
	v := newTestVisit(t, &mockBackend{}, store.NewMemory())
	_, err := v.Finalize(ctx)
	var ve *ValidationError
	if !errors.As(err, &ve) || !ve.RedirectToListing {
		t.Fatalf("got %v", err)
	}
}

func TestFinalizeRequiresSelectedSeat(t *testing.T) {
	ctx := context.Background()
	v, _ := readyVisit(t, &mockBackend{})
	for _, id := range []string{"A1", "A2"} {
		if _, err := v.ToggleSeat(id); err != nil {
			t.Fatal(err)
		}
	}
	_, err := v.Finalize(ctx)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Message != msgFillAll {
		t.Fatalf("got %v", err)
	}
}

func TestFinalizeRecap(t *testing.T) {
	ctx := context.Background()
	v, _ := readyVisit(t, &mockBackend{})
	recap, err := v.Finalize(ctx)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if recap.Movie != "O Poderoso Chefão" {
		t.Errorf("movie = %q", recap.Movie)
	}
	if recap.SessionLabel != "IMAX Legendado" {
		t.Errorf("session label = %q", recap.SessionLabel)
	}
	if recap.SeatCount != 2 {
		t.Errorf("seat count = %d", recap.SeatCount)
	}
	if recap.Snacks != "Refrigerante 500ml (x2)" {
		t.Errorf("snacks = %q", recap.Snacks)
	}
	// worked example: 25 + 13 seats, 16 snacks
	if !recap.Total.Equal(decimal.NewFromInt(54)) {
		t.Errorf("total = %s, want 54", recap.Total)
	}
	if v.Phase() != PhaseConfirming {
		t.Errorf("phase = %s", v.Phase())
	}
}

func TestCancelReturnsToIdleWithoutMutation(t *testing.T) {
	ctx := context.Background()
	backend := &mockBackend{}
	v, _ := readyVisit(t, backend)
	if _, err := v.Finalize(ctx); err != nil {
		t.Fatal(err)
	}
	if err := v.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if v.Phase() != PhaseIdle {
		t.Errorf("phase = %s", v.Phase())
	}
	if backend.submitCalls != 0 {
		t.Error("cancel caused network traffic")
	}
	if len(v.Assignments()) != 2 {
		t.Error("cancel mutated selections")
	}
}

func TestConfirmRequiresConfirmingPhase(t *testing.T) {
	ctx := context.Background()
	v, _ := readyVisit(t, &mockBackend{})
	if _, err := v.Confirm(ctx); !errors.Is(err, ErrNotConfirming) {
		t.Fatalf("got %v", err)
	}
}

func TestConfirmSuccessClearsPersistedKeys(t *testing.T) {
	ctx := context.Background()
	var submitted model.Order
	backend := &mockBackend{
		submitFn: func(ctx context.Context, order model.Order) (gateway.Ack, error) {
			submitted = order
			return gateway.Ack{Mensagem: "Compra confirmada!"}, nil
		},
	}
	v, st := readyVisit(t, backend)
	if _, err := v.Finalize(ctx); err != nil {
		t.Fatal(err)
	}
	out, err := v.Confirm(ctx)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if out.Message != "Compra confirmada!" {
		t.Errorf("message = %q", out.Message)
	}
	if out.RedirectAfterSeconds != 20 {
		t.Errorf("redirect window = %d", out.RedirectAfterSeconds)
	}

	// the order snapshot carries seats with fares and the grand total
	if len(submitted.Seats) != 2 || submitted.Seats[0].ID != "A1" || submitted.Seats[0].FareClass != model.FareInteira {
		t.Errorf("seats = %+v", submitted.Seats)
	}
	if !submitted.Total.Equal(decimal.NewFromInt(54)) {
		t.Errorf("total = %s", submitted.Total)
	}
	if submitted.SessionID == "" {
		t.Error("order missing session id")
	}

	// both persisted keys cleared together
	if movie, _ := st.Get(ctx, "visit-1", store.KeySelectedMovie); movie != "" {
		t.Errorf("selectedMovie survived: %q", movie)
	}
	if sess, _ := st.Get(ctx, "visit-1", store.KeySessionID); sess != "" {
		t.Errorf("sessionId survived: %q", sess)
	}
}

func TestConfirmFailureKeepsEverything(t *testing.T) {
	ctx := context.Background()
	backend := &mockBackend{
		submitFn: func(ctx context.Context, order model.Order) (gateway.Ack, error) {
			return gateway.Ack{}, &gateway.ServerError{Status: 500, Message: "sala esgotada"}
		},
	}
	v, st := readyVisit(t, backend)
	if _, err := v.Finalize(ctx); err != nil {
		t.Fatal(err)
	}
	_, err := v.Confirm(ctx)
	var se *gateway.ServerError
	if !errors.As(err, &se) || se.Message != "sala esgotada" {
		t.Fatalf("got %v", err)
	}
	if v.Phase() != PhaseIdle {
		t.Errorf("phase after failure = %s", v.Phase())
	}
	// nothing cleared, selections intact, retry possible
	if movie, _ := st.Get(ctx, "visit-1", store.KeySelectedMovie); movie == "" {
		t.Error("selectedMovie cleared on failure")
	}
	if sess, _ := st.Get(ctx, "visit-1", store.KeySessionID); sess == "" {
		t.Error("sessionId cleared on failure")
	}
	if len(v.Assignments()) != 2 {
		t.Error("selections lost on failure")
	}
	if _, err := v.Finalize(ctx); err != nil {
		t.Errorf("retry finalize after failure: %v", err)
	}
}

func TestConfirmUnparseableAckFails(t *testing.T) {
	ctx := context.Background()
	backend := &mockBackend{
		submitFn: func(ctx context.Context, order model.Order) (gateway.Ack, error) {
			return gateway.Ack{}, &gateway.ServerError{Status: 200}
		},
	}
	v, st := readyVisit(t, backend)
	if _, err := v.Finalize(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := v.Confirm(ctx); err == nil {
		t.Fatal("expected failure for unparseable acknowledgement")
	}
	if movie, _ := st.Get(ctx, "visit-1", store.KeySelectedMovie); movie == "" {
		t.Error("state cleared despite failed submission")
	}
}

func TestFinalizeRejectedWhileConfirming(t *testing.T) {
	ctx := context.Background()
	v, _ := readyVisit(t, &mockBackend{})
	if _, err := v.Finalize(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := v.Finalize(ctx); !errors.Is(err, ErrNotIdle) {
		t.Fatalf("got %v", err)
	}
}
