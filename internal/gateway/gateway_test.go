package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kamilags232/cinestar-checkout/internal/model"
)

func TestFetchSessionID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/session" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"sessionId": "sess-42"})
	}))
	defer srv.Close()

	id, err := New(srv.URL).FetchSessionID(context.Background())
	if err != nil {
		t.Fatalf("FetchSessionID: %v", err)
	}
	if id != "sess-42" {
		t.Errorf("id = %q", id)
	}
}

func TestFetchSessionIDNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := New(srv.URL).FetchSessionID(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestOccupiedSeats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("sessionId"); got != "sess-42" {
			t.Errorf("sessionId = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string][]string{"assentos": {"A1", "B2"}})
	}))
	defer srv.Close()

	seats, err := New(srv.URL).OccupiedSeats(context.Background(), "sess-42")
	if err != nil {
		t.Fatalf("OccupiedSeats: %v", err)
	}
	if len(seats) != 2 || seats[0] != "A1" || seats[1] != "B2" {
		t.Errorf("seats = %v", seats)
	}
}

func TestOccupiedSeatsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"mensagem": "sessão inválida"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).OccupiedSeats(context.Background(), "x")
	var se *ServerError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if se.Message != "sessão inválida" {
		t.Errorf("message = %q", se.Message)
	}
}

func TestSubmitOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/order" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var got model.Order
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if got.SessionID != "sess-42" || len(got.Seats) != 1 {
			t.Errorf("payload = %+v", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"mensagem": "Compra confirmada!"})
	}))
	defer srv.Close()

	order := model.Order{
		CustomerName: "Maria",
		SessionID:    "sess-42",
		Seats:        []model.OrderSeat{{ID: "A1", FareClass: model.FareInteira}},
		Total:        decimal.NewFromInt(20),
	}
	ack, err := New(srv.URL).SubmitOrder(context.Background(), order)
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	if ack.Mensagem != "Compra confirmada!" {
		t.Errorf("ack = %+v", ack)
	}
}

func TestSubmitOrderUnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).SubmitOrder(context.Background(), model.Order{})
	var se *ServerError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServerError for unparseable ack, got %v", err)
	}
}

func TestSubmitOrderBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"mensagem": "assento já vendido"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).SubmitOrder(context.Background(), model.Order{})
	var se *ServerError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if se.Status != http.StatusBadRequest || se.Message != "assento já vendido" {
		t.Errorf("got %+v", se)
	}
}
