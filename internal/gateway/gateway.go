// Package gateway is the network boundary to the external ticketing
// backend.  The backend is consumed only through its request/response
// contract: it issues session identifiers, reports occupied seats and
// accepts order submissions.  Every call is guarded and converted to
// either a network error or a server error; nothing here panics or
// leaks transport details to callers.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kamilags232/cinestar-checkout/internal/model"
)

// ErrNetwork wraps connection failures and timeouts.  Callers report
// these as a generic connectivity problem.
var ErrNetwork = errors.New("backend unreachable")

// ServerError is a non-success response or a response body that
// fails to parse.  Both cases carry the same treatment: surface the
// server's message when present, else a generic one.
type ServerError struct {
	Status  int    // HTTP status code, 0 when the body was unparseable
	Message string // display message extracted from the body, may be empty
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend error (status %d)", e.Status)
}

// Ack is the backend's acknowledgement of an accepted order.  The
// backend speaks Portuguese on the wire; Mensagem optionally carries
// a display message for the customer.
type Ack struct {
	Mensagem string `json:"mensagem"`
}

// Client talks HTTP to the ticketing backend.
type Client struct {
	base string
	http *http.Client
}

// New builds a Client for the given base URL.  A conservative request
// timeout keeps a dead backend from hanging checkout visits.
func New(baseURL string) *Client {
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchSessionID asks the backend to issue a session identifier.
// GET {base}/session -> {"sessionId": "..."}.
func (c *Client) FetchSessionID(ctx context.Context) (string, error) {
	body, err := c.get(ctx, c.base+"/session")
	if err != nil {
		return "", err
	}
	var out struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.SessionID == "" {
		return "", &ServerError{Message: ""}
	}
	return out.SessionID, nil
}

// OccupiedSeats fetches the set of seats already sold for a session
// identifier.  GET {base}/occupied-seats?sessionId=<id> ->
// {"assentos": ["A1", ...]}.  A missing assentos field is an empty
// hall, not an error.
func (c *Client) OccupiedSeats(ctx context.Context, sessionID string) ([]string, error) {
	u := c.base + "/occupied-seats?sessionId=" + url.QueryEscape(sessionID)
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	var out struct {
		Assentos []string `json:"assentos"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &ServerError{Message: ""}
	}
	return out.Assentos, nil
}

// SubmitOrder posts the order snapshot.  Success requires both a 2xx
// status and a parseable acknowledgement body; anything else is a
// ServerError so the caller keeps the visit intact for a retry.
func (c *Client) SubmitOrder(ctx context.Context, order model.Order) (Ack, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return Ack{}, fmt.Errorf("marshal order: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/order", bytes.NewReader(payload))
	if err != nil {
		return Ack{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Ack{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Ack{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Ack{}, &ServerError{Status: resp.StatusCode, Message: extractMessage(body)}
	}
	var ack Ack
	if err := json.Unmarshal(body, &ack); err != nil {
		return Ack{}, &ServerError{Status: resp.StatusCode, Message: ""}
	}
	return ack, nil
}

// get performs a GET and returns the body for 2xx responses.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{Status: resp.StatusCode, Message: extractMessage(body)}
	}
	return body, nil
}

// extractMessage pulls the backend's display message out of an error
// body when one exists.
func extractMessage(body []byte) string {
	var out struct {
		Mensagem string `json:"mensagem"`
		Error    string `json:"error"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return ""
	}
	if out.Mensagem != "" {
		return out.Mensagem
	}
	return out.Error
}
