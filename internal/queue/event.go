// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderConfirmedEvent is published when the backend accepts an order
// submission.  It contains enough information for downstream consumers
// to log, notify, or trigger analytics without calling the backend.
type OrderConfirmedEvent struct {
	VisitID       string   `json:"visit_id"`
	SessionID     string   `json:"session_id"`
	Movie         string   `json:"movie"`
	SessionType   string   `json:"session_type"`
	Showtime      string   `json:"showtime"`
	Seats         []string `json:"seats"`
	Snacks        string   `json:"snacks"`
	PaymentMethod string   `json:"payment_method"`
	Total         string   `json:"total"`
	ConfirmedAt   string   `json:"confirmed_at"`
}
