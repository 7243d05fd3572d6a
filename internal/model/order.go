package model

import "github.com/shopspring/decimal"

// OrderSeat is one seat inside an order: the seat id and the fare
// class the customer assigned to it.  FareClass may be empty when the
// customer never picked one; such seats still occupy a place in the
// hall but priced as zero.
type OrderSeat struct {
	ID        string `json:"id"`
	FareClass string `json:"fare_class"`
}

// Order is the immutable snapshot submitted to the backend when the
// customer confirms the purchase.  It is built only inside the
// checkout's submit transition and discarded together with the visit
// on success.
//
// Fields:
//  CustomerName  – customer's name, required.
//  Email         – customer's email, validated before submission.
//  NationalID    – CPF, optional and never validated here.
//  SessionType   – display label of the chosen presentation format.
//  SessionID     – resolved session identifier scoping the purchase.
//  Showtime      – chosen showtime.
//  Movie         – movie picked on the listing screen.
//  Seats         – selected seats with their fare classes.
//  Snacks        – human-readable snack summary ("Nenhum" when empty).
//  PaymentMethod – chosen payment method.
//  Total         – grand total as computed by the pricing engine.
type Order struct {
	CustomerName  string          `json:"customer_name"`
	Email         string          `json:"email"`
	NationalID    string          `json:"national_id,omitempty"`
	SessionType   string          `json:"session_type"`
	SessionID     string          `json:"session_id"`
	Showtime      string          `json:"showtime"`
	Movie         string          `json:"movie"`
	Seats         []OrderSeat     `json:"seats"`
	Snacks        string          `json:"snacks"`
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
}
