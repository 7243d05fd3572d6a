// Package pricing computes itemized and grand totals for a checkout
// visit.  Everything here is pure computation over its inputs; the
// caller re-invokes Quote after any mutation to seats, fares, snacks
// or showing details.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kamilags232/cinestar-checkout/internal/model"
)

var (
	mult3D   = decimal.NewFromFloat(1.12)
	multIMAX = decimal.NewFromFloat(1.25)
)

// Summary is the full price breakdown for the current visit state.
//
// Fields:
//  SeatCount     – number of selected seats, including those with an
//                  unset fare.
//  SeatSubtotal  – sum of per-seat prices.
//  SnackSubtotal – sum of quantity x unit price over the cart.
//  Total         – SeatSubtotal + SnackSubtotal, exactly.
//  SnackLines    – one description per product with quantity > 0.
type Summary struct {
	SeatCount     int             `json:"seat_count"`
	SeatSubtotal  decimal.Decimal `json:"seat_subtotal"`
	SnackSubtotal decimal.Decimal `json:"snack_subtotal"`
	Total         decimal.Decimal `json:"total"`
	SnackLines    []string        `json:"snack_lines"`
}

// SnackLabel joins the snack descriptions for recap and order
// payloads.  An empty cart reads "Nenhum".
func (s Summary) SnackLabel() string {
	if len(s.SnackLines) == 0 {
		return "Nenhum"
	}
	return strings.Join(s.SnackLines, ", ")
}

// SeatPrice prices a single seat: the fare's base price times the
// session multiplier, rounded to the nearest currency unit after the
// multiplication.  Rounding happens per seat, never once on the sum.
// Unset or unknown fare codes price as zero.
func SeatPrice(fareClass, sessionType string) decimal.Decimal {
	base, ok := model.FareBasePrice(fareClass)
	if !ok {
		return decimal.Zero
	}
	switch model.SessionKind(sessionType) {
	case "3D":
		return base.Mul(mult3D).Round(0)
	case "IMAX":
		return base.Mul(multIMAX).Round(0)
	}
	return base
}

// Quote computes the summary for the given seat assignments, session
// type and snack cart.
func Quote(seats []model.OrderSeat, sessionType string, cart []model.SnackLine) Summary {
	sum := Summary{
		SeatCount:     len(seats),
		SeatSubtotal:  decimal.Zero,
		SnackSubtotal: decimal.Zero,
	}
	for _, s := range seats {
		sum.SeatSubtotal = sum.SeatSubtotal.Add(SeatPrice(s.FareClass, sessionType))
	}
	for _, line := range cart {
		if line.Quantity <= 0 {
			continue
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		sum.SnackSubtotal = sum.SnackSubtotal.Add(qty.Mul(line.Product.UnitPrice))
		sum.SnackLines = append(sum.SnackLines, describe(line))
	}
	sum.Total = sum.SeatSubtotal.Add(sum.SnackSubtotal)
	return sum
}

// describe renders one cart line: product name and quantity, plus the
// comma-joined per-unit choices when the product is customizable and
// at least one unit has a choice made.
func describe(line model.SnackLine) string {
	label := fmt.Sprintf("%s (x%d)", line.Product.Name, line.Quantity)
	if !line.Product.RequiresExtra {
		return label
	}
	var chosen []string
	for _, v := range line.Selections {
		if v != "" {
			chosen = append(chosen, v)
		}
	}
	if len(chosen) == 0 {
		return label
	}
	return label + ": " + strings.Join(chosen, ", ")
}
