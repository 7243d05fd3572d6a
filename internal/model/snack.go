package model

import "github.com/shopspring/decimal"

// ExtraOption is one choice a customer can make for a single unit of
// a customizable snack (e.g. a popcorn flavor).
//
// Fields:
//  Value – machine value stored per unit.
//  Label – display text for the option.
type ExtraOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SnackProduct describes one item of the snack menu.  Products with
// RequiresExtra true carry an ordered list of options and the cart
// records one chosen option per unit.  The catalog is immutable
// configuration: option lists are loaded once and never rebuilt from
// rendered state.
//
// Fields:
//  ID            – catalog identifier.
//  Name          – display name used in summaries and order payloads.
//  UnitPrice     – price per unit; extras never change it.
//  RequiresExtra – whether each unit needs an extra-option choice.
//  ExtraLabel    – prompt for the per-unit choice (e.g. "Sabor").
//  Extras        – ordered options, empty when RequiresExtra is false.
type SnackProduct struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	RequiresExtra bool          `json:"requires_extra"`
	ExtraLabel    string        `json:"extra_label,omitempty"`
	Extras        []ExtraOption `json:"extras,omitempty"`
}

// SnackLine is one cart entry: a product plus the quantity chosen and,
// for customizable products, the extra-option value picked for each
// unit.  Selections are keyed by unit index: shrinking the quantity
// truncates the slice and growing it appends empty slots, so choices
// already made for existing units survive quantity changes.
//
// Fields:
//  Product    – the catalog product this line refers to.
//  Quantity   – number of units, never negative.
//  Selections – chosen extra value per unit; len == Quantity for
//               customizable products, empty otherwise.
type SnackLine struct {
	Product    SnackProduct `json:"product"`
	Quantity   int          `json:"quantity"`
	Selections []string     `json:"selections,omitempty"`
}

// snackCatalog is the fixed snack menu for the checkout.  Prices are
// per unit.
var snackCatalog = []SnackProduct{
	{
		ID:            "pipoca-grande",
		Name:          "Pipoca Grande",
		UnitPrice:     decimal.NewFromInt(12),
		RequiresExtra: true,
		ExtraLabel:    "Sabor",
		Extras: []ExtraOption{
			{Value: "salgada", Label: "Salgada"},
			{Value: "doce", Label: "Doce"},
			{Value: "mista", Label: "Mista"},
		},
	},
	{
		ID:        "refrigerante",
		Name:      "Refrigerante 500ml",
		UnitPrice: decimal.NewFromInt(8),
	},
	{
		ID:            "fini",
		Name:          "Fini",
		UnitPrice:     decimal.NewFromInt(10),
		RequiresExtra: true,
		ExtraLabel:    "Tipo",
		Extras: []ExtraOption{
			{Value: "tubes", Label: "Tubes"},
			{Value: "bananas", Label: "Bananas"},
			{Value: "dentaduras", Label: "Dentaduras"},
		},
	},
	{
		ID:        "chocolate",
		Name:      "Chocolate",
		UnitPrice: decimal.NewFromInt(7),
	},
}

// SnackMenu returns the configured snack products in display order.
func SnackMenu() []SnackProduct {
	out := make([]SnackProduct, len(snackCatalog))
	copy(out, snackCatalog)
	return out
}

// SnackByID looks a product up by its catalog identifier.
func SnackByID(id string) (SnackProduct, bool) {
	for _, p := range snackCatalog {
		if p.ID == id {
			return p, true
		}
	}
	return SnackProduct{}, false
}
