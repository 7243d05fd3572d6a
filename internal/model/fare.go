package model

import "github.com/shopspring/decimal"

// Fare class codes accepted for a seat.  "inteira" is full price;
// every "meia-*" code is a legally mandated half-price category and
// currently shares one base price.
const (
	FareInteira       = "inteira"
	FareMeiaEstudante = "meia-estudante"
	FareMeiaSenior    = "meia-senior"
	FareMeiaPCD       = "meia-pcd"
	FareMeiaAcompPCD  = "meia-acomp-pcd"
	FareMeiaProf      = "meia-prof"
	FareMeiaOutras    = "meia-outras"
)

var (
	fullPrice = decimal.NewFromInt(20)
	halfPrice = decimal.NewFromInt(10)
)

// fareCatalog maps each fare class code to its base price before any
// session multiplier is applied.  The table is fixed configuration
// and must not be mutated at runtime.
var fareCatalog = map[string]decimal.Decimal{
	FareInteira:       fullPrice,
	FareMeiaEstudante: halfPrice,
	FareMeiaSenior:    halfPrice,
	FareMeiaPCD:       halfPrice,
	FareMeiaAcompPCD:  halfPrice,
	FareMeiaOutras:    halfPrice,
	FareMeiaProf:      halfPrice,
}

// FareBasePrice returns the base price for a fare class code.  The
// boolean reports whether the code exists in the catalog; unknown or
// empty (unset) codes return false and must contribute zero to seat
// pricing.
func FareBasePrice(code string) (decimal.Decimal, bool) {
	p, ok := fareCatalog[code]
	return p, ok
}

// FareClasses returns every fare class code in the catalog.  The
// order is not significant; callers that render a picker should sort
// or use their own ordering.
func FareClasses() []string {
	out := make([]string, 0, len(fareCatalog))
	for code := range fareCatalog {
		out = append(out, code)
	}
	return out
}
