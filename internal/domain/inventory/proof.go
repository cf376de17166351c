package inventory

import "github.com/shopspring/decimal"

var (
	hundred     = decimal.NewFromInt(100)
	gallonUnits = map[string]bool{"gal": true, "gallon": true, "gallons": true}
)

// ProofGallons returns gallons * proof / 100 (27 CFR 19). Quantities not
// measured in gallons have no proof gallons and return nil.
func ProofGallons(quantity decimal.Decimal, unit string, proof *decimal.Decimal) *decimal.Decimal {
	if proof == nil || !gallonUnits[NormalizeUnit(unit)] {
		return nil
	}
	pg := quantity.Mul(*proof).Div(hundred).Round(4)
	return &pg
}
