package inventory

import "github.com/shopspring/decimal"

// CostCalculator implements the weighted average unit cost used when a receipt
// is merged into an existing row:
// newCost = (existingTotalCost + incomingQty*incomingCost) / (existingQty + incomingQty)
func CostCalculator(existingQty, existingTotalCost, incomingQty, incomingCost decimal.Decimal) decimal.Decimal {
	sum := existingQty.Add(incomingQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := existingTotalCost.Add(incomingQty.Mul(incomingCost))
	return num.Div(sum)
}
