package utils

import (
	"github.com/shopspring/decimal"
)

// NextSortKey returns the sort key for a row appended after the current
// maximum sibling key: max+1, or 1 when the list is empty. Sort keys are
// arbitrary-precision decimals; floating point is unsafe for long-lived
// keys. The engine only ever appends, so no midpoint-bisection or
// rebalancing exists — reordering, if ever exposed, must renumber
// explicitly.
func NextSortKey(max *decimal.Decimal) decimal.Decimal {
	if max == nil {
		return decimal.NewFromInt(1)
	}
	return max.Add(decimal.NewFromInt(1))
}
