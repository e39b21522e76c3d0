package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNextSortKey(t *testing.T) {
	t.Run("no siblings starts at 1", func(t *testing.T) {
		got := NextSortKey(nil)
		if !got.Equal(decimal.NewFromInt(1)) {
			t.Errorf("NextSortKey(nil) = %s, want 1", got)
		}
	})

	t.Run("appends after max", func(t *testing.T) {
		max := decimal.NewFromInt(7)
		got := NextSortKey(&max)
		if !got.Equal(decimal.NewFromInt(8)) {
			t.Errorf("NextSortKey(7) = %s, want 8", got)
		}
	})

	t.Run("fractional max preserved exactly", func(t *testing.T) {
		// Keys can be sparse decimals left over from older data; addition
		// must stay exact, not drift like a float would.
		max := decimal.RequireFromString("2.5000000000000001")
		got := NextSortKey(&max)
		want := decimal.RequireFromString("3.5000000000000001")
		if !got.Equal(want) {
			t.Errorf("NextSortKey(%s) = %s, want %s", max, got, want)
		}
	})

	t.Run("sequence is strictly increasing", func(t *testing.T) {
		var max *decimal.Decimal
		prev := decimal.NewFromInt(0)
		for i := 0; i < 50; i++ {
			next := NextSortKey(max)
			if !next.GreaterThan(prev) {
				t.Fatalf("key %s not greater than previous %s", next, prev)
			}
			prev = next
			max = &next
		}
	})
}
