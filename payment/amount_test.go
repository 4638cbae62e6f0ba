package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{100, 10000},
		{50000, MaxAmount},
		{40000, MaxAmount},
		{39999.99, 3999999},
		{19.99, 1999},
		{0.015, 2},
		{0, 0},
		{1e9, MaxAmount},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MinorUnits(tc.amount), "amount %v", tc.amount)
	}
}

func TestMinorUnits_NeverExceedsCap(t *testing.T) {
	for amount := 0.0; amount < 100000; amount += 137.37 {
		got := MinorUnits(amount)
		assert.LessOrEqual(t, got, MaxAmount)
		if amount*100 <= float64(MaxAmount)-1 {
			assert.InDelta(t, amount*100, float64(got), 0.5)
		}
	}
}
