package draft

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	items := []LineItem{
		{Quantity: 2, Rate: 150},
		{Quantity: 1, Rate: 400},
	}

	totals := ComputeTotals(items, 10, 5)

	assert.InDelta(t, 700.0, totals.Subtotal, 1e-9)
	assert.InDelta(t, 70.0, totals.TaxAmount, 1e-9)
	assert.InDelta(t, 35.0, totals.DiscountAmount, 1e-9)
	assert.InDelta(t, 735.0, totals.Total, 1e-9)
}

func TestComputeTotalsEmptyItems(t *testing.T) {
	totals := ComputeTotals(nil, 10, 5)

	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.TaxAmount)
	assert.Equal(t, 0.0, totals.DiscountAmount)
	assert.Equal(t, 0.0, totals.Total)
}

func TestComputeTotalsSubtotalIsExactSum(t *testing.T) {
	items := []LineItem{
		{Quantity: 0.5, Rate: 99.99},
		{Quantity: 3, Rate: 12.5},
		{Quantity: 0, Rate: 500},
	}

	want := 0.5*99.99 + 3*12.5
	totals := ComputeTotals(items, 0, 0)

	assert.True(t, math.Abs(totals.Subtotal-want) < 1e-9)
	assert.InDelta(t, want, totals.Total, 1e-9)
}

func TestComputeTotalsNegativeTotalNotClamped(t *testing.T) {
	items := []LineItem{{Quantity: 1, Rate: 100}}

	totals := ComputeTotals(items, 0, 100)
	assert.InDelta(t, 0.0, totals.Total, 1e-9)

	totals = ComputeTotals(items, 0, 150)
	assert.InDelta(t, -50.0, totals.Total, 1e-9)
}
