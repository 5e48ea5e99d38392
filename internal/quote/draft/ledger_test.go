package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestNewDraftStartsWithOneItem(t *testing.T) {
	d := NewDraft()

	assert.Len(t, d.Items, 1)
	assert.Equal(t, 1.0, d.Items[0].Quantity)
	assert.Equal(t, 0.0, d.Items[0].Rate)
}

func TestAddItemAppendsDefaults(t *testing.T) {
	d := NewDraft()
	d.AddItem()
	d.AddItem()

	assert.Len(t, d.Items, 3)
	last := d.Items[2]
	assert.Equal(t, 1.0, last.Quantity)
	assert.Equal(t, 0.0, last.Rate)
	assert.Equal(t, 0.0, last.Amount)
}

func TestUpdateItemRestampsAmount(t *testing.T) {
	d := NewDraft()
	d.UpdateItem(0, ItemPatch{Rate: floatPtr(150)})
	assert.Equal(t, 150.0, d.Items[0].Amount)

	d.UpdateItem(0, ItemPatch{Quantity: floatPtr(4)})
	assert.Equal(t, 600.0, d.Items[0].Amount)
	assert.Equal(t, 600.0, d.Subtotal)

	// Non-money fields leave the amount alone.
	d.UpdateItem(0, ItemPatch{Name: strPtr("Design sprint")})
	assert.Equal(t, 600.0, d.Items[0].Amount)
}

func TestUpdateItemAmountNeverStale(t *testing.T) {
	d := NewDraft()
	d.UpdateItem(0, ItemPatch{Rate: floatPtr(75)})

	for _, q := range []float64{0, 1, 2.5, 10} {
		d.UpdateItem(0, ItemPatch{Quantity: floatPtr(q)})
		assert.Equal(t, q*d.Items[0].Rate, d.Items[0].Amount)
	}
}

func TestRemoveItemKeepsMinimumOne(t *testing.T) {
	d := NewDraft()
	d.UpdateItem(0, ItemPatch{Name: strPtr("Only item")})

	d.RemoveItem(0)

	assert.Len(t, d.Items, 1)
	assert.Equal(t, "Only item", d.Items[0].Name)
}

func TestRemoveItemDropsByIndex(t *testing.T) {
	d := NewDraft()
	d.UpdateItem(0, ItemPatch{Name: strPtr("first")})
	d.AddItem()
	d.UpdateItem(1, ItemPatch{Name: strPtr("second")})
	d.AddItem()
	d.UpdateItem(2, ItemPatch{Name: strPtr("third")})

	d.RemoveItem(1)

	assert.Len(t, d.Items, 2)
	assert.Equal(t, "first", d.Items[0].Name)
	assert.Equal(t, "third", d.Items[1].Name)
}

func TestMutationsRecomputeTotals(t *testing.T) {
	d := NewDraft()
	d.UpdateItem(0, ItemPatch{Quantity: floatPtr(2), Rate: floatPtr(150)})
	d.AddItem()
	d.UpdateItem(1, ItemPatch{Quantity: floatPtr(1), Rate: floatPtr(400)})
	d.SetTax(10)
	d.SetDiscount(5)

	assert.InDelta(t, 700.0, d.Subtotal, 1e-9)
	assert.InDelta(t, 70.0, d.TaxAmount, 1e-9)
	assert.InDelta(t, 35.0, d.DiscountAmount, 1e-9)
	assert.InDelta(t, 735.0, d.Total, 1e-9)

	d.RemoveItem(1)
	assert.InDelta(t, 300.0, d.Subtotal, 1e-9)
	assert.InDelta(t, 315.0, d.Total, 1e-9)
}

func TestUpdateItemOutOfRangePanics(t *testing.T) {
	d := NewDraft()
	assert.Panics(t, func() { d.UpdateItem(5, ItemPatch{}) })
	assert.Panics(t, func() { d.UpdateItem(-1, ItemPatch{}) })
}
