package draft

import "fmt"

// ItemPatch carries the fields of a line item update. Nil fields are
// left untouched.
type ItemPatch struct {
	ItemType    *ItemType
	Name        *string
	Description *string
	Quantity    *float64
	Unit        *Unit
	Rate        *float64
}

// AddItem appends a line item with defaults. There is no upper bound on
// ledger size.
func (d *Draft) AddItem() {
	d.Items = append(d.Items, NewLineItem())
	d.Recompute()
}

// UpdateItem applies a patch to the item at index. When quantity or rate
// changes, the item's amount is restamped in the same operation so no
// reader ever observes a stale amount. An out-of-range index is a
// caller bug and panics.
func (d *Draft) UpdateItem(index int, patch ItemPatch) {
	if index < 0 || index >= len(d.Items) {
		panic(fmt.Sprintf("draft: item index %d out of range (len %d)", index, len(d.Items)))
	}

	item := &d.Items[index]
	if patch.ItemType != nil {
		item.ItemType = *patch.ItemType
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Rate != nil {
		item.Rate = *patch.Rate
	}
	if patch.Quantity != nil || patch.Rate != nil {
		item.Amount = item.Quantity * item.Rate
	}

	d.Recompute()
}

// RemoveItem drops the item at index unless it is the last one: a quote
// always keeps at least one line, so removing the final item is a no-op.
func (d *Draft) RemoveItem(index int) {
	if len(d.Items) <= 1 {
		return
	}
	if index < 0 || index >= len(d.Items) {
		panic(fmt.Sprintf("draft: item index %d out of range (len %d)", index, len(d.Items)))
	}

	d.Items = append(d.Items[:index], d.Items[index+1:]...)
	d.Recompute()
}
