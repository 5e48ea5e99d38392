package draft

import (
	"fmt"

	"github.com/lancerkit/lancer/internal/refs"
)

type ItemType string

const (
	ItemTypeService ItemType = "service"
	ItemTypeProduct ItemType = "product"
	ItemTypeHour    ItemType = "hour"
	ItemTypeFixed   ItemType = "fixed"
)

type Unit string

const (
	UnitPiece   Unit = "piece"
	UnitHour    Unit = "hour"
	UnitDay     Unit = "day"
	UnitWeek    Unit = "week"
	UnitMonth   Unit = "month"
	UnitProject Unit = "project"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyCAD Currency = "CAD"
)

// ClientInfo is the populated wire shape of a client reference.
type ClientInfo struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Company   string `json:"company"`
}

func (c ClientInfo) EntityID() string { return c.ID }

// ProjectInfo is the populated wire shape of a project reference. Its
// client field carries the same dual-shape rule as any other reference.
type ProjectInfo struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Budget      float64              `json:"budget"`
	Client      refs.Ref[ClientInfo] `json:"clientId"`
}

func (p ProjectInfo) EntityID() string { return p.ID }

// LineItem is a single quote line. Amount is derived from quantity and
// rate and is restamped by every mutation that touches either input.
type LineItem struct {
	ItemType    ItemType `json:"itemType"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	Unit        Unit     `json:"unit"`
	Rate        float64  `json:"rate"`
	Amount      float64  `json:"amount"`
}

// NewLineItem returns a line item with ledger defaults.
func NewLineItem() LineItem {
	return LineItem{
		ItemType: ItemTypeService,
		Quantity: 1,
		Unit:     UnitHour,
		Rate:     0,
		Amount:   0,
	}
}

// Draft is a quote under composition. It has no identity until the
// assembler produces a payload and the quote service persists it.
type Draft struct {
	Title       string
	Description string
	Client      refs.Ref[ClientInfo]
	Project     refs.Ref[ProjectInfo]
	ClientEmail string
	ValidUntil  string
	Items       []LineItem
	Tax         float64
	Discount    float64
	Currency    Currency
	Notes       string

	// Derived money fields, outputs of ComputeTotals only.
	Subtotal       float64
	TaxAmount      float64
	DiscountAmount float64
	Total          float64
}

// NewDraft returns a draft with one default line item, satisfying the
// minimum-1 invariant from the start.
func NewDraft() *Draft {
	d := &Draft{
		Currency: CurrencyUSD,
		Items:    []LineItem{NewLineItem()},
	}
	d.Recompute()
	return d
}

// SetClient switches the draft's client. The previously chosen project is
// only valid within the old client's scope, so it is cleared whenever the
// client actually changes.
func (d *Draft) SetClient(client refs.Ref[ClientInfo]) {
	if d.Client.ID() == client.ID() {
		d.Client = client
		return
	}
	d.Client = client
	d.Project = refs.Ref[ProjectInfo]{}
}

// SetProject attaches a project and reseeds the ledger with the project's
// default line item, replacing whatever was there.
func (d *Draft) SetProject(project ProjectInfo) {
	d.Project = refs.FromEntity(project)
	d.Items = []LineItem{DefaultLineItemForProject(project)}
	d.Recompute()
}

// Recompute refreshes the derived money fields from items, tax and
// discount. Totals are always rebuilt wholesale, never patched.
func (d *Draft) Recompute() {
	totals := ComputeTotals(d.Items, d.Tax, d.Discount)
	d.Subtotal = totals.Subtotal
	d.TaxAmount = totals.TaxAmount
	d.DiscountAmount = totals.DiscountAmount
	d.Total = totals.Total
}

// SetTax updates the tax percentage and recomputes totals.
func (d *Draft) SetTax(pct float64) {
	d.Tax = pct
	d.Recompute()
}

// SetDiscount updates the discount percentage and recomputes totals.
func (d *Draft) SetDiscount(pct float64) {
	d.Discount = pct
	d.Recompute()
}

func itemLabel(index int) string {
	return fmt.Sprintf("Item %d", index+1)
}
