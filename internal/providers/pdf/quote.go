package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type QuoteData struct {
	OwnerName   string
	OwnerEmail  string
	QuoteNumber string
	Title       string
	IssueDate   string
	ValidUntil  string

	BillToName    string
	BillToCompany string
	BillToEmail   string

	ProjectName string

	Items []QuoteItem

	Subtotal       string
	TaxLabel       string
	TaxAmount      string
	DiscountLabel  string
	DiscountAmount string
	Total          string

	Notes string
}

type QuoteItem struct {
	Name        string
	Description string
	Quantity    string
	Unit        string
	Rate        string
	Amount      string
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateQuote(ctx context.Context, data QuoteData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(10,
		text.NewCol(12, "Quote", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Quote number: "+data.QuoteNumber, props.Text{Top: 0}),
			text.New("Date of issue: "+data.IssueDate, props.Text{Top: 4}),
			text.New("Valid until: "+data.ValidUntil, props.Text{Top: 8}),
			text.New("Project: "+data.ProjectName, props.Text{Top: 12}),
		),
		col.New(6),
	)

	m.AddRow(35,
		col.New(6).Add(
			text.New(data.OwnerName, props.Text{Style: fontstyle.Bold}),
			text.New(data.OwnerEmail, props.Text{Top: 5}),
		),
		col.New(6).Add(
			text.New("Prepared for", props.Text{Style: fontstyle.Bold}),
			text.New(data.BillToName, props.Text{Top: 5}),
			text.New(data.BillToCompany, props.Text{Top: 9}),
			text.New(data.BillToEmail, props.Text{Top: 13}),
		),
	)

	m.AddRow(12,
		text.NewCol(12, data.Title, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Top:   2,
		}),
	)

	m.AddRow(10,
		text.NewCol(5, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Unit", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range data.Items {
		label := item.Name
		if item.Description != "" {
			label = fmt.Sprintf("%s — %s", item.Name, item.Description)
		}
		m.AddRow(12,
			text.NewCol(5, label, props.Text{Size: 9}),
			text.NewCol(2, item.Quantity, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, item.Unit, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Rate, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, data.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, data.TaxLabel, props.Text{Size: 9}),
		text.NewCol(2, data.TaxAmount, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, data.DiscountLabel, props.Text{Size: 9}),
		text.NewCol(2, data.DiscountAmount, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, data.Total, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	if data.Notes != "" {
		m.AddRow(20,
			text.NewCol(12, "Notes: "+data.Notes, props.Text{Size: 9, Top: 4}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
