package pdf

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type ProposalData struct {
	Title       string
	PreparedFor string
	PreparedBy  string
	Date        string
	Content     string
}

func (p *PDFProvider) GenerateProposal(ctx context.Context, data ProposalData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, data.Title, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(18,
		text.NewCol(12, "Prepared for "+data.PreparedFor, props.Text{Size: 10, Top: 2}),
	)
	m.AddRow(8,
		text.NewCol(12, "Prepared by "+data.PreparedBy+" on "+data.Date, props.Text{Size: 9}),
	)

	for _, paragraph := range strings.Split(data.Content, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		m.AddRow(18,
			text.NewCol(12, paragraph, props.Text{Size: 10, Top: 2}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
