package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateProposalPDF creates the client-facing proposal document using
// maroto/v2. It accepts only ClientExportData, which is built from the
// sanitized summary, so costs and margins cannot reach this renderer.
func GenerateProposalPDF(data ClientExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.Letter).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addProposalHeader(m, data)
	addProposalScreensTable(m, data)
	addProposalTotals(m, data)
	addProposalAmountInWords(m, data)
	addProposalSignatures(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate proposal PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addProposalHeader adds the proposal title, "SALES PROPOSAL" banner, client
// name, and date.
func addProposalHeader(m core.Maroto, data ClientExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(data.Title, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New("SALES PROPOSAL", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmtField("Prepared for", data.ClientName), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(6).Add(
				text.New(fmtField("Date", data.CreatedDate), props.Text{
					Size:  8,
					Align: align.Right,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

// addProposalScreensTable adds the display line items table.
func addProposalScreensTable(m core.Maroto, data ClientExportData) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(5).Add(text.New("Display", headerTextLeft)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Size", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Price", headerText)).WithStyle(&headerCell),
		),
	)

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}

	for i, line := range data.Lines {
		bodyTextLeft := props.Text{Size: 8, Align: align.Left}
		bodyTextCenter := props.Text{Size: 8, Align: align.Center}
		bodyTextRight := props.Text{Size: 8, Align: align.Right}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altBg}
		}

		colName := col.New(5).Add(text.New(line.Name, bodyTextLeft))
		colSize := col.New(3).Add(text.New(line.Size, bodyTextCenter))
		colQty := col.New(1).Add(text.New(fmt.Sprintf("%d", line.Quantity), bodyTextCenter))
		colPrice := col.New(3).Add(text.New(line.Price, bodyTextRight))

		if cellStyle != nil {
			colName = colName.WithStyle(cellStyle)
			colSize = colSize.WithStyle(cellStyle)
			colQty = colQty.WithStyle(cellStyle)
			colPrice = colPrice.WithStyle(cellStyle)
		}

		m.AddRows(row.New(7).Add(colName, colSize, colQty, colPrice))
	}

	m.AddRows(row.New(2))
}

// addProposalTotals adds the right-aligned totals block ending in the final
// contract total.
func addProposalTotals(m core.Maroto, data ClientExportData) {
	summaryBg := &props.Color{Red: 245, Green: 245, Blue: 245}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Right,
	}

	rows := []struct{ label, value string }{
		{"Subtotal", data.Subtotal},
		{"Bond", data.Bond},
		{"B&O Tax", data.BusinessTax},
		{"Sales Tax", data.SalesTax},
	}
	for _, r := range rows {
		m.AddRows(
			row.New(7).Add(
				col.New(9).Add(text.New(r.label, labelStyle)).WithStyle(summaryCell),
				col.New(3).Add(text.New(r.value, valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	grandBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	grandCell := &props.Cell{BackgroundColor: grandBg}
	grandStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Final Total", grandStyle)).WithStyle(grandCell),
			col.New(3).Add(text.New(data.FinalTotal, grandStyle)).WithStyle(grandCell),
		),
	)

	m.AddRows(row.New(3))
}

// addProposalAmountInWords adds the spelled-out contract amount.
func addProposalAmountInWords(m core.Maroto, data ClientExportData) {
	if data.AmountInWords == "" {
		return
	}

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Amount in Words: %s", data.AmountInWords), props.Text{
					Size:  8,
					Style: fontstyle.BoldItalic,
					Align: align.Left,
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

// addProposalSignatures adds the acceptance signature section.
func addProposalSignatures(m core.Maroto) {
	m.AddRows(row.New(10))

	lineStyle := props.Text{
		Size:  8,
		Align: align.Center,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("____________________________", lineStyle)),
			col.New(6).Add(text.New("____________________________", lineStyle)),
		),
	)

	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New("Client Acceptance", labelStyle)),
			col.New(6).Add(text.New("Authorized Signatory / Sales", labelStyle)),
		),
	)
}

// fmtField returns "label: value" if value is non-empty, otherwise empty string.
func fmtField(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("%s: %s", label, value)
}
