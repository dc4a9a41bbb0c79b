package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateAuditExcel creates the internal cost audit workbook and returns the
// file contents as a byte slice. Sheet one carries per-screen category costs
// and the proposal totals; sheet two is the rounding ledger. This file is for
// internal eyes only and must never travel the client export path.
func GenerateAuditExcel(data AuditExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Determine sheet name (max 31 chars).
	sheetName := data.Title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Cost Audit"
	}

	// Rename default sheet.
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D"}
	lastCol := columns[len(columns)-1]

	widths := []float64{34, 18, 18, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	screenStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create screen style: %w", err)
	}

	categoryStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create category style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-3) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title+" — Internal Cost Audit"))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if data.ClientName != "" {
		if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge client: %w", err)
		}
		f.SetCellValue(sheetName, "A2", "Client: "+data.ClientName)
		f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)
	}

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A3", "Date: "+data.CreatedDate)
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// ── Row 5: Column Headers ───────────────────────────────────────────

	headers := []string{"Category", "Cost", "Sell", "Area (sq ft)"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s5", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	// ── Screen blocks (starting row 6) ──────────────────────────────────

	row := 6
	for _, screen := range data.Audit.Screens {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(screen.Name))
		f.SetCellValue(sheetName, "B"+rowStr, FormatUSD(screen.Breakdown.TotalCost))
		f.SetCellValue(sheetName, "C"+rowStr, FormatUSD(screen.SellPrice))
		f.SetCellValue(sheetName, "D"+rowStr, screen.Breakdown.Area.InexactFloat64())
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, screenStyle)
		row++

		for _, category := range CategoryOrder {
			amount, ok := screen.Breakdown.Categories[category]
			if !ok {
				continue
			}
			rowStr = fmt.Sprintf("%d", row)
			f.SetCellValue(sheetName, "A"+rowStr, "  "+CategoryLabels[category])
			f.SetCellValue(sheetName, "B"+rowStr, FormatUSD(amount))
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, categoryStyle)
			row++
		}
	}

	// ── Proposal totals ─────────────────────────────────────────────────

	row++
	totals := []struct {
		label string
		value string
	}{
		{"Total Cost:", FormatUSD(data.Audit.TotalCost)},
		{"Subtotal (Sell):", FormatUSD(data.Audit.Subtotal)},
		{"Bond:", FormatUSD(data.Audit.Bond)},
		{"B&O Tax:", FormatUSD(data.Audit.BusinessTax)},
		{"Sales Tax:", FormatUSD(data.Audit.SalesTax)},
		{"Final Total:", FormatUSD(data.Audit.FinalTotal)},
		{"Blended Margin:", fmt.Sprintf("%s%%", data.Audit.BlendedMarginPercent.StringFixed(2))},
	}
	for _, t := range totals {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, t.label)
		f.SetCellStyle(sheetName, "A"+rowStr, "A"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "B"+rowStr, t.value)
		f.SetCellStyle(sheetName, "B"+rowStr, "B"+rowStr, summaryValueStyle)
		row++
	}

	// ── Rounding ledger sheet ───────────────────────────────────────────

	if err := writeRoundingSheet(f, data, headerStyle, categoryStyle, summaryLabelStyle, summaryValueStyle); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// writeRoundingSheet adds the "Rounding Ledger" sheet: one row per recorded
// rounding operation plus the drift summary.
func writeRoundingSheet(f *excelize.File, data AuditExportData, headerStyle, rowStyle, labelStyle, valueStyle int) error {
	const sheet = "Rounding Ledger"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create rounding sheet: %w", err)
	}

	widths := []float64{22, 18, 18, 12, 20}
	columns := []string{"A", "B", "C", "D", "E"}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	headers := []string{"Stage", "Input", "Rounded", "Delta", "Mode"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s1", columns[i]), h)
	}
	f.SetCellStyle(sheet, "A1", "E1", headerStyle)

	row := 2
	for _, op := range data.Audit.Operations {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+rowStr, op.Stage)
		f.SetCellValue(sheet, "B"+rowStr, op.Input.String())
		f.SetCellValue(sheet, "C"+rowStr, op.Rounded.StringFixed(2))
		f.SetCellValue(sheet, "D"+rowStr, op.Delta.String())
		f.SetCellValue(sheet, "E"+rowStr, op.Mode)
		f.SetCellStyle(sheet, "A"+rowStr, "E"+rowStr, rowStyle)
		row++
	}

	row++
	summary := data.Audit.Rounding
	entries := []struct {
		label string
		value any
	}{
		{"Operations:", summary.Count},
		{"Total Drift:", summary.TotalDrift.String()},
		{"Max Abs Drift:", summary.MaxAbsDrift.String()},
		{"Avg Abs Drift:", summary.AvgAbsDrift.String()},
		{"All Half-Even:", summary.AllHalfEven},
		{"Category Totals Only:", summary.OnlyCategoryTotals},
	}
	for _, e := range entries {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+rowStr, e.label)
		f.SetCellStyle(sheet, "A"+rowStr, "A"+rowStr, labelStyle)
		f.SetCellValue(sheet, "B"+rowStr, e.value)
		f.SetCellStyle(sheet, "B"+rowStr, "B"+rowStr, valueStyle)
		row++
	}

	return nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
