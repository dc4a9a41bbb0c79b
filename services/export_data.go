package services

import (
	"github.com/shopspring/decimal"
)

// AuditExportData holds everything the internal audit workbook needs.
type AuditExportData struct {
	Title       string
	ClientName  string
	CreatedDate string
	Audit       InternalAudit
}

// ClientLine is one display row on the client-facing proposal document.
// Price is pre-formatted: either a USD string or a placeholder like
// "[COST BASIS]".
type ClientLine struct {
	Name     string
	Size     string
	Quantity int
	Price    string
}

// ClientExportData holds everything the client proposal PDF needs. It is
// built exclusively from a sanitized client summary, so the PDF path can
// never see cost or margin data.
type ClientExportData struct {
	Title         string
	ClientName    string
	CreatedDate   string
	Lines         []ClientLine
	Subtotal      string
	Bond          string
	BusinessTax   string
	SalesTax      string
	FinalTotal    string
	AmountInWords string
}

// BuildClientExportData shapes a sanitized client summary for the PDF
// renderer. It accepts only the map produced by BuildProposalAudit's
// sanitizer; unknown shapes degrade to empty fields rather than erroring.
func BuildClientExportData(summary map[string]any, clientName, createdDate string) ClientExportData {
	data := ClientExportData{
		ClientName:  clientName,
		CreatedDate: createdDate,
	}

	if name, ok := summary["proposalName"].(string); ok {
		data.Title = name
	}

	if screens, ok := summary["screens"].([]any); ok {
		for _, item := range screens {
			line, ok := item.(map[string]any)
			if !ok {
				continue
			}
			cl := ClientLine{Quantity: 1}
			if v, ok := line["name"].(string); ok {
				cl.Name = v
			}
			if v, ok := line["size"].(string); ok {
				cl.Size = v
			}
			if v, ok := line["quantity"].(int); ok {
				cl.Quantity = v
			}
			cl.Price = moneyOrPlaceholder(line["price"])
			data.Lines = append(data.Lines, cl)
		}
	}

	data.Subtotal = moneyOrPlaceholder(summary["subtotal"])
	data.Bond = moneyOrPlaceholder(summary["bond"])
	data.BusinessTax = moneyOrPlaceholder(summary["businessTax"])
	data.SalesTax = moneyOrPlaceholder(summary["salesTax"])
	data.FinalTotal = moneyOrPlaceholder(summary["finalTotal"])

	if total, ok := summary["finalTotal"].(decimal.Decimal); ok {
		data.AmountInWords = AmountToWords(total)
	}

	return data
}

// moneyOrPlaceholder formats a decimal as USD, passes placeholder strings
// through, and renders anything else as empty.
func moneyOrPlaceholder(v any) string {
	switch val := v.(type) {
	case decimal.Decimal:
		return FormatUSD(val)
	case string:
		return val
	default:
		return ""
	}
}
