package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ScreenAudit is one screen's cost-bearing entry in the internal audit.
type ScreenAudit struct {
	Name          string          `json:"name"`
	ProductType   string          `json:"productType"`
	WidthFt       decimal.Decimal `json:"widthFt"`
	HeightFt      decimal.Decimal `json:"heightFt"`
	Quantity      int             `json:"quantity"`
	PitchMm       decimal.Decimal `json:"pitchMm"`
	Area          decimal.Decimal `json:"area"`
	Breakdown     CostBreakdown   `json:"breakdown"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	DesiredMargin decimal.Decimal `json:"desiredMargin"`
	SellPrice     decimal.Decimal `json:"sellPrice"` // full precision
}

// CategoryTotal is a project-wide cost total for one category.
type CategoryTotal struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Cost  decimal.Decimal `json:"cost"`
}

// InternalAudit is the cost-and-margin-bearing view of a priced proposal.
// Internal review only; it must never cross the client boundary unsanitized.
type InternalAudit struct {
	ProposalName         string              `json:"proposalName"`
	Screens              []ScreenAudit       `json:"screens"`
	CategoryTotals       []CategoryTotal     `json:"categoryCostTotals"`
	TotalCost            decimal.Decimal     `json:"totalCost"`
	Subtotal             decimal.Decimal     `json:"subtotal"`
	Bond                 decimal.Decimal     `json:"bond"`
	BusinessTax          decimal.Decimal     `json:"businessTax"`
	SalesTax             decimal.Decimal     `json:"salesTax"`
	FinalTotal           decimal.Decimal     `json:"finalTotal"`
	BlendedMarginPercent decimal.Decimal     `json:"blendedMarginPercent"`
	Rounding             RoundingSummary     `json:"rounding"`
	Operations           []RoundingOperation `json:"roundingOperations"`
}

// ProposalAudit pairs the internal audit with its sanitized client view.
// InternalAudit is the source of truth; ClientSummary is a one-way derived
// projection that has already passed through SanitizeForClient.
type ProposalAudit struct {
	InternalAudit InternalAudit  `json:"internalAudit"`
	ClientSummary map[string]any `json:"clientSummary"`
}

// BuildProposalAudit prices a full proposal. Per-screen breakdowns are
// computed at full precision and summed category-by-category; only the five
// canonical category totals pass through the rounding ledger. A fresh ledger
// is created per call, so concurrent builds never interleave.
func BuildProposalAudit(proposalName string, screens []ScreenInput, rates RateConfig) (*ProposalAudit, error) {
	ledger := NewRoundingLedger()

	audit := InternalAudit{ProposalName: proposalName}
	categorySums := map[string]decimal.Decimal{}
	sellSum := decimal.Zero

	for _, in := range screens {
		breakdown, err := CalcScreenBreakdown(in, rates)
		if err != nil {
			return nil, fmt.Errorf("screen %q: %w", in.Name, err)
		}

		sell := decimal.Zero
		if breakdown.TotalCost.IsPositive() {
			sell, err = ProjectPrice(breakdown.TotalCost, in.DesiredMargin)
			if err != nil {
				return nil, fmt.Errorf("screen %q: %w", in.Name, err)
			}
		}

		for key, v := range breakdown.Categories {
			categorySums[key] = categorySums[key].Add(v)
		}
		sellSum = sellSum.Add(sell)
		audit.TotalCost = audit.TotalCost.Add(breakdown.TotalCost)

		audit.Screens = append(audit.Screens, ScreenAudit{
			Name:          in.Name,
			ProductType:   in.ProductType,
			WidthFt:       in.WidthFt,
			HeightFt:      in.HeightFt,
			Quantity:      in.Quantity,
			PitchMm:       in.PitchMm,
			Area:          breakdown.Area,
			Breakdown:     breakdown,
			TotalCost:     breakdown.TotalCost,
			DesiredMargin: in.DesiredMargin,
			SellPrice:     sell,
		})
	}

	for _, key := range CategoryOrder {
		audit.CategoryTotals = append(audit.CategoryTotals, CategoryTotal{
			Key:   key,
			Label: CategoryLabels[key],
			Cost:  categorySums[key],
		})
	}

	audit.Subtotal = ledger.RoundCategoryTotal(sellSum, StageSubtotal)
	audit.Bond = ledger.RoundCategoryTotal(audit.Subtotal.Mul(rates.BondRate), StageBond)
	audit.BusinessTax = ledger.RoundCategoryTotal(
		audit.Subtotal.Add(audit.Bond).Mul(rates.BORate), StageBO)
	audit.SalesTax = ledger.RoundCategoryTotal(
		audit.Subtotal.Add(audit.Bond).Add(audit.BusinessTax).Mul(rates.SalesTaxRate), StageSalesTax)
	audit.FinalTotal = ledger.RoundCategoryTotal(
		audit.Subtotal.Add(audit.Bond).Add(audit.BusinessTax).Add(audit.SalesTax), StageFinalTotal)

	if audit.Subtotal.IsPositive() {
		audit.BlendedMarginPercent = audit.Subtotal.Sub(audit.TotalCost).
			Div(audit.Subtotal).Mul(decimal.NewFromInt(100))
	}

	audit.Rounding = ledger.Summary()
	audit.Operations = ledger.Operations()

	return &ProposalAudit{
		InternalAudit: audit,
		ClientSummary: buildClientSummary(audit),
	}, nil
}

// buildClientSummary projects the internal audit down to a price-only view
// and runs it through the sanitizer as a second line of defense.
func buildClientSummary(audit InternalAudit) map[string]any {
	screens := make([]any, 0, len(audit.Screens))
	for _, s := range audit.Screens {
		screens = append(screens, map[string]any{
			"name":        s.Name,
			"productType": s.ProductType,
			"size":        screenSize(s.WidthFt, s.HeightFt),
			"quantity":    s.Quantity,
			// Display rounding only; the ledger rounds category totals.
			"price": RoundToCents(s.SellPrice),
		})
	}

	summary := map[string]any{
		"proposalName": audit.ProposalName,
		"screens":      screens,
		"subtotal":     audit.Subtotal,
		"bond":         audit.Bond,
		"businessTax":  audit.BusinessTax,
		"salesTax":     audit.SalesTax,
		"finalTotal":   audit.FinalTotal,
	}

	return SanitizeForClient(summary).(map[string]any)
}

func screenSize(w, h decimal.Decimal) string {
	if !w.IsPositive() || !h.IsPositive() {
		return ""
	}
	return fmt.Sprintf("%sft × %sft", w.String(), h.String())
}
