package services

import (
	"github.com/shopspring/decimal"
)

// ScreenInput is one priced display in a proposal.
type ScreenInput struct {
	Name          string
	ProductType   string
	WidthFt       decimal.Decimal
	HeightFt      decimal.Decimal
	Quantity      int
	PitchMm       decimal.Decimal
	ServiceType   string
	DesiredMargin decimal.Decimal
}

// Cost category keys, in display order.
const (
	CategoryHardware          = "hardware"
	CategoryStructure         = "structure"
	CategoryInstall           = "install"
	CategoryPower             = "power"
	CategoryShipping          = "shipping"
	CategoryLabor             = "labor"
	CategoryProjectManagement = "project_management"
	CategoryGeneralConditions = "general_conditions"
	CategoryTravel            = "travel"
	CategorySubmittals        = "submittals"
	CategoryEngineering       = "engineering"
	CategoryPermits           = "permits"
	CategoryCMS               = "cms"
	CategoryBondCost          = "bond_cost"
	CategoryANCMargin         = "anc_margin"
)

// CategoryOrder lists the cost categories in the order they appear on
// internal documents.
var CategoryOrder = []string{
	CategoryHardware,
	CategoryStructure,
	CategoryInstall,
	CategoryPower,
	CategoryShipping,
	CategoryLabor,
	CategoryProjectManagement,
	CategoryGeneralConditions,
	CategoryTravel,
	CategorySubmittals,
	CategoryEngineering,
	CategoryPermits,
	CategoryCMS,
	CategoryBondCost,
	CategoryANCMargin,
}

// CategoryLabels maps category keys to their document labels.
var CategoryLabels = map[string]string{
	CategoryHardware:          "LED Hardware",
	CategoryStructure:         "Structure & Steel",
	CategoryInstall:           "Installation",
	CategoryPower:             "Power Distribution",
	CategoryShipping:          "Shipping & Freight",
	CategoryLabor:             "Field Labor",
	CategoryProjectManagement: "Project Management",
	CategoryGeneralConditions: "General Conditions",
	CategoryTravel:            "Travel",
	CategorySubmittals:        "Submittals",
	CategoryEngineering:       "Engineering",
	CategoryPermits:           "Permits",
	CategoryCMS:               "Content Management System",
	CategoryBondCost:          "Bond Cost",
	CategoryANCMargin:         "ANC Margin",
}

// CostBreakdown is the per-screen decomposition into cost categories,
// computed at full precision. Rounding happens only at the aggregation
// boundary, never here.
type CostBreakdown struct {
	Categories map[string]decimal.Decimal `json:"categories"`
	Area       decimal.Decimal            `json:"area"`      // sqft, width*height*qty
	TotalCost  decimal.Decimal            `json:"totalCost"` // all categories except anc_margin
}

// CalcScreenBreakdown computes a screen's cost breakdown from its specs and
// the global rates. Pure; no rounding, no side effects. Screens with
// missing or non-positive dimensions degrade to an all-zero breakdown so
// partially filled proposals still render.
func CalcScreenBreakdown(in ScreenInput, rates RateConfig) (CostBreakdown, error) {
	margin := in.DesiredMargin
	if err := ValidateMargin(margin); err != nil {
		return CostBreakdown{}, err
	}

	breakdown := CostBreakdown{Categories: map[string]decimal.Decimal{}}
	for _, key := range CategoryOrder {
		breakdown.Categories[key] = decimal.Zero
	}

	if !in.WidthFt.IsPositive() || !in.HeightFt.IsPositive() || in.Quantity <= 0 {
		return breakdown, nil
	}

	area := in.WidthFt.Mul(in.HeightFt).Mul(decimal.NewFromInt(int64(in.Quantity)))
	breakdown.Area = area

	hardware := area.Mul(rates.HardwareRate(in.PitchMm))
	structure := hardware.Mul(rates.StructurePct)
	install := area.Mul(rates.InstallRateSqFt)
	power := area.Mul(rates.PowerRateSqFt)
	shipping := hardware.Mul(rates.ShippingPct)
	labor := area.Mul(rates.LaborRateSqFt)
	pm := hardware.Add(structure).Add(install).Mul(rates.PMPct)
	gc := hardware.Add(structure).Add(install).Add(power).Mul(rates.GCPct)
	engineering := structure.Mul(rates.EngineeringPct)

	cat := breakdown.Categories
	cat[CategoryHardware] = hardware
	cat[CategoryStructure] = structure
	cat[CategoryInstall] = install
	cat[CategoryPower] = power
	cat[CategoryShipping] = shipping
	cat[CategoryLabor] = labor
	cat[CategoryProjectManagement] = pm
	cat[CategoryGeneralConditions] = gc
	cat[CategoryTravel] = rates.TravelFlat
	cat[CategorySubmittals] = rates.SubmittalsFlat
	cat[CategoryEngineering] = engineering
	cat[CategoryPermits] = rates.PermitsFlat
	cat[CategoryCMS] = rates.CMSFlat

	// Bond cost rides on everything priced so far.
	preBond := decimal.Zero
	for _, key := range CategoryOrder {
		preBond = preBond.Add(cat[key])
	}
	cat[CategoryBondCost] = preBond.Mul(rates.BondRate)

	total := preBond.Add(cat[CategoryBondCost])
	breakdown.TotalCost = total

	// ANC margin is the profit implied by the divisor model; it is a
	// document category, not part of TotalCost.
	ancMargin, err := MarginDollars(total, margin)
	if err != nil {
		return CostBreakdown{}, err
	}
	cat[CategoryANCMargin] = ancMargin

	return breakdown, nil
}
