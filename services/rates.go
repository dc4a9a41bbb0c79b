package services

import (
	"github.com/pocketbase/pocketbase"
	"github.com/shopspring/decimal"
)

// RateConfig holds the global pricing rates applied to every screen in a
// proposal. A single global record seeds the defaults; a proposal can carry
// its own override record.
type RateConfig struct {
	// Hardware $/sqft by pixel pitch tier. Fine pitch (<= FinePitchMaxMm)
	// is the premium indoor product; coarse pitch is outdoor board stock.
	HardwareRateFine     decimal.Decimal
	HardwareRateStandard decimal.Decimal
	HardwareRateCoarse   decimal.Decimal
	FinePitchMaxMm       decimal.Decimal
	StandardPitchMaxMm   decimal.Decimal

	StructurePct    decimal.Decimal // of hardware
	InstallRateSqFt decimal.Decimal
	PowerRateSqFt   decimal.Decimal
	ShippingPct     decimal.Decimal // of hardware
	LaborRateSqFt   decimal.Decimal
	PMPct           decimal.Decimal // of hardware+structure+install
	GCPct           decimal.Decimal // of hardware+structure+install+power
	EngineeringPct  decimal.Decimal // of structure
	TravelFlat      decimal.Decimal // per screen
	SubmittalsFlat  decimal.Decimal // per screen
	PermitsFlat     decimal.Decimal // per screen
	CMSFlat         decimal.Decimal // per screen
	BondRate        decimal.Decimal // of cost subtotal / sell subtotal
	BORate          decimal.Decimal // WA B&O, of sell
	SalesTaxRate    decimal.Decimal
	DefaultMargin   decimal.Decimal
}

// DefaultRateConfig returns the house rates used when no record overrides
// them.
func DefaultRateConfig() RateConfig {
	return RateConfig{
		HardwareRateFine:     dmust("110"),
		HardwareRateStandard: dmust("50"),
		HardwareRateCoarse:   dmust("32"),
		FinePitchMaxMm:       dmust("2.5"),
		StandardPitchMaxMm:   dmust("6"),
		StructurePct:         dmust("0.12"),
		InstallRateSqFt:      dmust("8"),
		PowerRateSqFt:        dmust("3.5"),
		ShippingPct:          dmust("0.04"),
		LaborRateSqFt:        dmust("6"),
		PMPct:                dmust("0.05"),
		GCPct:                dmust("0.03"),
		EngineeringPct:       dmust("0.10"),
		TravelFlat:           dmust("2500"),
		SubmittalsFlat:       dmust("1500"),
		PermitsFlat:          dmust("750"),
		CMSFlat:              dmust("5000"),
		BondRate:             dmust("0.015"),
		BORate:               dmust("0.00484"),
		SalesTaxRate:         dmust("0.095"),
		DefaultMargin:        dmust("0.25"),
	}
}

// HardwareRate returns the $/sqft hardware rate for a pixel pitch.
func (r RateConfig) HardwareRate(pitchMm decimal.Decimal) decimal.Decimal {
	switch {
	case pitchMm.IsPositive() && pitchMm.LessThanOrEqual(r.FinePitchMaxMm):
		return r.HardwareRateFine
	case pitchMm.IsPositive() && pitchMm.LessThanOrEqual(r.StandardPitchMaxMm):
		return r.HardwareRateStandard
	default:
		return r.HardwareRateCoarse
	}
}

// LoadRateConfig resolves the rate config for a proposal: a per-proposal
// override record wins, then the global record, then built-in defaults.
// Missing or zero fields on a record fall back field-by-field to defaults.
func LoadRateConfig(app *pocketbase.PocketBase, proposalID string) RateConfig {
	cfg := DefaultRateConfig()

	col, err := app.FindCollectionByNameOrId("rate_configs")
	if err != nil {
		return cfg
	}

	apply := func(filter string, params map[string]any) bool {
		records, err := app.FindRecordsByFilter(col, filter, "-created", 1, 0, params)
		if err != nil || len(records) == 0 {
			return false
		}
		rec := records[0]
		override := func(dst *decimal.Decimal, field string) {
			if v := rec.GetFloat(field); v > 0 {
				*dst = decimal.NewFromFloat(v)
			}
		}
		override(&cfg.HardwareRateFine, "hardware_rate_fine")
		override(&cfg.HardwareRateStandard, "hardware_rate_standard")
		override(&cfg.HardwareRateCoarse, "hardware_rate_coarse")
		override(&cfg.FinePitchMaxMm, "fine_pitch_max_mm")
		override(&cfg.StandardPitchMaxMm, "standard_pitch_max_mm")
		override(&cfg.StructurePct, "structure_pct")
		override(&cfg.InstallRateSqFt, "install_rate_sqft")
		override(&cfg.PowerRateSqFt, "power_rate_sqft")
		override(&cfg.ShippingPct, "shipping_pct")
		override(&cfg.LaborRateSqFt, "labor_rate_sqft")
		override(&cfg.PMPct, "pm_pct")
		override(&cfg.GCPct, "gc_pct")
		override(&cfg.EngineeringPct, "engineering_pct")
		override(&cfg.TravelFlat, "travel_flat")
		override(&cfg.SubmittalsFlat, "submittals_flat")
		override(&cfg.PermitsFlat, "permits_flat")
		override(&cfg.CMSFlat, "cms_flat")
		override(&cfg.BondRate, "bond_rate")
		override(&cfg.BORate, "bo_rate")
		override(&cfg.SalesTaxRate, "sales_tax_rate")
		override(&cfg.DefaultMargin, "default_margin")
		return true
	}

	// Global record first, then the proposal override on top of it.
	apply("proposal = ''", nil)
	if proposalID != "" {
		apply("proposal = {:proposalId}", map[string]any{"proposalId": proposalID})
	}

	return cfg
}

func dmust(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic("bad rate literal: " + s)
	}
	return d
}
