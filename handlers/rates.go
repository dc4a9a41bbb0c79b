package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposaldesk/services"
)

// rateFieldNames lists the editable rate_configs columns.
var rateFieldNames = []string{
	"hardware_rate_fine", "hardware_rate_standard", "hardware_rate_coarse",
	"fine_pitch_max_mm", "standard_pitch_max_mm",
	"structure_pct", "install_rate_sqft", "power_rate_sqft",
	"shipping_pct", "labor_rate_sqft", "pm_pct", "gc_pct",
	"engineering_pct", "travel_flat", "submittals_flat", "permits_flat",
	"cms_flat", "bond_rate", "bo_rate", "sales_tax_rate", "default_margin",
}

// rateConfigPayload flattens a resolved RateConfig for the API.
func rateConfigPayload(cfg services.RateConfig) map[string]any {
	return map[string]any{
		"hardware_rate_fine":     cfg.HardwareRateFine,
		"hardware_rate_standard": cfg.HardwareRateStandard,
		"hardware_rate_coarse":   cfg.HardwareRateCoarse,
		"fine_pitch_max_mm":      cfg.FinePitchMaxMm,
		"standard_pitch_max_mm":  cfg.StandardPitchMaxMm,
		"structure_pct":          cfg.StructurePct,
		"install_rate_sqft":      cfg.InstallRateSqFt,
		"power_rate_sqft":        cfg.PowerRateSqFt,
		"shipping_pct":           cfg.ShippingPct,
		"labor_rate_sqft":        cfg.LaborRateSqFt,
		"pm_pct":                 cfg.PMPct,
		"gc_pct":                 cfg.GCPct,
		"engineering_pct":        cfg.EngineeringPct,
		"travel_flat":            cfg.TravelFlat,
		"submittals_flat":        cfg.SubmittalsFlat,
		"permits_flat":           cfg.PermitsFlat,
		"cms_flat":               cfg.CMSFlat,
		"bond_rate":              cfg.BondRate,
		"bo_rate":                cfg.BORate,
		"sales_tax_rate":         cfg.SalesTaxRate,
		"default_margin":         cfg.DefaultMargin,
	}
}

// HandleRatesView returns the resolved rate config. With a {id} path value
// the proposal's override chain applies; without one it is the global view.
func HandleRatesView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		if proposalID != "" {
			if _, err := app.FindRecordById("proposals", proposalID); err != nil {
				return jsonError(e, http.StatusNotFound, "Proposal not found")
			}
		}

		cfg := services.LoadRateConfig(app, proposalID)
		return e.JSON(http.StatusOK, rateConfigPayload(cfg))
	}
}

// HandleRatesSave upserts rate overrides from form data. With a {id} path
// value the record is a proposal override; without one it edits the global
// record. Only submitted fields change; a submitted empty value clears the
// override back to the default.
func HandleRatesSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		if proposalID != "" {
			if _, err := app.FindRecordById("proposals", proposalID); err != nil {
				return jsonError(e, http.StatusNotFound, "Proposal not found")
			}
		}

		if err := e.Request.ParseForm(); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid form data")
		}

		col, err := app.FindCollectionByNameOrId("rate_configs")
		if err != nil {
			log.Printf("rates_save: could not find rate_configs collection: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filter := "proposal = ''"
		params := map[string]any{}
		if proposalID != "" {
			filter = "proposal = {:proposalId}"
			params["proposalId"] = proposalID
		}

		var record *core.Record
		existing, err := app.FindRecordsByFilter(col, filter, "-created", 1, 0, params)
		if err == nil && len(existing) > 0 {
			record = existing[0]
		} else {
			record = core.NewRecord(col)
			if proposalID != "" {
				record.Set("proposal", proposalID)
			}
		}

		touched := 0
		for _, field := range rateFieldNames {
			if !e.Request.Form.Has(field) {
				continue
			}
			raw := strings.TrimSpace(e.Request.FormValue(field))
			if raw == "" {
				record.Set(field, 0)
				touched++
				continue
			}
			d, err := parseDecimalField(raw, field)
			if err != nil {
				return jsonError(e, http.StatusBadRequest, err.Error())
			}
			if d.IsNegative() {
				return jsonError(e, http.StatusBadRequest, field+": must not be negative")
			}
			if field == "default_margin" && !d.IsZero() {
				if err := services.ValidateMargin(d); err != nil {
					return jsonError(e, http.StatusBadRequest, err.Error())
				}
			}
			record.Set(field, d.InexactFloat64())
			touched++
		}

		if touched == 0 {
			return jsonError(e, http.StatusBadRequest, "No rate fields submitted")
		}

		if err := app.Save(record); err != nil {
			log.Printf("rates_save: could not save rate config: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		cfg := services.LoadRateConfig(app, proposalID)
		return e.JSON(http.StatusOK, rateConfigPayload(cfg))
	}
}
