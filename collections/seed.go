package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type screenDef struct {
	sortOrder     int
	name          string
	productType   string
	widthFt       float64
	heightFt      float64
	quantity      int
	pitchMm       float64
	serviceType   string
	desiredMargin float64
}

// Seed inserts the global rate config record and a demo proposal. It is safe
// to call on every startup: each piece returns early if data already exists.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedGlobalRates(app); err != nil {
		return err
	}
	return seedDemoProposal(app)
}

// seedGlobalRates creates the single global rate_configs record (empty
// proposal relation). Field values match the built-in defaults so the record
// is an editable starting point, not a second source of truth.
func seedGlobalRates(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("rate_configs")
	if err != nil {
		return fmt.Errorf("seed: could not find rate_configs collection: %w", err)
	}

	existing, err := app.FindRecordsByFilter(col, "proposal = ''", "", 1, 0)
	if err != nil {
		return fmt.Errorf("seed: could not query rate_configs: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: inserting global rate config …")

	r := core.NewRecord(col)
	rates := map[string]float64{
		"hardware_rate_fine":     110,
		"hardware_rate_standard": 50,
		"hardware_rate_coarse":   32,
		"fine_pitch_max_mm":      2.5,
		"standard_pitch_max_mm":  6,
		"structure_pct":          0.12,
		"install_rate_sqft":      8,
		"power_rate_sqft":        3.5,
		"shipping_pct":           0.04,
		"labor_rate_sqft":        6,
		"pm_pct":                 0.05,
		"gc_pct":                 0.03,
		"engineering_pct":        0.10,
		"travel_flat":            2500,
		"submittals_flat":        1500,
		"permits_flat":           750,
		"cms_flat":               5000,
		"bond_rate":              0.015,
		"bo_rate":                0.00484,
		"sales_tax_rate":         0.095,
		"default_margin":         0.25,
	}
	for field, value := range rates {
		r.Set(field, value)
	}
	if err := app.Save(r); err != nil {
		return fmt.Errorf("seed: could not save global rate config: %w", err)
	}
	return nil
}

// seedDemoProposal inserts one example proposal with a pair of screens so a
// fresh install has something to price.
func seedDemoProposal(app *pocketbase.PocketBase) error {
	proposalsCol, err := app.FindCollectionByNameOrId("proposals")
	if err != nil {
		return fmt.Errorf("seed: could not find proposals collection: %w", err)
	}
	existing, err := app.FindAllRecords(proposalsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query proposals: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	screensCol, err := app.FindCollectionByNameOrId("screens")
	if err != nil {
		return fmt.Errorf("seed: could not find screens collection: %w", err)
	}

	log.Println("seed: proposals collection is empty – inserting demo proposal …")

	proposal := core.NewRecord(proposalsCol)
	proposal.Set("name", "Riverview High School Stadium")
	proposal.Set("client_name", "Riverview School District")
	proposal.Set("status", "draft")
	if err := app.Save(proposal); err != nil {
		return fmt.Errorf("seed: could not save demo proposal: %w", err)
	}

	screens := []screenDef{
		{1, "Main Videoboard", "Outdoor LED Display", 32, 18, 1, 10, "turnkey", 0.25},
		{2, "Sideline Ribbon", "Outdoor LED Ribbon", 80, 3, 2, 10, "turnkey", 0.30},
	}
	for _, d := range screens {
		r := core.NewRecord(screensCol)
		r.Set("proposal", proposal.Id)
		r.Set("sort_order", d.sortOrder)
		r.Set("name", d.name)
		r.Set("product_type", d.productType)
		r.Set("width_ft", d.widthFt)
		r.Set("height_ft", d.heightFt)
		r.Set("quantity", d.quantity)
		r.Set("pitch_mm", d.pitchMm)
		r.Set("service_type", d.serviceType)
		r.Set("desired_margin", d.desiredMargin)
		r.Set("source_type", "manual")
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: could not save screen %q: %w", d.name, err)
		}
	}

	return nil
}
