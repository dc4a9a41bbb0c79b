package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the proposals, screens,
// rate_configs and share_links collections exist.
func Setup(app *pocketbase.PocketBase) {
	proposals := ensureCollection(app, "proposals", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "client_name", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  false,
			Values:    []string{"draft", "sent", "won", "lost"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "screens", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "proposal",
			Required:      true,
			CollectionId:  proposals.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "product_type", Required: false})
		c.Fields.Add(&core.NumberField{Name: "width_ft", Required: false})
		c.Fields.Add(&core.NumberField{Name: "height_ft", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.NumberField{Name: "pitch_mm", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "service_type",
			Required:  false,
			Values:    []string{"turnkey", "hardware_only", "install_only"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "desired_margin", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "source_type",
			Required:  false,
			Values:    []string{"manual", "extracted"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "source_page", Required: false})
		c.Fields.Add(&core.NumberField{Name: "extraction_confidence", Required: false})
	})

	ensureCollection(app, "rate_configs", func(c *core.Collection) {
		// Empty proposal relation marks the single global record.
		c.Fields.Add(&core.RelationField{
			Name:          "proposal",
			Required:      false,
			CollectionId:  proposals.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		for _, name := range []string{
			"hardware_rate_fine", "hardware_rate_standard", "hardware_rate_coarse",
			"fine_pitch_max_mm", "standard_pitch_max_mm",
			"structure_pct", "install_rate_sqft", "power_rate_sqft",
			"shipping_pct", "labor_rate_sqft", "pm_pct", "gc_pct",
			"engineering_pct", "travel_flat", "submittals_flat", "permits_flat",
			"cms_flat", "bond_rate", "bo_rate", "sales_tax_rate", "default_margin",
		} {
			c.Fields.Add(&core.NumberField{Name: name, Required: false})
		}
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "share_links", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "proposal",
			Required:      true,
			CollectionId:  proposals.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "token", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
