package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposaldesk/services"
)

var ScreenServiceTypes = []string{"turnkey", "hardware_only", "install_only"}

// HandleScreenCreate adds a screen to a proposal from form data. Numeric
// fields must parse; a provided margin must be a valid fraction.
func HandleScreenCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposal, err := findProposal(app, e, "id")
		if proposal == nil {
			return err
		}

		if err := e.Request.ParseForm(); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return jsonError(e, http.StatusBadRequest, "Screen name is required")
		}

		numerics := map[string]float64{}
		for _, field := range []string{"width_ft", "height_ft", "quantity", "pitch_mm", "desired_margin", "sort_order"} {
			d, err := parseDecimalField(e.Request.FormValue(field), field)
			if err != nil {
				return jsonError(e, http.StatusBadRequest, err.Error())
			}
			numerics[field] = d.InexactFloat64()
		}

		if raw := strings.TrimSpace(e.Request.FormValue("desired_margin")); raw != "" {
			margin, _ := parseDecimalField(raw, "desired_margin")
			if err := services.ValidateMargin(margin); err != nil {
				return jsonError(e, http.StatusBadRequest, err.Error())
			}
		}

		serviceType := strings.TrimSpace(e.Request.FormValue("service_type"))
		if serviceType != "" {
			valid := false
			for _, s := range ScreenServiceTypes {
				if serviceType == s {
					valid = true
					break
				}
			}
			if !valid {
				return jsonError(e, http.StatusBadRequest, "Invalid service type")
			}
		}

		col, err := app.FindCollectionByNameOrId("screens")
		if err != nil {
			log.Printf("screen_create: could not find screens collection: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		sortOrder := numerics["sort_order"]
		if sortOrder <= 0 {
			sortOrder = float64(nextScreenSortOrder(app, col, proposal.Id))
		}

		record := core.NewRecord(col)
		record.Set("proposal", proposal.Id)
		record.Set("sort_order", sortOrder)
		record.Set("name", name)
		record.Set("product_type", strings.TrimSpace(e.Request.FormValue("product_type")))
		record.Set("width_ft", numerics["width_ft"])
		record.Set("height_ft", numerics["height_ft"])
		record.Set("quantity", numerics["quantity"])
		record.Set("pitch_mm", numerics["pitch_mm"])
		if serviceType != "" {
			record.Set("service_type", serviceType)
		}
		record.Set("desired_margin", numerics["desired_margin"])
		record.Set("source_type", "manual")

		if err := app.Save(record); err != nil {
			log.Printf("screen_create: could not save screen: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":       record.Id,
			"proposal": proposal.Id,
			"name":     name,
		})
	}
}

// nextScreenSortOrder returns one past the highest sort_order on the
// proposal's screens.
func nextScreenSortOrder(app *pocketbase.PocketBase, col *core.Collection, proposalID string) int {
	records, err := app.FindRecordsByFilter(col, "proposal = {:proposalId}", "-sort_order", 1, 0,
		map[string]any{"proposalId": proposalID})
	if err != nil || len(records) == 0 {
		return 1
	}
	return records[0].GetInt("sort_order") + 1
}
