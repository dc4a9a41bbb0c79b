package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProposalList returns all proposals, newest first.
func HandleProposalList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("proposals")
		if err != nil {
			log.Printf("proposal_list: could not find proposals collection: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter(col, "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("proposal_list: could not load proposals: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		proposals := make([]map[string]any, 0, len(records))
		for _, r := range records {
			proposals = append(proposals, map[string]any{
				"id":         r.Id,
				"name":       r.GetString("name"),
				"clientName": r.GetString("client_name"),
				"status":     r.GetString("status"),
				"created":    r.GetDateTime("created").String(),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"proposals": proposals})
	}
}

// HandleProposalView returns one proposal with its screens in sort order.
func HandleProposalView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposal, err := findProposal(app, e, "id")
		if proposal == nil {
			return err
		}

		screensCol, err := app.FindCollectionByNameOrId("screens")
		if err != nil {
			log.Printf("proposal_view: could not find screens collection: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter(screensCol, "proposal = {:proposalId}", "sort_order", 0, 0,
			map[string]any{"proposalId": proposal.Id})
		if err != nil {
			records = nil
		}

		screens := make([]map[string]any, 0, len(records))
		for _, r := range records {
			screens = append(screens, map[string]any{
				"id":            r.Id,
				"sortOrder":     r.GetInt("sort_order"),
				"name":          r.GetString("name"),
				"productType":   r.GetString("product_type"),
				"widthFt":       r.GetFloat("width_ft"),
				"heightFt":      r.GetFloat("height_ft"),
				"quantity":      r.GetInt("quantity"),
				"pitchMm":       r.GetFloat("pitch_mm"),
				"serviceType":   r.GetString("service_type"),
				"desiredMargin": r.GetFloat("desired_margin"),
				"sourceType":    r.GetString("source_type"),
				"sourcePage":    r.GetInt("source_page"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":         proposal.Id,
			"name":       proposal.GetString("name"),
			"clientName": proposal.GetString("client_name"),
			"status":     proposal.GetString("status"),
			"notes":      proposal.GetString("notes"),
			"screens":    screens,
		})
	}
}
