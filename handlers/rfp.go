package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposaldesk/services"
)

type triageRequest struct {
	Pages              []services.PageText `json:"pages"`
	DisabledCategories []string            `json:"disabledCategories"`
	CustomKeywords     []string            `json:"customKeywords"`
}

type extractRequest struct {
	Pages  []services.PageText `json:"pages"`
	Commit bool                `json:"commit"`
}

// HandleRFPTriage scores RFP page text against the keyword bank and returns
// keep/maybe/discard/review recommendations per page.
func HandleRFPTriage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req triageRequest
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid JSON body")
		}
		if len(req.Pages) == 0 {
			return jsonError(e, http.StatusBadRequest, "No pages to triage")
		}

		bank := services.KeywordBank()
		if len(req.CustomKeywords) > 0 {
			bank["custom"] = req.CustomKeywords
		}

		disabled := map[string]bool{}
		for _, c := range req.DisabledCategories {
			disabled[c] = true
		}

		result := services.TriagePages(req.Pages, bank, disabled)
		return e.JSON(http.StatusOK, result)
	}
}

// HandleRFPExtract pulls display specifications out of RFP page text. With
// commit=true the extracted screens are saved to the proposal as drafts for
// a salesperson to confirm; otherwise the response is a dry run.
func HandleRFPExtract(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposal, err := findProposal(app, e, "id")
		if proposal == nil {
			return err
		}

		var req extractRequest
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid JSON body")
		}
		if len(req.Pages) == 0 {
			return jsonError(e, http.StatusBadRequest, "No pages to extract from")
		}

		var extracted []services.ExtractedScreen
		for _, page := range req.Pages {
			extracted = append(extracted, services.ExtractScreens(page.Text, page.PageNum)...)
		}

		saved := 0
		if req.Commit && len(extracted) > 0 {
			col, err := app.FindCollectionByNameOrId("screens")
			if err != nil {
				log.Printf("rfp_extract: could not find screens collection: %v", err)
				return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}

			sortOrder := nextScreenSortOrder(app, col, proposal.Id)
			for _, s := range extracted {
				record := core.NewRecord(col)
				record.Set("proposal", proposal.Id)
				record.Set("sort_order", sortOrder)
				record.Set("name", s.Name)
				record.Set("product_type", extractedProductType(s))
				record.Set("width_ft", s.WidthFt)
				record.Set("height_ft", s.HeightFt)
				record.Set("quantity", s.Quantity)
				record.Set("pitch_mm", s.PitchMm)
				record.Set("source_type", "extracted")
				record.Set("source_page", s.SourcePage)
				record.Set("extraction_confidence", s.Confidence)
				if err := app.Save(record); err != nil {
					log.Printf("rfp_extract: could not save screen %q: %v", s.Name, err)
					return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
				}
				sortOrder++
				saved++
			}
		}

		return e.JSON(http.StatusOK, map[string]any{
			"screens":   extracted,
			"committed": req.Commit,
			"saved":     saved,
		})
	}
}

func extractedProductType(s services.ExtractedScreen) string {
	switch s.IndoorOutdoor {
	case "outdoor":
		return "Outdoor LED Display"
	case "indoor":
		return "Indoor LED Display"
	default:
		return "LED Display"
	}
}
