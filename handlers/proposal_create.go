package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

var ProposalStatusOptions = []string{"draft", "sent", "won", "lost"}

// HandleProposalCreate saves a new proposal from form data.
func HandleProposalCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		clientName := strings.TrimSpace(e.Request.FormValue("client_name"))
		status := strings.TrimSpace(e.Request.FormValue("status"))
		notes := strings.TrimSpace(e.Request.FormValue("notes"))

		if name == "" {
			return jsonError(e, http.StatusBadRequest, "Proposal name is required")
		}

		validStatus := false
		for _, s := range ProposalStatusOptions {
			if status == s {
				validStatus = true
				break
			}
		}
		if !validStatus {
			status = "draft"
		}

		existing, _ := app.FindRecordsByFilter(
			"proposals",
			"name = {:name}",
			"", 1, 0,
			map[string]any{"name": name},
		)
		if len(existing) > 0 {
			return jsonError(e, http.StatusConflict, "A proposal with this name already exists")
		}

		col, err := app.FindCollectionByNameOrId("proposals")
		if err != nil {
			log.Printf("proposal_create: could not find proposals collection: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("name", name)
		record.Set("client_name", clientName)
		record.Set("status", status)
		record.Set("notes", notes)

		if err := app.Save(record); err != nil {
			log.Printf("proposal_create: could not save proposal: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":         record.Id,
			"name":       name,
			"clientName": clientName,
			"status":     status,
		})
	}
}
