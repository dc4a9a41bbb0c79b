package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProposalUpdate updates a proposal's metadata from form data. Only the
// submitted fields change.
func HandleProposalUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposal, err := findProposal(app, e, "id")
		if proposal == nil {
			return err
		}

		if err := e.Request.ParseForm(); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid form data")
		}

		if e.Request.Form.Has("name") {
			name := strings.TrimSpace(e.Request.FormValue("name"))
			if name == "" {
				return jsonError(e, http.StatusBadRequest, "Proposal name is required")
			}
			proposal.Set("name", name)
		}
		if e.Request.Form.Has("client_name") {
			proposal.Set("client_name", strings.TrimSpace(e.Request.FormValue("client_name")))
		}
		if e.Request.Form.Has("status") {
			status := strings.TrimSpace(e.Request.FormValue("status"))
			valid := false
			for _, s := range ProposalStatusOptions {
				if status == s {
					valid = true
					break
				}
			}
			if !valid {
				return jsonError(e, http.StatusBadRequest, "Invalid status")
			}
			proposal.Set("status", status)
		}
		if e.Request.Form.Has("notes") {
			proposal.Set("notes", strings.TrimSpace(e.Request.FormValue("notes")))
		}

		if err := app.Save(proposal); err != nil {
			log.Printf("proposal_edit: could not save proposal: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":         proposal.Id,
			"name":       proposal.GetString("name"),
			"clientName": proposal.GetString("client_name"),
			"status":     proposal.GetString("status"),
		})
	}
}

// HandleProposalDelete deletes a proposal. Screens, rate overrides and share
// links cascade.
func HandleProposalDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposal, err := findProposal(app, e, "id")
		if proposal == nil {
			return err
		}

		if err := app.Delete(proposal); err != nil {
			log.Printf("proposal_delete: could not delete proposal: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}
