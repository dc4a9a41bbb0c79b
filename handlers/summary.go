package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposaldesk/services"
)

// HandleProposalSummary returns the sanitized client view of a priced
// proposal. The payload is re-scanned before it leaves; a sanitizer miss is
// a server error, never a partial response.
func HandleProposalSummary(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposal, err := findProposal(app, e, "id")
		if proposal == nil {
			return err
		}

		audit, err := auditForProposal(app, proposal)
		if err != nil {
			log.Printf("summary: could not price proposal %s: %v", proposal.Id, err)
			return jsonError(e, http.StatusUnprocessableEntity, err.Error())
		}

		if !services.ValidateSanitized(audit.ClientSummary) {
			log.Printf("summary: sanitizer check failed for proposal %s", proposal.Id)
			return jsonError(e, http.StatusInternalServerError, "Summary failed internal-data check")
		}

		return e.JSON(http.StatusOK, audit.ClientSummary)
	}
}
