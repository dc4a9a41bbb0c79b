package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProposalAudit prices the proposal and returns the full internal
// audit: per-screen breakdowns, category totals, surcharge chain, blended
// margin, and the rounding ledger. Internal tooling only — the client
// surface is HandleProposalSummary.
func HandleProposalAudit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposal, err := findProposal(app, e, "id")
		if proposal == nil {
			return err
		}

		audit, err := auditForProposal(app, proposal)
		if err != nil {
			log.Printf("audit: could not price proposal %s: %v", proposal.Id, err)
			return jsonError(e, http.StatusUnprocessableEntity, err.Error())
		}

		return e.JSON(http.StatusOK, audit.InternalAudit)
	}
}
