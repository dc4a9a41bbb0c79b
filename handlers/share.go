package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposaldesk/services"
)

// HandleShareCreate mints a share link for a proposal. The token is 32 hex
// characters of crypto randomness; knowing it is the only credential.
func HandleShareCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposal, err := findProposal(app, e, "id")
		if proposal == nil {
			return err
		}

		buf := make([]byte, 16)
		if _, err := rand.Read(buf); err != nil {
			log.Printf("share_create: could not generate token: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		token := hex.EncodeToString(buf)

		col, err := app.FindCollectionByNameOrId("share_links")
		if err != nil {
			log.Printf("share_create: could not find share_links collection: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("proposal", proposal.Id)
		record.Set("token", token)
		if err := app.Save(record); err != nil {
			log.Printf("share_create: could not save share link: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, map[string]string{
			"token": token,
			"url":   "/share/" + token,
		})
	}
}

// HandleShareView serves the sanitized summary for a share token. This is
// the public surface: the response carries client-safe data only.
func HandleShareView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		token := e.Request.PathValue("token")
		if token == "" {
			return jsonError(e, http.StatusBadRequest, "Missing share token")
		}

		links, err := app.FindRecordsByFilter("share_links", "token = {:token}", "", 1, 0,
			map[string]any{"token": token})
		if err != nil || len(links) == 0 {
			return jsonError(e, http.StatusNotFound, "Share link not found")
		}

		proposal, err := app.FindRecordById("proposals", links[0].GetString("proposal"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Proposal not found")
		}

		audit, err := auditForProposal(app, proposal)
		if err != nil {
			log.Printf("share_view: could not price proposal %s: %v", proposal.Id, err)
			return jsonError(e, http.StatusUnprocessableEntity, err.Error())
		}

		if !services.ValidateSanitized(audit.ClientSummary) {
			log.Printf("share_view: sanitizer check failed for proposal %s", proposal.Id)
			return jsonError(e, http.StatusInternalServerError, "Summary failed internal-data check")
		}

		return e.JSON(http.StatusOK, audit.ClientSummary)
	}
}
