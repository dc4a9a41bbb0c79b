package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposaldesk/collections"
	"proposaldesk/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Proposal CRUD ────────────────────────────────────────
		se.Router.GET("/proposals", handlers.HandleProposalList(app))
		se.Router.POST("/proposals", handlers.HandleProposalCreate(app))
		se.Router.GET("/proposals/{id}", handlers.HandleProposalView(app))
		se.Router.POST("/proposals/{id}/save", handlers.HandleProposalUpdate(app))
		se.Router.DELETE("/proposals/{id}", handlers.HandleProposalDelete(app))

		// ── Screens ──────────────────────────────────────────────
		se.Router.POST("/proposals/{id}/screens", handlers.HandleScreenCreate(app))
		se.Router.PATCH("/proposals/{id}/screens/{screenId}", handlers.HandleScreenUpdate(app))
		se.Router.DELETE("/proposals/{id}/screens/{screenId}", handlers.HandleScreenDelete(app))

		// ── Pricing ──────────────────────────────────────────────
		se.Router.GET("/proposals/{id}/audit", handlers.HandleProposalAudit(app))
		se.Router.GET("/proposals/{id}/summary", handlers.HandleProposalSummary(app))

		// ── Rates ────────────────────────────────────────────────
		se.Router.GET("/rates", handlers.HandleRatesView(app))
		se.Router.POST("/rates", handlers.HandleRatesSave(app))
		se.Router.GET("/proposals/{id}/rates", handlers.HandleRatesView(app))
		se.Router.POST("/proposals/{id}/rates", handlers.HandleRatesSave(app))

		// ── Exports ──────────────────────────────────────────────
		se.Router.GET("/proposals/{id}/export/excel", handlers.HandleAuditExportExcel(app))
		se.Router.GET("/proposals/{id}/export/pdf", handlers.HandleProposalExportPDF(app))

		// ── Schedule ─────────────────────────────────────────────
		se.Router.GET("/proposals/{id}/schedule", handlers.HandleProposalSchedule(app))

		// ── RFP intake ───────────────────────────────────────────
		se.Router.POST("/rfp/triage", handlers.HandleRFPTriage(app))
		se.Router.POST("/proposals/{id}/rfp/extract", handlers.HandleRFPExtract(app))

		// ── Share links (public view by token) ───────────────────
		se.Router.POST("/proposals/{id}/share", handlers.HandleShareCreate(app))
		se.Router.GET("/share/{token}", handlers.HandleShareView(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
