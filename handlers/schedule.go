package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"proposaldesk/services"
)

// HandleProposalSchedule returns the projected installation schedule for a
// proposal. An optional ?start=YYYY-MM-DD overrides the default of starting
// tomorrow; install durations scale with the proposal's total display area.
func HandleProposalSchedule(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposal, err := findProposal(app, e, "id")
		if proposal == nil {
			return err
		}

		start := time.Now().AddDate(0, 0, 1)
		if raw := e.Request.URL.Query().Get("start"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return jsonError(e, http.StatusBadRequest, "Invalid start date, want YYYY-MM-DD")
			}
			start = parsed
		}

		rates := services.LoadRateConfig(app, proposal.Id)
		inputs, err := screenInputsForProposal(app, proposal.Id, rates)
		if err != nil {
			log.Printf("schedule: could not load screens for proposal %s: %v", proposal.Id, err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		totalArea := decimal.Zero
		for _, in := range inputs {
			if in.WidthFt.IsPositive() && in.HeightFt.IsPositive() {
				totalArea = totalArea.Add(
					in.WidthFt.Mul(in.HeightFt).Mul(decimal.NewFromInt(int64(in.Quantity))))
			}
		}

		phases := services.GenerateSchedule(start, totalArea)

		return e.JSON(http.StatusOK, map[string]any{
			"proposalName":  proposal.GetString("name"),
			"totalAreaSqFt": totalArea,
			"phases":        phases,
		})
	}
}
