package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"proposaldesk/services"
)

// jsonError writes a uniform error payload.
func jsonError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]string{"error": message})
}

// parseDecimalField parses a form value into a decimal. Empty values are
// zero; anything unparseable (including NaN/Inf spellings) is an error, so
// bad numerics are rejected at the boundary instead of poisoning the math.
func parseDecimalField(raw, field string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: invalid number %q", field, raw)
	}
	return d, nil
}

// screenInputsForProposal loads a proposal's screens in sort order and
// converts them to pricing inputs. A screen without a stored margin inherits
// the config default; a missing quantity counts as one.
func screenInputsForProposal(app *pocketbase.PocketBase, proposalID string, rates services.RateConfig) ([]services.ScreenInput, error) {
	col, err := app.FindCollectionByNameOrId("screens")
	if err != nil {
		return nil, fmt.Errorf("collection not found: %w", err)
	}

	records, err := app.FindRecordsByFilter(col, "proposal = {:proposalId}", "sort_order", 0, 0,
		map[string]any{"proposalId": proposalID})
	if err != nil {
		return nil, fmt.Errorf("could not load screens: %w", err)
	}

	inputs := make([]services.ScreenInput, 0, len(records))
	for _, r := range records {
		margin := decimal.NewFromFloat(r.GetFloat("desired_margin"))
		if !margin.IsPositive() {
			margin = rates.DefaultMargin
		}

		quantity := r.GetInt("quantity")
		if quantity <= 0 {
			quantity = 1
		}

		inputs = append(inputs, services.ScreenInput{
			Name:          r.GetString("name"),
			ProductType:   r.GetString("product_type"),
			WidthFt:       decimal.NewFromFloat(r.GetFloat("width_ft")),
			HeightFt:      decimal.NewFromFloat(r.GetFloat("height_ft")),
			Quantity:      quantity,
			PitchMm:       decimal.NewFromFloat(r.GetFloat("pitch_mm")),
			ServiceType:   r.GetString("service_type"),
			DesiredMargin: margin,
		})
	}

	return inputs, nil
}

// auditForProposal resolves rates, loads screens, and prices the proposal.
func auditForProposal(app *pocketbase.PocketBase, proposal *core.Record) (*services.ProposalAudit, error) {
	rates := services.LoadRateConfig(app, proposal.Id)
	inputs, err := screenInputsForProposal(app, proposal.Id, rates)
	if err != nil {
		return nil, err
	}
	return services.BuildProposalAudit(proposal.GetString("name"), inputs, rates)
}

// findProposal fetches a proposal record from the request's {id} path value.
// A nil record means the response has already been written.
func findProposal(app *pocketbase.PocketBase, e *core.RequestEvent, pathParam string) (*core.Record, error) {
	id := e.Request.PathValue(pathParam)
	if id == "" {
		return nil, jsonError(e, http.StatusBadRequest, "Missing proposal ID")
	}
	proposal, err := app.FindRecordById("proposals", id)
	if err != nil {
		return nil, jsonError(e, http.StatusNotFound, "Proposal not found")
	}
	return proposal, nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}
