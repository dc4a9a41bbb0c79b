package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"proposaldesk/testhelpers"
)

func TestHandleProposalSummary_IsSanitized(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal := testhelpers.CreateTestProposal(t, app, "Stadium North End")
	testhelpers.CreateTestScreen(t, app, proposal.Id, "Main Videoboard", 20, 10, 4)

	handler := HandleProposalSummary(app)

	req := httptest.NewRequest(http.MethodGet, "/proposals/"+proposal.Id+"/summary", nil)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := rec.Body.String()
	testhelpers.AssertBodyContains(t, body, "proposalName", "screens", "finalTotal")

	// No cost or margin vocabulary may appear anywhere in the payload.
	lower := strings.ToLower(body)
	for _, banned := range []string{"cost", "margin", "breakdown", "rounding", "confidence"} {
		if strings.Contains(lower, banned) {
			t.Errorf("client summary leaks %q:\n%s", banned, body)
		}
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	screens, ok := payload["screens"].([]any)
	if !ok || len(screens) != 1 {
		t.Fatalf("expected 1 screen line, got %v", payload["screens"])
	}
	line := screens[0].(map[string]any)
	if _, ok := line["price"]; !ok {
		t.Error("screen line missing price")
	}
}

func TestHandleProposalSummary_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProposalSummary(app)

	req := httptest.NewRequest(http.MethodGet, "/proposals/missing/summary", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
