package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"proposaldesk/testhelpers"
)

const rfpSpecPage = `The main videoboard shall be an outdoor LED display, 40' x 22',
with a pixel pitch of 10mm and minimum brightness of 8500 nits. Quantity: 1.
Structural steel mounting designed by a structural engineer with a PE stamp.`

func TestHandleRFPTriage(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleRFPTriage(app)

	payload := `{"pages":[{"pageNum":1,"text":` + jsonString(rfpSpecPage) + `},{"pageNum":2,"text":"A-101"}]}`

	req := httptest.NewRequest(http.MethodPost, "/rfp/triage", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		TotalPages   int `json:"totalPages"`
		TextPages    int `json:"textPages"`
		DrawingPages int `json:"drawingPages"`
		Pages        []struct {
			Recommended string `json:"recommended"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.TotalPages != 2 || body.TextPages != 1 || body.DrawingPages != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", body.TotalPages, body.TextPages, body.DrawingPages)
	}
	if body.Pages[1].Recommended != "review" {
		t.Errorf("drawing page recommended = %q, want review", body.Pages[1].Recommended)
	}
}

func TestHandleRFPTriage_EmptyBody(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleRFPTriage(app)

	req := httptest.NewRequest(http.MethodPost, "/rfp/triage", strings.NewReader(`{"pages":[]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleRFPExtract_DryRun(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal := testhelpers.CreateTestProposal(t, app, "Stadium North End")

	handler := HandleRFPExtract(app)

	payload := `{"pages":[{"pageNum":12,"text":` + jsonString(rfpSpecPage) + `}],"commit":false}`

	req := httptest.NewRequest(http.MethodPost, "/proposals/"+proposal.Id+"/rfp/extract",
		strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Screens []struct {
			ScreenName string  `json:"screenName"`
			WidthFt    float64 `json:"sizeWidthFt"`
		} `json:"screens"`
		Committed bool `json:"committed"`
		Saved     int  `json:"saved"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(body.Screens) != 1 || body.Screens[0].WidthFt != 40 {
		t.Fatalf("screens = %+v", body.Screens)
	}
	if body.Committed || body.Saved != 0 {
		t.Error("dry run must not save records")
	}

	records, _ := app.FindRecordsByFilter("screens", "proposal = {:proposalId}", "", 0, 0,
		map[string]any{"proposalId": proposal.Id})
	if len(records) != 0 {
		t.Errorf("dry run created %d screen records", len(records))
	}
}

func TestHandleRFPExtract_Commit(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal := testhelpers.CreateTestProposal(t, app, "Stadium North End")
	testhelpers.CreateTestScreen(t, app, proposal.Id, "Existing Screen", 10, 5, 4)

	handler := HandleRFPExtract(app)

	payload := `{"pages":[{"pageNum":12,"text":` + jsonString(rfpSpecPage) + `}],"commit":true}`

	req := httptest.NewRequest(http.MethodPost, "/proposals/"+proposal.Id+"/rfp/extract",
		strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	records, err := app.FindRecordsByFilter("screens", "source_type = 'extracted'", "", 0, 0)
	if err != nil || len(records) != 1 {
		t.Fatalf("expected 1 extracted screen, got %d (err=%v)", len(records), err)
	}
	r := records[0]
	if r.GetString("name") != "Main Videoboard" {
		t.Errorf("name = %q", r.GetString("name"))
	}
	if r.GetInt("sort_order") != 2 {
		t.Errorf("sort_order = %d, want 2 after existing screen", r.GetInt("sort_order"))
	}
	if r.GetInt("source_page") != 12 {
		t.Errorf("source_page = %d, want 12", r.GetInt("source_page"))
	}
	if r.GetFloat("extraction_confidence") <= 0 {
		t.Error("extraction_confidence should be set")
	}
}

// jsonString marshals s as a JSON string literal for embedding in request bodies.
func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
