package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"proposaldesk/testhelpers"
)

func TestHandleShareCreate_MintsToken(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal := testhelpers.CreateTestProposal(t, app, "Stadium North End")

	handler := HandleShareCreate(app)

	req := httptest.NewRequest(http.MethodPost, "/proposals/"+proposal.Id+"/share", nil)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	var body struct {
		Token string `json:"token"`
		URL   string `json:"url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if !regexp.MustCompile(`^[0-9a-f]{32}$`).MatchString(body.Token) {
		t.Errorf("token = %q, want 32 hex chars", body.Token)
	}
	if body.URL != "/share/"+body.Token {
		t.Errorf("url = %q", body.URL)
	}

	links, err := app.FindRecordsByFilter("share_links", "token = {:token}", "", 1, 0,
		map[string]any{"token": body.Token})
	if err != nil || len(links) == 0 {
		t.Error("expected share link record in database")
	}
}

func TestHandleShareView_ServesSanitizedSummary(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal := testhelpers.CreateTestProposal(t, app, "Stadium North End")
	testhelpers.CreateTestScreen(t, app, proposal.Id, "Main Videoboard", 20, 10, 4)
	testhelpers.CreateTestShareLink(t, app, proposal.Id, "0123456789abcdef0123456789abcdef")

	handler := HandleShareView(app)

	req := httptest.NewRequest(http.MethodGet, "/share/0123456789abcdef0123456789abcdef", nil)
	req.SetPathValue("token", "0123456789abcdef0123456789abcdef")
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	testhelpers.AssertBodyContains(t, rec.Body.String(), "Stadium North End", "finalTotal")
}

func TestHandleShareView_UnknownToken(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleShareView(app)

	req := httptest.NewRequest(http.MethodGet, "/share/ffffffffffffffffffffffffffffffff", nil)
	req.SetPathValue("token", "ffffffffffffffffffffffffffffffff")
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
