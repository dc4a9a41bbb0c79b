package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"proposaldesk/testhelpers"
)

func TestHandleProposalCreate_ValidData(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProposalCreate(app)

	form := url.Values{}
	form.Set("name", "Stadium North End")
	form.Set("client_name", "Metro Athletics")
	form.Set("status", "draft")

	req := httptest.NewRequest(http.MethodPost, "/proposals",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rec.Code)
	}

	records, err := app.FindRecordsByFilter("proposals", "name = {:name}", "", 1, 0,
		map[string]any{"name": "Stadium North End"})
	if err != nil || len(records) == 0 {
		t.Error("expected proposal to be created in database")
	}
}

func TestHandleProposalCreate_MissingName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProposalCreate(app)

	form := url.Values{}
	form.Set("name", "")

	req := httptest.NewRequest(http.MethodPost, "/proposals",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleProposalCreate_DuplicateName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProposal(t, app, "Existing Proposal")
	handler := HandleProposalCreate(app)

	form := url.Values{}
	form.Set("name", "Existing Proposal")

	req := httptest.NewRequest(http.MethodPost, "/proposals",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rec.Code)
	}
}

func TestHandleProposalCreate_UnknownStatusDefaultsToDraft(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProposalCreate(app)

	form := url.Values{}
	form.Set("name", "Odd Status")
	form.Set("status", "imaginary")

	req := httptest.NewRequest(http.MethodPost, "/proposals",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	records, err := app.FindRecordsByFilter("proposals", "name = {:name}", "", 1, 0,
		map[string]any{"name": "Odd Status"})
	if err != nil || len(records) == 0 {
		t.Fatal("expected proposal to be created")
	}
	if got := records[0].GetString("status"); got != "draft" {
		t.Errorf("status = %q, want draft", got)
	}
}
