package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"proposaldesk/testhelpers"
)

func TestBuildAuditExportData(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal := testhelpers.CreateTestProposal(t, app, "Stadium North End")
	testhelpers.CreateTestScreen(t, app, proposal.Id, "Main Videoboard", 20, 10, 4)

	data, err := buildAuditExportData(app, proposal)
	if err != nil {
		t.Fatalf("buildAuditExportData() error = %v", err)
	}

	if data.Title != "Stadium North End" {
		t.Errorf("title = %q", data.Title)
	}
	if data.ClientName != "Test Client" {
		t.Errorf("client = %q", data.ClientName)
	}
	if len(data.Audit.Screens) != 1 {
		t.Fatalf("expected 1 screen in audit, got %d", len(data.Audit.Screens))
	}
	if !data.Audit.FinalTotal.IsPositive() {
		t.Error("expected positive final total")
	}
}

func TestHandleAuditExportExcel_Download(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal := testhelpers.CreateTestProposal(t, app, "Stadium North End")
	testhelpers.CreateTestScreen(t, app, proposal.Id, "Main Videoboard", 20, 10, 4)

	handler := HandleAuditExportExcel(app)

	req := httptest.NewRequest(http.MethodGet, "/proposals/"+proposal.Id+"/export/excel", nil)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Audit_Stadium-North-End") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	f, err := excelize.OpenReader(strings.NewReader(rec.Body.String()))
	if err != nil {
		t.Fatalf("response body is not valid Excel: %v", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[1] != "Rounding Ledger" {
		t.Errorf("sheets = %v", sheets)
	}
}

func TestHandleProposalExportPDF_Download(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal := testhelpers.CreateTestProposal(t, app, "Stadium North End")
	testhelpers.CreateTestScreen(t, app, proposal.Id, "Main Videoboard", 20, 10, 4)

	handler := HandleProposalExportPDF(app)

	req := httptest.NewRequest(http.MethodGet, "/proposals/"+proposal.Id+"/export/pdf", nil)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.Bytes()
	if len(body) < 5 || string(body[:5]) != "%PDF-" {
		t.Error("response body does not start with PDF header")
	}
}

func TestHandleAuditExportExcel_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleAuditExportExcel(app)

	req := httptest.NewRequest(http.MethodGet, "/proposals/missing/export/excel", nil)
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
