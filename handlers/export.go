package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposaldesk/services"
)

// buildAuditExportData prices the proposal and shapes it for the internal
// workbook.
func buildAuditExportData(app *pocketbase.PocketBase, proposal *core.Record) (services.AuditExportData, error) {
	audit, err := auditForProposal(app, proposal)
	if err != nil {
		return services.AuditExportData{}, err
	}

	createdDate := "—"
	if dt := proposal.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("02 Jan 2006")
	}

	return services.AuditExportData{
		Title:       proposal.GetString("name"),
		ClientName:  proposal.GetString("client_name"),
		CreatedDate: createdDate,
		Audit:       audit.InternalAudit,
	}, nil
}

// HandleAuditExportExcel generates and downloads the internal cost audit
// workbook.
func HandleAuditExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposal, err := findProposal(app, e, "id")
		if proposal == nil {
			return err
		}

		data, err := buildAuditExportData(app, proposal)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return jsonError(e, http.StatusUnprocessableEntity, err.Error())
		}

		xlsxBytes, err := services.GenerateAuditExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Audit_%s_%d.xlsx", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleProposalExportPDF generates and downloads the client proposal PDF.
// The renderer only ever sees the sanitized summary.
func HandleProposalExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposal, err := findProposal(app, e, "id")
		if proposal == nil {
			return err
		}

		audit, err := auditForProposal(app, proposal)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return jsonError(e, http.StatusUnprocessableEntity, err.Error())
		}

		if !services.ValidateSanitized(audit.ClientSummary) {
			log.Printf("export_pdf: sanitizer check failed for proposal %s", proposal.Id)
			return jsonError(e, http.StatusInternalServerError, "Summary failed internal-data check")
		}

		createdDate := time.Now().Format("02 Jan 2006")
		if dt := proposal.GetDateTime("created"); !dt.IsZero() {
			createdDate = dt.Time().Format("02 Jan 2006")
		}

		data := services.BuildClientExportData(audit.ClientSummary,
			proposal.GetString("client_name"), createdDate)

		pdfBytes, err := services.GenerateProposalPDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Proposal_%s_%d.pdf", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
