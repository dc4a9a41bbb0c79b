package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposaldesk/services"
)

// HandleScreenUpdate patches individual screen fields from form data.
func HandleScreenUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		screenID := e.Request.PathValue("screenId")
		if screenID == "" {
			return jsonError(e, http.StatusBadRequest, "Missing screen ID")
		}

		screen, err := app.FindRecordById("screens", screenID)
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Screen not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid form data")
		}

		if e.Request.Form.Has("name") {
			name := strings.TrimSpace(e.Request.FormValue("name"))
			if name == "" {
				return jsonError(e, http.StatusBadRequest, "Screen name is required")
			}
			screen.Set("name", name)
		}
		if e.Request.Form.Has("product_type") {
			screen.Set("product_type", strings.TrimSpace(e.Request.FormValue("product_type")))
		}
		if e.Request.Form.Has("service_type") {
			serviceType := strings.TrimSpace(e.Request.FormValue("service_type"))
			valid := false
			for _, s := range ScreenServiceTypes {
				if serviceType == s {
					valid = true
					break
				}
			}
			if !valid {
				return jsonError(e, http.StatusBadRequest, "Invalid service type")
			}
			screen.Set("service_type", serviceType)
		}

		for _, field := range []string{"width_ft", "height_ft", "quantity", "pitch_mm", "desired_margin", "sort_order"} {
			if !e.Request.Form.Has(field) {
				continue
			}
			d, err := parseDecimalField(e.Request.FormValue(field), field)
			if err != nil {
				return jsonError(e, http.StatusBadRequest, err.Error())
			}
			if field == "desired_margin" && !d.IsZero() {
				if err := services.ValidateMargin(d); err != nil {
					return jsonError(e, http.StatusBadRequest, err.Error())
				}
			}
			screen.Set(field, d.InexactFloat64())
		}

		if err := app.Save(screen); err != nil {
			log.Printf("screen_edit: could not save screen: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":   screen.Id,
			"name": screen.GetString("name"),
		})
	}
}

// HandleScreenDelete removes a screen from its proposal.
func HandleScreenDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		screenID := e.Request.PathValue("screenId")
		if screenID == "" {
			return jsonError(e, http.StatusBadRequest, "Missing screen ID")
		}

		screen, err := app.FindRecordById("screens", screenID)
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Screen not found")
		}

		if err := app.Delete(screen); err != nil {
			log.Printf("screen_delete: could not delete screen: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}
