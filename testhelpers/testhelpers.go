// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposaldesk/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProposal creates a proposal record with the given name and returns it.
func CreateTestProposal(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("proposals")
	if err != nil {
		t.Fatalf("failed to find proposals collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("client_name", "Test Client")
	record.Set("status", "draft")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test proposal: %v", err)
	}

	return record
}

// CreateTestScreen creates a screen record linked to a proposal and returns it.
func CreateTestScreen(t *testing.T, app *pocketbase.PocketBase, proposalID, name string, widthFt, heightFt, pitchMm float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("screens")
	if err != nil {
		t.Fatalf("failed to find screens collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("proposal", proposalID)
	record.Set("sort_order", 1)
	record.Set("name", name)
	record.Set("product_type", "LED Display")
	record.Set("width_ft", widthFt)
	record.Set("height_ft", heightFt)
	record.Set("quantity", 1)
	record.Set("pitch_mm", pitchMm)
	record.Set("service_type", "turnkey")
	record.Set("desired_margin", 0.25)
	record.Set("source_type", "manual")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test screen: %v", err)
	}

	return record
}

// CreateTestRateConfig creates a rate_configs record. An empty proposalID
// creates the global record.
func CreateTestRateConfig(t *testing.T, app *pocketbase.PocketBase, proposalID string, fields map[string]float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("rate_configs")
	if err != nil {
		t.Fatalf("failed to find rate_configs collection: %v", err)
	}

	record := core.NewRecord(col)
	if proposalID != "" {
		record.Set("proposal", proposalID)
	}
	for field, value := range fields {
		record.Set(field, value)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test rate config: %v", err)
	}

	return record
}

// CreateTestShareLink creates a share_links record with the given token.
func CreateTestShareLink(t *testing.T, app *pocketbase.PocketBase, proposalID, token string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("share_links")
	if err != nil {
		t.Fatalf("failed to find share_links collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("proposal", proposalID)
	record.Set("token", token)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test share link: %v", err)
	}

	return record
}

// AssertBodyContains checks that body contains all specified fragments.
func AssertBodyContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected body to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
