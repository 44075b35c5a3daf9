// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatetracker/collections"
	"estimatetracker/estimates"
	"estimatetracker/store"
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

// NewTestService returns an estimate service over the app's collections with
// no submit delay. It is closed when the test finishes.
func NewTestService(t *testing.T, app core.App) *estimates.Service {
	t.Helper()

	svc := estimates.NewService(store.NewEstimateStore(app), estimates.WithSubmitDelay(0))
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app core.App, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.Projects)
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("customer", "Test Customer")
	record.Set("reference_number", "REF-"+strings.ToUpper(strings.ReplaceAll(name, " ", "")))
	record.Set("project_name", name)
	record.Set("project_number", "PN0001")
	record.Set("area_location", "Karnataka")
	record.Set("address", "Bengaluru, Karnataka")
	record.Set("due_date", "2025-03-31")
	record.Set("contact", "9876543210")
	record.Set("manager", "Test Manager")
	record.Set("staff", "Test Staff")
	record.Set("status", string(estimates.StatusProcessing))
	record.Set("email", "site@example.com")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestEstimate stores an estimate for project/client with one section
// holding two items (10 x 50 at 15% and 5 x 100 at 10%, total 1125).
func CreateTestEstimate(t *testing.T, app core.App, project, client string) estimates.Document {
	t.Helper()

	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	doc := estimates.Document{
		Version:   estimates.VersionAt(now),
		Project:   project,
		Client:    client,
		Status:    estimates.StatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
		Sections: []estimates.Section{{
			ID:       1,
			Title:    "Section for " + project,
			Expanded: true,
			Items: []estimates.LineItem{
				{ID: 2, Title: "Item 1", Unit: "hrs", Quantity: "10", Price: "50", Margin: "15",
					Total: estimates.ItemTotal("10", "50", "15")},
				{ID: 3, Title: "Item 2", Unit: "pcs", Quantity: "5", Price: "100", Margin: "10",
					Total: estimates.ItemTotal("5", "100", "10")},
			},
		}},
	}

	stored, err := store.NewEstimateStore(app).Append(context.Background(), doc)
	if err != nil {
		t.Fatalf("failed to save test estimate: %v", err)
	}
	return stored
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
