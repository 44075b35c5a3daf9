package collections_test

import (
	"context"
	"testing"

	"estimatetracker/collections"
	"estimatetracker/estimates"
	"estimatetracker/store"
	"estimatetracker/testhelpers"
)

func TestSeed_CreatesProjects(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	projectsCol, _ := app.FindCollectionByNameOrId("projects")
	projects, err := app.FindAllRecords(projectsCol)
	if err != nil {
		t.Fatalf("query projects error: %v", err)
	}
	if len(projects) != 20 {
		t.Fatalf("expected 20 projects, got %d", len(projects))
	}

	found, err := app.FindRecordsByFilter(projectsCol, "reference_number = '67KLMN2345P6Q7R8'", "", 1, 0)
	if err != nil || len(found) != 1 {
		t.Fatalf("expected seeded project 67KLMN2345P6Q7R8, err=%v", err)
	}
	if got := found[0].GetString("customer"); got != "Michael Jones" {
		t.Errorf("customer = %q, want %q", got, "Michael Jones")
	}
	if got := found[0].GetString("status"); got != "Processing" {
		t.Errorf("status = %q, want %q", got, "Processing")
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	projectsCol, _ := app.FindCollectionByNameOrId("projects")
	projects, _ := app.FindAllRecords(projectsCol)
	if len(projects) != 20 {
		t.Errorf("expected 20 projects after two seeds, got %d", len(projects))
	}
}

func TestSeed_SkipsWhenProjectsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProject(t, app, "Existing")

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	projectsCol, _ := app.FindCollectionByNameOrId("projects")
	projects, _ := app.FindAllRecords(projectsCol)
	if len(projects) != 1 {
		t.Errorf("expected seed to skip, got %d projects", len(projects))
	}
}

func TestSeedEstimates(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	st := store.NewEstimateStore(app)
	ctx := context.Background()

	if err := collections.SeedEstimates(ctx, st); err != nil {
		t.Fatalf("SeedEstimates() error: %v", err)
	}
	if err := collections.SeedEstimates(ctx, st); err != nil {
		t.Fatalf("second SeedEstimates() error: %v", err)
	}

	docs, err := st.All(ctx)
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	if len(docs) != 9 {
		t.Fatalf("expected 9 estimates, got %d", len(docs))
	}

	first := docs[0]
	if first.Version != "00001" || first.Project != "Christine Brooks" {
		t.Errorf("first estimate = %s %q, want 00001 Christine Brooks", first.Version, first.Project)
	}
	if got := first.CreatedAt.Format("02 Jan 2006"); got != "04 Sep 2019" {
		t.Errorf("created = %s, want 04 Sep 2019", got)
	}
	if docs[8].Status != estimates.StatusInTransit {
		t.Errorf("last estimate status = %q, want In Transit", docs[8].Status)
	}

	totals := estimates.DocumentTotals(first).Display()
	if totals.TotalAmount != "1125.00" {
		t.Errorf("seeded total = %s, want 1125.00", totals.TotalAmount)
	}
	for _, d := range docs {
		if errs := estimates.Validate(d); !errs.Empty() {
			t.Errorf("seeded estimate %s is invalid: %v", d.Version, errs.Keys())
		}
	}
}
