package collections_test

import (
	"testing"

	"estimatetracker/collections"
	"estimatetracker/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"projects",
	"estimates",
	"estimate_sections",
	"estimate_items",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	collections.Setup(app)

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_ProjectsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("projects")

	fields := []string{
		"customer", "reference_number", "project_name", "project_number", "area_location",
		"address", "due_date", "contact", "manager", "staff", "status", "email", "created", "updated",
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("projects: missing field %q", f)
		}
	}

	statusField := col.Fields.GetByName("status")
	if sf, ok := statusField.(*core.SelectField); ok {
		expected := map[string]bool{
			"Completed": true, "Processing": true, "Rejected": true, "On Hold": true, "In Transit": true,
		}
		for _, v := range sf.Values {
			if !expected[v] {
				t.Errorf("unexpected status value: %q", v)
			}
			delete(expected, v)
		}
		for v := range expected {
			t.Errorf("missing status value: %q", v)
		}
	} else {
		t.Errorf("status field is not a SelectField")
	}
}

func TestSetup_EstimateFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("estimates")

	for _, f := range []string{"version", "project", "client", "status", "created_at", "updated_at", "position"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("estimates: missing field %q", f)
		}
	}
}

func TestSetup_SectionAndItemRelations(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	cases := []struct {
		collection, relation, target string
	}{
		{"estimate_sections", "estimate", "estimates"},
		{"estimate_items", "section", "estimate_sections"},
	}
	for _, c := range cases {
		col, _ := app.FindCollectionByNameOrId(c.collection)
		target, _ := app.FindCollectionByNameOrId(c.target)

		rf, ok := col.Fields.GetByName(c.relation).(*core.RelationField)
		if !ok {
			t.Errorf("%s.%s is not a RelationField", c.collection, c.relation)
			continue
		}
		if rf.CollectionId != target.Id {
			t.Errorf("%s.%s: points at %s, want %s", c.collection, c.relation, rf.CollectionId, target.Id)
		}
		if !rf.CascadeDelete {
			t.Errorf("%s.%s: expected CascadeDelete=true", c.collection, c.relation)
		}
		if rf.MaxSelect != 1 {
			t.Errorf("%s.%s: expected MaxSelect=1, got %d", c.collection, c.relation, rf.MaxSelect)
		}
		for _, f := range []string{"sort_order", "key"} {
			if col.Fields.GetByName(f) == nil {
				t.Errorf("%s: missing field %q", c.collection, f)
			}
		}
	}

	items, _ := app.FindCollectionByNameOrId("estimate_items")
	for _, f := range []string{"title", "description", "unit", "quantity", "price", "margin", "total"} {
		if items.Fields.GetByName(f) == nil {
			t.Errorf("estimate_items: missing field %q", f)
		}
	}
}
