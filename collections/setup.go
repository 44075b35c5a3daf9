package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"

	"estimatetracker/estimates"
)

// Collection names shared with the store and handlers.
const (
	Projects         = "projects"
	Estimates        = "estimates"
	EstimateSections = "estimate_sections"
	EstimateItems    = "estimate_items"
)

// ProjectStatuses lists the values of the projects status select.
var ProjectStatuses = []string{"Completed", "Processing", "Rejected", "On Hold", "In Transit"}

// EstimateStatuses lists the values of the estimates status select.
func EstimateStatuses() []string {
	out := make([]string, len(estimates.Statuses))
	for i, s := range estimates.Statuses {
		out[i] = string(s)
	}
	return out
}

// Setup programmatically creates/ensures the projects, estimates,
// estimate_sections and estimate_items collections exist.
func Setup(app core.App) {
	ensureCollection(app, Projects, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "customer", Required: true})
		c.Fields.Add(&core.TextField{Name: "reference_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "project_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "project_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "area_location", Required: false})
		c.Fields.Add(&core.TextField{Name: "address", Required: false})
		c.Fields.Add(&core.TextField{Name: "due_date", Required: false})
		c.Fields.Add(&core.TextField{Name: "contact", Required: false})
		c.Fields.Add(&core.TextField{Name: "manager", Required: false})
		c.Fields.Add(&core.TextField{Name: "staff", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    ProjectStatuses,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.EmailField{Name: "email", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	estimatesCol := ensureCollection(app, Estimates, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "version", Required: false})
		c.Fields.Add(&core.TextField{Name: "project", Required: true})
		c.Fields.Add(&core.TextField{Name: "client", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    EstimateStatuses(),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.DateField{Name: "created_at"})
		c.Fields.Add(&core.DateField{Name: "updated_at"})
		// Insertion order of the estimate list.
		c.Fields.Add(&core.NumberField{Name: "position", OnlyInt: true})
	})

	sections := ensureCollection(app, EstimateSections, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "estimate",
			Required:      true,
			CollectionId:  estimatesCol.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", OnlyInt: true})
		c.Fields.Add(&core.NumberField{Name: "key", OnlyInt: true, Required: true})
		c.Fields.Add(&core.TextField{Name: "title"})
		c.Fields.Add(&core.BoolField{Name: "expanded"})
	})

	ensureCollection(app, EstimateItems, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "section",
			Required:      true,
			CollectionId:  sections.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", OnlyInt: true})
		c.Fields.Add(&core.NumberField{Name: "key", OnlyInt: true, Required: true})
		c.Fields.Add(&core.TextField{Name: "title"})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.TextField{Name: "unit"})
		// Raw user input; the total is derived from these.
		c.Fields.Add(&core.TextField{Name: "quantity"})
		c.Fields.Add(&core.TextField{Name: "price"})
		c.Fields.Add(&core.TextField{Name: "margin"})
		c.Fields.Add(&core.TextField{Name: "total"})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
