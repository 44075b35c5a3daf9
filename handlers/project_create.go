package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatetracker/collections"
	"estimatetracker/services"
	"estimatetracker/templates"
)

// projectFormFields are the inputs of the project form in display order.
var projectFormFields = []templates.ProjectFormField{
	{Name: "customer", Label: "Customer"},
	{Name: "reference_number", Label: "Reference No."},
	{Name: "project_name", Label: "Project Name"},
	{Name: "project_number", Label: "Project Number"},
	{Name: "area_location", Label: "Area / Location"},
	{Name: "address", Label: "Address"},
	{Name: "due_date", Label: "Due Date", Type: "date"},
	{Name: "contact", Label: "Contact", Type: "tel"},
	{Name: "manager", Label: "Manager"},
	{Name: "staff", Label: "Staff"},
	{Name: "status", Label: "Status"},
	{Name: "email", Label: "Email", Type: "email"},
}

func projectFormData(id string, values, errs map[string]string) templates.ProjectFormData {
	if values == nil {
		values = map[string]string{}
	}
	if errs == nil {
		errs = map[string]string{}
	}
	return templates.ProjectFormData{
		ID:       id,
		Fields:   projectFormFields,
		Values:   values,
		Errors:   errs,
		Statuses: collections.ProjectStatuses,
	}
}

// validateProject runs the form rules and checks that no other project uses
// the same name. excludeID is the record being edited, if any.
func validateProject(app *pocketbase.PocketBase, input services.ProjectInput, excludeID string) map[string]string {
	errs := services.ErrorMap(input.Validate(collections.ProjectStatuses))

	if input.ProjectName != "" && errs["project_name"] == "" {
		existing, _ := app.FindRecordsByFilter(
			collections.Projects,
			"project_name = {:name} && id != {:id}",
			"", 1, 0,
			map[string]any{"name": input.ProjectName, "id": excludeID},
		)
		if len(existing) > 0 {
			errs["project_name"] = "A project with this name already exists"
		}
	}
	return errs
}

func setProjectFields(rec *core.Record, input services.ProjectInput) {
	for k, v := range input.Values() {
		rec.Set(k, v)
	}
}

func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := projectFormData("", map[string]string{"status": "Processing"}, nil)
		component := templates.ProjectFormPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		return component.Render(e.Request.Context(), e.Response)
	}
}

func HandleProjectSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		input := services.ProjectInputFromForm(e.Request.FormValue)
		if errs := validateProject(app, input, ""); len(errs) > 0 {
			SetToast(e, ToastWarning, "Please fix the errors below")
			data := projectFormData("", input.Values(), errs)
			component := templates.ProjectFormPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
			return component.Render(e.Request.Context(), e.Response)
		}

		projectsCol, err := app.FindCollectionByNameOrId(collections.Projects)
		if err != nil {
			log.Printf("project_create: could not find projects collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(projectsCol)
		setProjectFields(record, input)
		if err := app.Save(record); err != nil {
			log.Printf("project_create: could not save project: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, ToastSuccess, "Project created successfully")
		return redirectTo(e, "/projects")
	}
}
