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

func HandleProjectEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		record, err := app.FindRecordById(collections.Projects, projectID)
		if err != nil {
			log.Printf("project_edit: could not find project %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		values := make(map[string]string, len(services.ProjectFormFields))
		for _, f := range services.ProjectFormFields {
			values[f] = record.GetString(f)
		}

		data := projectFormData(projectID, values, nil)
		component := templates.ProjectFormPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		return component.Render(e.Request.Context(), e.Response)
	}
}

func HandleProjectUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		record, err := app.FindRecordById(collections.Projects, projectID)
		if err != nil {
			log.Printf("project_edit: could not find project %s: %v", projectID, err)
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		input := services.ProjectInputFromForm(e.Request.FormValue)
		if errs := validateProject(app, input, projectID); len(errs) > 0 {
			SetToast(e, ToastWarning, "Please fix the errors below")
			data := projectFormData(projectID, input.Values(), errs)
			component := templates.ProjectFormPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
			return component.Render(e.Request.Context(), e.Response)
		}

		setProjectFields(record, input)
		if err := app.Save(record); err != nil {
			log.Printf("project_edit: could not update project %s: %v", projectID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, ToastSuccess, "Project updated successfully")
		return redirectTo(e, "/projects/"+projectID)
	}
}
