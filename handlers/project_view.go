package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatetracker/collections"
	"estimatetracker/config"
	"estimatetracker/estimates"
	"estimatetracker/services"
	"estimatetracker/templates"
)

// HandleProjectView shows one project and the stored estimates whose project
// name matches it.
func HandleProjectView(app *pocketbase.PocketBase, svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		record, err := app.FindRecordById(collections.Projects, projectID)
		if err != nil {
			log.Printf("project_view: could not find project %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		name := record.GetString("project_name")
		status := record.GetString("status")
		data := templates.ProjectViewData{
			ID:          projectID,
			ProjectName: name,
			Status:      status,
			BadgeClass:  services.StatusBadgeClass(status),
		}
		for _, f := range projectFormFields {
			if f.Name == "status" || f.Name == "project_name" {
				continue
			}
			value := record.GetString(f.Name)
			if value == "" {
				value = "—"
			}
			data.Fields = append(data.Fields, templates.LabeledValue{Label: f.Label, Value: value})
		}
		data.Fields = append(data.Fields, templates.LabeledValue{
			Label: "Created",
			Value: services.FormatDate(record.GetDateTime("created").Time()),
		})

		docs, err := svc.List(e.Request.Context(), estimates.ListFilter{})
		if err != nil {
			log.Printf("project_view: could not list estimates: %v", err)
		}
		for _, doc := range docs {
			if strings.EqualFold(strings.TrimSpace(doc.Project), strings.TrimSpace(name)) {
				data.Estimates = append(data.Estimates, estimateRow(doc, cfg.Currency))
			}
		}

		var component templ.Component
		if isHTMX(e) {
			component = templates.ProjectView(data)
		} else {
			component = templates.ProjectViewPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
