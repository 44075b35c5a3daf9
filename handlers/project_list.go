package handlers

import (
	"log"
	"net/http"
	"slices"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatetracker/collections"
	"estimatetracker/config"
	"estimatetracker/services"
	"estimatetracker/templates"
)

// projectSearchFields are the text fields the project search box matches.
var projectSearchFields = []string{
	"customer", "reference_number", "project_name", "project_number", "area_location", "address",
}

func projectListItem(rec *core.Record) templates.ProjectListItem {
	status := rec.GetString("status")
	return templates.ProjectListItem{
		ID:            rec.Id,
		Customer:      rec.GetString("customer"),
		Reference:     rec.GetString("reference_number"),
		ProjectName:   rec.GetString("project_name"),
		ProjectNumber: rec.GetString("project_number"),
		Location:      rec.GetString("area_location"),
		Status:        status,
		BadgeClass:    services.StatusBadgeClass(status),
		Created:       services.FormatDate(rec.GetDateTime("created").Time()),
	}
}

func projectMatches(rec *core.Record, search, status string) bool {
	if status != "" && rec.GetString("status") != status {
		return false
	}
	if search == "" {
		return true
	}
	for _, f := range projectSearchFields {
		if strings.Contains(strings.ToLower(rec.GetString(f)), search) {
			return true
		}
	}
	return false
}

// HandleProjectList renders the projects table sorted by name. Query
// parameters: q (search), status, page and repeated hide=<column>.
func HandleProjectList(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectsCol, err := app.FindCollectionByNameOrId(collections.Projects)
		if err != nil {
			log.Printf("project_list: could not find projects collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindAllRecords(projectsCol)
		if err != nil {
			log.Printf("project_list: could not query projects: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		q := e.Request.URL.Query()
		search := strings.TrimSpace(q.Get("q"))
		status := strings.TrimSpace(q.Get("status"))
		needle := strings.ToLower(search)

		var items []templates.ProjectListItem
		for _, rec := range records {
			if projectMatches(rec, needle, status) {
				items = append(items, projectListItem(rec))
			}
		}

		slices.SortStableFunc(items, func(a, b templates.ProjectListItem) int {
			return strings.Compare(strings.ToLower(a.ProjectName), strings.ToLower(b.ProjectName))
		})

		page := services.Paginate(items, pageParam(q), cfg.PageSize)
		data := templates.ProjectListData{
			Items:    page.Items,
			Search:   search,
			Status:   status,
			Statuses: collections.ProjectStatuses,
			Columns:  templates.ProjectColumns,
			Hidden:   hiddenColumns(q, templates.ProjectColumns),
			Pager:    buildPager(page, "/projects", q, "#project-list"),
		}

		var component templ.Component
		if isHTMX(e) {
			component = templates.ProjectListContent(data)
		} else {
			component = templates.ProjectListPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
