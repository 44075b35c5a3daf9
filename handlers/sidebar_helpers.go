package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"

	"estimatetracker/collections"
	"estimatetracker/estimates"
	"estimatetracker/templates"
)

// BuildSidebarData counts projects, stored estimates and open editing
// sessions for the navigation menu. Counting failures leave the counter at 0.
func BuildSidebarData(r *http.Request, app *pocketbase.PocketBase, svc *estimates.Service) templates.SidebarData {
	data := templates.SidebarData{
		ActivePath: r.URL.Path,
		DraftCount: svc.SessionCount(),
	}

	if n, err := app.CountRecords(collections.Projects); err == nil {
		data.ProjectCount = int(n)
	} else {
		log.Printf("sidebar: could not count projects: %v", err)
	}

	if n, err := app.CountRecords(collections.Estimates); err == nil {
		data.EstimateCount = int(n)
	} else {
		log.Printf("sidebar: could not count estimates: %v", err)
	}

	return data
}
