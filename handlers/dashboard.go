package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"estimatetracker/collections"
	"estimatetracker/config"
	"estimatetracker/estimates"
	"estimatetracker/services"
	"estimatetracker/templates"
)

const recentEstimates = 5

func HandleDashboard(app *pocketbase.PocketBase, svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		docs, err := svc.List(e.Request.Context(), estimates.ListFilter{})
		if err != nil {
			log.Printf("dashboard: could not list estimates: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		projectCount, err := app.CountRecords(collections.Projects)
		if err != nil {
			log.Printf("dashboard: could not count projects: %v", err)
		}

		counts := make(map[estimates.Status]int)
		grand := decimal.Zero
		for _, doc := range docs {
			counts[doc.Status]++
			grand = grand.Add(estimates.DocumentTotals(doc).TotalAmount)
		}

		data := templates.DashboardData{
			ProjectCount:  int(projectCount),
			EstimateCount: len(docs),
			OpenDrafts:    svc.SessionCount(),
			GrandTotal:    services.FormatMoney(grand, cfg.Currency),
		}
		for _, s := range estimates.Statuses {
			data.StatusCounts = append(data.StatusCounts, templates.StatusCount{
				Status:     string(s),
				Count:      counts[s],
				BadgeClass: services.StatusBadgeClass(string(s)),
			})
		}
		// Newest first.
		for i := len(docs) - 1; i >= 0 && len(data.Recent) < recentEstimates; i-- {
			data.Recent = append(data.Recent, estimateRow(docs[i], cfg.Currency))
		}

		var component templ.Component
		if isHTMX(e) {
			component = templates.DashboardContent(data)
		} else {
			component = templates.DashboardPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
