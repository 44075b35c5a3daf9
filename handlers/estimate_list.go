package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"estimatetracker/config"
	"estimatetracker/estimates"
	"estimatetracker/services"
	"estimatetracker/templates"
)

const dateParamLayout = "2006-01-02"

func estimateRow(doc estimates.Document, currency string) templates.EstimateRow {
	status := string(doc.Status)
	return templates.EstimateRow{
		ID:         doc.ID,
		Version:    doc.Version,
		Project:    doc.Project,
		Client:     doc.Client,
		Created:    services.FormatDate(doc.CreatedAt),
		Modified:   services.FormatDate(doc.UpdatedAt),
		Status:     status,
		BadgeClass: services.StatusBadgeClass(status),
		Total:      services.FormatMoney(estimates.DocumentTotals(doc).TotalAmount, currency),
	}
}

// listFilter reads q, status, from and to. Unparseable dates and unknown
// statuses are dropped rather than rejected.
func listFilter(e *core.RequestEvent) estimates.ListFilter {
	q := e.Request.URL.Query()
	f := estimates.ListFilter{Search: strings.TrimSpace(q.Get("q"))}

	if s := estimates.Status(q.Get("status")); s.Valid() {
		f.Status = s
	}
	for key, dst := range map[string]*time.Time{"from": &f.From, "to": &f.To} {
		v := strings.TrimSpace(q.Get(key))
		if v == "" {
			continue
		}
		t, err := time.Parse(dateParamLayout, v)
		if err != nil {
			log.Printf("estimate_list: ignoring invalid %s date %q", key, v)
			continue
		}
		*dst = t
	}
	return f
}

func formatDateParam(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateParamLayout)
}

// HandleEstimateList renders the stored estimates in insertion order.
// Query parameters: q, status, from, to (YYYY-MM-DD), page and hide.
func HandleEstimateList(svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := listFilter(e)
		docs, err := svc.List(e.Request.Context(), filter)
		if err != nil {
			log.Printf("estimate_list: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		rows := make([]templates.EstimateRow, 0, len(docs))
		for _, doc := range docs {
			rows = append(rows, estimateRow(doc, cfg.Currency))
		}

		q := e.Request.URL.Query()
		page := services.Paginate(rows, pageParam(q), cfg.PageSize)
		data := templates.EstimateListData{
			Rows:     page.Items,
			Search:   filter.Search,
			Status:   string(filter.Status),
			From:     formatDateParam(filter.From),
			To:       formatDateParam(filter.To),
			Statuses: services.StatusOptions(),
			Columns:  templates.EstimateColumns,
			Hidden:   hiddenColumns(q, templates.EstimateColumns),
			Pager:    buildPager(page, "/estimates", q, "#estimate-list"),
		}

		var component templ.Component
		if isHTMX(e) {
			component = templates.EstimateListContent(data)
		} else {
			component = templates.EstimateListPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
