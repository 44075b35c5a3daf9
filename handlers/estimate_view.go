package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"estimatetracker/config"
	"estimatetracker/estimates"
	"estimatetracker/services"
	"estimatetracker/templates"
)

// estimateViewData builds the read-only view from the same rows the exports
// use, so the page and the downloads always agree.
func estimateViewData(doc estimates.Document, currency string) templates.EstimateViewData {
	export := services.BuildExportData(doc, currency)
	status := string(doc.Status)

	data := templates.EstimateViewData{
		ID:         doc.ID,
		Version:    doc.Version,
		Project:    doc.Project,
		Client:     doc.Client,
		Status:     status,
		BadgeClass: services.StatusBadgeClass(status),
		Created:    export.CreatedDate,
		Modified:   export.UpdatedDate,
		SubTotal:   services.FormatMoney(export.SubTotal, currency),
		Margin:     services.FormatMoney(export.TotalMargin, currency),
		Total:      services.FormatMoney(export.TotalAmount, currency),
	}

	for _, r := range export.Rows {
		if r.Level == 0 {
			data.Sections = append(data.Sections, templates.ViewSection{
				Index:    r.Index,
				Title:    r.Title,
				Subtotal: services.FormatMoney(r.Total, currency),
			})
			continue
		}
		sec := &data.Sections[len(data.Sections)-1]
		sec.Items = append(sec.Items, templates.ViewItem{
			Index:       r.Index,
			Title:       r.Title,
			Description: r.Description,
			Unit:        r.Unit,
			Quantity:    services.FormatQuantity(r.Quantity),
			Price:       services.FormatMoney(r.Price, currency),
			Margin:      r.Margin.String(),
			Total:       services.FormatMoney(r.Total, currency),
		})
	}
	return data
}

// loadEstimate fetches the {id} estimate, answering 404 itself when it is
// missing. A nil error with ok=false means a response was already written.
func loadEstimate(e *core.RequestEvent, svc *estimates.Service, name string) (estimates.Document, bool, error) {
	id := e.Request.PathValue("id")
	if id == "" {
		return estimates.Document{}, false, e.String(http.StatusBadRequest, "Missing estimate ID")
	}
	doc, err := svc.Get(e.Request.Context(), id)
	if err != nil {
		if errors.Is(err, estimates.ErrNotFound) {
			return estimates.Document{}, false, e.String(http.StatusNotFound, "Estimate not found")
		}
		log.Printf("%s: could not load estimate %s: %v", name, id, err)
		return estimates.Document{}, false, ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
	return doc, true, nil
}

func HandleEstimateView(svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, ok, err := loadEstimate(e, svc, "estimate_view")
		if !ok {
			return err
		}

		data := estimateViewData(doc, cfg.Currency)

		var component templ.Component
		if isHTMX(e) {
			component = templates.EstimateView(data)
		} else {
			component = templates.EstimateViewPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

func HandleEstimateDelete(svc *estimates.Service) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing estimate ID")
		}

		if err := svc.Delete(e.Request.Context(), id); err != nil {
			if errors.Is(err, estimates.ErrNotFound) {
				return ErrorToast(e, http.StatusNotFound, "Estimate not found")
			}
			log.Printf("estimate_delete: failed to delete estimate %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to delete estimate")
		}

		SetToast(e, ToastSuccess, "Estimate deleted")
		return redirectTo(e, "/estimates")
	}
}
