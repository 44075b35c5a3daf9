package handlers

import (
	"errors"
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatetracker/collections"
	"estimatetracker/config"
	"estimatetracker/estimates"
	"estimatetracker/services"
	"estimatetracker/templates"
)

func sessionURL(token string) string {
	return "/editor/" + token
}

// requestError is returned by editor actions for input the session cannot
// apply. It is reported to the user as a toast with the given status.
type requestError struct {
	status int
	msg    string
}

func (r *requestError) Error() string { return r.msg }

func badRequest(msg string) error {
	return &requestError{status: http.StatusBadRequest, msg: msg}
}

// sessionError reports a session lookup or edit failure as an error toast.
func sessionError(e *core.RequestEvent, name string, err error) error {
	var rerr *requestError
	switch {
	case errors.As(err, &rerr):
		return ErrorToast(e, rerr.status, rerr.msg)
	case errors.Is(err, estimates.ErrSessionNotFound), errors.Is(err, estimates.ErrServiceClosed):
		return ErrorToast(e, http.StatusNotFound, "This editing session has expired. Reopen the estimate to continue.")
	case errors.Is(err, estimates.ErrSessionClosed):
		return ErrorToast(e, http.StatusConflict, "This estimate has already been submitted.")
	case errors.Is(err, estimates.ErrNotFound):
		return ErrorToast(e, http.StatusNotFound, "Estimate not found")
	}
	log.Printf("%s: %v", name, err)
	return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
}

func pathInt(e *core.RequestEvent, name string) (int64, error) {
	v := e.Request.PathValue(name)
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, badRequest("Invalid " + name)
	}
	return id, nil
}

// projectNames returns the distinct project names for the editor's project
// suggestions, sorted.
func projectNames(app *pocketbase.PocketBase) []string {
	col, err := app.FindCollectionByNameOrId(collections.Projects)
	if err != nil {
		return nil
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		log.Printf("estimate_editor: could not query projects: %v", err)
		return nil
	}
	seen := make(map[string]bool, len(records))
	var names []string
	for _, rec := range records {
		n := rec.GetString("project_name")
		if n != "" && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// editorData flattens a session into the editor view model.
func editorData(sess *estimates.Session, currency string) templates.EditorData {
	doc := sess.Document()
	errs := sess.Errors()
	totals := estimates.DocumentTotals(doc)

	data := templates.EditorData{
		Token:      sess.Token,
		ID:         doc.ID,
		IsNew:      doc.IsNew(),
		Version:    doc.Version,
		Project:    doc.Project,
		Client:     doc.Client,
		Status:     string(doc.Status),
		ProjectErr: errs.Get(estimates.ProjectKey()),
		ClientErr:  errs.Get(estimates.ClientKey()),
		StatusErr:  errs.Get(estimates.StatusKey()),
		Statuses:   services.StatusOptions(),
		Units:      services.UnitOptions,
		SubTotal:   services.FormatMoney(totals.SubTotal, currency),
		Margin:     services.FormatMoney(totals.TotalMargin, currency),
		Total:      services.FormatMoney(totals.TotalAmount, currency),
		ErrorCount: len(errs),
		State:      sess.State().String(),
	}

	for _, sec := range doc.Sections {
		es := templates.EditorSection{
			ID:       sec.ID,
			Title:    sec.Title,
			TitleErr: errs.Get(estimates.SectionTitleKey(sec.ID)),
			Expanded: sec.Expanded,
			Subtotal: services.FormatMoney(estimates.SectionSubtotal(sec), currency),
		}
		for _, it := range sec.Items {
			es.Items = append(es.Items, templates.EditorItem{
				ID:          it.ID,
				Title:       it.Title,
				Description: it.Description,
				Unit:        it.Unit,
				Quantity:    it.Quantity,
				Price:       it.Price,
				Margin:      it.Margin,
				Total:       services.FormatMoney(it.Total, currency),
				TitleErr:    itemError(errs, it.ID, estimates.FieldTitle),
				QuantityErr: itemError(errs, it.ID, estimates.FieldQuantity),
				PriceErr:    itemError(errs, it.ID, estimates.FieldPrice),
			})
		}
		data.Sections = append(data.Sections, es)
	}
	return data
}

func itemError(errs estimates.ErrorMap, itemID int64, f estimates.Field) string {
	k, ok := estimates.ItemKey(itemID, f)
	if !ok {
		return ""
	}
	return errs.Get(k)
}

// renderEditor writes the editor fragment for HTMX requests and the full page
// otherwise.
func renderEditor(e *core.RequestEvent, app *pocketbase.PocketBase, sess *estimates.Session, cfg config.Config, imp *templates.ImportSummary) error {
	data := editorData(sess, cfg.Currency)
	data.Projects = projectNames(app)
	data.Import = imp

	var component templ.Component
	if isHTMX(e) {
		component = templates.EstimateEditor(data)
	} else {
		component = templates.EstimateEditorPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
	}
	return component.Render(e.Request.Context(), e.Response)
}

// HandleEstimateNew opens a session on a blank estimate and sends the
// browser to it.
func HandleEstimateNew(svc *estimates.Service) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := svc.Begin()
		if err != nil {
			return sessionError(e, "estimate_new", err)
		}
		return redirectTo(e, sessionURL(sess.Token))
	}
}

// HandleEstimateEdit opens a session seeded from a stored estimate.
func HandleEstimateEdit(svc *estimates.Service) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing estimate ID")
		}

		sess, err := svc.Open(e.Request.Context(), id)
		if err != nil {
			return sessionError(e, "estimate_edit", err)
		}
		return redirectTo(e, sessionURL(sess.Token))
	}
}

// HandleEditorPage renders the current state of an editing session.
func HandleEditorPage(app *pocketbase.PocketBase, svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := svc.Session(e.Request.PathValue("token"))
		if err != nil {
			if errors.Is(err, estimates.ErrSessionNotFound) {
				SetToast(e, ToastWarning, "That editing session has expired.")
				return redirectTo(e, "/estimates")
			}
			return sessionError(e, "estimate_editor", err)
		}
		return renderEditor(e, app, sess, cfg, nil)
	}
}

// editorAction wraps one edit: it resolves the session from the {token} path
// value, parses the form, runs fn and re-renders the editor.
func editorAction(app *pocketbase.PocketBase, svc *estimates.Service, cfg config.Config, name string,
	fn func(e *core.RequestEvent, sess *estimates.Session) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := svc.Session(e.Request.PathValue("token"))
		if err != nil {
			return sessionError(e, name, err)
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		if err := fn(e, sess); err != nil {
			return sessionError(e, name, err)
		}
		return renderEditor(e, app, sess, cfg, nil)
	}
}
