package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatetracker/config"
	"estimatetracker/estimates"
)

// POST /editor/{token}/header/{field}
func HandleEditorHeader(app *pocketbase.PocketBase, svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return editorAction(app, svc, cfg, "editor_header", func(e *core.RequestEvent, sess *estimates.Session) error {
		field, ok := estimates.ParseHeaderField(e.Request.PathValue("field"))
		if !ok {
			return badRequest("Unknown field")
		}
		return sess.UpdateHeader(field, e.Request.FormValue("value"))
	})
}

// POST /editor/{token}/sections
func HandleEditorAddSection(app *pocketbase.PocketBase, svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return editorAction(app, svc, cfg, "editor_add_section", func(e *core.RequestEvent, sess *estimates.Session) error {
		return sess.AddSection()
	})
}

// DELETE /editor/{token}/sections/{sectionId}
func HandleEditorRemoveSection(app *pocketbase.PocketBase, svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return editorAction(app, svc, cfg, "editor_remove_section", func(e *core.RequestEvent, sess *estimates.Session) error {
		sid, err := pathInt(e, "sectionId")
		if err != nil {
			return err
		}
		return sess.RemoveSection(sid)
	})
}

// POST /editor/{token}/sections/{sectionId}/title
func HandleEditorSectionTitle(app *pocketbase.PocketBase, svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return editorAction(app, svc, cfg, "editor_section_title", func(e *core.RequestEvent, sess *estimates.Session) error {
		sid, err := pathInt(e, "sectionId")
		if err != nil {
			return err
		}
		return sess.UpdateSectionTitle(sid, e.Request.FormValue("value"))
	})
}

// POST /editor/{token}/sections/{sectionId}/toggle
func HandleEditorToggleSection(app *pocketbase.PocketBase, svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return editorAction(app, svc, cfg, "editor_toggle_section", func(e *core.RequestEvent, sess *estimates.Session) error {
		sid, err := pathInt(e, "sectionId")
		if err != nil {
			return err
		}
		return sess.ToggleSectionExpansion(sid)
	})
}

// POST /editor/{token}/sections/{sectionId}/items
func HandleEditorAddItem(app *pocketbase.PocketBase, svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return editorAction(app, svc, cfg, "editor_add_item", func(e *core.RequestEvent, sess *estimates.Session) error {
		sid, err := pathInt(e, "sectionId")
		if err != nil {
			return err
		}
		id, err := sess.AddItem(sid)
		if err != nil {
			return err
		}
		if id == 0 {
			return &requestError{status: http.StatusNotFound, msg: "Section not found"}
		}
		return nil
	})
}

// DELETE /editor/{token}/sections/{sectionId}/items/{itemId}
func HandleEditorRemoveItem(app *pocketbase.PocketBase, svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return editorAction(app, svc, cfg, "editor_remove_item", func(e *core.RequestEvent, sess *estimates.Session) error {
		sid, err := pathInt(e, "sectionId")
		if err != nil {
			return err
		}
		iid, err := pathInt(e, "itemId")
		if err != nil {
			return err
		}
		return sess.RemoveItem(sid, iid)
	})
}

// POST /editor/{token}/sections/{sectionId}/items/{itemId}/{field}
func HandleEditorItemField(app *pocketbase.PocketBase, svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return editorAction(app, svc, cfg, "editor_item_field", func(e *core.RequestEvent, sess *estimates.Session) error {
		sid, err := pathInt(e, "sectionId")
		if err != nil {
			return err
		}
		iid, err := pathInt(e, "itemId")
		if err != nil {
			return err
		}
		field, ok := estimates.ParseField(e.Request.PathValue("field"))
		if !ok {
			return badRequest("Unknown field")
		}
		return sess.UpdateItemField(sid, iid, field, e.Request.FormValue("value"))
	})
}

// HandleEditorSubmit runs the validation gate. A rejected document is
// re-rendered with its errors; an accepted one is stored and the browser is
// sent to its detail page.
func HandleEditorSubmit(app *pocketbase.PocketBase, svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		token := e.Request.PathValue("token")
		sess, err := svc.Session(token)
		if err != nil {
			return sessionError(e, "editor_submit", err)
		}

		doc, err := svc.Submit(e.Request.Context(), token)
		if err != nil {
			var verr *estimates.ValidationError
			if errors.As(err, &verr) {
				SetToast(e, ToastWarning, "Please fix the highlighted fields before submitting")
				return renderEditor(e, app, sess, cfg, nil)
			}
			return sessionError(e, "editor_submit", err)
		}

		SetToast(e, ToastSuccess, "Estimate "+doc.Version+" saved")
		return redirectTo(e, "/estimates/"+doc.ID)
	}
}

// HandleEditorCancel discards the session without saving.
func HandleEditorCancel(svc *estimates.Service) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		svc.Discard(e.Request.PathValue("token"))
		SetToast(e, ToastInfo, "Changes discarded")
		return redirectTo(e, "/estimates")
	}
}
