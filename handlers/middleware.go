package handlers

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatetracker/config"
	"estimatetracker/estimates"
	"estimatetracker/templates"
)

type contextKey string

const HeaderDataKey contextKey = "headerData"
const SidebarDataKey contextKey = "sidebarData"

// AppName is shown in the page title and the top bar.
const AppName = "Estimate Tracker"

// GetHeaderData extracts the pre-built HeaderData from the request context.
func GetHeaderData(r *http.Request) templates.HeaderData {
	if val, ok := r.Context().Value(HeaderDataKey).(templates.HeaderData); ok {
		return val
	}
	return templates.HeaderData{AppName: AppName}
}

// GetSidebarData extracts the pre-built SidebarData from the request context.
func GetSidebarData(r *http.Request) templates.SidebarData {
	if val, ok := r.Context().Value(SidebarDataKey).(templates.SidebarData); ok {
		return val
	}
	return templates.SidebarData{ActivePath: r.URL.Path}
}

// ShellMiddleware builds the header and sidebar shown around every full page
// and stores them in the request context.
func ShellMiddleware(app *pocketbase.PocketBase, svc *estimates.Service, cfg config.Config) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		headerData := templates.HeaderData{
			AppName:  AppName,
			Currency: cfg.Currency,
		}
		sidebarData := BuildSidebarData(e.Request, app, svc)

		ctx := context.WithValue(e.Request.Context(), HeaderDataKey, headerData)
		ctx = context.WithValue(ctx, SidebarDataKey, sidebarData)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}
