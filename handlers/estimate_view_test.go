package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"estimatetracker/config"
	"estimatetracker/estimates"
	"estimatetracker/testhelpers"
)

func TestHandleEstimateView(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	svc := testhelpers.NewTestService(t, app)
	doc := testhelpers.CreateTestEstimate(t, app, "Riverside", "Rosie Pearson")
	handler := HandleEstimateView(svc, config.Default())

	req := httptest.NewRequest(http.MethodGet, "/estimates/"+doc.ID, nil)
	req.SetPathValue("id", doc.ID)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"<!DOCTYPE html>", "Estimate 00000", "Riverside", "Rosie Pearson",
		"Section for Riverside", "Item 1", "Item 2", "$575.00", "$550.00", "$1,125.00",
		`href="/estimates/`+doc.ID+`/export/excel"`, `href="/estimates/`+doc.ID+`/export/pdf"`)
}

func TestHandleEstimateView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	svc := testhelpers.NewTestService(t, app)

	req := httptest.NewRequest(http.MethodGet, "/estimates/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	if err := HandleEstimateView(svc, config.Default())(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleEstimateDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	svc := testhelpers.NewTestService(t, app)
	doc := testhelpers.CreateTestEstimate(t, app, "Riverside", "Rosie Pearson")
	handler := HandleEstimateDelete(svc)

	req := httptest.NewRequest(http.MethodDelete, "/estimates/"+doc.ID, nil)
	req.Header.Set("HX-Request", "true")
	req.SetPathValue("id", doc.ID)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/estimates")

	if _, err := svc.Get(context.Background(), doc.ID); !errors.Is(err, estimates.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	rec = httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting twice, got %d", rec.Code)
	}
}

func TestHandleEstimateExport(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	svc := testhelpers.NewTestService(t, app)
	doc := testhelpers.CreateTestEstimate(t, app, "Riverside", "Rosie Pearson")
	cfg := config.Default()

	tests := []struct {
		name        string
		handler     func(*core.RequestEvent) error
		contentType string
		filename    string
		magic       string
	}{
		{"excel", HandleEstimateExportExcel(svc, cfg), xlsxContentType, "estimate-00000.xlsx", "PK"},
		{"pdf", HandleEstimateExportPDF(svc, cfg), "application/pdf", "estimate-00000.pdf", "%PDF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/estimates/"+doc.ID+"/export/"+tt.name, nil)
			req.SetPathValue("id", doc.ID)
			rec := httptest.NewRecorder()
			if err := tt.handler(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.contentType {
				t.Errorf("expected content type %q, got %q", tt.contentType, ct)
			}
			want := `attachment; filename="` + tt.filename + `"`
			if cd := rec.Header().Get("Content-Disposition"); cd != want {
				t.Errorf("expected Content-Disposition %q, got %q", want, cd)
			}
			if !bytes.HasPrefix(rec.Body.Bytes(), []byte(tt.magic)) {
				t.Errorf("expected body to start with %q", tt.magic)
			}
		})

		t.Run(tt.name+" missing", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/estimates/missing/export/"+tt.name, nil)
			req.SetPathValue("id", "missing")
			rec := httptest.NewRecorder()
			if err := tt.handler(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusNotFound {
				t.Errorf("expected 404, got %d", rec.Code)
			}
		})
	}
}
