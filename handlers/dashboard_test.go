package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"estimatetracker/config"
	"estimatetracker/testhelpers"
)

func TestHandleDashboard_Empty(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	svc := testhelpers.NewTestService(t, app)
	handler := HandleDashboard(app, svc, config.Default())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"<!DOCTYPE html>", "Dashboard", "No estimates yet.", "$0.00")
}

func TestHandleDashboard_Counts(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	svc := testhelpers.NewTestService(t, app)
	testhelpers.CreateTestProject(t, app, "Riverside")
	first := testhelpers.CreateTestEstimate(t, app, "Riverside", "Rosie Pearson")
	second := testhelpers.CreateTestEstimate(t, app, "Harbour View", "Alan Cain")
	if _, err := svc.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	handler := HandleDashboard(app, svc, config.Default())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		`<div class="stat-title">Projects</div><div class="stat-value">1</div>`,
		`<div class="stat-title">Estimates</div><div class="stat-value">2</div>`,
		`<div class="stat-title">Open drafts</div><div class="stat-value">1</div>`,
		`<div class="stat-value">$2,250.00</div>`,
		`<span class="status-count">2</span>`,
		`href="/estimates/`+first.ID+`"`,
		`href="/estimates/`+second.ID+`"`,
	)
	testhelpers.AssertHTMLNotContains(t, rec.Body.String(), "<!DOCTYPE html>", "No estimates yet.")
}
