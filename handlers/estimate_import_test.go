package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"estimatetracker/testhelpers"
)

func TestHandleEditorImport(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	svc := testhelpers.NewTestService(t, app)
	sess, err := svc.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	sid := strconv.FormatInt(sess.Document().Sections[0].ID, 10)
	handler := HandleEditorImport(app, svc, testConfig())

	csv := strings.Join([]string{
		"Item *,Description,Unit,Quantity *,Price *,Margin",
		"Excavation,Bulk dig,m3,10,50,15",
		"Backfill,,m3,4,20,",
		",missing title,m3,1,1,",
	}, "\n")

	req := newUploadRequest(t, "/editor/"+sess.Token+"/sections/"+sid+"/import", "items.csv", []byte(csv))
	req.SetPathValue("token", sess.Token)
	req.SetPathValue("sectionId", sid)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		"Imported 2 of 3 row(s) from items.csv.",
		"Item is required",
		`action="/estimates/import/errors"`,
		`value="Excavation"`, `value="Backfill"`)

	items := sess.Document().Sections[0].Items
	if len(items) != 2 {
		t.Fatalf("expected the blank item to be reused, got %d items", len(items))
	}
	if items[0].Title != "Excavation" || items[1].Title != "Backfill" {
		t.Errorf("unexpected items %+v", items)
	}
}

func TestHandleEditorImport_Rejects(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	svc := testhelpers.NewTestService(t, app)
	sess, err := svc.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	sid := strconv.FormatInt(sess.Document().Sections[0].ID, 10)
	handler := HandleEditorImport(app, svc, testConfig())

	tests := []struct {
		name     string
		section  string
		fileName string
		content  string
		want     int
	}{
		{"unsupported format", sid, "items.txt", "Item,Quantity,Price\nA,1,1\n", http.StatusBadRequest},
		{"missing column", sid, "items.csv", "Item,Quantity\nA,1\n", http.StatusBadRequest},
		{"unknown section", "999", "items.csv", "Item,Quantity,Price\nA,1,1\n", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newUploadRequest(t, "/editor/"+sess.Token+"/sections/"+tt.section+"/import", tt.fileName, []byte(tt.content))
			req.SetPathValue("token", sess.Token)
			req.SetPathValue("sectionId", tt.section)
			rec := httptest.NewRecorder()
			if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
			if rec.Header().Get("HX-Reswap") != "none" {
				t.Error("expected HX-Reswap: none")
			}
		})
	}
}

func TestHandleImportErrorReport(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleImportErrorReport()

	t.Run("valid", func(t *testing.T) {
		form := url.Values{"errors": {`[{"row":4,"field":"Item","message":"Item is required"}]`}}
		req := newFormRequest(http.MethodPost, "/estimates/import/errors", form)
		rec := httptest.NewRecorder()
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if ct := rec.Header().Get("Content-Type"); ct != xlsxContentType {
			t.Errorf("unexpected content type %q", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Item_Import_Errors_") {
			t.Errorf("unexpected Content-Disposition %q", cd)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
			t.Error("expected an xlsx (zip) body")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		req := newFormRequest(http.MethodPost, "/estimates/import/errors", url.Values{"errors": {"nope"}})
		rec := httptest.NewRecorder()
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestHandleItemTemplateDownload(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/estimates/template", nil)
	rec := httptest.NewRecorder()
	if err := HandleItemTemplateDownload()(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="Estimate_Items_Template.xlsx"` {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("expected an xlsx (zip) body")
	}
}
