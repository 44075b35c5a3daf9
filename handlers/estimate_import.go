package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimatetracker/config"
	"estimatetracker/estimates"
	"estimatetracker/services"
	"estimatetracker/templates"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxUploadBytes  = 10 << 20
)

func writeAttachment(e *core.RequestEvent, contentType, filename string, body []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, err := e.Response.Write(body)
	return err
}

func importSummary(result *services.ImportResult, imported int) *templates.ImportSummary {
	summary := &templates.ImportSummary{
		FileName:     result.FileName,
		Total:        result.TotalRows,
		Imported:     imported,
		ErrorRows:    result.ErrorRows,
		Unrecognized: result.Unrecognized,
	}
	for _, ie := range result.Errors {
		summary.Errors = append(summary.Errors, templates.ImportErrorRow{
			Row: ie.Row, Field: ie.Field, Message: ie.Message,
		})
	}
	if len(result.Errors) > 0 {
		if b, err := json.Marshal(result.Errors); err == nil {
			summary.ErrorsJSON = string(b)
		} else {
			log.Printf("editor_import: marshal import errors: %v", err)
		}
	}
	return summary
}

// HandleEditorImport reads an uploaded CSV or XLSX of line items and appends
// the valid rows to a section of the session. Invalid rows are listed in the
// re-rendered editor.
// Route: POST /editor/{token}/sections/{sectionId}/import
func HandleEditorImport(app *pocketbase.PocketBase, svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := svc.Session(e.Request.PathValue("token"))
		if err != nil {
			return sessionError(e, "editor_import", err)
		}
		sid, err := pathInt(e, "sectionId")
		if err != nil {
			return sessionError(e, "editor_import", err)
		}

		if err := e.Request.ParseMultipartForm(maxUploadBytes); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "File too large or invalid form data")
		}
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ParseItemFile(file, header.Filename)
		if err != nil {
			log.Printf("editor_import: %s: %v", header.Filename, err)
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}

		imported, err := services.ApplyImport(sess, sid, result.Rows)
		if err != nil {
			if errors.Is(err, services.ErrSectionNotFound) {
				return ErrorToast(e, http.StatusNotFound, "Section not found")
			}
			return sessionError(e, "editor_import", err)
		}

		log.Printf("editor_import: %s: imported %d of %d rows (%d with errors)",
			header.Filename, imported, result.TotalRows, result.ErrorRows)

		if result.ErrorRows == 0 {
			SetToast(e, ToastSuccess, fmt.Sprintf("%d item(s) imported", imported))
		} else {
			SetToast(e, ToastWarning, fmt.Sprintf("%d item(s) imported, %d row(s) skipped", imported, result.ErrorRows))
		}
		return renderEditor(e, app, sess, cfg, importSummary(result, imported))
	}
}

// HandleImportErrorReport turns the JSON error list posted by the editor into
// an .xlsx download.
// Route: POST /estimates/import/errors
func HandleImportErrorReport() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		var importErrors []services.ImportError
		if err := json.Unmarshal([]byte(e.Request.FormValue("errors")), &importErrors); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid error data")
		}

		xlsxBytes, err := services.GenerateErrorReport(importErrors)
		if err != nil {
			log.Printf("import_error_report: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filename := fmt.Sprintf("Item_Import_Errors_%s.xlsx", time.Now().Format("2006-01-02"))
		return writeAttachment(e, xlsxContentType, filename, xlsxBytes)
	}
}

// HandleItemTemplateDownload serves the blank line-item import template.
// Route: GET /estimates/template
func HandleItemTemplateDownload() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		xlsxBytes, err := services.GenerateItemTemplate()
		if err != nil {
			log.Printf("item_template: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate template")
		}
		return writeAttachment(e, xlsxContentType, "Estimate_Items_Template.xlsx", xlsxBytes)
	}
}
