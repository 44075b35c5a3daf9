package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"estimatetracker/config"
	"estimatetracker/estimates"
	"estimatetracker/services"
)

// HandleEstimateExportExcel serves the estimate as an .xlsx download.
// Route: GET /estimates/{id}/export/excel
func HandleEstimateExportExcel(svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, ok, err := loadEstimate(e, svc, "export_excel")
		if !ok {
			return err
		}

		xlsxBytes, err := services.GenerateExcel(services.BuildExportData(doc, cfg.Currency))
		if err != nil {
			log.Printf("export_excel: failed to generate for estimate %s: %v", doc.ID, err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}
		return writeAttachment(e, xlsxContentType, services.ExportFilename(doc, "xlsx"), xlsxBytes)
	}
}

// HandleEstimateExportPDF serves the estimate as a PDF download.
// Route: GET /estimates/{id}/export/pdf
func HandleEstimateExportPDF(svc *estimates.Service, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, ok, err := loadEstimate(e, svc, "export_pdf")
		if !ok {
			return err
		}

		pdfBytes, err := services.GeneratePDF(services.BuildExportData(doc, cfg.Currency))
		if err != nil {
			log.Printf("export_pdf: failed to generate for estimate %s: %v", doc.ID, err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF")
		}
		return writeAttachment(e, "application/pdf", services.ExportFilename(doc, "pdf"), pdfBytes)
	}
}
