package main

import (
	"context"
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"estimatetracker/collections"
	"estimatetracker/commands"
	"estimatetracker/config"
	"estimatetracker/estimates"
	"estimatetracker/handlers"
	"estimatetracker/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	app := pocketbase.New()

	estimateStore := store.NewEstimateStore(app)
	svc := estimates.NewService(estimateStore,
		estimates.WithLogger(logger.Named("estimates")),
		estimates.WithSubmitDelay(cfg.SubmitDelay),
	)

	app.RootCmd.AddCommand(commands.NewExportCommand(app, cfg))

	// Create collections, seed and repair data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if cfg.Seed {
			if err := collections.Seed(app); err != nil {
				log.Printf("Warning: seed data failed: %v", err)
			}
			if err := collections.SeedEstimates(context.Background(), estimateStore); err != nil {
				log.Printf("Warning: estimate seed data failed: %v", err)
			}
		}
		if err := collections.MigrateMissingVersions(app); err != nil {
			log.Printf("Warning: estimate version migration failed: %v", err)
		}
		if err := collections.MigrateItemTotals(app); err != nil {
			log.Printf("Warning: item total migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		se.Router.BindFunc(handlers.ShellMiddleware(app, svc, cfg))

		se.Router.GET("/", handlers.HandleDashboard(app, svc, cfg))

		// ── Projects ─────────────────────────────────────────────
		se.Router.GET("/projects", handlers.HandleProjectList(app, cfg))
		se.Router.GET("/projects/create", handlers.HandleProjectCreate(app))
		se.Router.POST("/projects", handlers.HandleProjectSave(app))
		se.Router.GET("/projects/{id}/edit", handlers.HandleProjectEdit(app))
		se.Router.POST("/projects/{id}/save", handlers.HandleProjectUpdate(app))
		se.Router.GET("/projects/{id}", handlers.HandleProjectView(app, svc, cfg))
		se.Router.DELETE("/projects/{id}", handlers.HandleProjectDelete(app))

		// ── Estimates ────────────────────────────────────────────
		// Fixed paths are registered before /estimates/{id}.
		se.Router.GET("/estimates", handlers.HandleEstimateList(svc, cfg))
		se.Router.GET("/estimates/new", handlers.HandleEstimateNew(svc))
		se.Router.GET("/estimates/template", handlers.HandleItemTemplateDownload())
		se.Router.POST("/estimates/import/errors", handlers.HandleImportErrorReport())
		se.Router.GET("/estimates/{id}", handlers.HandleEstimateView(svc, cfg))
		se.Router.GET("/estimates/{id}/edit", handlers.HandleEstimateEdit(svc))
		se.Router.DELETE("/estimates/{id}", handlers.HandleEstimateDelete(svc))
		se.Router.GET("/estimates/{id}/export/excel", handlers.HandleEstimateExportExcel(svc, cfg))
		se.Router.GET("/estimates/{id}/export/pdf", handlers.HandleEstimateExportPDF(svc, cfg))

		// ── Editing sessions ─────────────────────────────────────
		session := "/editor/{token}"
		se.Router.GET(session, handlers.HandleEditorPage(app, svc, cfg))
		se.Router.POST(session+"/header/{field}", handlers.HandleEditorHeader(app, svc, cfg))
		se.Router.POST(session+"/sections", handlers.HandleEditorAddSection(app, svc, cfg))
		se.Router.DELETE(session+"/sections/{sectionId}", handlers.HandleEditorRemoveSection(app, svc, cfg))
		se.Router.POST(session+"/sections/{sectionId}/title", handlers.HandleEditorSectionTitle(app, svc, cfg))
		se.Router.POST(session+"/sections/{sectionId}/toggle", handlers.HandleEditorToggleSection(app, svc, cfg))
		se.Router.POST(session+"/sections/{sectionId}/import", handlers.HandleEditorImport(app, svc, cfg))
		se.Router.POST(session+"/sections/{sectionId}/items", handlers.HandleEditorAddItem(app, svc, cfg))
		se.Router.DELETE(session+"/sections/{sectionId}/items/{itemId}", handlers.HandleEditorRemoveItem(app, svc, cfg))
		se.Router.POST(session+"/sections/{sectionId}/items/{itemId}/{field}", handlers.HandleEditorItemField(app, svc, cfg))
		se.Router.POST(session+"/submit", handlers.HandleEditorSubmit(app, svc, cfg))
		se.Router.POST(session+"/cancel", handlers.HandleEditorCancel(svc))

		return se.Next()
	})

	app.OnTerminate().BindFunc(func(te *core.TerminateEvent) error {
		if err := svc.Close(); err != nil {
			logger.Warn("estimate service close failed", zap.Error(err))
		}
		return te.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
