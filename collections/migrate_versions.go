package collections

import (
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"estimatetracker/estimates"
)

// MigrateMissingVersions gives every estimate without a version number one
// derived from its creation time, the same way new estimates are numbered.
// Safe to call on every startup -- returns early if nothing to migrate.
func MigrateMissingVersions(app core.App) error {
	col, err := app.FindCollectionByNameOrId(Estimates)
	if err != nil {
		return fmt.Errorf("migrate: could not find estimates collection: %w", err)
	}

	records, err := app.FindRecordsByFilter(col, "version = ''", "", 0, 0)
	if err != nil {
		return fmt.Errorf("migrate: could not query unversioned estimates: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	log.Printf("migrate: found %d estimate(s) without a version -- assigning...\n", len(records))

	for _, rec := range records {
		created := rec.GetDateTime("created_at").Time()
		if created.IsZero() {
			created = time.Now()
		}
		version := estimates.VersionAt(created)
		rec.Set("version", version)
		if err := app.Save(rec); err != nil {
			log.Printf("migrate: failed to set version on estimate %s: %v\n", rec.Id, err)
			continue
		}
		log.Printf("migrate: estimate %s -> version %s\n", rec.Id, version)
	}
	return nil
}
