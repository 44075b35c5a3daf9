package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"estimatetracker/estimates"
)

// MigrateItemTotals recomputes the stored total of every estimate item whose
// total is missing or disagrees with its quantity, price and margin. Safe to
// call on every startup.
func MigrateItemTotals(app core.App) error {
	col, err := app.FindCollectionByNameOrId(EstimateItems)
	if err != nil {
		return fmt.Errorf("migrate_totals: could not find estimate_items collection: %w", err)
	}

	items, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("migrate_totals: could not query items: %w", err)
	}

	fixed := 0
	for _, item := range items {
		want := estimates.ItemTotal(item.GetString("quantity"), item.GetString("price"), item.GetString("margin"))
		if got, err := decimal.NewFromString(item.GetString("total")); err == nil && got.Equal(want) {
			continue
		}

		item.Set("total", want.String())
		if err := app.Save(item); err != nil {
			log.Printf("migrate_totals: failed to update item %s: %v\n", item.Id, err)
			continue
		}
		fixed++
	}

	if fixed > 0 {
		log.Printf("migrate_totals: recomputed %d item total(s)\n", fixed)
	}
	return nil
}
