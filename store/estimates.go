// Package store persists estimate documents in PocketBase collections.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"estimatetracker/collections"
	"estimatetracker/estimates"
)

// EstimateStore implements estimates.Store over the estimates,
// estimate_sections and estimate_items collections. A document is written
// as one estimates record plus one record per section and item; section and
// item ids are kept in the "key" field and order in "sort_order".
type EstimateStore struct {
	app core.App
}

var _ estimates.Store = (*EstimateStore)(nil)

func NewEstimateStore(app core.App) *EstimateStore {
	return &EstimateStore{app: app}
}

func (s *EstimateStore) All(ctx context.Context) ([]estimates.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	col, err := s.app.FindCollectionByNameOrId(collections.Estimates)
	if err != nil {
		return nil, fmt.Errorf("find %s collection: %w", collections.Estimates, err)
	}
	records, err := s.app.FindAllRecords(col)
	if err != nil {
		return nil, fmt.Errorf("query estimates: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].GetInt("position") < records[j].GetInt("position")
	})

	docs := make([]estimates.Document, 0, len(records))
	for _, rec := range records {
		doc, err := s.load(s.app, rec)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *EstimateStore) Get(ctx context.Context, id string) (estimates.Document, error) {
	if err := ctx.Err(); err != nil {
		return estimates.Document{}, err
	}
	rec, err := findEstimate(s.app, id)
	if err != nil {
		return estimates.Document{}, err
	}
	return s.load(s.app, rec)
}

// Append writes d as a new record at the end of the list. The returned
// document carries the record id.
func (s *EstimateStore) Append(ctx context.Context, d estimates.Document) (estimates.Document, error) {
	if err := ctx.Err(); err != nil {
		return estimates.Document{}, err
	}
	var out estimates.Document
	err := s.app.RunInTransaction(func(txApp core.App) error {
		col, err := txApp.FindCollectionByNameOrId(collections.Estimates)
		if err != nil {
			return fmt.Errorf("find %s collection: %w", collections.Estimates, err)
		}
		position, err := nextPosition(txApp, col)
		if err != nil {
			return err
		}

		rec := core.NewRecord(col)
		setHeader(rec, d)
		rec.Set("position", position)
		if err := txApp.Save(rec); err != nil {
			return fmt.Errorf("save estimate: %w", err)
		}
		if err := writeSections(txApp, rec.Id, d.Sections); err != nil {
			return err
		}

		out = d.Clone()
		out.ID = rec.Id
		return nil
	})
	if err != nil {
		return estimates.Document{}, err
	}
	return out, nil
}

// Replace overwrites the header and rewrites every section and item of the
// stored document with the same id. Its list position is kept.
func (s *EstimateStore) Replace(ctx context.Context, d estimates.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.app.RunInTransaction(func(txApp core.App) error {
		rec, err := findEstimate(txApp, d.ID)
		if err != nil {
			return err
		}
		setHeader(rec, d)
		if err := txApp.Save(rec); err != nil {
			return fmt.Errorf("save estimate %s: %w", d.ID, err)
		}

		old, err := txApp.FindRecordsByFilter(
			collections.EstimateSections,
			"estimate = {:estimateId}",
			"", 0, 0,
			map[string]any{"estimateId": rec.Id},
		)
		if err != nil {
			return fmt.Errorf("query sections of %s: %w", d.ID, err)
		}
		for _, sec := range old {
			// Items go with their section via cascade delete.
			if err := txApp.Delete(sec); err != nil {
				return fmt.Errorf("delete section %s: %w", sec.Id, err)
			}
		}
		return writeSections(txApp, rec.Id, d.Sections)
	})
}

func (s *EstimateStore) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec, err := findEstimate(s.app, id)
	if err != nil {
		return err
	}
	if err := s.app.Delete(rec); err != nil {
		return fmt.Errorf("delete estimate %s: %w", id, err)
	}
	return nil
}

func findEstimate(app core.App, id string) (*core.Record, error) {
	if id == "" {
		return nil, estimates.ErrNotFound
	}
	rec, err := app.FindRecordById(collections.Estimates, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, estimates.ErrNotFound
		}
		return nil, fmt.Errorf("find estimate %s: %w", id, err)
	}
	return rec, nil
}

func nextPosition(app core.App, col *core.Collection) (int, error) {
	last, err := app.FindRecordsByFilter(col, "id != ''", "-position", 1, 0)
	if err != nil {
		return 0, fmt.Errorf("query last estimate position: %w", err)
	}
	if len(last) == 0 {
		return 1, nil
	}
	return last[0].GetInt("position") + 1, nil
}

func setHeader(rec *core.Record, d estimates.Document) {
	rec.Set("version", d.Version)
	rec.Set("project", d.Project)
	rec.Set("client", d.Client)
	rec.Set("status", string(d.Status))
	rec.Set("created_at", d.CreatedAt)
	rec.Set("updated_at", d.UpdatedAt)
}

func writeSections(app core.App, estimateID string, sections []estimates.Section) error {
	secCol, err := app.FindCollectionByNameOrId(collections.EstimateSections)
	if err != nil {
		return fmt.Errorf("find %s collection: %w", collections.EstimateSections, err)
	}
	itemCol, err := app.FindCollectionByNameOrId(collections.EstimateItems)
	if err != nil {
		return fmt.Errorf("find %s collection: %w", collections.EstimateItems, err)
	}

	for i, sec := range sections {
		secRec := core.NewRecord(secCol)
		secRec.Set("estimate", estimateID)
		secRec.Set("sort_order", i+1)
		secRec.Set("key", sec.ID)
		secRec.Set("title", sec.Title)
		secRec.Set("expanded", sec.Expanded)
		if err := app.Save(secRec); err != nil {
			return fmt.Errorf("save section %d: %w", sec.ID, err)
		}

		for j, it := range sec.Items {
			itemRec := core.NewRecord(itemCol)
			itemRec.Set("section", secRec.Id)
			itemRec.Set("sort_order", j+1)
			itemRec.Set("key", it.ID)
			itemRec.Set("title", it.Title)
			itemRec.Set("description", it.Description)
			itemRec.Set("unit", it.Unit)
			itemRec.Set("quantity", it.Quantity)
			itemRec.Set("price", it.Price)
			itemRec.Set("margin", it.Margin)
			itemRec.Set("total", it.Total.String())
			if err := app.Save(itemRec); err != nil {
				return fmt.Errorf("save item %d: %w", it.ID, err)
			}
		}
	}
	return nil
}

func (s *EstimateStore) load(app core.App, rec *core.Record) (estimates.Document, error) {
	doc := estimates.Document{
		ID:        rec.Id,
		Version:   rec.GetString("version"),
		Project:   rec.GetString("project"),
		Client:    rec.GetString("client"),
		Status:    estimates.Status(rec.GetString("status")),
		CreatedAt: rec.GetDateTime("created_at").Time(),
		UpdatedAt: rec.GetDateTime("updated_at").Time(),
	}

	secRecs, err := app.FindRecordsByFilter(
		collections.EstimateSections,
		"estimate = {:estimateId}",
		"sort_order", 0, 0,
		map[string]any{"estimateId": rec.Id},
	)
	if err != nil {
		return estimates.Document{}, fmt.Errorf("query sections of %s: %w", rec.Id, err)
	}

	for _, sr := range secRecs {
		sec := estimates.Section{
			ID:       int64(sr.GetFloat("key")),
			Title:    sr.GetString("title"),
			Expanded: sr.GetBool("expanded"),
		}
		itemRecs, err := app.FindRecordsByFilter(
			collections.EstimateItems,
			"section = {:sectionId}",
			"sort_order", 0, 0,
			map[string]any{"sectionId": sr.Id},
		)
		if err != nil {
			return estimates.Document{}, fmt.Errorf("query items of section %s: %w", sr.Id, err)
		}
		for _, ir := range itemRecs {
			it := estimates.LineItem{
				ID:          int64(ir.GetFloat("key")),
				Title:       ir.GetString("title"),
				Description: ir.GetString("description"),
				Unit:        ir.GetString("unit"),
				Quantity:    ir.GetString("quantity"),
				Price:       ir.GetString("price"),
				Margin:      ir.GetString("margin"),
			}
			total, err := decimal.NewFromString(ir.GetString("total"))
			if err != nil {
				total = estimates.ItemTotal(it.Quantity, it.Price, it.Margin)
			}
			it.Total = total
			sec.Items = append(sec.Items, it)
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc, nil
}
