package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estimatetracker/estimates"
	"estimatetracker/store"
	"estimatetracker/testhelpers"
)

func newDoc(project string) estimates.Document {
	at := time.Date(2024, time.July, 29, 10, 0, 0, 0, time.UTC)
	return estimates.Document{
		Version:   "12345",
		Project:   project,
		Client:    "Rosie Pearson",
		Status:    estimates.StatusProcessing,
		CreatedAt: at,
		UpdatedAt: at,
		Sections: []estimates.Section{
			{ID: 1_700_000_000_001, Title: "Foundations", Expanded: true, Items: []estimates.LineItem{
				{ID: 1_700_000_000_002, Title: "Excavation", Description: "Bulk dig", Unit: "m3",
					Quantity: "10", Price: "50", Margin: "15", Total: estimates.ItemTotal("10", "50", "15")},
				{ID: 1_700_000_000_003, Title: "Backfill", Unit: "m3",
					Quantity: "2.5", Price: "abc", Margin: "", Total: estimates.ItemTotal("2.5", "abc", "")},
			}},
			{ID: 1_700_000_000_004, Title: "Framing", Expanded: false, Items: []estimates.LineItem{
				{ID: 1_700_000_000_005, Title: "Studs", Unit: "pcs", Quantity: "5", Price: "100", Margin: "10",
					Total: estimates.ItemTotal("5", "100", "10")},
			}},
		},
	}
}

func TestEstimateStore_AppendAndGet(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	st := store.NewEstimateStore(app)
	ctx := context.Background()

	in := newDoc("Riverside")
	out, err := st.Append(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, out.ID)

	got, err := st.Get(ctx, out.ID)
	require.NoError(t, err)

	assert.Equal(t, out.ID, got.ID)
	assert.Equal(t, "12345", got.Version)
	assert.Equal(t, "Riverside", got.Project)
	assert.Equal(t, estimates.StatusProcessing, got.Status)
	assert.True(t, in.CreatedAt.Equal(got.CreatedAt), "created %s", got.CreatedAt)

	require.Len(t, got.Sections, 2)
	assert.Equal(t, int64(1_700_000_000_001), got.Sections[0].ID)
	assert.Equal(t, "Foundations", got.Sections[0].Title)
	assert.True(t, got.Sections[0].Expanded)
	assert.False(t, got.Sections[1].Expanded)

	items := got.Sections[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, int64(1_700_000_000_002), items[0].ID)
	assert.Equal(t, "Bulk dig", items[0].Description)
	assert.Equal(t, "abc", items[1].Price, "raw input survives a round trip")
	assert.True(t, items[0].Total.Equal(estimates.ItemTotal("10", "50", "15")))

	assert.True(t, estimates.DocumentTotals(got).TotalAmount.Equal(estimates.DocumentTotals(in).TotalAmount))
}

func TestEstimateStore_AllKeepsInsertionOrder(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	st := store.NewEstimateStore(app)
	ctx := context.Background()

	for _, p := range []string{"Zeta", "Alpha", "Mu"} {
		_, err := st.Append(ctx, newDoc(p))
		require.NoError(t, err)
	}

	all, err := st.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Zeta", all[0].Project)
	assert.Equal(t, "Alpha", all[1].Project)
	assert.Equal(t, "Mu", all[2].Project)
}

func TestEstimateStore_ReplaceRewritesChildren(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	st := store.NewEstimateStore(app)
	ctx := context.Background()

	first, err := st.Append(ctx, newDoc("First"))
	require.NoError(t, err)
	_, err = st.Append(ctx, newDoc("Second"))
	require.NoError(t, err)

	edited := first.Clone()
	edited.Client = "Darrell Caldwell"
	edited.Sections = edited.Sections[:1]
	edited.Sections[0].Items = edited.Sections[0].Items[:1]
	require.NoError(t, st.Replace(ctx, edited))

	got, err := st.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Darrell Caldwell", got.Client)
	require.Len(t, got.Sections, 1)
	require.Len(t, got.Sections[0].Items, 1)

	itemsCol, _ := app.FindCollectionByNameOrId("estimate_items")
	allItems, err := app.FindAllRecords(itemsCol)
	require.NoError(t, err)
	assert.Len(t, allItems, 1+3, "old children of the replaced estimate are gone")

	all, err := st.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, all[0].ID, "replace keeps the list position")
}

func TestEstimateStore_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	st := store.NewEstimateStore(app)
	ctx := context.Background()

	_, err := st.Get(ctx, "doesnotexist123")
	assert.ErrorIs(t, err, estimates.ErrNotFound)

	doc := newDoc("Ghost")
	doc.ID = "doesnotexist123"
	assert.ErrorIs(t, st.Replace(ctx, doc), estimates.ErrNotFound)
	assert.ErrorIs(t, st.Remove(ctx, "doesnotexist123"), estimates.ErrNotFound)
	assert.ErrorIs(t, st.Remove(ctx, ""), estimates.ErrNotFound)
}

func TestEstimateStore_RemoveCascades(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	st := store.NewEstimateStore(app)
	ctx := context.Background()

	doc, err := st.Append(ctx, newDoc("Doomed"))
	require.NoError(t, err)
	require.NoError(t, st.Remove(ctx, doc.ID))

	for _, name := range []string{"estimates", "estimate_sections", "estimate_items"} {
		col, _ := app.FindCollectionByNameOrId(name)
		records, err := app.FindAllRecords(col)
		require.NoError(t, err)
		assert.Empty(t, records, name)
	}
}

func TestEstimateStore_CanceledContext(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	st := store.NewEstimateStore(app)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := st.All(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = st.Append(ctx, newDoc("Never"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEstimateStore_ServiceRoundTrip(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	svc := testhelpers.NewTestService(t, app)
	ctx := context.Background()

	sess, err := svc.Begin()
	require.NoError(t, err)
	doc := sess.Document()
	sec, item := doc.Sections[0].ID, doc.Sections[0].Items[0].ID
	require.NoError(t, sess.UpdateHeader(estimates.HeaderProject, "Harbour View"))
	require.NoError(t, sess.UpdateHeader(estimates.HeaderClient, "Alan Cain"))
	require.NoError(t, sess.UpdateItemField(sec, item, estimates.FieldTitle, "Piling"))
	require.NoError(t, sess.UpdateItemField(sec, item, estimates.FieldQuantity, "4"))
	require.NoError(t, sess.UpdateItemField(sec, item, estimates.FieldPrice, "250"))

	saved, err := svc.Submit(ctx, sess.Token)
	require.NoError(t, err)

	reopened, err := svc.Open(ctx, saved.ID)
	require.NoError(t, err)
	got := reopened.Document()
	assert.Equal(t, "Harbour View", got.Project)
	assert.Equal(t, sec, got.Sections[0].ID)
	assert.True(t, reopened.Totals().TotalAmount.Equal(estimates.ItemTotal("4", "250", "")))

	newItem, err := reopened.AddItem(sec)
	require.NoError(t, err)
	assert.Greater(t, newItem, item, "fresh ids never collide with stored ones")
}
