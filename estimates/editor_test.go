package estimates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqIDs hands out 100, 101, 102... so tests can predict new ids.
type seqIDs struct{ next int64 }

func (s *seqIDs) NextID() int64 {
	if s.next == 0 {
		s.next = 100
	}
	id := s.next
	s.next++
	return id
}

func newTestEditor() *Editor {
	return NewEditor(&seqIDs{})
}

func TestNewDocument(t *testing.T) {
	doc := newTestEditor().NewDocument()

	assert.True(t, doc.IsNew())
	assert.Equal(t, StatusCreated, doc.Status)
	require.Len(t, doc.Sections, 1)
	sec := doc.Sections[0]
	assert.Equal(t, int64(100), sec.ID)
	assert.Equal(t, DefaultSectionTitle, sec.Title)
	assert.True(t, sec.Expanded)
	require.Len(t, sec.Items, 1)
	assert.Equal(t, int64(101), sec.Items[0].ID)
	assert.True(t, sec.Items[0].Total.IsZero())
}

func TestUpdateItemField_NumericRecomputesTotal(t *testing.T) {
	ed := newTestEditor()
	doc := ed.NewDocument()
	secID, itemID := doc.Sections[0].ID, doc.Sections[0].Items[0].ID

	doc = ed.UpdateItemField(doc, secID, itemID, FieldQuantity, "10")
	doc = ed.UpdateItemField(doc, secID, itemID, FieldPrice, "50")
	doc = ed.UpdateItemField(doc, secID, itemID, FieldMargin, "15")

	it := doc.Sections[0].Items[0]
	assert.Equal(t, "10", it.Quantity)
	assert.Equal(t, "50", it.Price)
	assert.Equal(t, "15", it.Margin)
	assert.True(t, it.Total.Equal(dec("575")), "total %s", it.Total)
}

func TestUpdateItemField_InvalidPriceYieldsZeroTotal(t *testing.T) {
	ed := newTestEditor()
	doc := ed.NewDocument()
	secID, itemID := doc.Sections[0].ID, doc.Sections[0].Items[0].ID

	doc = ed.UpdateItemField(doc, secID, itemID, FieldQuantity, "10")
	doc = ed.UpdateItemField(doc, secID, itemID, FieldMargin, "0")
	doc = ed.UpdateItemField(doc, secID, itemID, FieldPrice, "abc")

	it := doc.Sections[0].Items[0]
	assert.Equal(t, "abc", it.Price, "raw input is kept verbatim")
	assert.True(t, it.Total.IsZero())
}

func TestUpdateItemField_TextLeavesTotal(t *testing.T) {
	ed := newTestEditor()
	doc := ed.NewDocument()
	secID, itemID := doc.Sections[0].ID, doc.Sections[0].Items[0].ID
	doc = ed.UpdateItemField(doc, secID, itemID, FieldQuantity, "2")
	doc = ed.UpdateItemField(doc, secID, itemID, FieldPrice, "3")

	doc = ed.UpdateItemField(doc, secID, itemID, FieldTitle, "Concrete")
	doc = ed.UpdateItemField(doc, secID, itemID, FieldDescription, "M25 grade")
	doc = ed.UpdateItemField(doc, secID, itemID, FieldUnit, "m3")

	it := doc.Sections[0].Items[0]
	assert.Equal(t, "Concrete", it.Title)
	assert.Equal(t, "M25 grade", it.Description)
	assert.Equal(t, "m3", it.Unit)
	assert.True(t, it.Total.Equal(dec("6")))
}

func TestUpdateItemField_DoesNotMutateInput(t *testing.T) {
	ed := newTestEditor()
	before := ed.NewDocument()
	secID, itemID := before.Sections[0].ID, before.Sections[0].Items[0].ID

	after := ed.UpdateItemField(before, secID, itemID, FieldTitle, "Steel")

	assert.Equal(t, "", before.Sections[0].Items[0].Title)
	assert.Equal(t, "Steel", after.Sections[0].Items[0].Title)
}

func TestUpdateItemField_UnknownTargetsAreNoOps(t *testing.T) {
	ed := newTestEditor()
	doc := ed.NewDocument()
	secID, itemID := doc.Sections[0].ID, doc.Sections[0].Items[0].ID

	assert.Equal(t, doc, ed.UpdateItemField(doc, 999, itemID, FieldTitle, "x"))
	assert.Equal(t, doc, ed.UpdateItemField(doc, secID, 999, FieldTitle, "x"))
	assert.Equal(t, doc, ed.UpdateItemField(doc, secID, itemID, Field(42), "x"))
}

func TestAddItem(t *testing.T) {
	ed := newTestEditor()
	doc := ed.NewDocument()
	secID := doc.Sections[0].ID

	doc = ed.AddItem(doc, secID)

	items := doc.Sections[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, int64(102), items[1].ID)
	assert.Equal(t, LineItem{ID: 102}, items[1])

	assert.Equal(t, doc, ed.AddItem(doc, 999))
}

func TestRemoveItem(t *testing.T) {
	ed := newTestEditor()
	doc := ed.NewDocument()
	sec := doc.Sections[0]
	doc = ed.AddItem(doc, sec.ID)

	doc = ed.RemoveItem(doc, sec.ID, sec.Items[0].ID)

	require.Len(t, doc.Sections[0].Items, 1)
	assert.Equal(t, int64(102), doc.Sections[0].Items[0].ID)
}

func TestRemoveItem_LastItemIsNoOp(t *testing.T) {
	ed := newTestEditor()
	doc := ed.NewDocument()
	sec := doc.Sections[0]

	after := ed.RemoveItem(doc, sec.ID, sec.Items[0].ID)

	assert.Equal(t, doc, after)
	require.Len(t, after.Sections[0].Items, 1)
}

func TestRemoveItem_UnknownIsNoOp(t *testing.T) {
	ed := newTestEditor()
	doc := ed.AddItem(ed.NewDocument(), 100)

	assert.Equal(t, doc, ed.RemoveItem(doc, 100, 999))
	assert.Equal(t, doc, ed.RemoveItem(doc, 999, 101))
}

func TestAddSection(t *testing.T) {
	ed := newTestEditor()
	doc := ed.AddSection(ed.NewDocument())

	require.Len(t, doc.Sections, 2)
	sec := doc.Sections[1]
	assert.Equal(t, int64(102), sec.ID)
	assert.Equal(t, "", sec.Title)
	assert.True(t, sec.Expanded)
	require.Len(t, sec.Items, 1)
	assert.Equal(t, int64(103), sec.Items[0].ID)
}

func TestRemoveSection(t *testing.T) {
	ed := newTestEditor()
	doc := ed.AddSection(ed.NewDocument())

	doc = ed.RemoveSection(doc, 100)

	require.Len(t, doc.Sections, 1)
	assert.Equal(t, int64(102), doc.Sections[0].ID)
}

func TestRemoveSection_LastSectionIsNoOp(t *testing.T) {
	ed := newTestEditor()
	doc := ed.NewDocument()

	assert.Equal(t, doc, ed.RemoveSection(doc, 100))

	two := ed.AddSection(doc)
	assert.Equal(t, two, ed.RemoveSection(two, 999))
}

func TestUpdateSectionTitleAndToggle(t *testing.T) {
	ed := newTestEditor()
	doc := ed.NewDocument()

	doc = ed.UpdateSectionTitle(doc, 100, "  Foundations ")
	assert.Equal(t, "  Foundations ", doc.Sections[0].Title)

	doc = ed.ToggleSectionExpansion(doc, 100)
	assert.False(t, doc.Sections[0].Expanded)
	doc = ed.ToggleSectionExpansion(doc, 100)
	assert.True(t, doc.Sections[0].Expanded)

	assert.Equal(t, doc, ed.UpdateSectionTitle(doc, 999, "x"))
	assert.Equal(t, doc, ed.ToggleSectionExpansion(doc, 999))
}

func TestUpdateHeader(t *testing.T) {
	ed := newTestEditor()
	doc := ed.NewDocument()

	doc = ed.UpdateHeader(doc, HeaderProject, "Tower B")
	doc = ed.UpdateHeader(doc, HeaderClient, "Acme Builders")
	doc = ed.UpdateHeader(doc, HeaderStatus, "On Hold")

	assert.Equal(t, "Tower B", doc.Project)
	assert.Equal(t, "Acme Builders", doc.Client)
	assert.Equal(t, StatusOnHold, doc.Status)
	assert.Equal(t, doc, ed.UpdateHeader(doc, HeaderField(9), "x"))
}

func TestTotalsTrackEveryEdit(t *testing.T) {
	ed := newTestEditor()
	doc := ed.NewDocument()
	doc = ed.AddItem(doc, 100)
	doc = ed.AddSection(doc)

	edits := []struct {
		sec, item int64
		field     Field
		value     string
	}{
		{100, 101, FieldQuantity, "10"},
		{100, 101, FieldPrice, "50"},
		{100, 101, FieldMargin, "15"},
		{100, 102, FieldQuantity, "5"},
		{100, 102, FieldPrice, "abc"},
		{100, 102, FieldPrice, "100"},
		{100, 102, FieldMargin, "10"},
		{103, 104, FieldQuantity, "1.5"},
		{103, 104, FieldPrice, "20"},
	}
	for _, e := range edits {
		doc = ed.UpdateItemField(doc, e.sec, e.item, e.field, e.value)
		for _, s := range doc.Sections {
			for _, it := range s.Items {
				assert.True(t, it.Total.Equal(ItemTotal(it.Quantity, it.Price, it.Margin)))
			}
		}
	}

	assert.True(t, SectionSubtotal(doc.Sections[0]).Equal(dec("1125")))
	assert.True(t, SectionSubtotal(doc.Sections[1]).Equal(dec("30")))
	assert.True(t, DocumentTotals(doc).TotalAmount.Equal(dec("1155")))
}

func TestParseField(t *testing.T) {
	f, ok := ParseField(" Quantity ")
	require.True(t, ok)
	assert.Equal(t, FieldQuantity, f)

	_, ok = ParseField("total")
	assert.False(t, ok)

	h, ok := ParseHeaderField("client")
	require.True(t, ok)
	assert.Equal(t, HeaderClient, h)
}
