package estimates

import "strings"

// Field names an editable line-item input.
type Field int

const (
	FieldTitle Field = iota + 1
	FieldDescription
	FieldUnit
	FieldQuantity
	FieldPrice
	FieldMargin
)

var fieldNames = map[Field]string{
	FieldTitle:       "title",
	FieldDescription: "description",
	FieldUnit:        "unit",
	FieldQuantity:    "quantity",
	FieldPrice:       "price",
	FieldMargin:      "margin",
}

func (f Field) String() string {
	return fieldNames[f]
}

// numeric reports whether changing the field affects the item total.
func (f Field) numeric() bool {
	return f == FieldQuantity || f == FieldPrice || f == FieldMargin
}

// ParseField maps a form input name to a Field.
func ParseField(name string) (Field, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range fieldNames {
		if n == name {
			return f, true
		}
	}
	return 0, false
}

// HeaderField names an editable document-level input.
type HeaderField int

const (
	HeaderProject HeaderField = iota + 1
	HeaderClient
	HeaderStatus
)

var headerNames = map[HeaderField]string{
	HeaderProject: "project",
	HeaderClient:  "client",
	HeaderStatus:  "status",
}

func (h HeaderField) String() string {
	return headerNames[h]
}

// ParseHeaderField maps a form input name to a HeaderField.
func ParseHeaderField(name string) (HeaderField, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for h, n := range headerNames {
		if n == name {
			return h, true
		}
	}
	return 0, false
}

// Editor applies edit operations to documents. Every operation returns a new
// document and never modifies its argument. Operations that reference an
// unknown section or item, or that would empty a section or the document,
// return the input unchanged.
type Editor struct {
	ids IDSource
}

// NewEditor returns an Editor drawing new ids from ids.
func NewEditor(ids IDSource) *Editor {
	return &Editor{ids: ids}
}

// NewDocument returns an unsaved document with one expanded section holding
// one empty item.
func (e *Editor) NewDocument() Document {
	return Document{
		Status: StatusCreated,
		Sections: []Section{
			{
				ID:       e.ids.NextID(),
				Title:    DefaultSectionTitle,
				Expanded: true,
				Items:    []LineItem{e.newItem()},
			},
		},
	}
}

func (e *Editor) newItem() LineItem {
	return LineItem{ID: e.ids.NextID()}
}

// UpdateItemField sets one input on an item. Text inputs are stored verbatim;
// numeric inputs also recompute the item total.
func (e *Editor) UpdateItemField(d Document, sectionID, itemID int64, field Field, value string) Document {
	si := d.sectionIndex(sectionID)
	if si < 0 {
		return d
	}
	ii := d.Sections[si].itemIndex(itemID)
	if ii < 0 {
		return d
	}
	if _, ok := fieldNames[field]; !ok {
		return d
	}

	out := d.Clone()
	it := &out.Sections[si].Items[ii]
	switch field {
	case FieldTitle:
		it.Title = value
	case FieldDescription:
		it.Description = value
	case FieldUnit:
		it.Unit = value
	case FieldQuantity:
		it.Quantity = value
	case FieldPrice:
		it.Price = value
	case FieldMargin:
		it.Margin = value
	}
	if field.numeric() {
		it.Total = ItemTotal(it.Quantity, it.Price, it.Margin)
	}
	return out
}

// AddItem appends an empty item to the end of a section.
func (e *Editor) AddItem(d Document, sectionID int64) Document {
	out, _ := e.addItem(d, sectionID)
	return out
}

// addItem is AddItem that also reports the new item's id (0 on no-op).
func (e *Editor) addItem(d Document, sectionID int64) (Document, int64) {
	si := d.sectionIndex(sectionID)
	if si < 0 {
		return d, 0
	}
	out := d.Clone()
	it := e.newItem()
	out.Sections[si].Items = append(out.Sections[si].Items, it)
	return out, it.ID
}

// RemoveItem deletes an item unless it is the last one in its section.
func (e *Editor) RemoveItem(d Document, sectionID, itemID int64) Document {
	si := d.sectionIndex(sectionID)
	if si < 0 {
		return d
	}
	sec := d.Sections[si]
	ii := sec.itemIndex(itemID)
	if ii < 0 || len(sec.Items) <= 1 {
		return d
	}
	out := d.Clone()
	items := out.Sections[si].Items
	out.Sections[si].Items = append(items[:ii:ii], items[ii+1:]...)
	return out
}

// AddSection appends an expanded, untitled section with one empty item.
func (e *Editor) AddSection(d Document) Document {
	out := d.Clone()
	out.Sections = append(out.Sections, Section{
		ID:       e.ids.NextID(),
		Expanded: true,
		Items:    []LineItem{e.newItem()},
	})
	return out
}

// RemoveSection deletes a section unless it is the only one.
func (e *Editor) RemoveSection(d Document, sectionID int64) Document {
	si := d.sectionIndex(sectionID)
	if si < 0 || len(d.Sections) <= 1 {
		return d
	}
	out := d.Clone()
	out.Sections = append(out.Sections[:si:si], out.Sections[si+1:]...)
	return out
}

// UpdateSectionTitle stores title verbatim.
func (e *Editor) UpdateSectionTitle(d Document, sectionID int64, title string) Document {
	si := d.sectionIndex(sectionID)
	if si < 0 {
		return d
	}
	out := d.Clone()
	out.Sections[si].Title = title
	return out
}

// ToggleSectionExpansion flips the display-only expanded flag.
func (e *Editor) ToggleSectionExpansion(d Document, sectionID int64) Document {
	si := d.sectionIndex(sectionID)
	if si < 0 {
		return d
	}
	out := d.Clone()
	out.Sections[si].Expanded = !out.Sections[si].Expanded
	return out
}

// UpdateHeader sets project, client or status. Status values are stored as
// given; the validation gate rejects unknown ones at submit.
func (e *Editor) UpdateHeader(d Document, field HeaderField, value string) Document {
	out := d.Clone()
	switch field {
	case HeaderProject:
		out.Project = value
	case HeaderClient:
		out.Client = value
	case HeaderStatus:
		out.Status = Status(value)
	default:
		return d
	}
	return out
}
