// Package estimates holds the estimate document model together with the
// pricing roll-ups, edit operations, validation and editing sessions that
// operate on it.
package estimates

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle label shown on an estimate.
type Status string

const (
	StatusCreated    Status = "Created"
	StatusProcessing Status = "Processing"
	StatusRejected   Status = "Rejected"
	StatusOnHold     Status = "On Hold"
	StatusInTransit  Status = "In Transit"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{
	StatusCreated,
	StatusProcessing,
	StatusRejected,
	StatusOnHold,
	StatusInTransit,
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// DefaultSectionTitle is given to the section a new document starts with.
const DefaultSectionTitle = "Sample Section"

// LineItem is a single costed row inside a section. Quantity, Price and
// Margin keep the text exactly as entered; Total is derived from them.
type LineItem struct {
	ID          int64
	Title       string
	Description string
	Unit        string
	Quantity    string
	Price       string
	Margin      string
	Total       decimal.Decimal
}

// Section groups line items under a title.
type Section struct {
	ID       int64
	Title    string
	Expanded bool
	Items    []LineItem
}

// Document is a complete estimate.
type Document struct {
	ID        string
	Version   string
	Project   string
	Client    string
	Status    Status
	Sections  []Section
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VersionAt returns the version number given to an estimate first stored at
// t: the last five digits of its Unix millisecond timestamp.
func VersionAt(t time.Time) string {
	return fmt.Sprintf("%05d", t.UnixMilli()%100000)
}

// IsNew reports whether the document has never been stored.
func (d Document) IsNew() bool {
	return d.ID == ""
}

// ItemCount returns the number of line items across all sections.
func (d Document) ItemCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Items)
	}
	return n
}

// Clone returns a deep copy of d that shares no slices with it.
func (d Document) Clone() Document {
	out := d
	out.Sections = make([]Section, len(d.Sections))
	for i, s := range d.Sections {
		out.Sections[i] = s.clone()
	}
	return out
}

func (s Section) clone() Section {
	out := s
	out.Items = make([]LineItem, len(s.Items))
	copy(out.Items, s.Items)
	return out
}

func (d Document) sectionIndex(sectionID int64) int {
	for i, s := range d.Sections {
		if s.ID == sectionID {
			return i
		}
	}
	return -1
}

func (s Section) itemIndex(itemID int64) int {
	for i, it := range s.Items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

func (d Document) hasItem(sectionID, itemID int64) bool {
	si := d.sectionIndex(sectionID)
	return si >= 0 && d.Sections[si].itemIndex(itemID) >= 0
}

// blank reports whether nothing has been entered into the item yet.
func (it LineItem) blank() bool {
	return it.Title == "" && it.Description == "" && it.Unit == "" &&
		it.Quantity == "" && it.Price == "" && it.Margin == ""
}

// FindSection returns the section with the given id.
func (d Document) FindSection(sectionID int64) (Section, bool) {
	i := d.sectionIndex(sectionID)
	if i < 0 {
		return Section{}, false
	}
	return d.Sections[i], true
}
