package estimates

import (
	"fmt"
	"sort"
	"strings"
)

type keyKind int

const (
	keyProject keyKind = iota + 1
	keyClient
	keyStatus
	keySectionTitle
	keyItemTitle
	keyItemQuantity
	keyItemPrice
)

// ErrorKey identifies the input a validation message belongs to. Keys can
// only be built through the constructors below, so the set is closed.
type ErrorKey struct {
	kind keyKind
	id   int64
}

func ProjectKey() ErrorKey { return ErrorKey{kind: keyProject} }
func ClientKey() ErrorKey  { return ErrorKey{kind: keyClient} }
func StatusKey() ErrorKey  { return ErrorKey{kind: keyStatus} }

// SectionTitleKey is the key for a section's title.
func SectionTitleKey(sectionID int64) ErrorKey {
	return ErrorKey{kind: keySectionTitle, id: sectionID}
}

// ItemKey returns the key for an item input. Only title, quantity and price
// carry validation rules; other fields report false.
func ItemKey(itemID int64, f Field) (ErrorKey, bool) {
	switch f {
	case FieldTitle:
		return ErrorKey{kind: keyItemTitle, id: itemID}, true
	case FieldQuantity:
		return ErrorKey{kind: keyItemQuantity, id: itemID}, true
	case FieldPrice:
		return ErrorKey{kind: keyItemPrice, id: itemID}, true
	}
	return ErrorKey{}, false
}

// HeaderKey returns the key for a document-level input.
func HeaderKey(h HeaderField) (ErrorKey, bool) {
	switch h {
	case HeaderProject:
		return ProjectKey(), true
	case HeaderClient:
		return ClientKey(), true
	case HeaderStatus:
		return StatusKey(), true
	}
	return ErrorKey{}, false
}

// String renders the key the way form inputs are named, e.g.
// "item_1712345678901_quantity".
func (k ErrorKey) String() string {
	switch k.kind {
	case keyProject:
		return "project"
	case keyClient:
		return "client"
	case keyStatus:
		return "status"
	case keySectionTitle:
		return fmt.Sprintf("section_%d_title", k.id)
	case keyItemTitle:
		return fmt.Sprintf("item_%d_title", k.id)
	case keyItemQuantity:
		return fmt.Sprintf("item_%d_quantity", k.id)
	case keyItemPrice:
		return fmt.Sprintf("item_%d_price", k.id)
	}
	return ""
}

// ErrorMap maps inputs to user-facing messages. A nil map is empty.
type ErrorMap map[ErrorKey]string

// Empty reports whether there are no errors.
func (m ErrorMap) Empty() bool { return len(m) == 0 }

// Get returns the message for k, or "".
func (m ErrorMap) Get(k ErrorKey) string { return m[k] }

// Clear removes the message for k only.
func (m ErrorMap) Clear(k ErrorKey) { delete(m, k) }

// Clone copies the map.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Strings returns the map keyed by rendered key names, for templates.
func (m ErrorMap) Strings() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k.String()] = v
	}
	return out
}

// Keys returns the rendered key names in sorted order.
func (m ErrorMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	return keys
}

const (
	msgProjectRequired  = "Project is required"
	msgClientRequired   = "Client is required"
	msgStatusInvalid    = "Select a valid status"
	msgSectionTitle     = "Section title is required"
	msgItemTitle        = "Item name is required"
	msgQuantityPositive = "Quantity must be greater than zero"
	msgPricePositive    = "Price must be greater than zero"
)

// Validate runs the submission checks and returns every failure.
func Validate(d Document) ErrorMap {
	errs := make(ErrorMap)

	if strings.TrimSpace(d.Project) == "" {
		errs[ProjectKey()] = msgProjectRequired
	}
	if strings.TrimSpace(d.Client) == "" {
		errs[ClientKey()] = msgClientRequired
	}
	if !d.Status.Valid() {
		errs[StatusKey()] = msgStatusInvalid
	}

	for _, s := range d.Sections {
		if strings.TrimSpace(s.Title) == "" {
			errs[SectionTitleKey(s.ID)] = msgSectionTitle
		}
		for _, it := range s.Items {
			if strings.TrimSpace(it.Title) == "" {
				errs[ErrorKey{kind: keyItemTitle, id: it.ID}] = msgItemTitle
			}
			if !positive(it.Quantity) {
				errs[ErrorKey{kind: keyItemQuantity, id: it.ID}] = msgQuantityPositive
			}
			if !positive(it.Price) {
				errs[ErrorKey{kind: keyItemPrice, id: it.ID}] = msgPricePositive
			}
		}
	}
	return errs
}

func positive(s string) bool {
	d, err := ParseAmount(s)
	return err == nil && d.IsPositive()
}

// ValidationError is returned by Submit when the gate rejects a document.
type ValidationError struct {
	Errors ErrorMap
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("estimate has %d validation error(s): %s",
		len(e.Errors), strings.Join(e.Errors.Keys(), ", "))
}
