package estimates

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// State tracks where an editing session is in its lifecycle.
type State int

const (
	StateDraft State = iota
	StateDirty
	StateValidating
	StateInvalid
	StateValid
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateDraft:
		return "draft"
	case StateDirty:
		return "dirty"
	case StateValidating:
		return "validating"
	case StateInvalid:
		return "invalid"
	case StateValid:
		return "valid"
	case StateSubmitted:
		return "submitted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrSessionClosed is returned for edits or submits after a successful submit.
var ErrSessionClosed = errors.New("editing session already submitted")

// ErrSectionNotFound is returned when filling a section the document lacks.
var ErrSectionNotFound = errors.New("section not found")

// Session owns the working copy of one document while it is being edited.
// Methods are safe for concurrent use; edits are applied one at a time.
type Session struct {
	Token string

	mu     sync.Mutex
	editor *Editor
	doc    Document
	errs   ErrorMap
	state  State
}

func newSession(token string, editor *Editor, doc Document) *Session {
	return &Session{
		Token:  token,
		editor: editor,
		doc:    doc.Clone(),
		errs:   make(ErrorMap),
		state:  StateDraft,
	}
}

// Document returns a copy of the working document.
func (s *Session) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Errors returns a copy of the pending validation errors.
func (s *Session) Errors() ErrorMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs.Clone()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Totals recomputes the roll-up of the working document.
func (s *Session) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DocumentTotals(s.doc)
}

// apply runs fn against the working copy. fn reports whether it changed
// the document; a rejected edit leaves the document, the error map and the
// state alone. On a change the listed keys are cleared and, when dirty is
// set, the session moves to Dirty. Other errors stay until the next submit.
func (s *Session) apply(fn func(Document) (Document, bool), dirty bool, clear ...ErrorKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubmitted {
		return ErrSessionClosed
	}
	out, changed := fn(s.doc)
	if !changed {
		return nil
	}
	s.doc = out
	for _, k := range clear {
		s.errs.Clear(k)
	}
	if dirty {
		s.state = StateDirty
	}
	return nil
}

func (s *Session) UpdateItemField(sectionID, itemID int64, field Field, value string) error {
	k, ok := ItemKey(itemID, field)
	var clear []ErrorKey
	if ok {
		clear = append(clear, k)
	}
	return s.apply(func(d Document) (Document, bool) {
		if _, known := fieldNames[field]; !known || !d.hasItem(sectionID, itemID) {
			return d, false
		}
		return s.editor.UpdateItemField(d, sectionID, itemID, field, value), true
	}, true, clear...)
}

// AddItem appends an empty item and returns its id, or 0 if the section
// does not exist.
func (s *Session) AddItem(sectionID int64) (int64, error) {
	var id int64
	err := s.apply(func(d Document) (Document, bool) {
		var out Document
		out, id = s.editor.addItem(d, sectionID)
		return out, id != 0
	}, true)
	return id, err
}

// RemoveItem drops an item and its pending errors. Removing the last item of
// a section is rejected without touching anything.
func (s *Session) RemoveItem(sectionID, itemID int64) error {
	return s.apply(func(d Document) (Document, bool) {
		out := s.editor.RemoveItem(d, sectionID, itemID)
		return out, out.ItemCount() < d.ItemCount()
	}, true, itemKeys(itemID)...)
}

func (s *Session) AddSection() error {
	return s.apply(func(d Document) (Document, bool) {
		return s.editor.AddSection(d), true
	}, true)
}

// RemoveSection drops a section and the pending errors of the section and
// its items. Removing the only section is rejected without touching anything.
func (s *Session) RemoveSection(sectionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubmitted {
		return ErrSessionClosed
	}
	sec, ok := s.doc.FindSection(sectionID)
	out := s.editor.RemoveSection(s.doc, sectionID)
	if !ok || len(out.Sections) == len(s.doc.Sections) {
		return nil
	}
	s.errs.Clear(SectionTitleKey(sectionID))
	for _, it := range sec.Items {
		for _, k := range itemKeys(it.ID) {
			s.errs.Clear(k)
		}
	}
	s.doc = out
	s.state = StateDirty
	return nil
}

func (s *Session) UpdateSectionTitle(sectionID int64, title string) error {
	return s.apply(func(d Document) (Document, bool) {
		if d.sectionIndex(sectionID) < 0 {
			return d, false
		}
		return s.editor.UpdateSectionTitle(d, sectionID, title), true
	}, true, SectionTitleKey(sectionID))
}

// ToggleSectionExpansion is display-only and does not mark the session dirty.
func (s *Session) ToggleSectionExpansion(sectionID int64) error {
	return s.apply(func(d Document) (Document, bool) {
		if d.sectionIndex(sectionID) < 0 {
			return d, false
		}
		return s.editor.ToggleSectionExpansion(d, sectionID), true
	}, false)
}

func (s *Session) UpdateHeader(field HeaderField, value string) error {
	var clear []ErrorKey
	if k, ok := HeaderKey(field); ok {
		clear = append(clear, k)
	}
	return s.apply(func(d Document) (Document, bool) {
		if _, known := headerNames[field]; !known {
			return d, false
		}
		return s.editor.UpdateHeader(d, field, value), true
	}, true, clear...)
}

// ItemValues are the raw inputs of one line item.
type ItemValues struct {
	Title       string
	Description string
	Unit        string
	Quantity    string
	Price       string
	Margin      string
}

func (v ItemValues) lineItem(id int64) LineItem {
	return LineItem{
		ID:          id,
		Title:       v.Title,
		Description: v.Description,
		Unit:        v.Unit,
		Quantity:    v.Quantity,
		Price:       v.Price,
		Margin:      v.Margin,
		Total:       ItemTotal(v.Quantity, v.Price, v.Margin),
	}
}

// FillItems writes rows into a section as one edit. When the section holds a
// single untouched item the first row fills it; the rest are appended. It
// returns the number of items written, or ErrSectionNotFound.
func (s *Session) FillItems(sectionID int64, rows []ItemValues) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubmitted {
		return 0, ErrSessionClosed
	}
	si := s.doc.sectionIndex(sectionID)
	if si < 0 {
		return 0, ErrSectionNotFound
	}
	if len(rows) == 0 {
		return 0, nil
	}

	written := len(rows)
	out := s.doc.Clone()
	sec := &out.Sections[si]
	if len(sec.Items) == 1 && sec.Items[0].blank() {
		reused := sec.Items[0].ID
		sec.Items[0] = rows[0].lineItem(reused)
		rows = rows[1:]
		for _, k := range itemKeys(reused) {
			s.errs.Clear(k)
		}
	}
	for _, r := range rows {
		sec.Items = append(sec.Items, r.lineItem(s.editor.ids.NextID()))
	}

	s.doc = out
	s.state = StateDirty
	return written, nil
}

func itemKeys(itemID int64) []ErrorKey {
	var keys []ErrorKey
	for _, f := range []Field{FieldTitle, FieldQuantity, FieldPrice} {
		k, _ := ItemKey(itemID, f)
		keys = append(keys, k)
	}
	return keys
}

// submit validates the working copy and, if it passes, stamps and stores it.
// The session lock is held for the whole call so no edit can interleave.
func (s *Session) submit(ctx context.Context, store Store, now time.Time, delay time.Duration) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubmitted {
		return Document{}, ErrSessionClosed
	}

	s.state = StateValidating
	if errs := Validate(s.doc); !errs.Empty() {
		s.errs = errs
		s.state = StateInvalid
		return Document{}, &ValidationError{Errors: errs.Clone()}
	}
	s.errs = make(ErrorMap)
	s.state = StateValid

	doc := s.doc.Clone()
	if doc.IsNew() {
		doc.CreatedAt = now
		doc.Version = VersionAt(now)
	}
	doc.UpdatedAt = now

	if delay > 0 {
		time.Sleep(delay)
	}

	if doc.IsNew() {
		stored, err := store.Append(ctx, doc)
		if err != nil {
			s.state = StateDirty
			return Document{}, fmt.Errorf("append estimate: %w", err)
		}
		doc = stored
	} else if err := store.Replace(ctx, doc); err != nil {
		s.state = StateDirty
		return Document{}, fmt.Errorf("replace estimate %s: %w", doc.ID, err)
	}

	s.doc = doc.Clone()
	s.state = StateSubmitted
	return doc, nil
}
