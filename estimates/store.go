package estimates

import (
	"context"
	"errors"
	"strconv"
	"sync"
)

// ErrNotFound is returned when no document has the requested id.
var ErrNotFound = errors.New("estimate not found")

// Store is the ordered backing collection of submitted documents.
type Store interface {
	// All returns every document in insertion order.
	All(ctx context.Context) ([]Document, error)
	Get(ctx context.Context, id string) (Document, error)
	// Append stores a new document and returns it with its id assigned.
	Append(ctx context.Context, d Document) (Document, error)
	// Replace overwrites the document with the same id in place.
	Replace(ctx context.Context, d Document) error
	Remove(ctx context.Context, id string) error
}

// MemoryStore keeps documents in a slice. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	ids  IDSource
	docs []Document
}

// NewMemoryStore returns a store seeded with docs. Seeded documents keep
// their ids; appended ones get ids from ids.
func NewMemoryStore(ids IDSource, docs ...Document) *MemoryStore {
	s := &MemoryStore{ids: ids}
	for _, d := range docs {
		s.docs = append(s.docs, d.Clone())
	}
	return s
}

func (s *MemoryStore) All(ctx context.Context) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, len(s.docs))
	for i, d := range s.docs {
		out[i] = d.Clone()
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(id); i >= 0 {
		return s.docs[i].Clone(), nil
	}
	return Document{}, ErrNotFound
}

func (s *MemoryStore) Append(ctx context.Context, d Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d = d.Clone()
	if d.ID == "" {
		d.ID = strconv.FormatInt(s.ids.NextID(), 10)
	}
	s.docs = append(s.docs, d)
	return d.Clone(), nil
}

func (s *MemoryStore) Replace(ctx context.Context, d Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(d.ID)
	if i < 0 {
		return ErrNotFound
	}
	s.docs[i] = d.Clone()
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.docs = append(s.docs[:i], s.docs[i+1:]...)
	return nil
}

func (s *MemoryStore) index(id string) int {
	for i, d := range s.docs {
		if d.ID == id {
			return i
		}
	}
	return -1
}
