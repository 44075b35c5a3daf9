package estimates

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("editing session not found")
	ErrServiceClosed   = errors.New("estimate service closed")
)

// DefaultSubmitDelay is the artificial latency applied to every submission.
const DefaultSubmitDelay = 300 * time.Millisecond

// Service is the application state for estimates: the backing store plus
// every open editing session. Construct one at start-up and Close it on
// shutdown.
type Service struct {
	store       Store
	ids         IDSource
	editor      *Editor
	now         func() time.Time
	submitDelay time.Duration
	logger      *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithSubmitDelay(d time.Duration) Option {
	return func(s *Service) { s.submitDelay = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDSource(ids IDSource) Option {
	return func(s *Service) { s.ids = ids }
}

// NewService builds a Service around store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:       store,
		now:         time.Now,
		submitDelay: DefaultSubmitDelay,
		logger:      zap.NewNop(),
		sessions:    make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = NewClockIDs(s.now)
	}
	s.editor = NewEditor(s.ids)
	return s
}

// Editor returns the edit controller used by sessions.
func (s *Service) Editor() *Editor { return s.editor }

// Begin opens a session on a fresh, unsaved document.
func (s *Service) Begin() (*Session, error) {
	return s.register(s.editor.NewDocument())
}

// Open starts a session seeded from the stored document with the given id.
func (s *Service) Open(ctx context.Context, id string) (*Session, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if obs, ok := s.ids.(interface{ Observe(int64) }); ok {
		for _, sec := range doc.Sections {
			obs.Observe(sec.ID)
			for _, it := range sec.Items {
				obs.Observe(it.ID)
			}
		}
	}
	return s.register(doc)
}

func (s *Service) register(doc Document) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrServiceClosed
	}
	sess := newSession(uuid.NewString(), s.editor, doc)
	s.sessions[sess.Token] = sess
	s.logger.Debug("estimate session opened",
		zap.String("session", sess.Token),
		zap.String("estimate", doc.ID),
	)
	return sess, nil
}

// Session looks up an open session by token.
func (s *Service) Session(token string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrServiceClosed
	}
	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Discard drops a session without saving.
func (s *Service) Discard(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; ok {
		delete(s.sessions, token)
		s.logger.Debug("estimate session discarded", zap.String("session", token))
	}
}

// SessionCount returns the number of open sessions.
func (s *Service) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Submit validates and stores the session's document. A *ValidationError
// leaves the store untouched and the session open. On success the session
// is closed and removed.
func (s *Service) Submit(ctx context.Context, token string) (Document, error) {
	sess, err := s.Session(token)
	if err != nil {
		return Document{}, err
	}

	doc, err := sess.submit(ctx, s.store, s.now(), s.submitDelay)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.logger.Info("estimate rejected by validation",
				zap.String("session", token),
				zap.Strings("fields", verr.Errors.Keys()),
			)
		} else {
			s.logger.Error("estimate submit failed", zap.String("session", token), zap.Error(err))
		}
		return Document{}, err
	}

	s.Discard(token)
	s.logger.Info("estimate submitted",
		zap.String("estimate", doc.ID),
		zap.String("version", doc.Version),
		zap.Int("sections", len(doc.Sections)),
		zap.Int("items", doc.ItemCount()),
	)
	return doc, nil
}

// List returns the stored documents that pass f.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Document, error) {
	docs, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	return f.Apply(docs), nil
}

// Get returns one stored document.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	return s.store.Get(ctx, id)
}

// Delete removes a stored document. Open sessions editing it are left alone;
// submitting one of them fails with ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}
	s.logger.Info("estimate deleted", zap.String("estimate", id))
	return nil
}

// Close discards every open session. Further calls that open or look up
// sessions fail with ErrServiceClosed.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.logger.Info("estimate service closing", zap.Int("open_sessions", len(s.sessions)))
	s.sessions = nil
	s.closed = true
	_ = s.logger.Sync()
	return nil
}
