package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/abhisek/drill/internal/deck"
)

// Key is the durable slot that holds the progress document.
const Key = "drill.progress.v1"

// ErrInvalidStatus is returned when a mark is neither done nor again.
var ErrInvalidStatus = errors.New("status must be done or again")

// KV is the durable slot store progress is kept in.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store is the only reader and writer of Key. Every mutation is a full
// read-modify-write of the document, serialized by mu.
type Store struct {
	kv     KV
	logger *slog.Logger
	mu     sync.Mutex
}

// NewStore creates a Store over kv. A nil logger discards output.
func NewStore(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{kv: kv, logger: logger}
}

// Load returns the persisted state. Absent, unreadable or malformed data
// yields an empty State; Load never fails.
func (s *Store) Load(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) State {
	raw, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		s.logger.Warn("progress unreadable, starting empty", "key", Key, "err", err)
		return NewState()
	}
	if !ok {
		return NewState()
	}

	var doc State
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn("progress corrupt, starting empty", "key", Key, "err", err)
		return NewState()
	}

	st := NewState()
	for id, v := range doc.Status {
		if v.Valid() {
			st.Status[id] = v
		}
	}
	for id, v := range doc.Reveal {
		st.Reveal[id] = v
	}
	return st
}

// Save replaces the whole persisted document with st.
func (s *Store) Save(ctx context.Context, st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, st)
}

func (s *Store) save(ctx context.Context, st State) error {
	if st.Status == nil {
		st.Status = map[string]Status{}
	}
	if st.Reveal == nil {
		st.Reveal = map[string]bool{}
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.kv.Put(ctx, Key, raw); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// MarkStatus records status for id. Reveal state is untouched.
func (s *Store) MarkStatus(ctx context.Context, id deck.CardID, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("mark %s as %q: %w", id, status, ErrInvalidStatus)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.load(ctx)
	st.Status[string(id)] = status
	return s.save(ctx, st)
}

// ToggleReveal flips the reveal flag of id and returns the new value.
// Status is untouched.
func (s *Store) ToggleReveal(ctx context.Context, id deck.CardID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.load(ctx)
	next := !st.Reveal[string(id)]
	st.Reveal[string(id)] = next
	if err := s.save(ctx, st); err != nil {
		return !next, err
	}
	return next, nil
}

// ResetBucket removes status and reveal entries for exactly ids.
func (s *Store) ResetBucket(ctx context.Context, ids []deck.CardID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.load(ctx)
	for _, id := range ids {
		delete(st.Status, string(id))
		delete(st.Reveal, string(id))
	}
	return s.save(ctx, st)
}
