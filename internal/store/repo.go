package store

import (
	"context"
	"time"
)

// KVRepo is a durable string-keyed slot store. Each key holds one opaque
// value that is replaced as a whole on write.
type KVRepo interface {
	// Get returns the value under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put replaces the value under key.
	Put(ctx context.Context, key string, value []byte) error
}

// Practice event actions.
const (
	ActionStart = "start"
	ActionMark  = "mark"
	ActionStop  = "stop"
)

// PracticeEventData captures one practice session event.
type PracticeEventData struct {
	SessionID string
	Action    string
	Day       int
	CardID    string
	Status    string
}

// PracticeEvent is a stored practice event.
type PracticeEvent struct {
	ID        int64
	Timestamp time.Time
	PracticeEventData
}

// SessionSummary aggregates the events of one practice session.
type SessionSummary struct {
	SessionID string
	Day       int
	StartedAt time.Time
	LastAt    time.Time
	Done      int
	Again     int
	Stopped   bool
}

// Duration is the time between the first and last recorded event.
func (s SessionSummary) Duration() time.Duration {
	return s.LastAt.Sub(s.StartedAt)
}

// EventRepo provides append access to practice events and simple reads.
type EventRepo interface {
	// AppendPracticeEvent records a practice session event.
	AppendPracticeEvent(ctx context.Context, data PracticeEventData) error

	// SessionEvents returns the events of one session in insertion order.
	SessionEvents(ctx context.Context, sessionID string) ([]PracticeEvent, error)

	// RecentSessions returns up to limit sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error)
}
