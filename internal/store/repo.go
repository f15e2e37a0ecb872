package store

import (
	"context"
	"time"
)

// Event kinds recorded for a game session.
const (
	KindStart    = "start"
	KindAttempt  = "attempt"
	KindComplete = "complete"
	KindAbandon  = "abandon"
)

// GameEventData is what callers supply when appending an event.
type GameEventData struct {
	SessionID string
	Kind      string
	Category  string
	SlotID    string
	OptionID  string
	Outcome   string
	Input     string
	Filled    int
	Total     int
}

// GameEvent is a stored event.
type GameEvent struct {
	GameEventData
	Sequence  int64
	Timestamp time.Time
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	After     int64  // sequence > After
	SessionID string // only this session when set
}

// CategoryStats aggregates play for one outcome category.
type CategoryStats struct {
	Category      string
	Started       int
	Completed     int
	Abandoned     int
	Attempts      int
	WrongAttempts int
}

// EventRepo provides append and query access to game events.
type EventRepo interface {
	// AppendGameEvent records one event under the next global sequence.
	AppendGameEvent(ctx context.Context, data GameEventData) error

	// Events returns events newest first.
	Events(ctx context.Context, opts QueryOpts) ([]GameEvent, error)

	// Stats aggregates events per category, ordered by category.
	Stats(ctx context.Context) ([]CategoryStats, error)

	// Clear deletes every event and returns how many were removed.
	Clear(ctx context.Context) (int64, error)
}
