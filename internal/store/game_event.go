package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var eventColumns = []string{
	"sequence", "timestamp", "session_id", "kind", "category",
	"slot_id", "option_id", "outcome", "input", "filled", "total",
}

type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) clock() time.Time {
	if r.now != nil {
		return r.now().UTC()
	}
	return time.Now().UTC()
}

func (r *eventRepo) AppendGameEvent(ctx context.Context, data GameEventData) (err error) {
	if data.SessionID == "" {
		return fmt.Errorf("save game event: empty session id")
	}
	switch data.Kind {
	case KindStart, KindAttempt, KindComplete, KindAbandon:
	default:
		return fmt.Errorf("save game event: unknown kind %q", data.Kind)
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	seqNum, err := r.seq.Next(ctx, tx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := entsql.Dialect(dialect.SQLite).
		Insert(gameEventsTable).
		Columns(eventColumns...).
		Values(seqNum, r.clock(), data.SessionID, data.Kind, data.Category,
			data.SlotID, data.OptionID, data.Outcome, data.Input, data.Filled, data.Total).
		Query()
	if err = tx.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("save game event: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit game event: %w", err)
	}
	return nil
}

func (r *eventRepo) Events(ctx context.Context, opts QueryOpts) ([]GameEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(eventColumns...).
		From(entsql.Table(gameEventsTable)).
		OrderBy(entsql.Desc("sequence"))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.SessionID != "" {
		preds = append(preds, entsql.EQ("session_id", opts.SessionID))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	q, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query game events: %w", err)
	}
	defer rows.Close()

	var out []GameEvent
	for rows.Next() {
		var e GameEvent
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.SessionID, &e.Kind, &e.Category,
			&e.SlotID, &e.OptionID, &e.Outcome, &e.Input, &e.Filled, &e.Total); err != nil {
			return nil, fmt.Errorf("scan game event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query game events: %w", err)
	}
	return out, nil
}

type statsRow struct {
	Category string `sql:"category"`
	Kind     string `sql:"kind"`
	Outcome  string `sql:"outcome"`
	N        int    `sql:"n"`
}

func (r *eventRepo) Stats(ctx context.Context) ([]CategoryStats, error) {
	q, args := entsql.Dialect(dialect.SQLite).
		Select("category", "kind", "outcome", entsql.As(entsql.Count("*"), "n")).
		From(entsql.Table(gameEventsTable)).
		GroupBy("category", "kind", "outcome").
		OrderBy("category").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var grouped []statsRow
	if err := entsql.ScanSlice(rows, &grouped); err != nil {
		return nil, fmt.Errorf("scan stats: %w", err)
	}

	var out []CategoryStats
	for _, g := range grouped {
		if len(out) == 0 || out[len(out)-1].Category != g.Category {
			out = append(out, CategoryStats{Category: g.Category})
		}
		cs := &out[len(out)-1]
		switch g.Kind {
		case KindStart:
			cs.Started += g.N
		case KindComplete:
			cs.Completed += g.N
		case KindAbandon:
			cs.Abandoned += g.N
		case KindAttempt:
			if g.Outcome == "ignored" {
				continue
			}
			cs.Attempts += g.N
			if g.Outcome == "rejected" {
				cs.WrongAttempts += g.N
			}
		}
	}
	return out, nil
}

func (r *eventRepo) Clear(ctx context.Context) (int64, error) {
	q, args := entsql.Dialect(dialect.SQLite).Delete(gameEventsTable).Query()
	var res entsql.Result
	if err := r.drv.Exec(ctx, q, args, &res); err != nil {
		return 0, fmt.Errorf("clear game events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear game events: %w", err)
	}
	return n, nil
}
