// Package timeline appends immutable business events to a deal's history.
// Events are only written inside the transaction that performs the related
// mutation, so the history never disagrees with the deal row.
package timeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// Event is one row of a deal's append-only history.
type Event struct {
	ID        int64
	DealID    string
	Seq       int
	Type      string
	Actor     *string
	Payload   []byte
	CreatedAt time.Time
}

// Append inserts an event for the deal inside the caller's transaction. The
// per-deal sequence number is derived under the caller's row lock on the
// deal, so it is monotonic per deal.
func Append(ctx context.Context, tx pgx.Tx, dealID, eventType, actor string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("timeline: marshal payload: %w", err)
	}

	var actorArg any
	if actor != "" {
		actorArg = actor
	}

	const q = `
INSERT INTO timeline_events (deal_id, seq, type, payload, actor)
VALUES ($1, (SELECT COALESCE(MAX(seq), 0) + 1 FROM timeline_events WHERE deal_id = $1), $2, $3::jsonb, $4)
`
	if _, err := tx.Exec(ctx, q, dealID, eventType, body, actorArg); err != nil {
		return fmt.Errorf("timeline: insert event: %w", err)
	}
	return nil
}

// ForDeal returns a deal's events in sequence order.
func ForDeal(ctx context.Context, q Querier, dealID string) ([]Event, error) {
	const sel = `
SELECT id, deal_id, seq, type, actor, payload, created_at
FROM timeline_events
WHERE deal_id = $1
ORDER BY seq
`
	rows, err := q.Query(ctx, sel, dealID)
	if err != nil {
		return nil, fmt.Errorf("timeline: query events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.DealID, &ev.Seq, &ev.Type, &ev.Actor, &ev.Payload, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("timeline: scan event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Querier is the read surface shared by pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}
