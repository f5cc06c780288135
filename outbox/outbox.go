// Package outbox implements the transactional outbox: every mutation
// enqueues its notification in the same transaction, and a downstream
// dispatcher drains pending rows. Dispatch itself is out of scope here.
package outbox

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// Topics published by the registry and deal services.
const (
	TopicDealCreated  = "deal.created"
	TopicDealFunded   = "deal.funded"
	TopicDealReleased = "deal.released"
	TopicDealRefunded = "deal.refunded"
)

// Enqueue inserts a pending outbox message inside the caller's transaction.
func Enqueue(ctx context.Context, tx pgx.Tx, topic string, payload map[string]any) error {
	if topic == "" {
		return fmt.Errorf("outbox: empty topic")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("outbox: marshal payload: %w", err)
	}

	const q = `INSERT INTO outbox (topic, payload) VALUES ($1, $2::jsonb)`
	if _, err := tx.Exec(ctx, q, topic, body); err != nil {
		return fmt.Errorf("outbox: enqueue: %w", err)
	}
	return nil
}
