package deal

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"descrow/outbox"
	"descrow/timeline"
)

const dealColumns = `id, seq, buyer, seller, price, balance, status, created_at, updated_at`

// Repository provides data access for individual deals. Write helpers take
// the caller's transaction so every transition commits with its timeline and
// outbox rows or not at all.
type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// GetForUpdate loads a deal inside the transaction and acquires its row
// lock. All mutations of the same deal serialize on this lock.
func (r *Repository) GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (Deal, error) {
	const q = `SELECT ` + dealColumns + ` FROM deals WHERE id = $1 FOR UPDATE`
	return scanDeal(tx.QueryRow(ctx, q, id))
}

// Get loads a deal without locking it.
func (r *Repository) Get(ctx context.Context, row RowQuerier, id string) (Deal, error) {
	const q = `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`
	return scanDeal(row.QueryRow(ctx, q, id))
}

// RecordTransition appends the transition's timeline event and outbox
// message inside the caller's transaction.
func (r *Repository) RecordTransition(ctx context.Context, tx pgx.Tx, d Deal, next Status, actor string, amount int64) error {
	eventType, topic, err := transitionEvent(next)
	if err != nil {
		return err
	}

	payload := map[string]any{
		"deal_id": d.ID,
		"buyer":   d.Buyer,
		"seller":  d.Seller,
		"amount":  amount,
		"status":  string(next),
	}
	if err := timeline.Append(ctx, tx, d.ID, eventType, actor, payload); err != nil {
		return err
	}
	return outbox.Enqueue(ctx, tx, topic, payload)
}

func transitionEvent(next Status) (eventType, topic string, err error) {
	switch next {
	case StatusFunded:
		return EventFunded, outbox.TopicDealFunded, nil
	case StatusReleased:
		return EventReleased, outbox.TopicDealReleased, nil
	case StatusRefunded:
		return EventRefunded, outbox.TopicDealRefunded, nil
	default:
		return "", "", fmt.Errorf("deal: no event for status %q", next)
	}
}

func scanDeal(row pgx.Row) (Deal, error) {
	var d Deal
	err := row.Scan(&d.ID, &d.Seq, &d.Buyer, &d.Seller, &d.Price, &d.Balance, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Deal{}, ErrNotFound
		}
		return Deal{}, fmt.Errorf("deal: scan: %w", err)
	}
	return d, nil
}

// RowQuerier is the single-row read surface shared by pgxpool.Pool and pgx.Tx.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
