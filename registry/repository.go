package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"descrow/deal"
	"descrow/outbox"
	"descrow/timeline"
)

// Repository performs the registry's writes. CreateTx runs entirely inside
// the caller's transaction so the deal row, both party index rows, the
// creation event, and the outbox message commit as one unit — a partially
// indexed deal is never observable.
type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// CreateTx inserts the deal and its index rows.
func (r *Repository) CreateTx(ctx context.Context, tx pgx.Tx, params CreateParams) error {
	const insertDeal = `
INSERT INTO deals (id, buyer, seller, price)
VALUES ($1, $2, $3, $4)
`
	if _, err := tx.Exec(ctx, insertDeal, params.DealID, params.Buyer, params.Seller, params.Price); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" {
			// check_violation: the schema restates the party and price rules.
			return deal.ErrInvalidParties
		}
		return fmt.Errorf("registry: insert deal: %w", err)
	}

	const insertParty = `INSERT INTO deal_parties (party, deal_id) VALUES ($1, $2)`
	for _, party := range []string{params.Buyer, params.Seller} {
		if _, err := tx.Exec(ctx, insertParty, party, params.DealID); err != nil {
			return fmt.Errorf("registry: index party %s: %w", party, err)
		}
	}

	payload := map[string]any{
		"deal_id": params.DealID,
		"buyer":   params.Buyer,
		"seller":  params.Seller,
		"price":   params.Price,
	}
	if err := timeline.Append(ctx, tx, params.DealID, EventCreated, params.Actor, payload); err != nil {
		return err
	}
	return outbox.Enqueue(ctx, tx, outbox.TopicDealCreated, payload)
}
