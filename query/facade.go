// Package query is the read-only projection consumed by external callers.
// It composes the deal and registry read paths without exposing any
// mutating operation and holds no state of its own.
package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"descrow/deal"
)

// DealView is the external read model of a deal.
type DealView struct {
	ID        string
	Buyer     string
	Seller    string
	Price     int64
	Balance   int64
	Status    deal.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RowQuerier is the single-row read surface shared by pgxpool.Pool and pgx.Tx.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Facade struct {
	db RowQuerier
}

func NewFacade(db RowQuerier) *Facade {
	return &Facade{db: db}
}

// Resolve fetches the full read model for a deal.
func (f *Facade) Resolve(ctx context.Context, dealID string) (DealView, error) {
	const q = `
SELECT id, buyer, seller, price, balance, status, created_at, updated_at
FROM deals
WHERE id = $1
`
	var v DealView
	err := f.db.QueryRow(ctx, q, dealID).Scan(
		&v.ID,
		&v.Buyer,
		&v.Seller,
		&v.Price,
		&v.Balance,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DealView{}, deal.ErrNotFound
		}
		return DealView{}, fmt.Errorf("query: resolve deal: %w", err)
	}
	return v, nil
}

// Status reads a deal's current status.
func (f *Facade) Status(ctx context.Context, dealID string) (deal.Status, error) {
	v, err := f.Resolve(ctx, dealID)
	if err != nil {
		return "", err
	}
	return v.Status, nil
}
