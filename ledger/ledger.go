// Package ledger encapsulates the only two legal value movements for a deal:
// custody-in on funding and custody-out on settlement. Both primitives run
// inside the caller's transaction and are gated on the deal's status at call
// time, so a movement the state machine does not authorize updates nothing
// and the caller's rollback undoes any partial effect.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Entry directions as stored in ledger_entries.
const (
	DirectionDeposit    = "deposit"
	DirectionWithdrawal = "withdrawal"
)

// Settlement outcomes a withdrawal may carry. They name the terminal status
// the deal row moves to in the same statement as the balance update.
const (
	OutcomeReleased = "released"
	OutcomeRefunded = "refunded"
)

var (
	// ErrMovementNotAllowed signals the deal's state machine does not
	// authorize the movement at call time.
	ErrMovementNotAllowed = errors.New("ledger: movement not authorized by deal state")
	// ErrInvalidAmount signals a non-positive or mismatched amount.
	ErrInvalidAmount = errors.New("ledger: invalid movement amount")
	// ErrInvalidOutcome signals a withdrawal outcome that is not terminal.
	ErrInvalidOutcome = errors.New("ledger: withdrawal outcome must be released or refunded")
)

// Entry is one recorded value movement.
type Entry struct {
	ID        int64
	DealID    string
	Direction string
	Amount    int64
	Recipient *string
	CreatedAt time.Time
}

type Ledger struct{}

func New() *Ledger {
	return &Ledger{}
}

// Deposit moves amount into the deal's custody: balance rises to the full
// price and the status flips to funded in a single statement, keeping the
// balance/status invariant intact at every point the row is visible.
// Permitted only while the deal is in created status with amount equal to
// the agreed price.
func (l *Ledger) Deposit(ctx context.Context, tx pgx.Tx, dealID string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	const q = `
UPDATE deals
SET balance = balance + $2,
    status = 'funded',
    updated_at = now()
WHERE id = $1
  AND status = 'created'
  AND price = $2
`
	tag, err := tx.Exec(ctx, q, dealID, amount)
	if err != nil {
		return fmt.Errorf("ledger: deposit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMovementNotAllowed
	}

	return l.record(ctx, tx, dealID, DirectionDeposit, amount, nil)
}

// Withdraw moves the full custodied balance out of the deal to recipient and
// lands the deal on the given terminal outcome. Permitted only while the
// deal is funded with amount equal to the held balance, so value leaves
// custody exactly once and exactly through a terminal transition.
func (l *Ledger) Withdraw(ctx context.Context, tx pgx.Tx, dealID string, amount int64, recipient, outcome string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if outcome != OutcomeReleased && outcome != OutcomeRefunded {
		return ErrInvalidOutcome
	}
	if recipient == "" {
		return fmt.Errorf("ledger: withdrawal requires a recipient")
	}

	const q = `
UPDATE deals
SET balance = balance - $2,
    status = $3::deal_status,
    updated_at = now()
WHERE id = $1
  AND status = 'funded'
  AND balance = $2
`
	tag, err := tx.Exec(ctx, q, dealID, amount, outcome)
	if err != nil {
		return fmt.Errorf("ledger: withdraw: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMovementNotAllowed
	}

	return l.record(ctx, tx, dealID, DirectionWithdrawal, amount, &recipient)
}

func (l *Ledger) record(ctx context.Context, tx pgx.Tx, dealID, direction string, amount int64, recipient *string) error {
	const q = `
INSERT INTO ledger_entries (deal_id, direction, amount, recipient)
VALUES ($1, $2, $3, $4)
`
	if _, err := tx.Exec(ctx, q, dealID, direction, amount, recipient); err != nil {
		return fmt.Errorf("ledger: record entry: %w", err)
	}
	return nil
}

// Entries returns a deal's movements in insertion order.
func (l *Ledger) Entries(ctx context.Context, q Querier, dealID string) ([]Entry, error) {
	const sel = `
SELECT id, deal_id, direction, amount, recipient, created_at
FROM ledger_entries
WHERE deal_id = $1
ORDER BY id
`
	rows, err := q.Query(ctx, sel, dealID)
	if err != nil {
		return nil, fmt.Errorf("ledger: query entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.DealID, &e.Direction, &e.Amount, &e.Recipient, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("ledger: scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Querier is the read surface shared by pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}
