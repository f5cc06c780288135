package deal

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"descrow/ledger"
)

// TxBeginner abstracts pgxpool.Pool for testability.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store defines the data access required by the service.
type Store interface {
	GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (Deal, error)
	RecordTransition(ctx context.Context, tx pgx.Tx, d Deal, next Status, actor string, amount int64) error
}

// Mover performs the gated balance/status movements. Satisfied by
// *ledger.Ledger.
type Mover interface {
	Deposit(ctx context.Context, tx pgx.Tx, dealID string, amount int64) error
	Withdraw(ctx context.Context, tx pgx.Tx, dealID string, amount int64, recipient, outcome string) error
}

// Service runs the deal state machine. Each mutating operation is one
// transaction: lock the row, validate against the current status, move the
// value, record the transition, commit. A failed validation returns the
// typed taxonomy error and the deferred rollback leaves everything as it
// was.
type Service struct {
	pool   TxBeginner
	repo   Store
	mover  Mover
	policy Policy
}

func NewService(pool TxBeginner, repo Store, mover Mover, policy Policy) *Service {
	if repo == nil {
		repo = NewRepository()
	}
	if mover == nil {
		mover = ledger.New()
	}
	if policy == nil {
		policy = PartyPolicy{}
	}
	return &Service{
		pool:   pool,
		repo:   repo,
		mover:  mover,
		policy: policy,
	}
}

// Fund moves the agreed price into custody. Permitted only in created
// status with an amount exactly equal to the price.
func (s *Service) Fund(ctx context.Context, params FundParams) (Deal, error) {
	if params.DealID == "" {
		return Deal{}, ErrNotFound
	}
	if params.Amount <= 0 {
		return Deal{}, ErrInvalidAmount
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Deal{}, fmt.Errorf("deal: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	d, err := s.repo.GetForUpdate(ctx, tx, params.DealID)
	if err != nil {
		return Deal{}, err
	}
	if d.Status != StatusCreated {
		return Deal{}, ErrInvalidState
	}
	if params.Amount != d.Price {
		return Deal{}, ErrAmountMismatch
	}

	if err := s.mover.Deposit(ctx, tx, d.ID, params.Amount); err != nil {
		return Deal{}, err
	}
	if err := s.repo.RecordTransition(ctx, tx, d, StatusFunded, params.Caller.Address, params.Amount); err != nil {
		return Deal{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Deal{}, fmt.Errorf("deal: commit fund: %w", err)
	}

	d.Status = StatusFunded
	d.Balance = d.Price
	return d, nil
}

// Release settles the deal in the seller's favor: the full balance leaves
// custody to the seller and the deal lands on released.
func (s *Service) Release(ctx context.Context, params SettleParams) (Deal, error) {
	return s.settle(ctx, params, StatusReleased)
}

// Refund settles the deal in the buyer's favor: the full balance returns to
// the buyer and the deal lands on refunded.
func (s *Service) Refund(ctx context.Context, params SettleParams) (Deal, error) {
	return s.settle(ctx, params, StatusRefunded)
}

func (s *Service) settle(ctx context.Context, params SettleParams, next Status) (Deal, error) {
	if params.DealID == "" {
		return Deal{}, ErrNotFound
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Deal{}, fmt.Errorf("deal: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	d, err := s.repo.GetForUpdate(ctx, tx, params.DealID)
	if err != nil {
		return Deal{}, err
	}
	if !d.Status.CanTransition(next) {
		return Deal{}, ErrInvalidState
	}

	var recipient string
	switch next {
	case StatusReleased:
		if err := s.policy.AuthorizeRelease(params.Caller, d); err != nil {
			return Deal{}, err
		}
		recipient = d.Seller
	case StatusRefunded:
		if err := s.policy.AuthorizeRefund(params.Caller, d); err != nil {
			return Deal{}, err
		}
		recipient = d.Buyer
	default:
		return Deal{}, ErrInvalidState
	}

	if err := s.mover.Withdraw(ctx, tx, d.ID, d.Balance, recipient, string(next)); err != nil {
		return Deal{}, err
	}
	if err := s.repo.RecordTransition(ctx, tx, d, next, params.Caller.Address, d.Balance); err != nil {
		return Deal{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Deal{}, fmt.Errorf("deal: commit settle: %w", err)
	}

	d.Status = next
	d.Balance = 0
	return d, nil
}
