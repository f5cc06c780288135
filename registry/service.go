// Package registry creates deals, assigns their identities, and maintains
// the two lookup indices: all deals in creation order, and deals by
// participant.
package registry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"descrow/deal"
)

// EventCreated is the timeline event type appended on deal creation.
const EventCreated = "DEAL_CREATED"

// CreateParams carries a deal creation request.
type CreateParams struct {
	DealID string
	Buyer  string
	Seller string
	Price  int64
	Actor  string
}

// DB is the subset of pgxpool.Pool the registry needs.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store defines the write access required by the service.
type Store interface {
	CreateTx(ctx context.Context, tx pgx.Tx, params CreateParams) error
}

type Service struct {
	db   DB
	repo Store
}

func NewService(db DB, repo Store) *Service {
	if repo == nil {
		repo = NewRepository()
	}
	return &Service{
		db:   db,
		repo: repo,
	}
}

// CreateContract validates the parties and price, assigns the deal its
// identity, and commits the deal together with both index entries. The
// returned id is usable in all later calls.
func (s *Service) CreateContract(ctx context.Context, buyer, seller string, price int64, actor string) (string, error) {
	if buyer == "" || seller == "" || buyer == seller {
		return "", deal.ErrInvalidParties
	}
	if price <= 0 {
		return "", deal.ErrInvalidAmount
	}

	params := CreateParams{
		DealID: uuid.NewString(),
		Buyer:  buyer,
		Seller: seller,
		Price:  price,
		Actor:  actor,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("registry: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.CreateTx(ctx, tx, params); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("registry: commit create: %w", err)
	}

	return params.DealID, nil
}

// GetAllContracts returns every deal id in creation order. Re-invocation
// yields the same prefix plus any deals created since.
func (s *Service) GetAllContracts(ctx context.Context) ([]string, error) {
	const q = `SELECT id FROM deals ORDER BY seq`
	return s.queryIDs(ctx, q)
}

// GetContractsByParty returns the deals in which the party appears as buyer
// or seller, in creation order. Unknown parties get an empty slice, not an
// error.
func (s *Service) GetContractsByParty(ctx context.Context, party string) ([]string, error) {
	const q = `
SELECT d.id
FROM deal_parties p
JOIN deals d ON d.id = p.deal_id
WHERE p.party = $1
ORDER BY d.seq
`
	return s.queryIDs(ctx, q, party)
}

func (s *Service) queryIDs(ctx context.Context, q string, args ...any) ([]string, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("registry: query deals: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("registry: scan deal id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
