// Package api is the HTTP boundary over the registry, the deal state
// machine, and the query facade. It is the transport collaborator of the
// core; all business rules live below it.
package api

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"descrow/auth"
	"descrow/deal"
	"descrow/ledger"
	"descrow/query"
)

// Registry is the creation/index surface consumed by the handlers.
type Registry interface {
	CreateContract(ctx context.Context, buyer, seller string, price int64, actor string) (string, error)
	GetAllContracts(ctx context.Context) ([]string, error)
	GetContractsByParty(ctx context.Context, party string) ([]string, error)
}

// Deals is the mutating deal surface consumed by the handlers.
type Deals interface {
	Fund(ctx context.Context, params deal.FundParams) (deal.Deal, error)
	Release(ctx context.Context, params deal.SettleParams) (deal.Deal, error)
	Refund(ctx context.Context, params deal.SettleParams) (deal.Deal, error)
}

// Facade is the read-only deal surface consumed by the handlers.
type Facade interface {
	Resolve(ctx context.Context, dealID string) (query.DealView, error)
	Status(ctx context.Context, dealID string) (deal.Status, error)
}

// Auth is the account surface consumed by the handlers.
type Auth interface {
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.User, error)
	Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error)
	VerifyToken(tokenString string) (*auth.Claims, error)
}

// Movements lists a deal's ledger entries. Satisfied by *ledger.Ledger bound
// to the pool via LedgerReader.
type Movements interface {
	Entries(ctx context.Context, dealID string) ([]ledger.Entry, error)
}

type Server struct {
	registry  Registry
	deals     Deals
	facade    Facade
	auth      Auth
	movements Movements
	validate  *validator.Validate
	log       *slog.Logger
}

func NewServer(registry Registry, deals Deals, facade Facade, authSvc Auth, movements Movements, log *slog.Logger) *Server {
	return &Server{
		registry:  registry,
		deals:     deals,
		facade:    facade,
		auth:      authSvc,
		movements: movements,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		log:       log,
	}
}

// LedgerReader binds the ledger read path to a connection pool.
type LedgerReader struct {
	Ledger *ledger.Ledger
	DB     ledger.Querier
}

func (r LedgerReader) Entries(ctx context.Context, dealID string) ([]ledger.Entry, error) {
	return r.Ledger.Entries(ctx, r.DB, dealID)
}
