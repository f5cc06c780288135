package deal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"descrow/ledger"
)

// TestDealLifecycle_Integration connects to a real PostgreSQL via
// DATABASE_URL and verifies the full custody lifecycle against the actual
// schema, including ledger conservation.
func TestDealLifecycle_Integration(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL is empty; set it to a live PostgreSQL to run integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect pool: %v", err)
	}
	defer pool.Close()

	for _, table := range []string{"deals", "deal_parties", "ledger_entries", "timeline_events", "outbox"} {
		if !tableExists(ctx, t, pool, table) {
			t.Skipf("table %s missing; apply migrations first", table)
		}
	}

	buyer := fmt.Sprintf("0xbuyer-%d", time.Now().UnixNano())
	seller := fmt.Sprintf("0xseller-%d", time.Now().UnixNano())
	dealID := uuid.NewString()

	if _, err := pool.Exec(ctx, `INSERT INTO deals (id, buyer, seller, price) VALUES ($1, $2, $3, 10)`, dealID, buyer, seller); err != nil {
		t.Fatalf("seed deal: %v", err)
	}

	t.Cleanup(func() {
		ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel2()
		pool.Exec(ctx2, `DELETE FROM ledger_entries WHERE deal_id = $1`, dealID)
		pool.Exec(ctx2, `DELETE FROM timeline_events WHERE deal_id = $1`, dealID)
		pool.Exec(ctx2, `DELETE FROM outbox WHERE payload->>'deal_id' = $1`, dealID)
		pool.Exec(ctx2, `DELETE FROM deal_parties WHERE deal_id = $1`, dealID)
		pool.Exec(ctx2, `DELETE FROM deals WHERE id = $1`, dealID)
	})

	led := ledger.New()
	svc := NewService(pool, nil, led, PartyPolicy{})
	buyerCaller := Caller{Address: buyer}
	sellerCaller := Caller{Address: seller}

	// Funding with the wrong amount must change nothing.
	if _, err := svc.Fund(ctx, FundParams{DealID: dealID, Caller: buyerCaller, Amount: 5}); !errors.Is(err, ErrAmountMismatch) {
		t.Fatalf("fund 5: expected ErrAmountMismatch, got %v", err)
	}
	assertDeal(ctx, t, pool, dealID, StatusCreated, 0)

	// Funding the agreed price moves it into custody.
	got, err := svc.Fund(ctx, FundParams{DealID: dealID, Caller: buyerCaller, Amount: 10})
	if err != nil {
		t.Fatalf("fund 10: %v", err)
	}
	if got.Status != StatusFunded || got.Balance != 10 {
		t.Fatalf("expected funded/10, got %s/%d", got.Status, got.Balance)
	}
	assertDeal(ctx, t, pool, dealID, StatusFunded, 10)

	// Refund by the buyer is not the seller's decision to make.
	if _, err := svc.Refund(ctx, SettleParams{DealID: dealID, Caller: buyerCaller}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("refund by buyer: expected ErrUnauthorized, got %v", err)
	}
	assertDeal(ctx, t, pool, dealID, StatusFunded, 10)

	// Release by the buyer settles in the seller's favor.
	got, err = svc.Release(ctx, SettleParams{DealID: dealID, Caller: buyerCaller})
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if got.Status != StatusReleased || got.Balance != 0 {
		t.Fatalf("expected released/0, got %s/%d", got.Status, got.Balance)
	}
	assertDeal(ctx, t, pool, dealID, StatusReleased, 0)

	// Terminal states are permanent.
	if _, err := svc.Release(ctx, SettleParams{DealID: dealID, Caller: buyerCaller}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("release twice: expected ErrInvalidState, got %v", err)
	}
	if _, err := svc.Refund(ctx, SettleParams{DealID: dealID, Caller: sellerCaller}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("refund after release: expected ErrInvalidState, got %v", err)
	}

	// Conservation: value out equals value in, and the seller received it.
	entries, err := led.Entries(ctx, pool, dealID)
	if err != nil {
		t.Fatalf("ledger entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(entries))
	}
	if entries[0].Direction != ledger.DirectionDeposit || entries[0].Amount != 10 {
		t.Errorf("unexpected first entry %+v", entries[0])
	}
	if entries[1].Direction != ledger.DirectionWithdrawal || entries[1].Amount != 10 {
		t.Errorf("unexpected second entry %+v", entries[1])
	}
	if entries[1].Recipient == nil || *entries[1].Recipient != seller {
		t.Errorf("expected withdrawal recipient %s, got %v", seller, entries[1].Recipient)
	}

	// Each transition appended exactly one event.
	var eventCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM timeline_events WHERE deal_id = $1`, dealID).Scan(&eventCount); err != nil {
		t.Fatalf("count events: %v", err)
	}
	if eventCount != 2 {
		t.Errorf("expected 2 timeline events, got %d", eventCount)
	}
}

func assertDeal(ctx context.Context, t *testing.T, pool *pgxpool.Pool, id string, wantStatus Status, wantBalance int64) {
	t.Helper()

	var (
		status  Status
		balance int64
	)
	if err := pool.QueryRow(ctx, `SELECT status, balance FROM deals WHERE id = $1`, id).Scan(&status, &balance); err != nil {
		t.Fatalf("load deal: %v", err)
	}
	if status != wantStatus || balance != wantBalance {
		t.Fatalf("expected %s/%d, got %s/%d", wantStatus, wantBalance, status, balance)
	}
	if (balance > 0) != (status == StatusFunded) {
		t.Fatalf("invariant violated: status=%s balance=%d", status, balance)
	}
}

func tableExists(ctx context.Context, t *testing.T, pool *pgxpool.Pool, name string) bool {
	t.Helper()

	var exists bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, name).Scan(&exists); err != nil {
		t.Fatalf("check table %s: %v", name, err)
	}
	return exists
}
