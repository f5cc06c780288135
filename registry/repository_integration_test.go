package registry

import (
	"context"
	"fmt"
	"os"
	"slices"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestRegistry_Integration connects to a real PostgreSQL via DATABASE_URL
// and verifies creation, indexing, and the listing guarantees end to end.
func TestRegistry_Integration(t *testing.T) {
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

	var exists bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'deal_parties')`).Scan(&exists); err != nil || !exists {
		t.Skip("schema missing; apply migrations first")
	}

	nonce := time.Now().UnixNano()
	buyer := fmt.Sprintf("0xbuyer-%d", nonce)
	seller := fmt.Sprintf("0xseller-%d", nonce)
	stranger := fmt.Sprintf("0xstranger-%d", nonce)

	svc := NewService(pool, nil)

	before, err := svc.GetAllContracts(ctx)
	if err != nil {
		t.Fatalf("list before: %v", err)
	}

	id, err := svc.CreateContract(ctx, buyer, seller, 10, buyer)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Cleanup(func() {
		ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel2()
		pool.Exec(ctx2, `DELETE FROM timeline_events WHERE deal_id = $1`, id)
		pool.Exec(ctx2, `DELETE FROM outbox WHERE payload->>'deal_id' = $1`, id)
		pool.Exec(ctx2, `DELETE FROM deal_parties WHERE deal_id = $1`, id)
		pool.Exec(ctx2, `DELETE FROM deals WHERE id = $1`, id)
	})

	// Exactly one new id, appended after the previous prefix.
	after, err := svc.GetAllContracts(ctx)
	if err != nil {
		t.Fatalf("list after: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("expected %d deals, got %d", len(before)+1, len(after))
	}
	if !slices.Contains(after, id) {
		t.Fatalf("expected %s in all-deals listing", id)
	}

	// Indexed under both parties, not under strangers.
	for _, party := range []string{buyer, seller} {
		ids, err := svc.GetContractsByParty(ctx, party)
		if err != nil {
			t.Fatalf("list by %s: %v", party, err)
		}
		if !slices.Contains(ids, id) {
			t.Errorf("expected %s indexed under %s", id, party)
		}
	}
	ids, err := svc.GetContractsByParty(ctx, stranger)
	if err != nil {
		t.Fatalf("list by stranger: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty listing for stranger, got %v", ids)
	}

	// New deals start in created with nothing in custody.
	var status string
	var balance int64
	if err := pool.QueryRow(ctx, `SELECT status, balance FROM deals WHERE id = $1`, id).Scan(&status, &balance); err != nil {
		t.Fatalf("load deal: %v", err)
	}
	if status != "created" || balance != 0 {
		t.Errorf("expected created/0, got %s/%d", status, balance)
	}

	// A rejected create leaves the indices exactly as they were.
	if _, err := svc.CreateContract(ctx, buyer, buyer, 10, buyer); err == nil {
		t.Fatal("expected buyer==seller create to fail")
	}
	again, err := svc.GetAllContracts(ctx)
	if err != nil {
		t.Fatalf("list again: %v", err)
	}
	if len(again) != len(after) {
		t.Errorf("failed create must not grow the registry: %d != %d", len(again), len(after))
	}
}
