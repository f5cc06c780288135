// Package actors hosts the concurrent workloads of the stress harness. Each
// actor drives the real services; taxonomy errors are expected under
// contention, anything else aborts the run.
package actors

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"descrow/deal"
	"descrow/registry"
)

// Creator produces deals for random party pairs, occasionally attempting an
// invalid pair to confirm rejected creates leave no trace.
func Creator(ctx context.Context, reg *registry.Service, parties []string, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		buyer := parties[rand.Intn(len(parties))]
		seller := parties[rand.Intn(len(parties))]
		price := int64(1 + rand.Intn(100))

		_, err := reg.CreateContract(ctx, buyer, seller, price, buyer)
		if err != nil && !expected(err) {
			return fmt.Errorf("creator: %w", err)
		}

		time.Sleep(time.Duration(5+rand.Intn(15)) * time.Millisecond)
	}
}

// Funder funds created deals with the agreed price, and sometimes with the
// wrong amount to confirm the mismatch is rejected without side effects.
func Funder(ctx context.Context, pool *pgxpool.Pool, deals *deal.Service, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		id, buyer, _, price, err := pickDeal(ctx, pool, "created")
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				time.Sleep(10 * time.Millisecond)
				continue
			}
			return fmt.Errorf("funder pick: %w", err)
		}

		amount := price
		if rand.Intn(5) == 0 {
			amount = price + 1
		}

		_, err = deals.Fund(ctx, deal.FundParams{
			DealID: id,
			Caller: deal.Caller{Address: buyer},
			Amount: amount,
		})
		if err != nil && !expected(err) {
			return fmt.Errorf("funder: %w", err)
		}

		time.Sleep(time.Duration(5+rand.Intn(15)) * time.Millisecond)
	}
}

// Settler releases or refunds funded deals. Callers are picked so that both
// authorized and unauthorized attempts occur.
func Settler(ctx context.Context, pool *pgxpool.Pool, deals *deal.Service, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		id, buyer, seller, _, err := pickDeal(ctx, pool, "funded")
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				time.Sleep(10 * time.Millisecond)
				continue
			}
			return fmt.Errorf("settler pick: %w", err)
		}

		var opErr error
		switch rand.Intn(4) {
		case 0:
			_, opErr = deals.Release(ctx, deal.SettleParams{DealID: id, Caller: deal.Caller{Address: buyer}})
		case 1:
			_, opErr = deals.Refund(ctx, deal.SettleParams{DealID: id, Caller: deal.Caller{Address: seller}})
		case 2:
			// wrong caller, must be rejected
			_, opErr = deals.Release(ctx, deal.SettleParams{DealID: id, Caller: deal.Caller{Address: seller}})
		case 3:
			_, opErr = deals.Refund(ctx, deal.SettleParams{DealID: id, Caller: deal.Caller{Address: "0xstranger"}})
		}
		if opErr != nil && !expected(opErr) {
			return fmt.Errorf("settler: %w", opErr)
		}

		time.Sleep(time.Duration(5+rand.Intn(15)) * time.Millisecond)
	}
}

// Reader hammers the query paths and checks the all-deals listing never
// shrinks.
func Reader(ctx context.Context, reg *registry.Service, parties []string, stop <-chan struct{}) error {
	var lastLen int
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		ids, err := reg.GetAllContracts(ctx)
		if err != nil {
			return fmt.Errorf("reader all: %w", err)
		}
		if len(ids) < lastLen {
			return fmt.Errorf("reader: all-deals listing shrank from %d to %d", lastLen, len(ids))
		}
		lastLen = len(ids)

		if _, err := reg.GetContractsByParty(ctx, parties[rand.Intn(len(parties))]); err != nil {
			return fmt.Errorf("reader by party: %w", err)
		}

		time.Sleep(time.Duration(5+rand.Intn(15)) * time.Millisecond)
	}
}

func pickDeal(ctx context.Context, pool *pgxpool.Pool, status string) (id, buyer, seller string, price int64, err error) {
	const q = `SELECT id, buyer, seller, price FROM deals WHERE status = $1::deal_status ORDER BY random() LIMIT 1`
	err = pool.QueryRow(ctx, q, status).Scan(&id, &buyer, &seller, &price)
	return id, buyer, seller, price, err
}

// expected reports whether the error is part of the failure taxonomy and
// therefore normal under concurrent contention.
func expected(err error) bool {
	return errors.Is(err, deal.ErrInvalidParties) ||
		errors.Is(err, deal.ErrInvalidAmount) ||
		errors.Is(err, deal.ErrInvalidState) ||
		errors.Is(err, deal.ErrAmountMismatch) ||
		errors.Is(err, deal.ErrUnauthorized) ||
		errors.Is(err, deal.ErrNotFound)
}
