package ledger

import (
	"context"
	"errors"
	"testing"
)

// Validation failures must be detected before any statement touches the
// transaction, so a nil tx is safe here.
func TestDeposit_RejectsNonPositiveAmount(t *testing.T) {
	l := New()
	for _, amount := range []int64{0, -1, -10} {
		if err := l.Deposit(context.Background(), nil, "deal-1", amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Deposit(%d): expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestWithdraw_RejectsNonPositiveAmount(t *testing.T) {
	l := New()
	if err := l.Withdraw(context.Background(), nil, "deal-1", 0, "0xseller", OutcomeReleased); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestWithdraw_RejectsNonTerminalOutcome(t *testing.T) {
	l := New()
	for _, outcome := range []string{"", "created", "funded", "settled"} {
		if err := l.Withdraw(context.Background(), nil, "deal-1", 10, "0xseller", outcome); !errors.Is(err, ErrInvalidOutcome) {
			t.Errorf("Withdraw(outcome=%q): expected ErrInvalidOutcome, got %v", outcome, err)
		}
	}
}

func TestWithdraw_RequiresRecipient(t *testing.T) {
	l := New()
	if err := l.Withdraw(context.Background(), nil, "deal-1", 10, "", OutcomeRefunded); err == nil {
		t.Error("expected error for empty recipient")
	}
}
