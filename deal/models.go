package deal

import "time"

// Deal mirrors the deals table. Identity and parties are immutable after
// creation; only status and balance move, and always together.
type Deal struct {
	ID        string
	Seq       int64
	Buyer     string
	Seller    string
	Price     int64
	Balance   int64
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Caller identifies who is invoking a mutating operation.
type Caller struct {
	Address string
	Arbiter bool
}

// FundParams carries the custody-in request for a deal.
type FundParams struct {
	DealID string
	Caller Caller
	Amount int64
}

// SettleParams carries a release or refund request.
type SettleParams struct {
	DealID string
	Caller Caller
}

// Timeline event types appended on each transition.
const (
	EventFunded   = "DEAL_FUNDED"
	EventReleased = "DEAL_RELEASED"
	EventRefunded = "DEAL_REFUNDED"
)
