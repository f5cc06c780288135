package deal

// Policy decides which callers may settle a funded deal. The authorization
// split is deliberately a swappable parameter of the service: deployments
// with different custody rules (mutual consent, third-party arbiter) supply
// their own implementation.
type Policy interface {
	AuthorizeRelease(caller Caller, d Deal) error
	AuthorizeRefund(caller Caller, d Deal) error
}

// PartyPolicy is the default custody policy: the buyer gives up the funds to
// the seller (release), the seller gives them back to the buyer (refund),
// and an arbiter may do either.
type PartyPolicy struct{}

func (PartyPolicy) AuthorizeRelease(caller Caller, d Deal) error {
	if caller.Arbiter || caller.Address == d.Buyer {
		return nil
	}
	return ErrUnauthorized
}

func (PartyPolicy) AuthorizeRefund(caller Caller, d Deal) error {
	if caller.Arbiter || caller.Address == d.Seller {
		return nil
	}
	return ErrUnauthorized
}
