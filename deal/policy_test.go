package deal

import (
	"errors"
	"testing"
)

func TestPartyPolicy(t *testing.T) {
	d := Deal{Buyer: "0xbuyer", Seller: "0xseller"}
	policy := PartyPolicy{}

	cases := []struct {
		name    string
		caller  Caller
		release bool
		refund  bool
	}{
		{"buyer", Caller{Address: "0xbuyer"}, true, false},
		{"seller", Caller{Address: "0xseller"}, false, true},
		{"stranger", Caller{Address: "0xother"}, false, false},
		{"arbiter", Caller{Address: "0xarb", Arbiter: true}, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.AuthorizeRelease(tc.caller, d)
			if tc.release && err != nil {
				t.Errorf("expected release allowed, got %v", err)
			}
			if !tc.release && !errors.Is(err, ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized for release, got %v", err)
			}

			err = policy.AuthorizeRefund(tc.caller, d)
			if tc.refund && err != nil {
				t.Errorf("expected refund allowed, got %v", err)
			}
			if !tc.refund && !errors.Is(err, ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized for refund, got %v", err)
			}
		})
	}
}
