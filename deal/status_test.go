package deal

import "testing"

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		legal    bool
	}{
		{StatusCreated, StatusFunded, true},
		{StatusFunded, StatusReleased, true},
		{StatusFunded, StatusRefunded, true},
		{StatusCreated, StatusReleased, false},
		{StatusCreated, StatusRefunded, false},
		{StatusFunded, StatusCreated, false},
		{StatusFunded, StatusFunded, false},
		{StatusReleased, StatusRefunded, false},
		{StatusReleased, StatusFunded, false},
		{StatusRefunded, StatusReleased, false},
		{StatusRefunded, StatusCreated, false},
		{Status("bogus"), StatusFunded, false},
		{StatusCreated, Status("bogus"), false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.legal {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.legal)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusCreated, StatusFunded} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []Status{StatusReleased, StatusRefunded} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusCreated, StatusFunded, StatusReleased, StatusRefunded} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("pending").Valid() {
		t.Error("unknown status should not be valid")
	}
}
