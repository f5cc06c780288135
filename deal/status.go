package deal

// Status is the lifecycle position of a deal. Transitions form a strict
// chain: created -> funded -> released or refunded. The terminal states are
// permanent historical records.
type Status string

const (
	StatusCreated  Status = "created"
	StatusFunded   Status = "funded"
	StatusReleased Status = "released"
	StatusRefunded Status = "refunded"
)

var transitions = map[Status][]Status{
	StatusCreated:  {StatusFunded},
	StatusFunded:   {StatusReleased, StatusRefunded},
	StatusReleased: {},
	StatusRefunded: {},
}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	return s == StatusReleased || s == StatusRefunded
}

// CanTransition answers legality for every (current, next) pair, including
// unknown statuses, which are never legal on either side.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
