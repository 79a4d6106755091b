package order

import "strings"

type Status string

const (
	StatusNew        Status = "NEW"
	StatusConfirmed  Status = "CONFIRMED"
	StatusPreparing  Status = "PREPARING"
	StatusDelivering Status = "DELIVERING"
	StatusDelivered  Status = "DELIVERED"
	StatusCanceled   Status = "CANCELED"
)

// forward-only; cancellation is only reachable from NEW
var transitions = map[Status][]Status{
	StatusNew:        {StatusConfirmed, StatusCanceled},
	StatusConfirmed:  {StatusPreparing},
	StatusPreparing:  {StatusDelivering},
	StatusDelivering: {StatusDelivered},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusConfirmed, StatusPreparing, StatusDelivering, StatusDelivered, StatusCanceled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NewStatus parses a status name case-insensitively.
func NewStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
