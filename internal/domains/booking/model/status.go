package model

import "fmt"

// Status is the lifecycle state of a booking. Bookings are never deleted;
// cancellation is a terminal status, which keeps the audit trail intact.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked-in"
	StatusCheckedOut Status = "checked-out"
	StatusCancelled  Status = "cancelled"
)

// Action is a requested status change. The admin dashboard sends actions,
// not target states, so illegal jumps cannot be expressed at all.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCheckIn  Action = "check-in"
	ActionCheckOut Action = "check-out"
	ActionCancel   Action = "cancel"
)

// transitions is the full state machine. Anything absent is rejected;
// checked-out and cancelled have no outgoing edges.
var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionConfirm: StatusConfirmed,
		ActionCancel:  StatusCancelled,
	},
	StatusConfirmed: {
		ActionCheckIn: StatusCheckedIn,
		ActionCancel:  StatusCancelled,
	},
	StatusCheckedIn: {
		ActionCheckOut: StatusCheckedOut,
		ActionCancel:   StatusCancelled,
	},
	StatusCheckedOut: {},
	StatusCancelled:  {},
}

// IsValid returns true if the status is a recognized booking status.
func (s Status) IsValid() bool {
	_, exists := transitions[s]

	return exists
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s Status) IsTerminal() bool {
	allowed, exists := transitions[s]
	if !exists {
		return true
	}

	return len(allowed) == 0
}

// Apply returns the status reached by taking the given action. The receiver
// is never mutated; an illegal action returns an error and the caller keeps
// the old status.
func (s Status) Apply(action Action) (Status, error) {
	allowed, exists := transitions[s]
	if !exists {
		return s, fmt.Errorf("unknown booking status: %s", s)
	}

	next, ok := allowed[action]
	if !ok {
		return s, fmt.Errorf("cannot %s a booking that is %s", action, s)
	}

	return next, nil
}

func (s Status) String() string {
	return string(s)
}

func (a Action) String() string {
	return string(a)
}

// ParseAction converts a string to an Action, returning an error if invalid.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionConfirm, ActionCheckIn, ActionCheckOut, ActionCancel:
		return Action(s), nil
	default:
		return "", fmt.Errorf("invalid booking action: %s", s)
	}
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}

	return status, nil
}
