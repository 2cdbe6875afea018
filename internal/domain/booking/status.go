package booking

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid booking status transition")

type Status string

const (
	StatusPending            Status = "PENDING"
	StatusPendingAdminReview Status = "PENDING_ADMIN_REVIEW"
	StatusAdminReviewing     Status = "ADMIN_REVIEWING"
	StatusDJAssigned         Status = "DJ_ASSIGNED"
	StatusAccepted           Status = "ACCEPTED"
	StatusConfirmed          Status = "CONFIRMED"
	StatusDeclined           Status = "DECLINED"
	StatusCancelled          Status = "CANCELLED"
)

// ActiveStatuses still reserve the DJ's time slot.
var ActiveStatuses = []Status{StatusPending, StatusAccepted, StatusConfirmed}

// AdminQueueStatuses are awaiting human triage.
var AdminQueueStatuses = []Status{StatusPendingAdminReview, StatusAdminReviewing}

// Cause records why a transition is requested. Only some transitions depend on it.
type Cause string

const (
	CauseDJResponse Cause = "dj_response"
	CauseTimeout    Cause = "timeout"
	CauseAdmin      Cause = "admin"
	CauseClient     Cause = "client"
	CauseRefund     Cause = "refund"
)

type transitionRule struct {
	to    Status
	cause Cause // empty means any cause
}

var transitions = map[Status][]transitionRule{
	StatusPending: {
		{to: StatusAccepted},
		{to: StatusDeclined},
		{to: StatusCancelled},
	},
	StatusPendingAdminReview: {
		{to: StatusAdminReviewing},
		{to: StatusCancelled},
	},
	StatusAdminReviewing: {
		{to: StatusDJAssigned},
		{to: StatusPendingAdminReview},
		{to: StatusCancelled},
	},
	StatusDJAssigned: {
		{to: StatusConfirmed},
		{to: StatusCancelled},
	},
	StatusAccepted: {
		{to: StatusConfirmed},
		{to: StatusCancelled},
	},
	// a declined booking is only closed out by executing a refund
	StatusDeclined: {
		{to: StatusCancelled, cause: CauseRefund},
	},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPendingAdminReview, StatusAdminReviewing, StatusDJAssigned,
		StatusAccepted, StatusConfirmed, StatusDeclined, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsActive() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusDeclined || s == StatusCancelled
}

func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown booking status %q", v)
	}
	return s, nil
}

// CanTransition is the single authority on the booking state machine.
func CanTransition(from, to Status, cause Cause) bool {
	for _, rule := range transitions[from] {
		if rule.to != to {
			continue
		}
		if rule.cause == "" || rule.cause == cause {
			return true
		}
	}
	return false
}

func checkTransition(from, to Status, cause Cause) error {
	if !CanTransition(from, to, cause) {
		return fmt.Errorf("%w: %s -> %s (%s)", ErrInvalidTransition, from, to, cause)
	}
	return nil
}

func StatusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
