package booking

import (
	"fmt"
	"time"

	"dj-booking-engine/internal/pkg/clock"
)

// WindowPolicy bounds how far ahead and for how long a booking may be made.
type WindowPolicy struct {
	Horizon     time.Duration
	MinDuration time.Duration
	MaxDuration time.Duration
}

func DefaultWindowPolicy() WindowPolicy {
	return WindowPolicy{
		Horizon:     2 * 365 * 24 * time.Hour,
		MinDuration: time.Hour,
		MaxDuration: 12 * time.Hour,
	}
}

// WindowCheck is the outcome of validating a requested window. Violations are values, not errors.
type WindowCheck struct {
	Valid    bool
	Reason   string
	Duration time.Duration
}

type Validator struct {
	clock  clock.Clock
	policy WindowPolicy
}

func NewValidator(clk clock.Clock, policy WindowPolicy) *Validator {
	return &Validator{clock: clk, policy: policy}
}

// ValidateBookingWindow checks temporal sanity. Only zero timestamps return an error.
func (v *Validator) ValidateBookingWindow(start, end time.Time) (WindowCheck, error) {
	if start.IsZero() || end.IsZero() {
		return WindowCheck{}, ErrZeroTimestamp
	}

	now := v.clock.Now()
	if !start.After(now) {
		return invalid("start time must be in the future"), nil
	}
	if start.After(now.Add(v.policy.Horizon)) {
		return invalid(fmt.Sprintf("start time is more than %s ahead", humanDuration(v.policy.Horizon))), nil
	}

	duration := end.Sub(start)
	if duration < 0 {
		duration += overnightWrap
	}

	if duration < v.policy.MinDuration {
		check := invalid(fmt.Sprintf("booking must last at least %s", humanDuration(v.policy.MinDuration)))
		check.Duration = duration
		return check, nil
	}
	if duration > v.policy.MaxDuration {
		check := invalid(fmt.Sprintf("booking cannot last more than %s", humanDuration(v.policy.MaxDuration)))
		check.Duration = duration
		return check, nil
	}

	return WindowCheck{Valid: true, Duration: duration}, nil
}

func invalid(reason string) WindowCheck {
	return WindowCheck{Valid: false, Reason: reason}
}

func humanDuration(d time.Duration) string {
	switch {
	case d >= 24*time.Hour && d%(24*time.Hour) == 0:
		days := int(d / (24 * time.Hour))
		if days%365 == 0 {
			if days == 365 {
				return "1 year"
			}
			return fmt.Sprintf("%d years", days/365)
		}
		return fmt.Sprintf("%d days", days)
	case d%time.Hour == 0:
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	default:
		return d.String()
	}
}
