package booking

import (
	"errors"
	"fmt"
	"time"
)

const overnightWrap = 24 * time.Hour

var (
	ErrZeroTimestamp   = errors.New("timestamp must not be zero")
	ErrEmptyTimeWindow = errors.New("end time must be after start time")
)

// TimeSlot is a half-open interval [start, end). Overnight windows are stored with the end
// already shifted past midnight, so end is always after start for a valid slot.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if start.IsZero() || end.IsZero() {
		return TimeSlot{}, ErrZeroTimestamp
	}
	slot := slotOf(start, end)
	if !slot.end.After(slot.start) {
		return TimeSlot{}, ErrEmptyTimeWindow
	}
	return slot, nil
}

// NormalizeEnd shifts an end that falls before start by one day.
func NormalizeEnd(start, end time.Time) time.Time {
	if end.Before(start) {
		return end.Add(overnightWrap)
	}
	return end
}

func slotOf(start, end time.Time) TimeSlot {
	return TimeSlot{start: start, end: NormalizeEnd(start, end)}
}

// Overlaps reports whether a and b intersect. Touching endpoints do not overlap.
func Overlaps(a, b TimeSlot) bool {
	return a.start.Before(b.end) && b.start.Before(a.end)
}

func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return Overlaps(ts, other)
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

func (ts TimeSlot) IsZero() bool {
	return ts.start.IsZero() && ts.end.IsZero()
}

func (ts TimeSlot) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

func (ts TimeSlot) String() string {
	return ts.start.Format("15:04") + "–" + ts.end.Format("15:04")
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
