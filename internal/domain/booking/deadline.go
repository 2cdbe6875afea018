package booking

import (
	"math"
	"time"
)

// DeadlinePolicy decides how long a DJ has to answer a request. The window shrinks
// once the event is close, and closeness is judged at evaluation time.
type DeadlinePolicy struct {
	UrgentWindowDays int
	UrgentResponse   time.Duration
	StandardResponse time.Duration
}

func DefaultDeadlinePolicy() DeadlinePolicy {
	return DeadlinePolicy{
		UrgentWindowDays: 7,
		UrgentResponse:   24 * time.Hour,
		StandardResponse: 48 * time.Hour,
	}
}

// DaysUntilEvent counts whole days from now to the event date, rounding down.
// Events in the past yield negative values.
func DaysUntilEvent(eventDate, now time.Time) int {
	return int(math.Floor(eventDate.Sub(now).Hours() / 24))
}

func (p DeadlinePolicy) IsUrgent(eventDate, now time.Time) bool {
	return DaysUntilEvent(eventDate, now) <= p.UrgentWindowDays
}

func (p DeadlinePolicy) ResponseWindow(eventDate, now time.Time) time.Duration {
	if p.IsUrgent(eventDate, now) {
		return p.UrgentResponse
	}
	return p.StandardResponse
}

func (p DeadlinePolicy) ResponseDeadline(createdAt, eventDate, now time.Time) time.Time {
	return createdAt.Add(p.ResponseWindow(eventDate, now))
}

// IsExpired holds strictly after the deadline.
func (p DeadlinePolicy) IsExpired(createdAt, eventDate, now time.Time) bool {
	return now.After(p.ResponseDeadline(createdAt, eventDate, now))
}

func (b *Booking) ResponseDeadline(p DeadlinePolicy, now time.Time) time.Time {
	return p.ResponseDeadline(b.createdAt, b.eventDate, now)
}

// IsExpired reports whether a pending request has outlived its response deadline.
func (b *Booking) IsExpired(p DeadlinePolicy, now time.Time) bool {
	return b.status == StatusPending && p.IsExpired(b.createdAt, b.eventDate, now)
}
