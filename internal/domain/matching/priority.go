package matching

import (
	"sort"
	"time"

	"dj-booking-engine/internal/domain/booking"
)

type Bucket string

const (
	BucketHigh   Bucket = "high"
	BucketMedium Bucket = "medium"
	BucketLow    Bucket = "low"
)

const (
	highPriorityThreshold   = 60
	mediumPriorityThreshold = 30

	preferredDJBonus = 15
	quoteStepCents   = 10_000
	maxQuoteBonus    = 20
	ageStepHours     = 6
	maxAgeBonus      = 15
)

// urgencyTiers must stay ordered by maxDays ascending with non-increasing points.
var urgencyTiers = []struct {
	maxDays int
	points  int
}{
	{maxDays: 1, points: 50},
	{maxDays: 3, points: 40},
	{maxDays: 7, points: 30},
	{maxDays: 14, points: 20},
	{maxDays: 30, points: 10},
}

type PriorityBreakdown struct {
	Urgency     int `json:"urgency"`
	PreferredDJ int `json:"preferredDj"`
	Value       int `json:"value"`
	Age         int `json:"age"`
}

func (b PriorityBreakdown) Total() int {
	return b.Urgency + b.PreferredDJ + b.Value + b.Age
}

type Priority struct {
	Score          int
	Bucket         Bucket
	DaysUntilEvent int
	Breakdown      PriorityBreakdown
}

// ComputeAdminPriority scores a booking for manual triage. Higher is more urgent.
// The result depends only on the booking and now.
func ComputeAdminPriority(b *booking.Booking, now time.Time) Priority {
	days := booking.DaysUntilEvent(b.EventDate(), now)

	breakdown := PriorityBreakdown{
		Urgency: urgencyPoints(days),
		Value:   quotePoints(b.Quote().Cents()),
		Age:     agePoints(now.Sub(b.CreatedAt())),
	}
	if b.Preferences().HasPreferredDJ() {
		breakdown.PreferredDJ = preferredDJBonus
	}

	score := breakdown.Total()
	return Priority{
		Score:          score,
		Bucket:         BucketFor(score),
		DaysUntilEvent: days,
		Breakdown:      breakdown,
	}
}

func BucketFor(score int) Bucket {
	switch {
	case score >= highPriorityThreshold:
		return BucketHigh
	case score >= mediumPriorityThreshold:
		return BucketMedium
	default:
		return BucketLow
	}
}

func urgencyPoints(days int) int {
	for _, tier := range urgencyTiers {
		if days <= tier.maxDays {
			return tier.points
		}
	}
	return 0
}

func quotePoints(cents int64) int {
	if cents <= 0 {
		return 0
	}
	return int(min(cents/quoteStepCents, maxQuoteBonus))
}

func agePoints(age time.Duration) int {
	if age <= 0 {
		return 0
	}
	return min(int(age.Hours())/ageStepHours, maxAgeBonus)
}

type QueueItem struct {
	Booking  *booking.Booking
	Priority Priority
}

// RankAdminQueue orders bookings by priority with stable tie-breaks so repeated
// renders of the same state never reorder.
func RankAdminQueue(bookings []*booking.Booking, now time.Time) []QueueItem {
	items := make([]QueueItem, len(bookings))
	for i, b := range bookings {
		items[i] = QueueItem{Booking: b, Priority: ComputeAdminPriority(b, now)}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Priority.Score != b.Priority.Score {
			return a.Priority.Score > b.Priority.Score
		}
		if !a.Booking.EventDate().Equal(b.Booking.EventDate()) {
			return a.Booking.EventDate().Before(b.Booking.EventDate())
		}
		if !a.Booking.CreatedAt().Equal(b.Booking.CreatedAt()) {
			return a.Booking.CreatedAt().Before(b.Booking.CreatedAt())
		}
		return a.Booking.ID().String() < b.Booking.ID().String()
	})
	return items
}
