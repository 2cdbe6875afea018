package shared

import (
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/domain/recovery"

	"github.com/google/uuid"
)

func SnapshotOf(b *booking.Booking) BookingSnapshot {
	return BookingSnapshot{
		ID:         b.ID(),
		ClientID:   b.ClientID(),
		DJID:       b.DJID(),
		EventType:  b.EventType(),
		EventDate:  b.EventDate().Format("2006-01-02"),
		StartTime:  b.StartTime(),
		EndTime:    b.EndTime(),
		Status:     b.Status().String(),
		QuoteCents: b.Quote().Cents(),
	}
}

func SuggestionSnapshotOf(r *recovery.Record, s recovery.Suggestion) SuggestionSnapshot {
	return SuggestionSnapshot{
		RecoveryID:      r.ID(),
		Type:            string(r.Type()),
		SuggestedDJID:   r.SuggestedDJID(),
		SuggestedDJName: s.SuggestedDJName,
		MatchedGenres:   s.MatchedGenres,
		Message:         r.Message(),
	}
}

func clientRecipient(b *booking.Booking) *uuid.UUID {
	id := b.ClientID()
	return &id
}

// ClientJob addresses a notification to the booking's client.
func ClientJob(b *booking.Booking, topic string, payload any, now time.Time) (NotificationJob, error) {
	return NewNotificationJob(NotificationKindClient, topic, clientRecipient(b), payload, now)
}

// DJJob addresses a notification to the booking's DJ. The booking must have one.
func DJJob(b *booking.Booking, topic string, payload any, now time.Time) (NotificationJob, error) {
	return NewNotificationJob(NotificationKindDJ, topic, b.DJID(), payload, now)
}
