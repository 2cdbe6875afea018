package shared

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationKindClient NotificationKind = "client"
	NotificationKindDJ     NotificationKind = "dj"
)

type NotificationStatus string

const (
	NotificationQueued NotificationStatus = "queued"
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

const (
	TopicBookingCreated    = "booking.created"
	TopicBookingDeclined   = "booking.declined"
	TopicBookingExpired    = "booking.expired"
	TopicRecoverySuggested = "recovery.suggested"
	TopicRecoveryDeclined  = "recovery.declined"
	TopicRefundRequested   = "refund.requested"
	TopicBookingAssigned   = "booking.assigned"
	TopicBookingCancelled  = "booking.cancelled"
	TopicBookingExtended   = "booking.extended"
)

// NotificationJob is an outbox row. Delivery happens later through the relay.
type NotificationJob struct {
	ID          uuid.UUID
	Kind        NotificationKind
	Topic       string
	RecipientID *uuid.UUID
	Payload     json.RawMessage
	Status      NotificationStatus
	RunAt       time.Time
	Attempts    int
	LastError   *string
	CreatedAt   time.Time
}

func NewNotificationJob(kind NotificationKind, topic string, recipient *uuid.UUID, payload any, now time.Time) (NotificationJob, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return NotificationJob{}, err
	}
	return NotificationJob{
		ID:          uuid.New(),
		Kind:        kind,
		Topic:       topic,
		RecipientID: recipient,
		Payload:     raw,
		Status:      NotificationQueued,
		RunAt:       now,
		CreatedAt:   now,
	}, nil
}

// BookingSnapshot is the booking context carried in notification payloads.
type BookingSnapshot struct {
	ID         uuid.UUID  `json:"id"`
	ClientID   uuid.UUID  `json:"clientId"`
	DJID       *uuid.UUID `json:"djId,omitempty"`
	EventType  string     `json:"eventType"`
	EventDate  string     `json:"eventDate"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    time.Time  `json:"endTime"`
	Status     string     `json:"status"`
	QuoteCents int64      `json:"quoteCents"`
}

type BookingDeclinedPayload struct {
	Booking BookingSnapshot `json:"booking"`
	Reason  string          `json:"reason"`
	Actor   string          `json:"actor"`
	Expired bool            `json:"expired"`
}

type RecoverySuggestedPayload struct {
	Booking     BookingSnapshot      `json:"booking"`
	Reason      string               `json:"reason"`
	Suggestions []SuggestionSnapshot `json:"suggestions"`
}

type SuggestionSnapshot struct {
	RecoveryID      uuid.UUID  `json:"recoveryId"`
	Type            string     `json:"type"`
	SuggestedDJID   *uuid.UUID `json:"suggestedDjId,omitempty"`
	SuggestedDJName string     `json:"suggestedDjName,omitempty"`
	MatchedGenres   []string   `json:"matchedGenres,omitempty"`
	Message         string     `json:"message"`
}

type RefundRequestedPayload struct {
	Booking     BookingSnapshot `json:"booking"`
	AmountCents int64           `json:"amountCents"`
	RecoveryID  *uuid.UUID      `json:"recoveryId,omitempty"`
}

type BookingEventPayload struct {
	Booking    BookingSnapshot `json:"booking"`
	RecoveryID *uuid.UUID      `json:"recoveryId,omitempty"`
	Message    string          `json:"message,omitempty"`
}

// Publisher delivers one outbox job to the message broker.
type Publisher interface {
	Publish(ctx context.Context, job NotificationJob) error
}

// Lease is held by at most one holder at a time until Release or TTL expiry.
type Lease interface {
	Release(ctx context.Context) error
}

type Locker interface {
	// TryAcquire returns ok=false without error when another holder owns the key.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (lease Lease, ok bool, err error)
}
