//go:build unit || e2e

package builder

import (
	"time"

	"dj-booking-engine/internal/domain/booking"
	reqdto "dj-booking-engine/internal/handler/dto/request"

	"github.com/google/uuid"
)

// BaseTime is a Monday noon UTC so relative dates in tests are easy to reason about.
var BaseTime = time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	ID            uuid.UUID
	ClientID      uuid.UUID
	DJID          *uuid.UUID
	EventType     string
	EventDate     time.Time
	StartTime     time.Time
	EndTime       time.Time
	QuoteCents    int64
	Message       string
	Genres        []string
	MusicStyle    *string
	PreferredDJID *uuid.UUID
	AdminReview   bool
	Status        booking.Status
	Cancellation  *booking.Cancellation
	CreatedAt     time.Time
}

func NewBookingBuilder() *BookingBuilder {
	djID := uuid.New()
	start := time.Date(2026, time.March, 12, 20, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:         uuid.New(),
		ClientID:   uuid.New(),
		DJID:       &djID,
		EventType:  "wedding",
		StartTime:  start,
		EndTime:    start.Add(4 * time.Hour),
		QuoteCents: 150_000,
		Message:    "Looking forward to it",
		Genres:     []string{"house", "disco"},
		Status:     booking.StatusPending,
		CreatedAt:  BaseTime,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithDJ(id uuid.UUID) *BookingBuilder {
	b.DJID = &id
	return b
}

func (b *BookingBuilder) WithoutDJ() *BookingBuilder {
	b.DJID = nil
	return b
}

func (b *BookingBuilder) WithClient(id uuid.UUID) *BookingBuilder {
	b.ClientID = id
	return b
}

// WithWindow sets start and end. The event date follows the start unless set explicitly.
func (b *BookingBuilder) WithWindow(start, end time.Time) *BookingBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *BookingBuilder) WithEventDate(d time.Time) *BookingBuilder {
	b.EventDate = d
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithCreatedAt(t time.Time) *BookingBuilder {
	b.CreatedAt = t
	return b
}

func (b *BookingBuilder) WithQuote(cents int64) *BookingBuilder {
	b.QuoteCents = cents
	return b
}

func (b *BookingBuilder) WithGenres(genres ...string) *BookingBuilder {
	b.Genres = genres
	return b
}

func (b *BookingBuilder) WithMusicStyle(style string) *BookingBuilder {
	b.MusicStyle = &style
	return b
}

func (b *BookingBuilder) WithPreferredDJ(id uuid.UUID) *BookingBuilder {
	b.PreferredDJID = &id
	return b
}

func (b *BookingBuilder) AsAdminReview() *BookingBuilder {
	b.AdminReview = true
	b.Status = booking.StatusPendingAdminReview
	return b
}

func (b *BookingBuilder) Preferences() booking.Preferences {
	return booking.Preferences{
		PreferredGenres: b.Genres,
		MusicStyle:      b.MusicStyle,
		PreferredDJID:   b.PreferredDJID,
	}.Normalize()
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	return booking.NewBooking(b.params(), b.CreatedAt)
}

// BuildReconstructed skips validation and honours Status, for seeding stores in any state.
func (b *BookingBuilder) BuildReconstructed() *booking.Booking {
	eventDate := b.EventDate
	if eventDate.IsZero() {
		eventDate = b.StartTime
	}
	return booking.ReconstructBooking(
		b.ID, b.ClientID, b.DJID,
		b.EventType,
		eventDate, b.StartTime, b.EndTime,
		b.Status,
		booking.NewMoney(b.QuoteCents),
		b.Message,
		b.Preferences(),
		b.Cancellation,
		b.CreatedAt, b.CreatedAt,
	)
}

func (b *BookingBuilder) BuildParams() booking.NewBookingParams {
	return b.params()
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	req := reqdto.CreateBookingRequest{
		ClientID:    b.ClientID,
		DJID:        b.DJID,
		EventType:   b.EventType,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		QuoteCents:  b.QuoteCents,
		Message:     b.Message,
		AdminReview: b.AdminReview,
		Preferences: &reqdto.PreferencesRequest{
			PreferredGenres: b.Genres,
			MusicStyle:      b.MusicStyle,
			PreferredDJID:   b.PreferredDJID,
		},
	}
	if !b.EventDate.IsZero() {
		d := b.EventDate
		req.EventDate = &d
	}
	return req
}

func (b *BookingBuilder) params() booking.NewBookingParams {
	return booking.NewBookingParams{
		ClientID:    b.ClientID,
		DJID:        b.DJID,
		EventType:   b.EventType,
		EventDate:   b.EventDate,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Quote:       booking.NewMoney(b.QuoteCents),
		Message:     b.Message,
		Preferences: b.Preferences(),
		AdminReview: b.AdminReview,
	}
}
