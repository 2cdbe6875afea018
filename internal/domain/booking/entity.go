package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const ActorSystem = "system"

var (
	ErrMissingClient     = errors.New("booking requires a client")
	ErrNegativeQuote     = errors.New("quote cannot be negative")
	ErrDJAlreadyAssigned = errors.New("booking already has a DJ assigned")
	ErrNoDJAssigned      = errors.New("booking has no DJ assigned")
)

type Cancellation struct {
	Reason string
	Actor  string
	At     time.Time
}

type NewBookingParams struct {
	ClientID    uuid.UUID
	DJID        *uuid.UUID
	EventType   string
	EventDate   time.Time
	StartTime   time.Time
	EndTime     time.Time
	Quote       Money
	Message     string
	Preferences Preferences
	// AdminReview routes the booking to the marketplace triage queue instead of a DJ.
	AdminReview bool
}

type Booking struct {
	id           uuid.UUID
	clientID     uuid.UUID
	djID         *uuid.UUID
	eventType    string
	eventDate    time.Time
	startTime    time.Time
	endTime      time.Time
	status       Status
	quote        Money
	message      string
	preferences  Preferences
	cancellation *Cancellation
	createdAt    time.Time
	updatedAt    time.Time
}

func NewBooking(p NewBookingParams, now time.Time) (*Booking, error) {
	if p.ClientID == uuid.Nil {
		return nil, ErrMissingClient
	}
	if p.Quote.Cents() < 0 {
		return nil, ErrNegativeQuote
	}
	if p.StartTime.IsZero() || p.EndTime.IsZero() {
		return nil, ErrZeroTimestamp
	}

	status := StatusPending
	if p.AdminReview || p.DJID == nil {
		status = StatusPendingAdminReview
	}

	eventDate := p.EventDate
	if eventDate.IsZero() {
		eventDate = p.StartTime
	}

	return &Booking{
		id:          uuid.New(),
		clientID:    p.ClientID,
		djID:        copyID(p.DJID),
		eventType:   strings.TrimSpace(p.EventType),
		eventDate:   DateOf(eventDate),
		startTime:   p.StartTime,
		endTime:     p.EndTime,
		status:      status,
		quote:       p.Quote,
		message:     strings.TrimSpace(p.Message),
		preferences: p.Preferences.Normalize(),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructBooking(
	id, clientID uuid.UUID,
	djID *uuid.UUID,
	eventType string,
	eventDate, startTime, endTime time.Time,
	status Status,
	quote Money,
	message string,
	preferences Preferences,
	cancellation *Cancellation,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:           id,
		clientID:     clientID,
		djID:         copyID(djID),
		eventType:    eventType,
		eventDate:    DateOf(eventDate),
		startTime:    startTime,
		endTime:      endTime,
		status:       status,
		quote:        quote,
		message:      message,
		preferences:  preferences,
		cancellation: cancellation,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// DateOf truncates t to midnight UTC.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Window is the reserved interval with any overnight wrap already applied.
func (b *Booking) Window() TimeSlot {
	return slotOf(b.startTime, b.endTime)
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) IsTerminal() bool {
	return b.status.IsTerminal()
}

func (b *Booking) HasDJ() bool {
	return b.djID != nil && *b.djID != uuid.Nil
}

func (b *Booking) IsBookedWith(djID uuid.UUID) bool {
	return b.HasDJ() && *b.djID == djID
}

func (b *Booking) TransitionTo(to Status, cause Cause, now time.Time) error {
	if err := checkTransition(b.status, to, cause); err != nil {
		return err
	}
	b.status = to
	b.updatedAt = now
	return nil
}

// Decline moves a pending booking to DECLINED and records who declined it and why.
func (b *Booking) Decline(reason, actor string, cause Cause, now time.Time) error {
	if err := b.TransitionTo(StatusDeclined, cause, now); err != nil {
		return err
	}
	b.cancellation = &Cancellation{Reason: reason, Actor: actor, At: now}
	return nil
}

func (b *Booking) Cancel(reason, actor string, cause Cause, now time.Time) error {
	if err := b.TransitionTo(StatusCancelled, cause, now); err != nil {
		return err
	}
	b.cancellation = &Cancellation{Reason: reason, Actor: actor, At: now}
	return nil
}

// AssignDJ sets the DJ while the booking is being reviewed by an admin.
func (b *Booking) AssignDJ(djID uuid.UUID, now time.Time) error {
	if err := checkTransition(b.status, StatusDJAssigned, CauseAdmin); err != nil {
		return err
	}
	if b.HasDJ() && *b.djID != djID {
		return ErrDJAlreadyAssigned
	}
	id := djID
	b.djID = &id
	b.status = StatusDJAssigned
	b.updatedAt = now
	return nil
}

// ExtendTo moves the end of the window later. It never shrinks the booking.
func (b *Booking) ExtendTo(end time.Time, now time.Time) bool {
	target := NormalizeEnd(b.startTime, end)
	if !target.After(b.Window().End()) {
		return false
	}
	b.endTime = target
	b.updatedAt = now
	return true
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) ClientID() uuid.UUID         { return b.clientID }
func (b *Booking) DJID() *uuid.UUID            { return copyID(b.djID) }
func (b *Booking) EventType() string           { return b.eventType }
func (b *Booking) EventDate() time.Time        { return b.eventDate }
func (b *Booking) StartTime() time.Time        { return b.startTime }
func (b *Booking) EndTime() time.Time          { return b.endTime }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) Quote() Money                { return b.quote }
func (b *Booking) Message() string             { return b.message }
func (b *Booking) Preferences() Preferences    { return b.preferences }
func (b *Booking) Cancellation() *Cancellation { return b.cancellation }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }

func (b *Booking) IsOvernight() bool {
	return b.endTime.Before(b.startTime)
}

func (b *Booking) IsWeekendEvent() bool {
	return isWeekend(b.eventDate)
}

// SameEvent reports whether other is a sibling: same client, same event date.
func (b *Booking) SameEvent(other *Booking) bool {
	return b.clientID == other.clientID && b.eventDate.Equal(other.eventDate)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
