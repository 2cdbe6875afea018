package recovery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRecordClosed    = errors.New("recovery record is no longer pending")
	ErrMissingBooking  = errors.New("recovery record requires a booking")
	ErrMissingDJ       = errors.New("recovery type requires a suggested DJ")
	ErrUnknownType     = errors.New("unknown recovery type")
	ErrUnexpectedDJRef = errors.New("refund recovery cannot reference a DJ")
)

type Type string

const (
	TypeExtendDJ Type = "EXTEND_DJ"
	TypeNewDJ    Type = "NEW_DJ"
	TypeRefund   Type = "REFUND"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeExtendDJ, TypeNewDJ, TypeRefund:
		return true
	default:
		return false
	}
}

func ParseType(v string) (Type, error) {
	t := Type(v)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, v)
	}
	return t, nil
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

func ParseStatus(v string) (Status, error) {
	switch s := Status(v); s {
	case StatusPending, StatusAccepted, StatusRejected:
		return s, nil
	default:
		return "", fmt.Errorf("unknown recovery status %q", v)
	}
}

// Suggestion is a proposed remedy before it is persisted.
type Suggestion struct {
	Type             Type       `json:"type"`
	SuggestedDJID    *uuid.UUID `json:"suggestedDjId,omitempty"`
	SuggestedDJName  string     `json:"suggestedDjName,omitempty"`
	SiblingBookingID *uuid.UUID `json:"siblingBookingId,omitempty"`
	MatchedGenres    []string   `json:"matchedGenres,omitempty"`
	Message          string     `json:"message"`
}

func (s Suggestion) Validate() error {
	switch s.Type {
	case TypeExtendDJ, TypeNewDJ:
		if s.SuggestedDJID == nil || *s.SuggestedDJID == uuid.Nil {
			return ErrMissingDJ
		}
	case TypeRefund:
		if s.SuggestedDJID != nil {
			return ErrUnexpectedDJRef
		}
	default:
		return ErrUnknownType
	}
	return nil
}

// Record is a persisted suggestion awaiting the client's decision.
type Record struct {
	id               uuid.UUID
	bookingID        uuid.UUID
	recoveryType     Type
	suggestedDJID    *uuid.UUID
	siblingBookingID *uuid.UUID
	message          string
	status           Status
	clientResponse   *string
	createdAt        time.Time
	respondedAt      *time.Time
}

func NewRecord(bookingID uuid.UUID, s Suggestion, now time.Time) (*Record, error) {
	if bookingID == uuid.Nil {
		return nil, ErrMissingBooking
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Record{
		id:               uuid.New(),
		bookingID:        bookingID,
		recoveryType:     s.Type,
		suggestedDJID:    copyID(s.SuggestedDJID),
		siblingBookingID: copyID(s.SiblingBookingID),
		message:          s.Message,
		status:           StatusPending,
		createdAt:        now,
	}, nil
}

func ReconstructRecord(
	id, bookingID uuid.UUID,
	recoveryType Type,
	suggestedDJID, siblingBookingID *uuid.UUID,
	message string,
	status Status,
	clientResponse *string,
	createdAt time.Time,
	respondedAt *time.Time,
) *Record {
	return &Record{
		id:               id,
		bookingID:        bookingID,
		recoveryType:     recoveryType,
		suggestedDJID:    copyID(suggestedDJID),
		siblingBookingID: copyID(siblingBookingID),
		message:          message,
		status:           status,
		clientResponse:   clientResponse,
		createdAt:        createdAt,
		respondedAt:      respondedAt,
	}
}

func (r *Record) Accept(response string, now time.Time) error {
	return r.respond(StatusAccepted, response, now)
}

func (r *Record) Reject(response string, now time.Time) error {
	return r.respond(StatusRejected, response, now)
}

func (r *Record) respond(to Status, response string, now time.Time) error {
	if r.status != StatusPending {
		return ErrRecordClosed
	}
	r.status = to
	if text := strings.TrimSpace(response); text != "" {
		r.clientResponse = &text
	}
	at := now
	r.respondedAt = &at
	return nil
}

// Suggestion rebuilds the client-facing view of a stored record.
func (r *Record) Suggestion() Suggestion {
	return Suggestion{
		Type:             r.recoveryType,
		SuggestedDJID:    copyID(r.suggestedDJID),
		SiblingBookingID: copyID(r.siblingBookingID),
		Message:          r.message,
	}
}

func (r *Record) IsPending() bool { return r.status == StatusPending }

func (r *Record) ID() uuid.UUID                { return r.id }
func (r *Record) BookingID() uuid.UUID         { return r.bookingID }
func (r *Record) Type() Type                   { return r.recoveryType }
func (r *Record) SuggestedDJID() *uuid.UUID    { return copyID(r.suggestedDJID) }
func (r *Record) SiblingBookingID() *uuid.UUID { return copyID(r.siblingBookingID) }
func (r *Record) Message() string              { return r.message }
func (r *Record) Status() Status               { return r.status }
func (r *Record) ClientResponse() *string      { return r.clientResponse }
func (r *Record) CreatedAt() time.Time         { return r.createdAt }
func (r *Record) RespondedAt() *time.Time      { return r.respondedAt }

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
