package response

import (
	"encoding/json"
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/domain/recovery"
	"dj-booking-engine/internal/usecase/commands"
	"dj-booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type CancellationResponse struct {
	Reason string    `json:"reason"`
	Actor  string    `json:"actor"`
	At     time.Time `json:"at"`
}

type BookingResponse struct {
	ID           uuid.UUID             `json:"id"`
	ClientID     uuid.UUID             `json:"clientId"`
	DJID         *uuid.UUID            `json:"djId,omitempty"`
	EventType    string                `json:"eventType"`
	EventDate    string                `json:"eventDate"`
	StartTime    time.Time             `json:"startTime"`
	EndTime      time.Time             `json:"endTime"`
	Overnight    bool                  `json:"overnight"`
	Status       string                `json:"status"`
	QuoteCents   int64                 `json:"quoteCents"`
	Message      string                `json:"message,omitempty"`
	Preferences  json.RawMessage       `json:"preferences,omitempty"`
	Cancellation *CancellationResponse `json:"cancellation,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

type RecoveryResponse struct {
	ID               uuid.UUID  `json:"id"`
	BookingID        uuid.UUID  `json:"bookingId"`
	Type             string     `json:"type"`
	SuggestedDJID    *uuid.UUID `json:"suggestedDjId,omitempty"`
	SuggestedDJName  string     `json:"suggestedDjName,omitempty"`
	SiblingBookingID *uuid.UUID `json:"siblingBookingId,omitempty"`
	MatchedGenres    []string   `json:"matchedGenres,omitempty"`
	Message          string     `json:"message"`
	Status           string     `json:"status"`
	ClientResponse   *string    `json:"clientResponse,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	RespondedAt      *time.Time `json:"respondedAt,omitempty"`
}

type BookingDetailResponse struct {
	Booking    *BookingResponse    `json:"booking"`
	Recoveries []*RecoveryResponse `json:"recoveries"`
}

type RejectBookingResponse struct {
	Booking  *BookingResponse    `json:"booking"`
	Recovery []*RecoveryResponse `json:"recovery"`
}

type RecoveryActionResponse struct {
	Applied bool `json:"applied"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:         b.ID(),
		ClientID:   b.ClientID(),
		DJID:       b.DJID(),
		EventType:  b.EventType(),
		EventDate:  b.EventDate().Format(time.DateOnly),
		StartTime:  b.StartTime(),
		EndTime:    b.EndTime(),
		Overnight:  b.IsOvernight(),
		Status:     b.Status().String(),
		QuoteCents: b.Quote().Cents(),
		Message:    b.Message(),
		CreatedAt:  b.CreatedAt(),
		UpdatedAt:  b.UpdatedAt(),
	}
	if raw, err := b.Preferences().Marshal(); err == nil && string(raw) != "{}" {
		resp.Preferences = raw
	}
	if c := b.Cancellation(); c != nil {
		resp.Cancellation = &CancellationResponse{Reason: c.Reason, Actor: c.Actor, At: c.At}
	}
	return resp
}

func FromRecord(r *recovery.Record) *RecoveryResponse {
	return &RecoveryResponse{
		ID:               r.ID(),
		BookingID:        r.BookingID(),
		Type:             string(r.Type()),
		SuggestedDJID:    r.SuggestedDJID(),
		SiblingBookingID: r.SiblingBookingID(),
		Message:          r.Message(),
		Status:           string(r.Status()),
		ClientResponse:   r.ClientResponse(),
		CreatedAt:        r.CreatedAt(),
		RespondedAt:      r.RespondedAt(),
	}
}

func FromRecords(records []*recovery.Record) []*RecoveryResponse {
	out := make([]*RecoveryResponse, len(records))
	for i, r := range records {
		out[i] = FromRecord(r)
	}
	return out
}

func FromBookingView(v *queries.BookingView) *BookingDetailResponse {
	return &BookingDetailResponse{
		Booking:    FromBooking(v.Booking),
		Recoveries: FromRecords(v.Recoveries),
	}
}

func FromRejectResult(r *commands.RejectBookingResult) *RejectBookingResponse {
	options := make([]*RecoveryResponse, len(r.Recovery))
	for i, opt := range r.Recovery {
		resp := FromRecord(opt.Record)
		resp.SuggestedDJName = opt.Suggestion.SuggestedDJName
		resp.MatchedGenres = opt.Suggestion.MatchedGenres
		options[i] = resp
	}
	return &RejectBookingResponse{
		Booking:  FromBooking(r.Booking),
		Recovery: options,
	}
}
