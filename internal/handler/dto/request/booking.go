package request

import (
	"strings"
	"time"

	"dj-booking-engine/internal/domain/booking"

	"github.com/google/uuid"
)

type PreferencesRequest struct {
	PreferredGenres []string   `json:"preferredGenres,omitempty"`
	MusicStyle      *string    `json:"musicStyle,omitempty"`
	PreferredDJID   *uuid.UUID `json:"preferredDjId,omitempty"`
}

type CreateBookingRequest struct {
	ClientID    uuid.UUID           `json:"clientId" binding:"required"`
	DJID        *uuid.UUID          `json:"djId,omitempty"`
	EventType   string              `json:"eventType" binding:"max=100"`
	EventDate   *time.Time          `json:"eventDate,omitempty"`
	StartTime   time.Time           `json:"startTime" binding:"required"`
	EndTime     time.Time           `json:"endTime" binding:"required"`
	QuoteCents  int64               `json:"quoteCents" binding:"min=0"`
	Message     string              `json:"message"`
	AdminReview bool                `json:"adminReview"`
	Preferences *PreferencesRequest `json:"preferences,omitempty"`
}

func (r CreateBookingRequest) ToParams() booking.NewBookingParams {
	p := booking.NewBookingParams{
		ClientID:    r.ClientID,
		DJID:        r.DJID,
		EventType:   strings.TrimSpace(r.EventType),
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Quote:       booking.NewMoney(r.QuoteCents),
		Message:     r.Message,
		AdminReview: r.AdminReview,
	}
	if r.EventDate != nil {
		p.EventDate = *r.EventDate
	}
	if r.Preferences != nil {
		p.Preferences = booking.Preferences{
			PreferredGenres: r.Preferences.PreferredGenres,
			MusicStyle:      r.Preferences.MusicStyle,
			PreferredDJID:   r.Preferences.PreferredDJID,
		}
	}
	return p
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
	Actor  string `json:"actor" binding:"omitempty,oneof=client dj admin"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type AssignDJRequest struct {
	DJID uuid.UUID `json:"djId" binding:"required"`
}

type RecoveryResponseRequest struct {
	Response string `json:"response" binding:"max=500"`
}
