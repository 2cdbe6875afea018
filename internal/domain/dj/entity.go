package dj

import (
	"errors"
	"strings"
	"time"

	"dj-booking-engine/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrEmptyStageName   = errors.New("stage name cannot be empty")
	ErrStageNameTooLong = errors.New("stage name is too long (max 255 characters)")
	ErrInvalidRating    = errors.New("rating must be between 0 and 5")
	ErrNegativeRate     = errors.New("hourly rate cannot be negative")
)

const (
	MaxStageNameLength = 255
	MaxRating          = 5.0
)

// Profile is a bookable DJ. Availability is never stored; it is derived from bookings.
type Profile struct {
	id            uuid.UUID
	userID        uuid.UUID
	stageName     string
	genres        []string
	hourlyRate    booking.Money
	active        bool
	rating        float64
	totalBookings int
	lastBookedAt  *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

type NewProfileParams struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	StageName     string
	Genres        []string
	HourlyRate    booking.Money
	Active        bool
	Rating        float64
	TotalBookings int
}

func NewProfile(p NewProfileParams, now time.Time) (*Profile, error) {
	name := strings.TrimSpace(p.StageName)
	if name == "" {
		return nil, ErrEmptyStageName
	}
	if len(name) > MaxStageNameLength {
		return nil, ErrStageNameTooLong
	}
	if p.Rating < 0 || p.Rating > MaxRating {
		return nil, ErrInvalidRating
	}
	if p.HourlyRate.Cents() < 0 {
		return nil, ErrNegativeRate
	}

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	total := p.TotalBookings
	if total < 0 {
		total = 0
	}

	return &Profile{
		id:            id,
		userID:        p.UserID,
		stageName:     name,
		genres:        booking.NormalizeGenres(p.Genres),
		hourlyRate:    p.HourlyRate,
		active:        p.Active,
		rating:        p.Rating,
		totalBookings: total,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructProfile(
	id, userID uuid.UUID,
	stageName string,
	genres []string,
	hourlyRate booking.Money,
	active bool,
	rating float64,
	totalBookings int,
	lastBookedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Profile {
	return &Profile{
		id:            id,
		userID:        userID,
		stageName:     stageName,
		genres:        booking.NormalizeGenres(genres),
		hourlyRate:    hourlyRate,
		active:        active,
		rating:        rating,
		totalBookings: totalBookings,
		lastBookedAt:  lastBookedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p *Profile) PlaysGenre(genre string) bool {
	genre = strings.ToLower(strings.TrimSpace(genre))
	for _, g := range p.genres {
		if g == genre {
			return true
		}
	}
	return false
}

// WithLastBookedAt returns a copy carrying the derived recency timestamp.
func (p *Profile) WithLastBookedAt(t *time.Time) *Profile {
	cp := *p
	cp.genres = append([]string(nil), p.genres...)
	cp.lastBookedAt = t
	return &cp
}

func (p *Profile) ID() uuid.UUID             { return p.id }
func (p *Profile) UserID() uuid.UUID         { return p.userID }
func (p *Profile) StageName() string         { return p.stageName }
func (p *Profile) Genres() []string          { return append([]string(nil), p.genres...) }
func (p *Profile) HourlyRate() booking.Money { return p.hourlyRate }
func (p *Profile) IsActive() bool            { return p.active }
func (p *Profile) Rating() float64           { return p.rating }
func (p *Profile) TotalBookings() int        { return p.totalBookings }
func (p *Profile) LastBookedAt() *time.Time  { return p.lastBookedAt }
func (p *Profile) CreatedAt() time.Time      { return p.createdAt }
func (p *Profile) UpdatedAt() time.Time      { return p.updatedAt }
