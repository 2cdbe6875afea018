//go:build unit || e2e

package builder

import (
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/domain/dj"

	"github.com/google/uuid"
)

type DJBuilder struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	StageName     string
	Genres        []string
	HourlyRate    int64
	Active        bool
	Rating        float64
	TotalBookings int
	LastBookedAt  *time.Time
}

func NewDJBuilder() *DJBuilder {
	return &DJBuilder{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		StageName:     "DJ Test",
		Genres:        []string{"house"},
		HourlyRate:    25_000,
		Active:        true,
		Rating:        4.0,
		TotalBookings: 5,
	}
}

func (d *DJBuilder) With(mutate func(*DJBuilder)) *DJBuilder {
	mutate(d)
	return d
}

func (d *DJBuilder) WithID(id uuid.UUID) *DJBuilder {
	d.ID = id
	return d
}

func (d *DJBuilder) WithName(name string) *DJBuilder {
	d.StageName = name
	return d
}

func (d *DJBuilder) WithGenres(genres ...string) *DJBuilder {
	d.Genres = genres
	return d
}

func (d *DJBuilder) WithRating(r float64) *DJBuilder {
	d.Rating = r
	return d
}

func (d *DJBuilder) WithTotalBookings(n int) *DJBuilder {
	d.TotalBookings = n
	return d
}

func (d *DJBuilder) WithLastBookedAt(t time.Time) *DJBuilder {
	d.LastBookedAt = &t
	return d
}

func (d *DJBuilder) AsInactive() *DJBuilder {
	d.Active = false
	return d
}

// Build methods
func (d *DJBuilder) BuildDomain() (*dj.Profile, error) {
	p, err := dj.NewProfile(dj.NewProfileParams{
		ID:            d.ID,
		UserID:        d.UserID,
		StageName:     d.StageName,
		Genres:        d.Genres,
		HourlyRate:    booking.NewMoney(d.HourlyRate),
		Active:        d.Active,
		Rating:        d.Rating,
		TotalBookings: d.TotalBookings,
	}, BaseTime)
	if err != nil {
		return nil, err
	}
	return p.WithLastBookedAt(d.LastBookedAt), nil
}

func (d *DJBuilder) MustBuild() *dj.Profile {
	p, err := d.BuildDomain()
	if err != nil {
		panic(err)
	}
	return p
}
