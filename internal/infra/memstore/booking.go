package memstore

import (
	"context"
	"sort"
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/infra"

	"github.com/google/uuid"
)

type bookingRepository struct {
	tx *memTx
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	cp := *b
	return &cp
}

func (r *bookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	return r.tx.with(func(st *state) error {
		if _, exists := st.bookings[b.ID()]; exists {
			return infra.NewRepoErr(infra.KindDuplicateKey, "booking already exists")
		}
		if err := checkExclusion(st, b); err != nil {
			return err
		}
		st.bookings[b.ID()] = cloneBooking(b)
		return nil
	})
}

func (r *bookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	return r.tx.with(func(st *state) error {
		if _, exists := st.bookings[b.ID()]; !exists {
			return infra.NewRepoErr(infra.KindNotFound, "booking not found")
		}
		if err := checkExclusion(st, b); err != nil {
			return err
		}
		st.bookings[b.ID()] = cloneBooking(b)
		return nil
	})
}

// checkExclusion mirrors the Postgres exclusion constraint on active DJ windows.
func checkExclusion(st *state, b *booking.Booking) error {
	if !b.IsActive() || !b.HasDJ() {
		return nil
	}
	djID := *b.DJID()
	for id, other := range st.bookings {
		if id == b.ID() || !other.IsActive() || !other.IsBookedWith(djID) {
			continue
		}
		if booking.Overlaps(b.Window(), other.Window()) {
			return infra.NewRepoErr(infra.KindConflict, "overlapping active booking for DJ")
		}
	}
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var found *booking.Booking
	err := r.tx.with(func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return infra.NewRepoErr(infra.KindNotFound, "booking not found")
		}
		found = cloneBooking(b)
		return nil
	})
	return found, err
}

// FindByIDForUpdate needs no extra locking; Within already serialises writers.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r *bookingRepository) ListActiveByDJ(ctx context.Context, djID uuid.UUID, from, to time.Time) ([]*booking.Booking, error) {
	return r.list(func(b *booking.Booking) bool {
		return b.IsActive() && b.IsBookedWith(djID) && inRange(b, from, to)
	})
}

func (r *bookingRepository) ListActiveInRange(ctx context.Context, from, to time.Time) ([]*booking.Booking, error) {
	return r.list(func(b *booking.Booking) bool {
		return b.IsActive() && b.HasDJ() && inRange(b, from, to)
	})
}

func (r *bookingRepository) ListByStatus(ctx context.Context, statuses ...booking.Status) ([]*booking.Booking, error) {
	return r.list(func(b *booking.Booking) bool {
		return hasStatus(b, statuses)
	})
}

func (r *bookingRepository) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*booking.Booking, error) {
	return r.list(func(b *booking.Booking) bool {
		return b.Status() == booking.StatusPending && !b.CreatedAt().After(cutoff)
	})
}

func (r *bookingRepository) ListSiblings(ctx context.Context, clientID uuid.UUID, eventDate time.Time, statuses ...booking.Status) ([]*booking.Booking, error) {
	day := booking.DateOf(eventDate)
	return r.list(func(b *booking.Booking) bool {
		return b.ClientID() == clientID && b.EventDate().Equal(day) && hasStatus(b, statuses)
	})
}

func (r *bookingRepository) list(match func(*booking.Booking) bool) ([]*booking.Booking, error) {
	var out []*booking.Booking
	err := r.tx.with(func(st *state) error {
		for _, b := range st.bookings {
			if match(b) {
				out = append(out, cloneBooking(b))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime().Equal(out[j].StartTime()) {
			return out[i].StartTime().Before(out[j].StartTime())
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, err
}

// inRange is the same half-open prefilter the SQL store applies.
func inRange(b *booking.Booking, from, to time.Time) bool {
	w := b.Window()
	return w.Start().Before(to) && w.End().After(from)
}

func hasStatus(b *booking.Booking, statuses []booking.Status) bool {
	for _, s := range statuses {
		if b.Status() == s {
			return true
		}
	}
	return false
}
