package memstore

import (
	"context"
	"sort"
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/domain/dj"
	"dj-booking-engine/internal/infra"

	"github.com/google/uuid"
)

type djRepository struct {
	tx *memTx
}

func (r *djRepository) Create(ctx context.Context, p *dj.Profile) error {
	return r.tx.with(func(st *state) error {
		if _, exists := st.djs[p.ID()]; exists {
			return infra.NewRepoErr(infra.KindDuplicateKey, "dj profile already exists")
		}
		st.djs[p.ID()] = p.WithLastBookedAt(nil)
		return nil
	})
}

func (r *djRepository) FindByID(ctx context.Context, id uuid.UUID) (*dj.Profile, error) {
	var found *dj.Profile
	err := r.tx.with(func(st *state) error {
		p, ok := st.djs[id]
		if !ok {
			return infra.NewRepoErr(infra.KindNotFound, "dj profile not found")
		}
		found = withRecency(st, p)
		return nil
	})
	return found, err
}

func (r *djRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*dj.Profile, error) {
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return r.list(func(p *dj.Profile) bool {
		_, ok := want[p.ID()]
		return ok
	})
}

func (r *djRepository) ListActive(ctx context.Context) ([]*dj.Profile, error) {
	return r.list(func(p *dj.Profile) bool { return p.IsActive() })
}

func (r *djRepository) list(match func(*dj.Profile) bool) ([]*dj.Profile, error) {
	var out []*dj.Profile
	err := r.tx.with(func(st *state) error {
		for _, p := range st.djs {
			if match(p) {
				out = append(out, withRecency(st, p))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].StageName() != out[j].StageName() {
			return out[i].StageName() < out[j].StageName()
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, err
}

func withRecency(st *state, p *dj.Profile) *dj.Profile {
	var latest *time.Time
	for _, b := range st.bookings {
		if !b.IsBookedWith(p.ID()) {
			continue
		}
		if b.Status() != booking.StatusAccepted && b.Status() != booking.StatusConfirmed {
			continue
		}
		start := b.StartTime()
		if latest == nil || start.After(*latest) {
			latest = &start
		}
	}
	return p.WithLastBookedAt(latest)
}
