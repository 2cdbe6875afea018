package memstore

import (
	"context"
	"sort"

	"dj-booking-engine/internal/domain/recovery"
	"dj-booking-engine/internal/infra"

	"github.com/google/uuid"
)

type recoveryRepository struct {
	tx *memTx
}

func cloneRecord(r *recovery.Record) *recovery.Record {
	cp := *r
	return &cp
}

func (r *recoveryRepository) CreateBatch(ctx context.Context, records []*recovery.Record) error {
	return r.tx.with(func(st *state) error {
		for _, rec := range records {
			if _, ok := st.bookings[rec.BookingID()]; !ok {
				return infra.NewRepoErr(infra.KindForeignKeyViolated, "recovery references unknown booking")
			}
			if _, exists := st.recoveries[rec.ID()]; exists {
				return infra.NewRepoErr(infra.KindDuplicateKey, "recovery record already exists")
			}
			st.recoveries[rec.ID()] = cloneRecord(rec)
			st.stamp(rec.ID())
		}
		return nil
	})
}

func (r *recoveryRepository) Update(ctx context.Context, rec *recovery.Record) error {
	return r.tx.with(func(st *state) error {
		if _, ok := st.recoveries[rec.ID()]; !ok {
			return infra.NewRepoErr(infra.KindNotFound, "recovery record not found")
		}
		st.recoveries[rec.ID()] = cloneRecord(rec)
		return nil
	})
}

func (r *recoveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*recovery.Record, error) {
	var found *recovery.Record
	err := r.tx.with(func(st *state) error {
		rec, ok := st.recoveries[id]
		if !ok {
			return infra.NewRepoErr(infra.KindNotFound, "recovery record not found")
		}
		found = cloneRecord(rec)
		return nil
	})
	return found, err
}

func (r *recoveryRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*recovery.Record, error) {
	return r.FindByID(ctx, id)
}

func (r *recoveryRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*recovery.Record, error) {
	var out []*recovery.Record
	err := r.tx.with(func(st *state) error {
		for _, rec := range st.recoveries {
			if rec.BookingID() == bookingID {
				out = append(out, cloneRecord(rec))
			}
		}
		sort.Slice(out, func(i, j int) bool {
			return st.seq[out[i].ID()] < st.seq[out[j].ID()]
		})
		return nil
	})
	return out, err
}
