package shared

import (
	"context"
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/domain/dj"
	"dj-booking-engine/internal/domain/recovery"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: Single query operations using implicit transactions
	Reads() Tx
}

type Tx interface {
	Bookings() BookingRepository
	DJs() DJRepository
	Recoveries() RecoveryRepository
	Notifications() NotificationRepository
}

// BookingRepository range queries use the half-open overlap predicate on the
// normalised window. Callers still re-check with booking.Overlaps.
type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ListActiveByDJ(ctx context.Context, djID uuid.UUID, from, to time.Time) ([]*booking.Booking, error)
	ListActiveInRange(ctx context.Context, from, to time.Time) ([]*booking.Booking, error)
	ListByStatus(ctx context.Context, statuses ...booking.Status) ([]*booking.Booking, error)
	ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*booking.Booking, error)
	ListSiblings(ctx context.Context, clientID uuid.UUID, eventDate time.Time, statuses ...booking.Status) ([]*booking.Booking, error)
}

// DJRepository returns profiles with lastBookedAt derived from accepted and confirmed bookings.
type DJRepository interface {
	Create(ctx context.Context, p *dj.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*dj.Profile, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*dj.Profile, error)
	ListActive(ctx context.Context) ([]*dj.Profile, error)
}

type RecoveryRepository interface {
	CreateBatch(ctx context.Context, records []*recovery.Record) error
	Update(ctx context.Context, r *recovery.Record) error
	FindByID(ctx context.Context, id uuid.UUID) (*recovery.Record, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*recovery.Record, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*recovery.Record, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, job NotificationJob) error
	// ClaimDue returns queued jobs with runAt <= now, skipping rows locked by other relays.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]NotificationJob, error)
	UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status NotificationStatus, attempts int, lastError *string, runAt time.Time) error
}
