//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/domain/dj"
	"dj-booking-engine/internal/domain/recovery"
	"dj-booking-engine/internal/infra/memstore"
	"dj-booking-engine/internal/pkg/clock"
	"dj-booking-engine/internal/usecase/commands"
	"dj-booking-engine/internal/usecase/shared"
	"dj-booking-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// eventDay stays outside the urgent window for the first week after builder.BaseTime.
var eventDay = time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)

func at(hour int) time.Time {
	return eventDay.Add(time.Duration(hour) * time.Hour)
}

type fixture struct {
	store      *memstore.Store
	uow        shared.UnitOfWork
	clock      *clock.MockClock
	validator  *booking.Validator
	generator  *commands.RecoveryGenerator
	bookings   commands.BookingCommands
	recoveries commands.RecoveryCommands
	logger     *slog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	uow := memstore.NewUnitOfWork(store)
	clk := clock.NewMockClock(builder.BaseTime)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := booking.NewValidator(clk, booking.DefaultWindowPolicy())
	generator := commands.NewRecoveryGenerator(uow, clk, logger)

	return &fixture{
		store:      store,
		uow:        uow,
		clock:      clk,
		validator:  validator,
		generator:  generator,
		bookings:   commands.NewBookingUseCase(uow, validator, generator, clk, logger),
		recoveries: commands.NewRecoveryUseCase(uow, validator, clk, logger),
		logger:     logger,
	}
}

func (f *fixture) seedDJ(t *testing.T, d *builder.DJBuilder) *dj.Profile {
	t.Helper()
	p := d.MustBuild()
	require.NoError(t, f.uow.Reads().DJs().Create(context.Background(), p))
	return p
}

func (f *fixture) seedBooking(t *testing.T, b *builder.BookingBuilder) *booking.Booking {
	t.Helper()
	bk := b.BuildReconstructed()
	require.NoError(t, f.uow.Reads().Bookings().Create(context.Background(), bk))
	return bk
}

func (f *fixture) booking(t *testing.T, id uuid.UUID) *booking.Booking {
	t.Helper()
	b, err := f.uow.Reads().Bookings().FindByID(context.Background(), id)
	require.NoError(t, err)
	return b
}

func (f *fixture) records(t *testing.T, bookingID uuid.UUID) []*recovery.Record {
	t.Helper()
	out, err := f.uow.Reads().Recoveries().ListByBooking(context.Background(), bookingID)
	require.NoError(t, err)
	return out
}

func (f *fixture) jobs(topic string) []shared.NotificationJob {
	var out []shared.NotificationJob
	for _, j := range f.store.Jobs() {
		if j.Topic == topic {
			out = append(out, j)
		}
	}
	return out
}

func types(options []commands.RecoveryOption) []recovery.Type {
	out := make([]recovery.Type, len(options))
	for i, o := range options {
		out[i] = o.Record.Type()
	}
	return out
}

// pendingWith seeds a pending booking for the default client on eventDay 20:00-24:00.
func pendingWith(djID uuid.UUID, clientID uuid.UUID) *builder.BookingBuilder {
	return builder.NewBookingBuilder().
		WithDJ(djID).
		WithClient(clientID).
		WithWindow(at(20), at(24))
}
