// Package memstore is a process-local UnitOfWork. Within calls are serialised
// and run against a copy of the state that is swapped in on success.
package memstore

import (
	"context"
	"sync"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/domain/dj"
	"dj-booking-engine/internal/domain/recovery"
	"dj-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type Store struct {
	mu    sync.Mutex
	state *state
}

type state struct {
	bookings   map[uuid.UUID]*booking.Booking
	djs        map[uuid.UUID]*dj.Profile
	recoveries map[uuid.UUID]*recovery.Record
	jobs       map[uuid.UUID]shared.NotificationJob
	// seq keeps insertion order for records and jobs created in the same instant
	seq  map[uuid.UUID]int
	next int
}

func newState() *state {
	return &state{
		bookings:   map[uuid.UUID]*booking.Booking{},
		djs:        map[uuid.UUID]*dj.Profile{},
		recoveries: map[uuid.UUID]*recovery.Record{},
		jobs:       map[uuid.UUID]shared.NotificationJob{},
		seq:        map[uuid.UUID]int{},
	}
}

func (s *state) stamp(id uuid.UUID) {
	s.next++
	s.seq[id] = s.next
}

// clone copies the maps. Stored entities are never handed out, so sharing them is safe.
func (s *state) clone() *state {
	cp := newState()
	for k, v := range s.bookings {
		cp.bookings[k] = v
	}
	for k, v := range s.djs {
		cp.djs[k] = v
	}
	for k, v := range s.recoveries {
		cp.recoveries[k] = v
	}
	for k, v := range s.jobs {
		cp.jobs[k] = v
	}
	for k, v := range s.seq {
		cp.seq[k] = v
	}
	cp.next = s.next
	return cp
}

func New() *Store {
	return &Store{state: newState()}
}

func NewUnitOfWork(s *Store) shared.UnitOfWork {
	return s
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	working := s.state.clone()
	if err := fn(ctx, &memTx{st: working}); err != nil {
		return err
	}
	s.state = working
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	// writes made by fn are discarded
	return fn(ctx, &memTx{st: s.state.clone()})
}

func (s *Store) Reads() shared.Tx {
	return &memTx{store: s}
}

// memTx either owns a working state (inside Within) or locks the store per call (Reads).
type memTx struct {
	st    *state
	store *Store
}

func (t *memTx) with(fn func(st *state) error) error {
	if t.st != nil {
		return fn(t.st)
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	working := t.store.state.clone()
	if err := fn(working); err != nil {
		return err
	}
	t.store.state = working
	return nil
}

func (t *memTx) Bookings() shared.BookingRepository {
	return &bookingRepository{tx: t}
}

func (t *memTx) DJs() shared.DJRepository {
	return &djRepository{tx: t}
}

func (t *memTx) Recoveries() shared.RecoveryRepository {
	return &recoveryRepository{tx: t}
}

func (t *memTx) Notifications() shared.NotificationRepository {
	return &notificationRepository{tx: t}
}

// Jobs returns a copy of every outbox job, for assertions in tests.
func (s *Store) Jobs() []shared.NotificationJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedJobs(s.state, func(shared.NotificationJob) bool { return true })
}
