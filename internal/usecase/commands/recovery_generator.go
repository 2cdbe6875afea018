package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/domain/dj"
	"dj-booking-engine/internal/domain/recovery"
	"dj-booking-engine/internal/pkg/clock"
	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/usecase/queries"
	"dj-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

// RecoveryOption pairs a persisted record with the display data used to build it.
type RecoveryOption struct {
	Record     *recovery.Record
	Suggestion recovery.Suggestion
}

type RecoveryGenerator struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewRecoveryGenerator(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) *RecoveryGenerator {
	return &RecoveryGenerator{uow: uow, clock: clk, logger: logger}
}

// OnBookingRejected builds and stores the remedies for a declined or expired booking.
// A second call returns the records from the first one and creates nothing.
func (g *RecoveryGenerator) OnBookingRejected(ctx context.Context, bookingID uuid.UUID, reason string) ([]RecoveryOption, error) {
	var options []RecoveryOption
	err := g.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := loadForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		out, err := g.generateInTx(ctx, tx, b, reason, g.clock.Now())
		if err != nil {
			return err
		}
		options = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return options, nil
}

func (g *RecoveryGenerator) generateInTx(ctx context.Context, tx shared.Tx, b *booking.Booking, reason string, now time.Time) ([]RecoveryOption, error) {
	if b.Status() != booking.StatusDeclined {
		return nil, errs.Wrapf(ErrBookingNotRejected, "booking %s is %s", b.ID(), b.Status())
	}

	existing, err := tx.Recoveries().ListByBooking(ctx, b.ID())
	if err != nil {
		return nil, errs.Wrap(err, "failed to list recovery records")
	}
	if len(existing) > 0 {
		g.logger.Info("recovery already generated", "booking_id", b.ID(), "records", len(existing))
		options := make([]RecoveryOption, len(existing))
		for i, r := range existing {
			options[i] = RecoveryOption{Record: r, Suggestion: r.Suggestion()}
		}
		return options, nil
	}

	siblings, err := g.siblings(ctx, tx, b)
	if err != nil {
		return nil, err
	}
	names, err := djNames(ctx, tx, siblings)
	if err != nil {
		return nil, err
	}

	suggestions := extendSuggestions(b, siblings, names)

	replacement, err := g.newDJSuggestion(ctx, tx, b, siblings)
	if err != nil {
		return nil, err
	}
	if replacement != nil {
		suggestions = append(suggestions, *replacement)
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, recovery.Suggestion{
			Type:    recovery.TypeRefund,
			Message: fmt.Sprintf("No other DJ is free for %s. We can refund your quote of %s.", b.Window(), b.Quote()),
		})
	}

	options := make([]RecoveryOption, 0, len(suggestions))
	records := make([]*recovery.Record, 0, len(suggestions))
	for _, s := range suggestions {
		r, err := recovery.NewRecord(b.ID(), s, now)
		if err != nil {
			// a malformed suggestion is dropped, the rest still reach the client
			g.logger.Warn("skipping invalid recovery suggestion", "booking_id", b.ID(), "type", s.Type, "error", err)
			continue
		}
		records = append(records, r)
		options = append(options, RecoveryOption{Record: r, Suggestion: s})
	}
	if err := tx.Recoveries().CreateBatch(ctx, records); err != nil {
		return nil, errs.Wrap(err, "failed to store recovery records")
	}

	payload := shared.RecoverySuggestedPayload{
		Booking: shared.SnapshotOf(b),
		Reason:  reason,
	}
	for _, o := range options {
		payload.Suggestions = append(payload.Suggestions, shared.SuggestionSnapshotOf(o.Record, o.Suggestion))
	}
	if err := enqueue(ctx, tx, func() (shared.NotificationJob, error) {
		return shared.ClientJob(b, shared.TopicRecoverySuggested, payload, now)
	}); err != nil {
		return nil, err
	}

	g.logger.Info("recovery generated", "booking_id", b.ID(), "suggestions", len(options))
	return options, nil
}

// siblings are the client's other active bookings on the same event date.
func (g *RecoveryGenerator) siblings(ctx context.Context, tx shared.Tx, b *booking.Booking) ([]*booking.Booking, error) {
	all, err := tx.Bookings().ListSiblings(ctx, b.ClientID(), b.EventDate(), booking.ActiveStatuses...)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list sibling bookings")
	}
	out := make([]*booking.Booking, 0, len(all))
	for _, s := range all {
		if s.ID() != b.ID() {
			out = append(out, s)
		}
	}
	return out, nil
}

func extendSuggestions(b *booking.Booking, siblings []*booking.Booking, names map[uuid.UUID]string) []recovery.Suggestion {
	var out []recovery.Suggestion
	for _, s := range siblings {
		if s.Status() != booking.StatusConfirmed || !s.HasDJ() {
			continue
		}
		// moving the end later only helps a set that finishes before the gap does
		if !b.Window().End().After(s.Window().End()) {
			continue
		}
		djID := *s.DJID()
		siblingID := s.ID()
		name := names[djID]
		out = append(out, recovery.Suggestion{
			Type:             recovery.TypeExtendDJ,
			SuggestedDJID:    &djID,
			SuggestedDJName:  name,
			SiblingBookingID: &siblingID,
			Message:          fmt.Sprintf("Extend %s's set to also cover %s.", displayName(name), b.Window()),
		})
	}
	return out
}

// newDJSuggestion proposes the single best free DJ, excluding the original DJ and
// anyone already booked for this event. Genre matches order the pool; ties keep pool order.
func (g *RecoveryGenerator) newDJSuggestion(ctx context.Context, tx shared.Tx, b *booking.Booking, siblings []*booking.Booking) (*recovery.Suggestion, error) {
	id := b.ID()
	pool, err := queries.AvailableDJs(ctx, tx, b.Window(), &id)
	if err != nil {
		return nil, err
	}

	taken := make(map[uuid.UUID]struct{}, len(siblings)+1)
	if b.HasDJ() {
		taken[*b.DJID()] = struct{}{}
	}
	for _, s := range siblings {
		if s.HasDJ() {
			taken[*s.DJID()] = struct{}{}
		}
	}

	type candidate struct {
		profile *dj.Profile
		matched []string
	}
	prefs := b.Preferences()
	candidates := make([]candidate, 0, len(pool))
	for _, p := range pool {
		if _, skip := taken[p.ID()]; skip {
			continue
		}
		candidates = append(candidates, candidate{profile: p, matched: prefs.MatchGenres(p.Genres())})
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	if prefs.HasGenres() {
		sort.SliceStable(candidates, func(i, j int) bool {
			return len(candidates[i].matched) > len(candidates[j].matched)
		})
	}

	top := candidates[0]
	djID := top.profile.ID()
	msg := fmt.Sprintf("%s is available for %s.", top.profile.StageName(), b.Window())
	if len(top.matched) > 0 {
		msg = fmt.Sprintf("%s is available for %s and plays %s.", top.profile.StageName(), b.Window(), strings.Join(top.matched, ", "))
	}
	return &recovery.Suggestion{
		Type:            recovery.TypeNewDJ,
		SuggestedDJID:   &djID,
		SuggestedDJName: top.profile.StageName(),
		MatchedGenres:   top.matched,
		Message:         msg,
	}, nil
}

func djNames(ctx context.Context, tx shared.Tx, bookings []*booking.Booking) (map[uuid.UUID]string, error) {
	var ids []uuid.UUID
	for _, b := range bookings {
		if b.HasDJ() {
			ids = append(ids, *b.DJID())
		}
	}
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	profiles, err := tx.DJs().FindByIDs(ctx, ids)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load sibling djs")
	}
	for _, p := range profiles {
		names[p.ID()] = p.StageName()
	}
	return names, nil
}

func displayName(name string) string {
	if name == "" {
		return "your DJ"
	}
	return name
}
