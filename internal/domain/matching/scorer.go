package matching

import (
	"math"
	"sort"
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/domain/dj"
)

const (
	baseEligibilityPoints = 10
	preferencePoints      = 25
	ratingWeight          = 4
	maxRatingPoints       = 20
	genreMatchPoints      = 5
	maxGenrePoints        = 15
	recentWindow          = 30 * 24 * time.Hour
	recentPoints          = 10
	warmWindow            = 90 * 24 * time.Hour
	warmPoints            = 5
	experienceCap         = 50
	experienceStep        = 5
	weekendMinBookings    = 10
	weekendPoints         = 5
)

type ScoringPolicy struct {
	// PinPreferred forces the client's preferred DJ to the top regardless of score.
	PinPreferred bool
}

// ScoreBreakdown keeps every sub-score so reviewers can see why a DJ ranks where it does.
type ScoreBreakdown struct {
	Base            int `json:"base"`
	Preference      int `json:"preference"`
	Rating          int `json:"rating"`
	GenreExperience int `json:"genreExperience"`
	Recency         int `json:"recency"`
	Experience      int `json:"experience"`
	Weekend         int `json:"weekend"`
}

func (b ScoreBreakdown) Total() int {
	return b.Base + b.Preference + b.Rating + b.GenreExperience + b.Recency + b.Experience + b.Weekend
}

type ScoredCandidate struct {
	DJ            *dj.Profile
	Score         int
	Breakdown     ScoreBreakdown
	IsPreferred   bool
	MatchedGenres []string
}

// ScoreDJCandidates ranks candidates for a booking, highest total first.
// Ties fall back to rating, then lifetime bookings, then id.
func ScoreDJCandidates(b *booking.Booking, candidates []*dj.Profile, now time.Time, policy ScoringPolicy) []ScoredCandidate {
	prefs := b.Preferences()
	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		matched := matchedGenres(prefs, c)
		breakdown := ScoreBreakdown{
			Rating:          ratingPoints(c.Rating()),
			GenreExperience: min(len(matched)*genreMatchPoints, maxGenrePoints),
			Recency:         recencyPoints(c.LastBookedAt(), now),
			Experience:      min(c.TotalBookings(), experienceCap) / experienceStep,
		}
		if c.IsActive() {
			breakdown.Base = baseEligibilityPoints
		}
		preferred := prefs.IsPreferredDJ(c.ID())
		if preferred {
			breakdown.Preference = preferencePoints
		}
		if b.IsWeekendEvent() && c.TotalBookings() >= weekendMinBookings {
			breakdown.Weekend = weekendPoints
		}
		scored = append(scored, ScoredCandidate{
			DJ:            c,
			Score:         breakdown.Total(),
			Breakdown:     breakdown,
			IsPreferred:   preferred,
			MatchedGenres: matched,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if policy.PinPreferred && a.IsPreferred != b.IsPreferred {
			return a.IsPreferred
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.DJ.Rating() != b.DJ.Rating() {
			return a.DJ.Rating() > b.DJ.Rating()
		}
		if a.DJ.TotalBookings() != b.DJ.TotalBookings() {
			return a.DJ.TotalBookings() > b.DJ.TotalBookings()
		}
		return a.DJ.ID().String() < b.DJ.ID().String()
	})
	return scored
}

func ratingPoints(rating float64) int {
	if math.IsNaN(rating) || rating <= 0 {
		return 0
	}
	return min(int(math.Round(rating*ratingWeight)), maxRatingPoints)
}

func recencyPoints(lastBookedAt *time.Time, now time.Time) int {
	if lastBookedAt == nil {
		return 0
	}
	since := now.Sub(*lastBookedAt)
	switch {
	case since < 0:
		// an upcoming booking counts as current activity
		return recentPoints
	case since <= recentWindow:
		return recentPoints
	case since <= warmWindow:
		return warmPoints
	default:
		return 0
	}
}

// matchedGenres counts the music style as a genre when it is not already listed.
func matchedGenres(prefs booking.Preferences, c *dj.Profile) []string {
	matched := prefs.MatchGenres(c.Genres())
	if prefs.MusicStyle == nil || !c.PlaysGenre(*prefs.MusicStyle) {
		return matched
	}
	style := booking.NormalizeGenres([]string{*prefs.MusicStyle})[0]
	for _, g := range matched {
		if g == style {
			return matched
		}
	}
	return append(matched, style)
}
