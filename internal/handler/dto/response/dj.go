package response

import (
	"time"

	"dj-booking-engine/internal/domain/dj"
	"dj-booking-engine/internal/domain/matching"
	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/usecase/commands"
	"dj-booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// DJResponse field names match dj.Profile getters so copier can fill them.
type DJResponse struct {
	ID              uuid.UUID  `json:"id"`
	StageName       string     `json:"stageName"`
	Genres          []string   `json:"genres"`
	HourlyRateCents int64      `json:"hourlyRateCents"`
	Active          bool       `json:"active"`
	Rating          float64    `json:"rating"`
	TotalBookings   int        `json:"totalBookings"`
	LastBookedAt    *time.Time `json:"lastBookedAt,omitempty"`
}

type AvailabilityResponse struct {
	DJID      uuid.UUID   `json:"djId"`
	Available bool        `json:"available"`
	Conflicts []uuid.UUID `json:"conflicts"`
}

type CandidateResponse struct {
	DJ            *DJResponse             `json:"dj"`
	Score         int                     `json:"score"`
	Breakdown     matching.ScoreBreakdown `json:"breakdown"`
	IsPreferred   bool                    `json:"isPreferred"`
	MatchedGenres []string                `json:"matchedGenres"`
}

type CandidateListResponse struct {
	Booking    *BookingResponse     `json:"booking"`
	Candidates []*CandidateResponse `json:"candidates"`
}

type QueueItemResponse struct {
	Booking        *BookingResponse           `json:"booking"`
	Score          int                        `json:"score"`
	Bucket         string                     `json:"bucket"`
	DaysUntilEvent int                        `json:"daysUntilEvent"`
	Breakdown      matching.PriorityBreakdown `json:"breakdown"`
}

type SweepResponse struct {
	LeaseAcquired bool `json:"leaseAcquired"`
	Scanned       int  `json:"scanned"`
	Expired       int  `json:"expired"`
	Skipped       int  `json:"skipped"`
	Failed        int  `json:"failed"`
}

func FromProfile(p *dj.Profile) (*DJResponse, error) {
	resp := &DJResponse{}
	if err := copier.Copy(resp, p); err != nil {
		return nil, errs.Wrapf(err, "failed to copy dj profile %s", p.ID())
	}
	resp.HourlyRateCents = p.HourlyRate().Cents()
	resp.Active = p.IsActive()
	return resp, nil
}

func FromProfiles(profiles []*dj.Profile) ([]*DJResponse, error) {
	out := make([]*DJResponse, len(profiles))
	for i, p := range profiles {
		resp, err := FromProfile(p)
		if err != nil {
			return nil, err
		}
		out[i] = resp
	}
	return out, nil
}

func FromAvailability(djID uuid.UUID, r *queries.AvailabilityResult) *AvailabilityResponse {
	ids := make([]uuid.UUID, len(r.Conflicts))
	for i, b := range r.Conflicts {
		ids[i] = b.ID()
	}
	return &AvailabilityResponse{DJID: djID, Available: r.Available, Conflicts: ids}
}

func FromCandidateList(l *queries.CandidateList) (*CandidateListResponse, error) {
	out := make([]*CandidateResponse, len(l.Candidates))
	for i, c := range l.Candidates {
		resp := &CandidateResponse{}
		if err := copier.Copy(resp, c); err != nil {
			return nil, errs.Wrap(err, "failed to copy candidate score")
		}
		djResp, err := FromProfile(c.DJ)
		if err != nil {
			return nil, err
		}
		resp.DJ = djResp
		if resp.MatchedGenres == nil {
			resp.MatchedGenres = []string{}
		}
		out[i] = resp
	}
	return &CandidateListResponse{Booking: FromBooking(l.Booking), Candidates: out}, nil
}

func FromQueue(items []matching.QueueItem) ([]*QueueItemResponse, error) {
	out := make([]*QueueItemResponse, len(items))
	for i, it := range items {
		resp := &QueueItemResponse{Booking: FromBooking(it.Booking)}
		if err := copier.Copy(resp, it.Priority); err != nil {
			return nil, errs.Wrap(err, "failed to copy queue priority")
		}
		resp.Bucket = string(it.Priority.Bucket)
		out[i] = resp
	}
	return out, nil
}

func FromSweepResult(r commands.SweepResult) (*SweepResponse, error) {
	resp := &SweepResponse{}
	if err := copier.Copy(resp, r); err != nil {
		return nil, errs.Wrap(err, "failed to copy sweep result")
	}
	return resp, nil
}
