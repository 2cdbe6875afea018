package request

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityQuery binds ?start=&end=&exclude= with RFC 3339 timestamps.
type AvailabilityQuery struct {
	Start   time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End     time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Exclude string    `form:"exclude"`
}

func (q AvailabilityQuery) ExcludeID() (*uuid.UUID, error) {
	if q.Exclude == "" {
		return nil, nil
	}
	id, err := uuid.Parse(q.Exclude)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
