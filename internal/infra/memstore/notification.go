package memstore

import (
	"context"
	"sort"
	"time"

	"dj-booking-engine/internal/infra"
	"dj-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type notificationRepository struct {
	tx *memTx
}

func (r *notificationRepository) CreateJob(ctx context.Context, job shared.NotificationJob) error {
	return r.tx.with(func(st *state) error {
		if job.ID == uuid.Nil {
			job.ID = uuid.New()
		}
		if job.Status == "" {
			job.Status = shared.NotificationQueued
		}
		st.jobs[job.ID] = job
		st.stamp(job.ID)
		return nil
	})
}

func (r *notificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]shared.NotificationJob, error) {
	var out []shared.NotificationJob
	err := r.tx.with(func(st *state) error {
		out = sortedJobs(st, func(j shared.NotificationJob) bool {
			return j.Status == shared.NotificationQueued && !j.RunAt.After(now)
		})
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}

func (r *notificationRepository) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status shared.NotificationStatus, attempts int, lastError *string, runAt time.Time) error {
	return r.tx.with(func(st *state) error {
		job, ok := st.jobs[jobID]
		if !ok {
			return infra.NewRepoErr(infra.KindNotFound, "notification job not found")
		}
		job.Status = status
		job.Attempts = attempts
		job.LastError = lastError
		job.RunAt = runAt
		st.jobs[jobID] = job
		return nil
	})
}

func sortedJobs(st *state, match func(shared.NotificationJob) bool) []shared.NotificationJob {
	var out []shared.NotificationJob
	for _, j := range st.jobs {
		if match(j) {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return st.seq[out[i].ID] < st.seq[out[j].ID]
	})
	return out
}
