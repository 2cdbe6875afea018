package repository

import (
	"context"
	"time"

	"dj-booking-engine/internal/infra"
	"dj-booking-engine/internal/pkg/pgconv"
	"dj-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertNotificationJob = `INSERT INTO notification_jobs
	(id, kind, topic, recipient_id, payload, status, run_at, attempts, last_error, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	// SKIP LOCKED lets several relays drain the outbox without double delivery.
	claimDueNotificationJobs = `SELECT id, kind, topic, recipient_id, payload, status, run_at, attempts, last_error, created_at
FROM notification_jobs
WHERE status = $1 AND run_at <= $2
ORDER BY seq
LIMIT $3
FOR UPDATE SKIP LOCKED`

	updateNotificationJobStatus = `UPDATE notification_jobs
SET status = $2, attempts = $3, last_error = $4, run_at = $5
WHERE id = $1`
)

type NotificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, job shared.NotificationJob) error {
	_, err := r.db.Exec(ctx, insertNotificationJob,
		job.ID, string(job.Kind), job.Topic,
		pgconv.UUIDPtrToPgtype(job.RecipientID),
		[]byte(job.Payload),
		string(job.Status),
		pgconv.TimeToPgtype(job.RunAt),
		int32(job.Attempts),
		pgconv.StringPtrToPgtype(job.LastError),
		pgconv.TimeToPgtype(job.CreatedAt))
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]shared.NotificationJob, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, claimDueNotificationJobs, string(shared.NotificationQueued), now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var out []shared.NotificationJob
	for rows.Next() {
		var (
			job       shared.NotificationJob
			kind      string
			status    string
			recipient pgtype.UUID
			payload   []byte
			runAt     pgtype.Timestamptz
			attempts  int32
			lastError pgtype.Text
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&job.ID, &kind, &job.Topic, &recipient, &payload, &status,
			&runAt, &attempts, &lastError, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		job.Kind = shared.NotificationKind(kind)
		job.Status = shared.NotificationStatus(status)
		job.RecipientID = pgconv.UUIDPtrFromPgtype(recipient)
		job.Payload = payload
		job.RunAt = pgconv.TimeFromPgtype(runAt)
		job.Attempts = int(attempts)
		job.LastError = pgconv.StringPtrFromPgtype(lastError)
		job.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		out = append(out, job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification jobs", err)
	}
	return out, nil
}

func (r *NotificationRepository) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status shared.NotificationStatus, attempts int, lastError *string, runAt time.Time) error {
	tag, err := r.db.Exec(ctx, updateNotificationJobStatus,
		jobID, string(status), int32(attempts),
		pgconv.StringPtrToPgtype(lastError),
		pgconv.TimeToPgtype(runAt))
	if err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "notification job not found")
	}
	return nil
}
