package repository

import (
	"context"
	"time"

	"storefront-checkout/internal/infra"
	sqlc "storefront-checkout/internal/infra/sqlc/generated"
	"storefront-checkout/internal/pkg/pgconv"
	"storefront-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type JobWriteQueries interface {
	CreateScheduledJob(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateScheduledJobParams) (uuid.UUID, error)
	ClaimDueScheduledJobs(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimDueScheduledJobsParams) ([]sqlc.ScheduledJobs, error)
	CompleteScheduledJob(ctx context.Context, db sqlc.DBTX, arg sqlc.CompleteScheduledJobParams) error
	RescheduleScheduledJob(ctx context.Context, db sqlc.DBTX, arg sqlc.RescheduleScheduledJobParams) error
	FailScheduledJob(ctx context.Context, db sqlc.DBTX, arg sqlc.FailScheduledJobParams) error
}

type JobRepository struct {
	queries JobWriteQueries
	db      sqlc.DBTX
}

func NewJobRepository(queries JobWriteQueries, db sqlc.DBTX) *JobRepository {
	return &JobRepository{
		queries: queries,
		db:      db,
	}
}

func (r *JobRepository) Schedule(ctx context.Context, tx sqlc.DBTX, kind string, payload []byte, runAt time.Time) (uuid.UUID, error) {
	id, err := r.queries.CreateScheduledJob(ctx, tx, sqlc.CreateScheduledJobParams{
		Kind:    kind,
		Payload: payload,
		RunAt:   pgconv.TimeToPgtype(runAt),
	})
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to schedule job", err)
	}
	return id, nil
}

// ClaimDue leases due jobs, plus running jobs whose lease expired before leaseCutoff.
func (r *JobRepository) ClaimDue(ctx context.Context, tx sqlc.DBTX, now, leaseCutoff time.Time, limit int32) ([]shared.ScheduledJob, error) {
	rows, err := r.queries.ClaimDueScheduledJobs(ctx, tx, sqlc.ClaimDueScheduledJobsParams{
		Now:         pgconv.TimeToPgtype(now),
		LeaseCutoff: pgconv.TimeToPgtype(leaseCutoff),
		BatchSize:   limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim due jobs", err)
	}

	jobs := make([]shared.ScheduledJob, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, shared.ScheduledJob{
			ID:        row.ID,
			Kind:      row.Kind,
			Payload:   row.Payload,
			RunAt:     pgconv.TimeFromPgtype(row.RunAt),
			Status:    shared.JobStatus(row.Status),
			Attempts:  row.Attempts,
			LastError: pgconv.StringPtrFromPgtype(row.LastError),
		})
	}
	return jobs, nil
}

func (r *JobRepository) Complete(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, at time.Time) error {
	err := r.queries.CompleteScheduledJob(ctx, tx, sqlc.CompleteScheduledJobParams{
		ID:        id,
		UpdatedAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to complete job", err)
	}
	return nil
}

func (r *JobRepository) Reschedule(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, runAt time.Time, lastErr string, at time.Time) error {
	err := r.queries.RescheduleScheduledJob(ctx, tx, sqlc.RescheduleScheduledJobParams{
		ID:        id,
		RunAt:     pgconv.TimeToPgtype(runAt),
		LastError: pgconv.StringToPgtype(lastErr),
		UpdatedAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to reschedule job", err)
	}
	return nil
}

func (r *JobRepository) Fail(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, lastErr string, at time.Time) error {
	err := r.queries.FailScheduledJob(ctx, tx, sqlc.FailScheduledJobParams{
		ID:        id,
		LastError: pgconv.StringToPgtype(lastErr),
		UpdatedAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark job failed", err)
	}
	return nil
}
