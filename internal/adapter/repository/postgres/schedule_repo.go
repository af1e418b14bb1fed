package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/infrastructure/postgres/generated"
	"github.com/khrisnaSoluix/lending-engine/internal/usecase"
)

// ScheduleRepository implements usecase.ScheduleRepository. One row per
// (account, event type) holding the next run; a zero NextRunAt deletes the
// row and disables the event.
type ScheduleRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewScheduleRepository creates a new ScheduleRepository.
func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Upsert records the next run of an event for an account.
func (r *ScheduleRepository) Upsert(ctx context.Context, tx usecase.Transaction, accountID string, event domain.ScheduleEvent) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	if event.NextRunAt.IsZero() {
		return queries.DeleteSchedule(ctx, generated.DeleteScheduleParams{
			AccountID: accountID,
			EventType: string(event.Type),
		})
	}

	return queries.UpsertSchedule(ctx, generated.UpsertScheduleParams{
		AccountID: accountID,
		EventType: string(event.Type),
		NextRunAt: timeToPgTimestamptz(event.NextRunAt),
		UpdatedAt: timeToPgTimestamptz(time.Now().UTC()),
	})
}

// ListDue retrieves the events whose next run is at or before the cutoff.
func (r *ScheduleRepository) ListDue(ctx context.Context, before time.Time, limit int) ([]*usecase.ScheduledJob, error) {
	rows, err := r.queries.ListDueSchedules(ctx, generated.ListDueSchedulesParams{
		NextRunAt: timeToPgTimestamptz(before),
		Limit:     int32(limit),
	})
	if err != nil {
		return nil, err
	}

	jobs := make([]*usecase.ScheduledJob, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, &usecase.ScheduledJob{
			AccountID: row.AccountID,
			Type:      domain.EventType(row.EventType),
			RunAt:     row.NextRunAt.Time,
		})
	}

	return jobs, nil
}
