package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/infrastructure/postgres/generated"
	"github.com/khrisnaSoluix/lending-engine/internal/usecase"
)

// ParameterRepository implements usecase.ParameterRepository. Parameter
// snapshots are stored as JSONB documents keyed by their effective time; the
// full history stays queryable for as-of resolution.
type ParameterRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewParameterRepository creates a new ParameterRepository.
func NewParameterRepository(pool *pgxpool.Pool) *ParameterRepository {
	return &ParameterRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Save records a parameter snapshot taking effect at the given instant.
func (r *ParameterRepository) Save(ctx context.Context, tx usecase.Transaction, accountID string, effectiveAt time.Time, params domain.Parameters) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	doc, err := json.Marshal(params)
	if err != nil {
		return err
	}

	return queries.CreateParameterVersion(ctx, generated.CreateParameterVersionParams{
		AccountID:   accountID,
		EffectiveAt: timeToPgTimestamptz(effectiveAt),
		Parameters:  doc,
		CreatedAt:   timeToPgTimestamptz(time.Now().UTC()),
	})
}

// Timeline loads every parameter version for an account, ordered by
// effective time.
func (r *ParameterRepository) Timeline(ctx context.Context, accountID string) (*domain.ParameterTimeline, error) {
	rows, err := r.queries.GetParameterVersions(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.TimedParameters, 0, len(rows))
	for _, row := range rows {
		var params domain.Parameters
		if err := json.Unmarshal(row.Parameters, &params); err != nil {
			return nil, err
		}

		entries = append(entries, domain.TimedParameters{
			EffectiveAt: row.EffectiveAt.Time,
			Parameters:  params,
		})
	}

	return domain.NewParameterTimeline(entries...), nil
}
