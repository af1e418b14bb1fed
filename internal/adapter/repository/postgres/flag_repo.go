package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/infrastructure/postgres/generated"
)

// FlagRepository implements usecase.FlagRepository. Flag windows are plain
// append-only rows; the policy set is rebuilt from them on every read.
type FlagRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewFlagRepository creates a new FlagRepository.
func NewFlagRepository(pool *pgxpool.Pool) *FlagRepository {
	return &FlagRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// PolicySet resolves every recorded flag window for an account.
func (r *FlagRepository) PolicySet(ctx context.Context, accountID string) (*domain.PolicySet, error) {
	rows, err := r.queries.GetAccountFlags(ctx, accountID)
	if err != nil {
		return nil, err
	}

	policies := domain.NewPolicySet()
	for _, row := range rows {
		var until *time.Time
		if row.ActiveUntil.Valid {
			t := row.ActiveUntil.Time
			until = &t
		}

		policies.Add(domain.Flag(row.Flag), row.ActiveFrom.Time, until)
	}

	return policies, nil
}

// Add records an activation window for a flag.
func (r *FlagRepository) Add(ctx context.Context, accountID string, flag domain.Flag, from time.Time, until *time.Time) error {
	activeUntil := pgtype.Timestamptz{}
	if until != nil {
		activeUntil = timeToPgTimestamptz(*until)
	}

	_, err := r.queries.CreateAccountFlag(ctx, generated.CreateAccountFlagParams{
		AccountID:   accountID,
		Flag:        string(flag),
		ActiveFrom:  timeToPgTimestamptz(from),
		ActiveUntil: activeUntil,
		CreatedAt:   timeToPgTimestamptz(time.Now().UTC()),
	})

	return err
}
