package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/infrastructure/postgres/generated"
	"github.com/khrisnaSoluix/lending-engine/internal/usecase"
)

// BalanceRepository implements usecase.BalanceRepository. One row per
// (account, address, denomination, phase); ApplyPosting adds the movement
// deltas so the row always carries the running value.
type BalanceRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Snapshot loads the committed balances of an account.
func (r *BalanceRepository) Snapshot(ctx context.Context, accountID, denomination string) (*domain.BalanceSnapshot, error) {
	rows, err := r.queries.GetBalancesByAccount(ctx, generated.GetBalancesByAccountParams{
		AccountID:    accountID,
		Denomination: denomination,
	})
	if err != nil {
		return nil, err
	}

	return rowsToSnapshot(accountID, denomination, rows), nil
}

// SnapshotForUpdate loads the balances of an account with FOR UPDATE locks,
// serialising concurrent engine invocations on the same account.
func (r *BalanceRepository) SnapshotForUpdate(ctx context.Context, tx usecase.Transaction, accountID, denomination string) (*domain.BalanceSnapshot, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	rows, err := queries.GetBalancesByAccountForUpdate(ctx, generated.GetBalancesByAccountForUpdateParams{
		AccountID:    accountID,
		Denomination: denomination,
	})
	if err != nil {
		return nil, err
	}

	return rowsToSnapshot(accountID, denomination, rows), nil
}

// ApplyPosting adds an instruction's movements to the stored balances of one
// account. A debit leg raises the address, a credit leg lowers it. Legs on
// other accounts, the deposit or income side of a movement, belong to an
// external ledger and are not stored here.
func (r *BalanceRepository) ApplyPosting(ctx context.Context, tx usecase.Transaction, accountID string, posting *domain.PostingInstruction) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	now := time.Now().UTC()
	for _, delta := range accountDeltas(accountID, posting) {
		err := queries.ApplyBalanceDelta(ctx, generated.ApplyBalanceDeltaParams{
			AccountID:    accountID,
			Address:      string(delta.address),
			Denomination: delta.denomination,
			Phase:        string(delta.phase),
			Amount:       decimalToNumeric(delta.amount),
			UpdatedAt:    timeToPgTimestamptz(now),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

type balanceDelta struct {
	address      domain.Address
	denomination string
	phase        domain.Phase
	amount       decimal.Decimal
}

// accountDeltas folds an instruction's movements into the signed deltas that
// touch one account.
func accountDeltas(accountID string, posting *domain.PostingInstruction) []balanceDelta {
	var deltas []balanceDelta
	for _, m := range posting.Movements {
		if m.Debit.AccountID == accountID {
			deltas = append(deltas, balanceDelta{
				address:      m.Debit.Address,
				denomination: m.Denomination,
				phase:        m.Debit.Phase,
				amount:       m.Amount,
			})
		}

		if m.Credit.AccountID == accountID {
			deltas = append(deltas, balanceDelta{
				address:      m.Credit.Address,
				denomination: m.Denomination,
				phase:        m.Credit.Phase,
				amount:       m.Amount.Neg(),
			})
		}
	}

	return deltas
}

func rowsToSnapshot(accountID, denomination string, rows []generated.Balance) *domain.BalanceSnapshot {
	snap := domain.NewBalanceSnapshot(accountID, denomination)
	for _, row := range rows {
		snap.SetPhase(domain.Address(row.Address), domain.Phase(row.Phase), numericToDecimal(row.Amount))
	}

	return snap
}
