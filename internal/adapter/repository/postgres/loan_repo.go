package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/infrastructure/postgres/generated"
	"github.com/khrisnaSoluix/lending-engine/internal/usecase"
)

// LoanRepository implements usecase.LoanRepository.
type LoanRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLoanRepository creates a new LoanRepository.
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new loan account within a transaction.
func (r *LoanRepository) Create(ctx context.Context, tx usecase.Transaction, loan *domain.LoanAccount) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateLoan(ctx, generated.CreateLoanParams{
		ID:           loan.ID,
		Denomination: loan.Denomination,
		Status:       string(loan.Status),
		ActivatedAt:  timeToPgTimestamptz(loan.ActivatedAt),
		CreatedAt:    timeToPgTimestamptz(loan.CreatedAt),
		UpdatedAt:    timeToPgTimestamptz(loan.UpdatedAt),
	})

	return err
}

// GetByID retrieves a loan account by ID.
func (r *LoanRepository) GetByID(ctx context.Context, id string) (*domain.LoanAccount, error) {
	row, err := r.queries.GetLoanByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToLoan(row), nil
}

// GetByIDForUpdate retrieves a loan account by ID with a FOR UPDATE lock.
func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.LoanAccount, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetLoanByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToLoan(row), nil
}

// UpdateStatus updates the lifecycle status of a loan account.
func (r *LoanRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.AccountStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateLoanStatus(ctx, generated.UpdateLoanStatusParams{
		ID:        id,
		Status:    string(status),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// List lists loan accounts with pagination.
func (r *LoanRepository) List(ctx context.Context, limit, offset int) ([]*domain.LoanAccount, error) {
	rows, err := r.queries.ListLoans(ctx, generated.ListLoansParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	loans := make([]*domain.LoanAccount, 0, len(rows))
	for _, row := range rows {
		loans = append(loans, rowToLoan(row))
	}

	return loans, nil
}

func rowToLoan(row generated.Loan) *domain.LoanAccount {
	var closedAt *time.Time
	if row.ClosedAt.Valid {
		t := row.ClosedAt.Time
		closedAt = &t
	}

	return &domain.LoanAccount{
		ID:           row.ID,
		Denomination: row.Denomination,
		Status:       domain.AccountStatus(row.Status),
		ActivatedAt:  row.ActivatedAt.Time,
		ClosedAt:     closedAt,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
