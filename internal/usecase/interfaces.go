package usecase

import (
	"context"
	"time"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
)

// LoanRepository defines data access for loan accounts.
type LoanRepository interface {
	Create(ctx context.Context, tx Transaction, loan *domain.LoanAccount) error
	GetByID(ctx context.Context, id string) (*domain.LoanAccount, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.LoanAccount, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.AccountStatus, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.LoanAccount, error)
}

// ParameterRepository stores parameter snapshots as a timeline per account.
type ParameterRepository interface {
	Save(ctx context.Context, tx Transaction, accountID string, effectiveAt time.Time, params domain.Parameters) error
	Timeline(ctx context.Context, accountID string) (*domain.ParameterTimeline, error)
}

// PostingRepository persists committed posting instructions.
type PostingRepository interface {
	Create(ctx context.Context, tx Transaction, accountID string, posting *domain.PostingInstruction) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.PostingInstruction, error)
}

// BalanceRepository maintains the running balance per address. Only the
// given account's legs are persisted; the host side of a movement lives in
// an external ledger.
type BalanceRepository interface {
	Snapshot(ctx context.Context, accountID, denomination string) (*domain.BalanceSnapshot, error)
	SnapshotForUpdate(ctx context.Context, tx Transaction, accountID, denomination string) (*domain.BalanceSnapshot, error)
	ApplyPosting(ctx context.Context, tx Transaction, accountID string, posting *domain.PostingInstruction) error
}

// ScheduleRepository owns the next-run bookkeeping for recurring events.
type ScheduleRepository interface {
	Upsert(ctx context.Context, tx Transaction, accountID string, event domain.ScheduleEvent) error
	ListDue(ctx context.Context, before time.Time, limit int) ([]*ScheduledJob, error)
}

// ScheduledJob is one event instance picked up by the schedule runner.
type ScheduledJob struct {
	AccountID string
	Type      domain.EventType
	RunAt     time.Time
}

// FlagRepository resolves the active policy flags for an account.
type FlagRepository interface {
	PolicySet(ctx context.Context, accountID string) (*domain.PolicySet, error)
	Add(ctx context.Context, accountID string, flag domain.Flag, from time.Time, until *time.Time) error
}

// ReferenceStore claims one-time client transaction references. A reference
// that was already claimed must be rejected for the retention window.
type ReferenceStore interface {
	Claim(ctx context.Context, reference string, ttl time.Duration) (bool, error)
}

// Notifier delivers engine notifications to the host's channels.
type Notifier interface {
	Publish(ctx context.Context, accountID, noticeType string, details map[string]string) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
