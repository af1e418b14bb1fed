package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/engine"
)

// LendingUseCase orchestrates the pure decision engine against persistent
// state: it loads the snapshot, invokes the engine and commits the resulting
// postings, schedules and notifications atomically.
type LendingUseCase struct {
	engine       *engine.Engine
	txManager    TransactionManager
	loanRepo     LoanRepository
	paramRepo    ParameterRepository
	postingRepo  PostingRepository
	balanceRepo  BalanceRepository
	scheduleRepo ScheduleRepository
	flagRepo     FlagRepository
	refStore     ReferenceStore
	notifier     Notifier
	idGen        IDGenerator
}

// NewLendingUseCase creates a new LendingUseCase.
func NewLendingUseCase(
	eng *engine.Engine,
	txManager TransactionManager,
	loanRepo LoanRepository,
	paramRepo ParameterRepository,
	postingRepo PostingRepository,
	balanceRepo BalanceRepository,
	scheduleRepo ScheduleRepository,
	flagRepo FlagRepository,
	refStore ReferenceStore,
	notifier Notifier,
	idGen IDGenerator,
) *LendingUseCase {
	return &LendingUseCase{
		engine:       eng,
		txManager:    txManager,
		loanRepo:     loanRepo,
		paramRepo:    paramRepo,
		postingRepo:  postingRepo,
		balanceRepo:  balanceRepo,
		scheduleRepo: scheduleRepo,
		flagRepo:     flagRepo,
		refStore:     refStore,
		notifier:     notifier,
		idGen:        idGen,
	}
}

// OpenLoanInput represents input for opening a loan account.
type OpenLoanInput struct {
	Params domain.Parameters
}

// OpenLoan creates the account record and runs the activation hook:
// disbursement, tracker seeding and the initial schedule set.
func (uc *LendingUseCase) OpenLoan(ctx context.Context, input OpenLoanInput) (*domain.LoanAccount, error) {
	now := time.Now().UTC()

	params := input.Params
	if params.AccountID == "" {
		params.AccountID = uc.idGen.Generate()
	}
	if params.ActivatedAt.IsZero() {
		params.ActivatedAt = now
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	loan := &domain.LoanAccount{
		ID:           params.AccountID,
		Denomination: params.Denomination,
		Status:       domain.StatusOpen,
		ActivatedAt:  params.ActivatedAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.loanRepo.Create(ctx, tx, loan); err != nil {
		return nil, err
	}

	if err := uc.paramRepo.Save(ctx, tx, loan.ID, params.ActivatedAt, params); err != nil {
		return nil, err
	}

	result, err := uc.engine.Activate(engine.Snapshot{
		Params:   params,
		Policies: domain.NewPolicySet(),
		Balances: domain.NewBalanceSnapshot(loan.ID, params.Denomination),
		Now:      params.ActivatedAt,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.commitResult(ctx, tx, loan, result); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.publishNotifications(ctx, loan.ID, result)

	return loan, nil
}

// SubmitTransferInput represents one proposed transfer against a loan
// account.
type SubmitTransferInput struct {
	AccountID      string
	CounterpartyID string
	Amount         decimal.Decimal
	Type           string
	Reference      string
	ValueAt        *time.Time
}

// SubmitTransfer runs the full transfer pipeline: one-time reference claim,
// pre-transfer validation against live balances, settlement, and the
// post-transfer follow-on postings.
func (uc *LendingUseCase) SubmitTransfer(ctx context.Context, input SubmitTransferInput) (*domain.PostingInstruction, error) {
	if input.Reference != "" {
		claimed, err := uc.refStore.Claim(ctx, input.Reference, ReferenceTTL)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return nil, domain.ErrReferenceAlreadyUsed
		}
	}

	now := time.Now().UTC()
	valueAt := now
	if input.ValueAt != nil {
		valueAt = *input.ValueAt
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	loan, err := uc.loanRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if !loan.Active() {
		return nil, domain.ErrAccountNotOpen
	}

	snap, err := uc.snapshotForUpdate(ctx, tx, loan, now)
	if err != nil {
		return nil, err
	}

	transfer := uc.buildTransfer(loan, input, valueAt)

	if err := uc.engine.ValidateTransfer(snap, []engine.TransferInput{transfer}); err != nil {
		return nil, err
	}

	settlement := &domain.PostingInstruction{
		ID:          uc.idGen.Generate(),
		Event:       "transfer_" + input.Type,
		Description: input.Type + " of " + input.Amount.StringFixed(2),
		ValueAt:     valueAt,
		Movements:   []domain.Movement{transfer.Movement},
	}

	if err := uc.commitPosting(ctx, tx, loan.ID, settlement); err != nil {
		return nil, err
	}
	snap.Balances.Apply(settlement)

	result, err := uc.engine.ApplyTransfer(snap, transfer)
	if err != nil {
		return nil, err
	}

	if err := uc.commitResult(ctx, tx, loan, result); err != nil {
		return nil, err
	}

	// An overpayment may re-amortise under the reduce-EMI preference; the
	// follow-on runs on the post-distribution balances.
	if transfer.Type == engine.TransferRepayment {
		for _, posting := range result.Postings {
			snap.Balances.Apply(posting)
		}

		followOn, err := uc.engine.ReamortiseForOverpayment(snap)
		if err != nil {
			return nil, err
		}
		if err := uc.commitResult(ctx, tx, loan, followOn); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.publishNotifications(ctx, loan.ID, result)

	return settlement, nil
}

func (uc *LendingUseCase) buildTransfer(loan *domain.LoanAccount, input SubmitTransferInput, valueAt time.Time) engine.TransferInput {
	movement := domain.Movement{
		Amount:       input.Amount,
		Denomination: loan.Denomination,
	}

	if input.Type == engine.TransferRepayment {
		movement.Debit = domain.Leg{AccountID: input.CounterpartyID, Address: domain.AddressDefault, Phase: domain.PhaseCommitted}
		movement.Credit = domain.Leg{AccountID: loan.ID, Address: domain.AddressDefault, Phase: domain.PhaseCommitted}
	} else {
		movement.Debit = domain.Leg{AccountID: loan.ID, Address: domain.AddressDefault, Phase: domain.PhaseCommitted}
		movement.Credit = domain.Leg{AccountID: input.CounterpartyID, Address: domain.AddressDefault, Phase: domain.PhaseCommitted}
	}

	return engine.TransferInput{
		Movement:  movement,
		Type:      input.Type,
		Reference: input.Reference,
	}
}

// RunScheduledEvent executes one scheduled event for an account. The fired
// row never stays due: self-renewing events carry their next occurrence in
// the engine result, one-shot events are removed once delivered.
func (uc *LendingUseCase) RunScheduledEvent(ctx context.Context, accountID string, event domain.EventType, at time.Time) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	loan, err := uc.loanRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return err
	}
	if !loan.Active() {
		return domain.ErrAccountNotOpen
	}

	snap, err := uc.snapshotForUpdate(ctx, tx, loan, at)
	if err != nil {
		return err
	}

	var result *engine.Result
	switch event {
	case domain.EventAccrueInterest:
		result, err = uc.engine.AccrueInterest(snap)
	case domain.EventCalculateDue:
		result, err = uc.engine.CalculateDue(snap)
	case domain.EventCheckOverdue:
		result, err = uc.engine.CheckOverdue(snap)
	case domain.EventCheckDelinquency:
		result, err = uc.engine.CheckDelinquency(snap)
	case domain.EventBalloonPayment:
		result, err = uc.engine.BalloonPayment(snap)
	default:
		return domain.ErrMissingParameter
	}
	if err != nil {
		return err
	}

	if !reschedules(result, event) {
		// A zero NextRunAt deletes the row.
		if err := uc.scheduleRepo.Upsert(ctx, tx, loan.ID, domain.ScheduleEvent{Type: event}); err != nil {
			return err
		}
	}

	if err := uc.commitResult(ctx, tx, loan, result); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.publishNotifications(ctx, loan.ID, result)

	return nil
}

func reschedules(result *engine.Result, event domain.EventType) bool {
	for _, s := range result.Schedules {
		if s.Type == event {
			return true
		}
	}

	return false
}

// RunDueSchedules sweeps every schedule entry due before the cutoff.
func (uc *LendingUseCase) RunDueSchedules(ctx context.Context, before time.Time) (int, error) {
	jobs, err := uc.scheduleRepo.ListDue(ctx, before, ScheduleBatchSize)
	if err != nil {
		return 0, err
	}

	ran := 0
	for _, job := range jobs {
		if err := uc.RunScheduledEvent(ctx, job.AccountID, job.Type, job.RunAt); err != nil {
			return ran, err
		}
		ran++
	}

	return ran, nil
}

// UpdateParameters appends a new parameter snapshot and runs the change
// hook: schedule moves, top-up disbursement, re-amortisation.
func (uc *LendingUseCase) UpdateParameters(ctx context.Context, accountID string, params domain.Parameters, effectiveAt time.Time) error {
	if err := params.Validate(); err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	loan, err := uc.loanRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return err
	}
	if !loan.Active() {
		return domain.ErrAccountNotOpen
	}

	timeline, err := uc.paramRepo.Timeline(ctx, accountID)
	if err != nil {
		return err
	}
	old, err := timeline.AsOf(effectiveAt)
	if err != nil {
		return err
	}

	if err := uc.paramRepo.Save(ctx, tx, accountID, effectiveAt, params); err != nil {
		return err
	}

	snap, err := uc.snapshotForUpdate(ctx, tx, loan, effectiveAt)
	if err != nil {
		return err
	}
	snap.Params = params

	result, err := uc.engine.OnParameterChange(snap, old)
	if err != nil {
		return err
	}

	if err := uc.commitResult(ctx, tx, loan, result); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// DerivedParameters computes the read-only figures for an account as of now.
func (uc *LendingUseCase) DerivedParameters(ctx context.Context, accountID string) (*engine.DerivedParameters, error) {
	loan, err := uc.loanRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	snap, err := uc.snapshot(ctx, loan, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return uc.engine.Derive(snap)
}

// GetLoan returns the account record.
func (uc *LendingUseCase) GetLoan(ctx context.Context, accountID string) (*domain.LoanAccount, error) {
	return uc.loanRepo.GetByID(ctx, accountID)
}

// ListLoans lists loan accounts with pagination.
func (uc *LendingUseCase) ListLoans(ctx context.Context, limit, offset int) ([]*domain.LoanAccount, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return uc.loanRepo.List(ctx, limit, offset)
}

// Postings returns committed posting instructions for an account, newest
// first.
func (uc *LendingUseCase) Postings(ctx context.Context, accountID string, limit, offset int) ([]*domain.PostingInstruction, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	if _, err := uc.loanRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	return uc.postingRepo.ListByAccount(ctx, accountID, limit, offset)
}

// AddFlag records a policy flag window for an account.
func (uc *LendingUseCase) AddFlag(ctx context.Context, accountID string, flag domain.Flag, from time.Time, until *time.Time) error {
	if _, err := uc.loanRepo.GetByID(ctx, accountID); err != nil {
		return err
	}

	return uc.flagRepo.Add(ctx, accountID, flag, from, until)
}

// Balances returns the live balance snapshot for an account.
func (uc *LendingUseCase) Balances(ctx context.Context, accountID string) (*domain.BalanceSnapshot, error) {
	loan, err := uc.loanRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return uc.balanceRepo.Snapshot(ctx, loan.ID, loan.Denomination)
}

// CloseLoan deactivates a settled account, netting residual trackers.
func (uc *LendingUseCase) CloseLoan(ctx context.Context, accountID string) error {
	return uc.terminate(ctx, accountID, domain.StatusClosed,
		func(snap engine.Snapshot) (*engine.Result, error) {
			return uc.engine.Close(snap)
		})
}

// WriteOffLoan administratively clears remaining debt and closes the
// account.
func (uc *LendingUseCase) WriteOffLoan(ctx context.Context, accountID string) error {
	return uc.terminate(ctx, accountID, domain.StatusWrittenOff,
		func(snap engine.Snapshot) (*engine.Result, error) {
			return uc.engine.WriteOff(snap)
		})
}

func (uc *LendingUseCase) terminate(ctx context.Context, accountID string, status domain.AccountStatus, run func(engine.Snapshot) (*engine.Result, error)) error {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	loan, err := uc.loanRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return err
	}
	if !loan.Active() {
		return domain.ErrAccountNotOpen
	}

	snap, err := uc.snapshotForUpdate(ctx, tx, loan, now)
	if err != nil {
		return err
	}

	result, err := run(snap)
	if err != nil {
		return err
	}

	if err := uc.commitResult(ctx, tx, loan, result); err != nil {
		return err
	}

	if err := uc.loanRepo.UpdateStatus(ctx, tx, loan.ID, status, now); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.publishNotifications(ctx, loan.ID, result)

	return nil
}

// snapshot assembles the engine input from persistent state.
func (uc *LendingUseCase) snapshot(ctx context.Context, loan *domain.LoanAccount, at time.Time) (engine.Snapshot, error) {
	timeline, err := uc.paramRepo.Timeline(ctx, loan.ID)
	if err != nil {
		return engine.Snapshot{}, err
	}

	params, err := timeline.AsOf(at)
	if err != nil {
		return engine.Snapshot{}, err
	}

	policies, err := uc.flagRepo.PolicySet(ctx, loan.ID)
	if err != nil {
		return engine.Snapshot{}, err
	}

	balances, err := uc.balanceRepo.Snapshot(ctx, loan.ID, loan.Denomination)
	if err != nil {
		return engine.Snapshot{}, err
	}

	return engine.Snapshot{
		Params:   params,
		Policies: policies,
		Balances: balances,
		Now:      at,
	}, nil
}

func (uc *LendingUseCase) snapshotForUpdate(ctx context.Context, tx Transaction, loan *domain.LoanAccount, at time.Time) (engine.Snapshot, error) {
	timeline, err := uc.paramRepo.Timeline(ctx, loan.ID)
	if err != nil {
		return engine.Snapshot{}, err
	}

	params, err := timeline.AsOf(at)
	if err != nil {
		return engine.Snapshot{}, err
	}

	policies, err := uc.flagRepo.PolicySet(ctx, loan.ID)
	if err != nil {
		return engine.Snapshot{}, err
	}

	balances, err := uc.balanceRepo.SnapshotForUpdate(ctx, tx, loan.ID, loan.Denomination)
	if err != nil {
		return engine.Snapshot{}, err
	}

	return engine.Snapshot{
		Params:   params,
		Policies: policies,
		Balances: balances,
		Now:      at,
	}, nil
}

// commitResult persists every part of an engine result inside the open
// transaction. Notifications are delivered only after commit.
func (uc *LendingUseCase) commitResult(ctx context.Context, tx Transaction, loan *domain.LoanAccount, result *engine.Result) error {
	for _, posting := range result.Postings {
		if posting.ID == "" {
			posting.ID = uc.idGen.Generate()
		}

		if err := uc.commitPosting(ctx, tx, loan.ID, posting); err != nil {
			return err
		}
	}

	for _, event := range result.Schedules {
		if err := uc.scheduleRepo.Upsert(ctx, tx, loan.ID, event); err != nil {
			return err
		}
	}

	if result.CloseAccount && loan.Status == domain.StatusOpen {
		if err := uc.loanRepo.UpdateStatus(ctx, tx, loan.ID, domain.StatusClosed, time.Now().UTC()); err != nil {
			return err
		}
	}

	return nil
}

func (uc *LendingUseCase) commitPosting(ctx context.Context, tx Transaction, accountID string, posting *domain.PostingInstruction) error {
	if err := posting.Validate(); err != nil {
		return err
	}

	if err := uc.postingRepo.Create(ctx, tx, accountID, posting); err != nil {
		return err
	}

	return uc.balanceRepo.ApplyPosting(ctx, tx, accountID, posting)
}

// publishNotifications is best-effort: a failed delivery never unwinds the
// committed postings.
func (uc *LendingUseCase) publishNotifications(ctx context.Context, accountID string, result *engine.Result) {
	for _, n := range result.Notifications {
		_ = uc.notifier.Publish(ctx, accountID, n.Type, n.Details)
	}
}
