package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
)

// Activate opens the account: disburse the principal to the deposit account,
// charge the upfront fee onto the balance, seed the EMI and accrual-base
// trackers and hand back the initial schedule set.
func (e *Engine) Activate(snap Snapshot) (*Result, error) {
	result := &Result{}
	p := snap.Params

	if err := p.Validate(); err != nil {
		return nil, err
	}

	amortiser, err := ForMethod(p.AmortisationMethod)
	if err != nil {
		return nil, err
	}

	b := domain.NewInstructionBuilder(eventActivation,
		"loan disbursement", p.Denomination, p.FulfilmentPrecision, snap.Now)

	b.Move(p.Principal,
		loanLeg(&p, domain.AddressPrincipal),
		defaultLeg(p.DepositAccountID),
	)

	if p.UpfrontFee.IsPositive() {
		// The fee is financed: it joins the principal balance.
		b.Move(p.UpfrontFee,
			loanLeg(&p, domain.AddressPrincipal),
			defaultLeg(p.FeeIncomeAccountID),
		)
	}

	opening := p.Principal.Add(p.UpfrontFee)

	emi := amortiser.CalculateEMI(e.emiInput(&p, opening, p.TermMonths))
	b.AdjustTracker(p.AccountID, domain.AddressEMI, decimal.Zero, emi)
	b.AdjustTracker(p.AccountID, domain.AddressMonthlyRestPrincipal,
		decimal.Zero, opening)

	result.addPosting(b.Build())

	result.Schedules = []domain.ScheduleEvent{
		{
			Type:      domain.EventAccrueInterest,
			NextRunAt: nextScheduleTime(snap.Now, p.ScheduleHour, p.ScheduleMinute),
		},
		{
			Type:      domain.EventCalculateDue,
			NextRunAt: domain.NextDueCalculation(snap.Now, p.RepaymentDay, p.ScheduleHour, p.ScheduleMinute),
		},
	}

	if p.BalloonPaymentDate != nil {
		result.Schedules = append(result.Schedules, domain.ScheduleEvent{
			Type:      domain.EventBalloonPayment,
			NextRunAt: *p.BalloonPaymentDate,
		})
	}

	return result, nil
}

// TransferInput is one accepted or proposed movement plus its classifying
// metadata.
type TransferInput struct {
	Movement  domain.Movement
	Type      string
	Reference string
}

// Transfer type metadata values.
const (
	TransferRepayment       = "repayment"
	TransferPurchase        = "purchase"
	TransferCashAdvance     = "cash_advance"
	TransferBalanceTransfer = "balance_transfer"
	TransferRedraw          = "redraw"
)

// ValidateTransfer is the pre-transfer hook: accept (nil) or reject with a
// reason. All limit checks run against the live snapshot, never value-dated
// balances, so a back-dated posting cannot double-spend.
func (e *Engine) ValidateTransfer(snap Snapshot, inputs []TransferInput) error {
	p := snap.Params

	if len(inputs) != 1 {
		return domain.ErrMultipleInstructions
	}

	in := inputs[0]
	m := in.Movement

	if m.Denomination != p.Denomination {
		return domain.ErrWrongDenomination
	}

	if err := domain.ValidateMovementAmount(m.Amount); err != nil {
		return err
	}

	if e.isInbound(&p, m) {
		return e.validateRepayment(snap, m.Amount)
	}

	if domain.RestrictedAddresses[m.Debit.Address] && m.Debit.AccountID == p.AccountID {
		return domain.ErrRestrictedAddress
	}

	return e.validateWithdrawal(snap, in)
}

func (e *Engine) isInbound(p *domain.Parameters, m domain.Movement) bool {
	return m.Credit.AccountID == p.AccountID && m.Credit.Address == domain.AddressDefault
}

// validateRepayment rejects an overpayment the product cannot absorb before
// the transfer settles, never partially applying it.
func (e *Engine) validateRepayment(snap Snapshot, amount decimal.Decimal) error {
	p := snap.Params

	if amount.Equal(EarlyRepaymentTotal(&p, snap.Balances)) {
		return nil
	}

	plan := PlanDistribution(snap.Balances, p.Hierarchy(), amount, p.FulfilmentPrecision)
	if !plan.Overpayment.IsPositive() {
		return nil
	}

	remainingPrincipal := EffectivePrincipal(snap.Balances)
	if plan.Overpayment.GreaterThan(MaxOverpayment(remainingPrincipal, p.OverpaymentFeeRate)) {
		return domain.ErrOverpaymentExceedsDebt
	}

	return nil
}

// validateWithdrawal checks outbound funds against redraw availability and
// the credit limit, using live balances.
func (e *Engine) validateWithdrawal(snap Snapshot, in TransferInput) error {
	p := snap.Params
	amount := in.Movement.Amount

	if in.Type == TransferRedraw {
		available := snap.Balances.Get(domain.AddressRedraw).Neg()
		if !p.RedrawEnabled || amount.GreaterThan(available) {
			return domain.ErrExceedsOverdraft
		}

		return nil
	}

	if !p.CreditLimit.IsPositive() {
		return domain.ErrDrawdownsNotPermitted
	}

	outstanding := snap.Balances.TotalOutstandingDebt()
	if outstanding.Add(amount).GreaterThan(p.CreditLimit) {
		return domain.ErrExceedsCreditLimit
	}

	return nil
}

// ApplyTransfer is the post-transfer hook: the host has committed the
// movement, the engine emits the follow-on postings.
func (e *Engine) ApplyTransfer(snap Snapshot, in TransferInput) (*Result, error) {
	p := snap.Params

	if e.isInbound(&p, in.Movement) {
		return e.HandleRepayment(snap, in.Movement.Amount)
	}

	return e.applyWithdrawal(snap, in)
}

// applyWithdrawal consolidates outbound funds onto the right bucket and
// charges the per-type fee schedule.
func (e *Engine) applyWithdrawal(snap Snapshot, in TransferInput) (*Result, error) {
	result := &Result{}
	p := snap.Params
	amount := in.Movement.Amount

	b := domain.NewInstructionBuilder(eventTransferFees,
		in.Type+" of "+amount.StringFixed(2),
		p.Denomination, p.FulfilmentPrecision, snap.Now)

	if in.Type == TransferRedraw {
		b.Transfer(p.AccountID, amount, domain.AddressDefault, domain.AddressRedraw)
		result.addPosting(b.Build())

		return result, nil
	}

	// Purchases and advances become principal.
	b.Transfer(p.AccountID, amount, domain.AddressDefault, domain.AddressPrincipal)

	var fee decimal.Decimal
	switch in.Type {
	case TransferBalanceTransfer:
		fee = p.BalanceTransferFee.Compute(amount, p.FulfilmentPrecision)
	case TransferCashAdvance:
		fee = p.CashAdvanceFee.Compute(amount, p.FulfilmentPrecision)
	}

	if fee.IsPositive() {
		b.Move(fee,
			loanLeg(&p, domain.AddressPrincipal),
			defaultLeg(p.FeeIncomeAccountID),
		)
	}

	result.addPosting(b.Build())

	return result, nil
}

// OnParameterChange reacts to a host parameter update: repayment-day moves
// reschedule the due event, a principal top-up disburses the delta, and a
// rate-type flip re-amortises.
func (e *Engine) OnParameterChange(snap Snapshot, old domain.Parameters) (*Result, error) {
	result := &Result{}
	p := snap.Params

	if p.RepaymentDay != old.RepaymentDay {
		lastRun := previousDueDate(snap.Now, old.RepaymentDay)
		result.Schedules = append(result.Schedules, domain.ScheduleEvent{
			Type:      domain.EventCalculateDue,
			NextRunAt: domain.DueCalculationAfterDayChange(lastRun, p.RepaymentDay, p.ScheduleHour, p.ScheduleMinute),
		})
	}

	reamortise := p.InterestRateType != old.InterestRateType
	delta := decimal.Zero

	if p.Principal.GreaterThan(old.Principal) {
		// Top-up consolidation: the increase is a fresh disbursement.
		delta = p.Principal.Sub(old.Principal)

		b := domain.NewInstructionBuilder(eventTopUp,
			"principal top-up of "+delta.StringFixed(2),
			p.Denomination, p.FulfilmentPrecision, snap.Now)
		b.Move(delta,
			loanLeg(&p, domain.AddressPrincipal),
			defaultLeg(p.DepositAccountID),
		)
		result.addPosting(b.Build())

		reamortise = true
	}

	if reamortise {
		posting, err := e.reamortise(snap, delta)
		if err != nil {
			return nil, err
		}
		result.addPosting(posting)
	}

	return result, nil
}

// ReamortiseForOverpayment applies the reduce-EMI impact preference after an
// overpayment. With the default reduce-term preference the EMI is left
// untouched.
func (e *Engine) ReamortiseForOverpayment(snap Snapshot) (*Result, error) {
	result := &Result{}

	if snap.Params.OverpaymentImpact != domain.ImpactReduceEMI {
		return result, nil
	}

	posting, err := e.reamortise(snap, decimal.Zero)
	if err != nil {
		return nil, err
	}
	result.addPosting(posting)

	return result, nil
}

// reamortise recomputes the EMI over the remaining term. principalDelta
// covers a disbursement emitted in the same result, not yet visible in the
// balance snapshot.
func (e *Engine) reamortise(snap Snapshot, principalDelta decimal.Decimal) (*domain.PostingInstruction, error) {
	p := snap.Params

	amortiser, err := ForMethod(p.AmortisationMethod)
	if err != nil {
		return nil, err
	}

	elapsed := int(snap.Balances.Get(domain.AddressDueCalculationCount).IntPart())
	remaining := p.TermMonths - elapsed
	if remaining < 0 {
		remaining = 0
	}

	current := snap.Balances.Get(domain.AddressEMI)
	effective := EffectivePrincipal(snap.Balances).Add(principalDelta)
	target := amortiser.CalculateEMI(e.emiInput(&p, effective, remaining))

	b := domain.NewInstructionBuilder(eventReamortisation,
		"EMI recomputed", p.Denomination, p.FulfilmentPrecision, snap.Now)
	b.AdjustTracker(p.AccountID, domain.AddressEMI, current, target)

	return b.Build(), nil
}

// Close is the deactivation hook: reject while debt or redraw funds remain,
// else net out every tracking address.
func (e *Engine) Close(snap Snapshot) (*Result, error) {
	result := &Result{}
	p := snap.Params

	if snap.Balances.TotalOutstandingDebt().Round(p.FulfilmentPrecision).IsPositive() {
		return nil, domain.ErrOutstandingDebt
	}

	if snap.Balances.Get(domain.AddressRedraw).IsNegative() {
		return nil, domain.ErrOutstandingRedraw
	}

	b := domain.NewInstructionBuilder(eventClosure,
		"residual tracking addresses netted to zero",
		p.Denomination, p.FulfilmentPrecision, snap.Now)

	trackers := []domain.Address{
		domain.AddressEMI,
		domain.AddressMonthlyRestPrincipal,
		domain.AddressDueCalculationCount,
		domain.AddressCapitalisedInterest,
		domain.AddressCapitalisedPenalties,
	}

	for _, tracker := range trackers {
		b.AdjustTracker(p.AccountID, tracker,
			snap.Balances.Get(tracker), decimal.Zero)
	}

	result.addPosting(b.Build())

	// Sub-cent accrued interest survives the outstanding-debt check; it nets
	// against interest income in either direction.
	accrued := snap.Balances.Get(domain.AddressAccruedInterest)
	if !accrued.IsZero() {
		w := domain.NewInstructionBuilder(eventClosure,
			"accrued interest residue netted",
			p.Denomination, p.AccrualPrecision, snap.Now)
		if accrued.IsPositive() {
			w.Move(accrued,
				defaultLeg(p.InterestIncomeAccountID),
				loanLeg(&p, domain.AddressAccruedInterest),
			)
		} else {
			w.Move(accrued.Neg(),
				loanLeg(&p, domain.AddressAccruedInterest),
				defaultLeg(p.InterestIncomeAccountID),
			)
		}
		result.addPosting(w.Build())
	}

	return result, nil
}

func nextScheduleTime(after time.Time, hour, minute int) time.Time {
	candidate := time.Date(after.Year(), after.Month(), after.Day(), hour, minute, 0, 0, after.Location())
	if candidate.After(after) {
		return candidate
	}

	return candidate.AddDate(0, 0, 1)
}

// previousDueDate finds the most recent repayment-day occurrence at or
// before now.
func previousDueDate(now time.Time, day int) time.Time {
	candidate := clampedToMonth(now.Year(), now.Month(), day, now.Location())
	if candidate.After(now) {
		prev := now.AddDate(0, -1, 0)
		return clampedToMonth(prev.Year(), prev.Month(), day, now.Location())
	}

	return candidate
}

func clampedToMonth(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
