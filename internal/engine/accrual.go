package engine

import (
	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
)

// AccrueInterest runs the daily accrual event: regular interest on the
// effective principal and, while any balance is overdue, penalty interest.
// The event renews itself for the next day.
func (e *Engine) AccrueInterest(snap Snapshot) (*Result, error) {
	result := &Result{}
	p := snap.Params

	regular, err := e.regularAccrual(snap)
	if err != nil {
		return nil, err
	}
	result.addPosting(regular)

	penalty, err := e.penaltyAccrual(snap)
	if err != nil {
		return nil, err
	}
	result.addPosting(penalty)

	result.Schedules = append(result.Schedules, domain.ScheduleEvent{
		Type:      domain.EventAccrueInterest,
		NextRunAt: nextScheduleTime(snap.Now, p.ScheduleHour, p.ScheduleMinute),
	})

	return result, nil
}

// EffectivePrincipal is the interest-bearing balance: principal less any
// overpayment and redraw funds, which both sit as non-positive adjustments.
func EffectivePrincipal(balances *domain.BalanceSnapshot) decimal.Decimal {
	return balances.Get(domain.AddressPrincipal).
		Add(balances.Get(domain.AddressOverpayment)).
		Add(balances.Get(domain.AddressRedraw))
}

func (e *Engine) regularAccrual(snap Snapshot) (*domain.PostingInstruction, error) {
	p := snap.Params

	var base decimal.Decimal
	switch p.AccrualRest {
	case domain.RestMonthly:
		base = snap.Balances.Get(domain.AddressMonthlyRestPrincipal)
	default:
		base = EffectivePrincipal(snap.Balances)
	}

	rate, err := DailyRate(p.AnnualInterestRate, p.DayCount, snap.Now)
	if err != nil {
		return nil, err
	}

	accrual := AccrueAmount(base, rate, p.AccrualPrecision)
	if accrual.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	b := domain.NewInstructionBuilder(
		eventAccrueInterest,
		"daily interest accrued at "+rate.String()+" on "+base.StringFixed(2),
		p.Denomination, p.AccrualPrecision, snap.Now,
	)
	b.Move(accrual,
		loanLeg(&p, domain.AddressAccruedInterest),
		defaultLeg(p.InterestIncomeAccountID),
	)

	return b.Build(), nil
}

func (e *Engine) penaltyAccrual(snap Snapshot) (*domain.PostingInstruction, error) {
	p := snap.Params

	if snap.Policies.IsActive(domain.FlagBlockPenaltyAccrual, snap.Now) {
		return nil, nil
	}

	// Penalty interest stops the instant the overdue balance reaches zero.
	base := snap.Balances.Get(domain.AddressPrincipalOverdue)
	if p.PenaltyCompoundsInterest {
		base = base.Add(snap.Balances.Get(domain.AddressInterestOverdue))
	}

	if base.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	annual := p.PenaltyRate
	if p.PenaltyIncludesBaseRate {
		annual = annual.Add(p.AnnualInterestRate)
	}

	rate, err := DailyRate(annual, p.DayCount, snap.Now)
	if err != nil {
		return nil, err
	}

	// Penalty interest is charged at fulfilment precision, not accrued at
	// the finer accrual scale.
	amount := AccrueAmount(base, rate, p.FulfilmentPrecision)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	b := domain.NewInstructionBuilder(
		eventAccruePenalty,
		"penalty interest on overdue balance "+base.StringFixed(2),
		p.Denomination, p.FulfilmentPrecision, snap.Now,
	)

	if p.PenaltyCapitalised {
		// Capitalised penalties increase principal; the tracker keeps the
		// capitalised total visible for closure netting.
		b.Move(amount,
			loanLeg(&p, domain.AddressPrincipal),
			defaultLeg(p.PenaltyIncomeAccountID),
		)
		b.AdjustTracker(p.AccountID, domain.AddressCapitalisedPenalties,
			decimal.Zero, amount)
	} else {
		b.Move(amount,
			loanLeg(&p, domain.AddressPenalties),
			defaultLeg(p.PenaltyIncomeAccountID),
		)
	}

	return b.Build(), nil
}
