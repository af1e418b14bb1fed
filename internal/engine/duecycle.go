package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
)

// CalculateDue runs the monthly due-amount event: fold accrued interest into
// interest due, move the principal portion of the installment to principal
// due, and hand back the next schedule occurrences.
//
// Re-delivery of the same event is recognised through the due-calculation
// counter: when the counter already matches the elapsed term the invocation
// is a no-op.
func (e *Engine) CalculateDue(snap Snapshot) (*Result, error) {
	result := &Result{}
	p := snap.Params

	amortiser, err := ForMethod(p.AmortisationMethod)
	if err != nil {
		return nil, err
	}

	elapsed := domain.ElapsedDueEvents(p.ActivatedAt, snap.Now, p.RepaymentDay)
	counter := snap.Balances.Get(domain.AddressDueCalculationCount)

	if counter.GreaterThanOrEqual(decimal.NewFromInt(int64(elapsed))) {
		// Already processed for this period; the event still advances.
		e.scheduleNextDue(snap, result)
		return result, nil
	}

	if p.AmortisationMethod == domain.MethodNoRepayment {
		// No due events; just account for the period.
		b := domain.NewInstructionBuilder(eventCalculateDue, "due event counted",
			p.Denomination, p.FulfilmentPrecision, snap.Now)
		b.AdjustTracker(p.AccountID, domain.AddressDueCalculationCount,
			counter, counter.Add(decimal.NewFromInt(1)))
		result.addPosting(b.Build())
		e.scheduleNextDue(snap, result)

		return result, nil
	}

	if snap.Policies.IsActive(domain.FlagRepaymentHoliday, snap.Now) {
		return e.holidayDueCycle(snap, counter)
	}

	b := domain.NewInstructionBuilder(eventCalculateDue,
		"monthly due amount calculation", p.Denomination, p.FulfilmentPrecision, snap.Now)

	// A holiday that ended since the last cycle leaves pending interest to
	// capitalise before anything else.
	pending := snap.Balances.Get(domain.AddressPendingCapitalisation)
	reamortise := false

	if pending.IsPositive() {
		b.Transfer(p.AccountID, pending,
			domain.AddressPendingCapitalisation, domain.AddressPrincipal)
		b.AdjustTracker(p.AccountID, domain.AddressCapitalisedInterest,
			decimal.Zero, pending.Round(p.FulfilmentPrecision))

		if p.HolidayImpact == domain.ImpactIncreaseEMI {
			reamortise = true
		}
	}

	principal := snap.Balances.Get(domain.AddressPrincipal).
		Add(pending.Round(p.FulfilmentPrecision))
	effective := EffectivePrincipal(snap.Balances).
		Add(pending.Round(p.FulfilmentPrecision))

	// Interest application: the accrued balance is charged at fulfilment
	// precision; the sub-cent remainder stays behind for the next cycle.
	interestDue := e.interestDueAmount(snap, amortiser, int(counter.IntPart())+1)
	e.applyInterest(&p, b, snap.Balances.Get(domain.AddressAccruedInterest), interestDue)

	// EMI is recomputed only on a genuine trigger: the very first cycle, or
	// a holiday ending with an increase-EMI preference. Rate changes and
	// overpayment impact run through their own hooks.
	emi := snap.Balances.Get(domain.AddressEMI)
	if emi.IsZero() || reamortise {
		newEMI := amortiser.CalculateEMI(e.emiInput(&p, effective, p.TermMonths-int(counter.IntPart())))
		b.AdjustTracker(p.AccountID, domain.AddressEMI, emi, newEMI)
		emi = newEMI
	}

	finalEvent := int(counter.IntPart())+1 >= p.TermMonths

	var principalDue decimal.Decimal
	if finalEvent && !p.OverrideFinalEvent {
		// The last event consumes the entire remaining principal.
		principalDue = principal
	} else {
		principalDue = decimal.Min(emi.Sub(interestDue), principal)
	}

	if principalDue.IsPositive() {
		b.Transfer(p.AccountID, principalDue.Round(p.FulfilmentPrecision),
			domain.AddressPrincipal, domain.AddressPrincipalDue)
	}

	// Monthly-rest accrual base for the next period.
	b.AdjustTracker(p.AccountID, domain.AddressMonthlyRestPrincipal,
		snap.Balances.Get(domain.AddressMonthlyRestPrincipal),
		principal.Sub(principalDue).Round(p.FulfilmentPrecision))

	b.AdjustTracker(p.AccountID, domain.AddressDueCalculationCount,
		counter, counter.Add(decimal.NewFromInt(1)))

	result.addPosting(b.Build())

	result.Notifications = append(result.Notifications, Notification{
		Type: NoticeRepaymentDue,
		Details: map[string]string{
			"account_id":    p.AccountID,
			"principal_due": principalDue.Round(p.FulfilmentPrecision).String(),
			"interest_due":  interestDue.String(),
			"total_due":     principalDue.Add(interestDue).Round(p.FulfilmentPrecision).String(),
		},
	})

	e.scheduleNextDue(snap, result)
	result.Schedules = append(result.Schedules, domain.ScheduleEvent{
		Type:      domain.EventCheckOverdue,
		NextRunAt: snap.Now.AddDate(0, 0, p.RepaymentPeriodDays),
	})

	if finalEvent {
		result.Schedules = append(result.Schedules, domain.ScheduleEvent{
			Type:      domain.EventBalloonPayment,
			NextRunAt: e.balloonDate(snap),
		})
	}

	return result, nil
}

// holidayDueCycle parks accrued interest for capitalisation instead of
// charging it; no due amounts move while the blocking flag is active.
func (e *Engine) holidayDueCycle(snap Snapshot, counter decimal.Decimal) (*Result, error) {
	result := &Result{}
	p := snap.Params

	b := domain.NewInstructionBuilder(eventCapitalise,
		"repayment holiday: interest parked for capitalisation",
		p.Denomination, p.AccrualPrecision, snap.Now)

	accrued := snap.Balances.Get(domain.AddressAccruedInterest)
	if accrued.IsPositive() {
		b.Transfer(p.AccountID, accrued,
			domain.AddressAccruedInterest, domain.AddressPendingCapitalisation)
	}

	b.AdjustTracker(p.AccountID, domain.AddressDueCalculationCount,
		counter, counter.Add(decimal.NewFromInt(1)))

	result.addPosting(b.Build())
	e.scheduleNextDue(snap, result)

	return result, nil
}

// interestDueAmount resolves the interest portion of the cycle: accrual-based
// methods fold the live accrued balance, flat methods take the origination
// schedule's portion for this period.
func (e *Engine) interestDueAmount(snap Snapshot, amortiser Amortiser, period int) decimal.Decimal {
	p := snap.Params

	if scheduled, ok := amortiser.(scheduledInterest); ok {
		return scheduled.InterestPortion(e.emiInput(&p, EffectivePrincipal(snap.Balances), p.TermMonths), period)
	}

	return snap.Balances.Get(domain.AddressAccruedInterest).Round(p.FulfilmentPrecision)
}

// applyInterest moves the charged portion out of the accrual bucket. The
// accrual side is drawn no deeper than its floor at fulfilment precision;
// any rounding shortfall, and any scheduled excess over what has accrued
// (flat methods), is charged directly against interest income.
func (e *Engine) applyInterest(p *domain.Parameters, b *domain.InstructionBuilder, accrued, interestDue decimal.Decimal) {
	if interestDue.LessThanOrEqual(decimal.Zero) {
		return
	}

	fromAccrual := decimal.Min(interestDue, accrued.RoundDown(p.FulfilmentPrecision))
	b.Transfer(p.AccountID, fromAccrual,
		domain.AddressAccruedInterest, domain.AddressInterestDue)

	excess := interestDue.Sub(fromAccrual)
	if excess.IsPositive() {
		b.Move(excess,
			loanLeg(p, domain.AddressInterestDue),
			defaultLeg(p.InterestIncomeAccountID),
		)
	}
}

func (e *Engine) emiInput(p *domain.Parameters, principal decimal.Decimal, remainingTerm int) EMIInput {
	return EMIInput{
		Principal:         principal,
		MonthlyRate:       p.MonthlyRate(),
		RemainingTerm:     remainingTerm,
		LumpSum:           p.BalloonAmount,
		OriginalPrincipal: p.Principal,
		AnnualRate:        p.AnnualInterestRate,
		TermMonths:        p.TermMonths,
		FixedEMI:          p.FixedEMIAmount,
		Precision:         p.FulfilmentPrecision,
	}
}

func (e *Engine) scheduleNextDue(snap Snapshot, result *Result) {
	p := snap.Params
	result.Schedules = append(result.Schedules, domain.ScheduleEvent{
		Type:      domain.EventCalculateDue,
		NextRunAt: domain.NextDueCalculation(snap.Now, p.RepaymentDay, p.ScheduleHour, p.ScheduleMinute),
	})
}

// balloonDate resolves where the balloon payment lands: a fixed date, N days
// after the final regular due event, or immediately at end of term.
func (e *Engine) balloonDate(snap Snapshot) time.Time {
	p := snap.Params

	if p.BalloonPaymentDate != nil {
		return *p.BalloonPaymentDate
	}

	return snap.Now.AddDate(0, 0, p.BalloonDeltaDays)
}
