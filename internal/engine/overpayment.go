package engine

import (
	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
)

// EarlyRepaymentFee is the product-specific fee for paying the loan off
// early: flat, balance-proportional, or both (zero when unconfigured).
func EarlyRepaymentFee(p *domain.Parameters, balances *domain.BalanceSnapshot) decimal.Decimal {
	proportional := EffectivePrincipal(balances).Mul(p.EarlyRepaymentFeeRate)

	return proportional.Add(p.EarlyRepaymentFlatFee).Round(p.FulfilmentPrecision)
}

// EarlyRepaymentTotal is the exact amount that settles the account in full:
// every debt bucket plus the early-repayment fee, at the live snapshot.
func EarlyRepaymentTotal(p *domain.Parameters, balances *domain.BalanceSnapshot) decimal.Decimal {
	debt := balances.TotalOutstandingDebt().Round(p.FulfilmentPrecision)

	return debt.Add(EarlyRepaymentFee(p, balances))
}

// HandleRepayment processes an inward payment that has settled on DEFAULT:
// either an early full repayment, or an ordinary distribution across the
// hierarchy with any remainder treated as overpayment.
func (e *Engine) HandleRepayment(snap Snapshot, amount decimal.Decimal) (*Result, error) {
	result := &Result{}
	p := snap.Params

	if amount.LessThanOrEqual(decimal.Zero) {
		return result, nil
	}

	// A repayment is an early full repayment iff it exactly matches total
	// outstanding debt plus fees at the live balances.
	if amount.Equal(EarlyRepaymentTotal(&p, snap.Balances)) {
		return e.earlyFullRepayment(snap, amount)
	}

	plan := PlanDistribution(snap.Balances, p.Hierarchy(), amount, p.FulfilmentPrecision)

	if plan.Overpayment.IsPositive() {
		remainingPrincipal := EffectivePrincipal(snap.Balances)
		if plan.Overpayment.GreaterThan(MaxOverpayment(remainingPrincipal, p.OverpaymentFeeRate)) {
			// Guarded again here, though the pre-transfer check should
			// have rejected it before settlement.
			return nil, domain.ErrOverpaymentExceedsDebt
		}
	}

	result.Postings = e.distributeRepayment(snap, plan)

	return result, nil
}

// earlyFullRepayment clears every debt bucket, waives the unapplied accrual
// remainder, charges the early-repayment fee and signals closure
// eligibility.
func (e *Engine) earlyFullRepayment(snap Snapshot, amount decimal.Decimal) (*Result, error) {
	result := &Result{}
	p := snap.Params

	b := domain.NewInstructionBuilder(eventEarlyRepayment,
		"early full repayment of "+amount.StringFixed(2),
		p.Denomination, p.FulfilmentPrecision, snap.Now)

	// Clear debt buckets against the settled funds on DEFAULT. The
	// overpayment adjustment is negative and unwinds in the opposite
	// direction.
	for _, address := range domain.DebtAddresses {
		balance := snap.Balances.Get(address)

		switch {
		case balance.IsPositive():
			b.Transfer(p.AccountID, balance.Round(p.FulfilmentPrecision),
				address, domain.AddressDefault)
		case balance.IsNegative():
			b.Transfer(p.AccountID, balance.Neg().Round(p.FulfilmentPrecision),
				domain.AddressDefault, address)
		}
	}

	fee := EarlyRepaymentFee(&p, snap.Balances)
	if fee.IsPositive() {
		b.Move(fee,
			defaultLeg(p.AccountID),
			defaultLeg(p.FeeIncomeAccountID),
		)
	}

	result.addPosting(b.Build())

	// The sub-cent accrual remainder beyond fulfilment precision is waived,
	// never collected. When the accrued balance rounded up, the settlement
	// collected slightly more than was accrued; the excess nets against
	// interest income so the address lands on exactly zero.
	accrued := snap.Balances.Get(domain.AddressAccruedInterest)
	remainder := accrued.Sub(accrued.Round(p.FulfilmentPrecision))
	if !remainder.IsZero() {
		w := domain.NewInstructionBuilder(eventEarlyRepayment,
			"accrued interest remainder waived",
			p.Denomination, p.AccrualPrecision, snap.Now)
		if remainder.IsPositive() {
			w.Move(remainder,
				defaultLeg(p.InterestIncomeAccountID),
				loanLeg(&p, domain.AddressAccruedInterest),
			)
		} else {
			w.Move(remainder.Neg(),
				loanLeg(&p, domain.AddressAccruedInterest),
				defaultLeg(p.InterestIncomeAccountID),
			)
		}
		result.addPosting(w.Build())
	}

	result.CloseAccount = true
	result.Notifications = append(result.Notifications, Notification{
		Type: NoticeClosureEligible,
		Details: map[string]string{
			"account_id": p.AccountID,
			"amount":     amount.StringFixed(2),
		},
	})

	return result, nil
}
