package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
)

// DerivedParameters are the read-only figures the host can ask for at any
// instant without mutating anything.
type DerivedParameters struct {
	NextRepaymentDate    time.Time
	ElapsedTerm          int
	RemainingTerm        int
	TotalOutstandingDebt decimal.Decimal
	EarlyRepaymentTotal  decimal.Decimal
	EMI                  decimal.Decimal
	ExpectedBalloon      decimal.Decimal
}

// Derive computes the derived parameter set from a snapshot.
func (e *Engine) Derive(snap Snapshot) (*DerivedParameters, error) {
	p := snap.Params

	amortiser, err := ForMethod(p.AmortisationMethod)
	if err != nil {
		return nil, err
	}

	emi := snap.Balances.Get(domain.AddressEMI)
	overpayment := snap.Balances.Get(domain.AddressOverpayment).
		Add(snap.Balances.Get(domain.AddressRedraw))

	elapsed, remaining := amortiser.TermDetails(TermInput{
		Principal:          EffectivePrincipal(snap.Balances),
		MonthlyRate:        p.MonthlyRate(),
		EMI:                emi,
		TermMonths:         p.TermMonths,
		ElapsedTerm:        int(snap.Balances.Get(domain.AddressDueCalculationCount).IntPart()),
		UseExpectedTerm:    p.OverpaymentImpact == domain.ImpactReduceEMI,
		OverpaymentBalance: overpayment,
	})

	return &DerivedParameters{
		NextRepaymentDate:    domain.NextDueCalculation(snap.Now, p.RepaymentDay, p.ScheduleHour, p.ScheduleMinute),
		ElapsedTerm:          elapsed,
		RemainingTerm:        remaining,
		TotalOutstandingDebt: snap.Balances.TotalOutstandingDebt().Round(p.FulfilmentPrecision),
		EarlyRepaymentTotal:  EarlyRepaymentTotal(&p, snap.Balances),
		EMI:                  emi,
		ExpectedBalloon:      e.expectedBalloon(snap, remaining),
	}, nil
}

// expectedBalloon projects the lump sum left at end of term for the
// balloon-bearing methods. Zero for fully amortising products.
func (e *Engine) expectedBalloon(snap Snapshot, remaining int) decimal.Decimal {
	p := snap.Params
	principal := EffectivePrincipal(snap.Balances)

	switch p.AmortisationMethod {
	case domain.MethodInterestOnly, domain.MethodNoRepayment:
		return principal.Round(p.FulfilmentPrecision)

	case domain.MethodMinimumRepaymentBalloon:
		if !p.FixedEMIAmount.IsPositive() {
			return p.BalloonAmount
		}

		// Future value of the balance less the installments paid into it:
		//	balloon = P*(1+R)^N - EMI*((1+R)^N - 1)/R
		r := p.MonthlyRate()
		n := decimal.NewFromInt(int64(remaining))

		if r.IsZero() {
			projected := principal.Sub(p.FixedEMIAmount.Mul(n))
			if projected.IsNegative() {
				return decimal.Zero
			}

			return projected.Round(p.FulfilmentPrecision)
		}

		factor := decimal.NewFromInt(1).Add(r).Pow(n)
		paid := p.FixedEMIAmount.Mul(factor.Sub(decimal.NewFromInt(1))).Div(r)

		projected := principal.Mul(factor).Sub(paid)
		if projected.IsNegative() {
			return decimal.Zero
		}

		return projected.Round(p.FulfilmentPrecision)
	}

	return decimal.Zero
}
