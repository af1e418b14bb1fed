package engine

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
)

// EMIInput carries everything an amortiser needs to compute the equated
// installment.
type EMIInput struct {
	// Principal is the remaining interest-bearing principal, already
	// adjusted by overpayment and redraw balances.
	Principal decimal.Decimal

	// MonthlyRate is the periodic rate (annual / 12).
	MonthlyRate decimal.Decimal

	// RemainingTerm is the number of periods left.
	RemainingTerm int

	// LumpSum is a balloon amount excluded from the equated installments.
	// Zero for standard loans.
	LumpSum decimal.Decimal

	// Origination figures, used by the flat-interest variants.
	OriginalPrincipal decimal.Decimal
	AnnualRate        decimal.Decimal
	TermMonths        int

	// FixedEMI is the agreed partial installment for
	// minimum-repayment-with-balloon products.
	FixedEMI decimal.Decimal

	Precision int32
}

// TermInput carries the inputs for the remaining-term calculation.
type TermInput struct {
	Principal          decimal.Decimal
	MonthlyRate        decimal.Decimal
	EMI                decimal.Decimal
	TermMonths         int
	ElapsedTerm        int
	UseExpectedTerm    bool
	OverpaymentBalance decimal.Decimal
}

// Amortiser is one amortisation method. Selected once per invocation from
// the configured method; the variants are mutually exclusive.
type Amortiser interface {
	CalculateEMI(in EMIInput) decimal.Decimal
	TermDetails(in TermInput) (elapsed, remaining int)
}

// scheduledInterest is implemented by methods whose per-period interest is
// fixed at origination rather than accrued on the live balance.
type scheduledInterest interface {
	InterestPortion(in EMIInput, period int) decimal.Decimal
}

// ForMethod selects the amortiser for a configured method.
func ForMethod(method domain.AmortisationMethod) (Amortiser, error) {
	switch method {
	case domain.MethodDecliningPrincipal:
		return decliningPrincipal{}, nil
	case domain.MethodFlatInterest:
		return flatInterest{}, nil
	case domain.MethodRuleOf78:
		return flatInterest{ruleOf78: true}, nil
	case domain.MethodInterestOnly:
		return interestOnly{}, nil
	case domain.MethodNoRepayment:
		return noRepayment{}, nil
	case domain.MethodMinimumRepaymentBalloon:
		return minimumRepaymentBalloon{}, nil
	}

	return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedAmortisationMethod, method)
}

// decliningPrincipal implements the standard EMI formula
//
//	EMI = (P - L/(1+R)^N) * R * (1+R)^N / ((1+R)^N - 1)
type decliningPrincipal struct{}

func (decliningPrincipal) CalculateEMI(in EMIInput) decimal.Decimal {
	p := in.Principal

	// Nothing left to amortise over: the whole balance is due.
	if in.RemainingTerm <= 0 {
		return p.Round(in.Precision)
	}

	n := decimal.NewFromInt(int64(in.RemainingTerm))

	if in.MonthlyRate.IsZero() {
		return p.Sub(in.LumpSum).DivRound(n, in.Precision)
	}

	onePlusR := decimal.NewFromInt(1).Add(in.MonthlyRate)
	factor := onePlusR.Pow(n)

	adjusted := p
	if in.LumpSum.IsPositive() {
		adjusted = p.Sub(in.LumpSum.Div(factor))
	}

	emi := adjusted.Mul(in.MonthlyRate).Mul(factor).
		Div(factor.Sub(decimal.NewFromInt(1)))

	return emi.Round(in.Precision)
}

// TermDetails inverts the EMI formula:
//
//	N = ln(EMI / (EMI - P*R)) / ln(1+R)
//
// A partial period always counts as a full period. The pre-ceiling rounding
// uses 2 decimal places only while an overpayment balance is non-zero, else
// 0; an agreed product quirk, preserved as-is.
func (decliningPrincipal) TermDetails(in TermInput) (int, int) {
	elapsed := in.ElapsedTerm

	expected := in.TermMonths - elapsed
	if expected < 0 {
		expected = 0
	}

	if in.UseExpectedTerm {
		return elapsed, expected
	}

	// EMI of zero must short-circuit, never divide.
	if in.EMI.LessThanOrEqual(decimal.Zero) {
		return elapsed, 0
	}

	if in.Principal.LessThanOrEqual(decimal.Zero) {
		return elapsed, 0
	}

	if in.MonthlyRate.IsZero() {
		n := in.Principal.Div(in.EMI)
		return elapsed, ceilTerm(n, in.OverpaymentBalance)
	}

	periodInterest := in.Principal.Mul(in.MonthlyRate)
	if in.EMI.LessThanOrEqual(periodInterest) {
		// The installment does not cover interest; the balance never
		// amortises at this EMI. Report the contractual remainder.
		return elapsed, expected
	}

	ratio, _ := in.EMI.Div(in.EMI.Sub(periodInterest)).Float64()
	onePlusR, _ := decimal.NewFromInt(1).Add(in.MonthlyRate).Float64()

	n := math.Log(ratio) / math.Log(onePlusR)

	return elapsed, ceilTerm(decimal.NewFromFloat(n), in.OverpaymentBalance)
}

func ceilTerm(n, overpayment decimal.Decimal) int {
	var places int32
	if !overpayment.IsZero() {
		places = 2
	}

	remaining := int(n.Round(places).Ceil().IntPart())
	if remaining < 0 {
		return 0
	}

	return remaining
}

// flatInterest fixes total interest at origination and spreads it across the
// term, evenly or with rule-of-78 weighting.
type flatInterest struct {
	ruleOf78 bool
}

func (f flatInterest) totalInterest(in EMIInput) decimal.Decimal {
	years := decimal.NewFromInt(int64(in.TermMonths)).Div(decimal.NewFromInt(12))

	return in.OriginalPrincipal.Mul(in.AnnualRate).Mul(years).Round(in.Precision)
}

func (f flatInterest) CalculateEMI(in EMIInput) decimal.Decimal {
	if in.TermMonths <= 0 {
		return in.Principal.Round(in.Precision)
	}

	total := in.OriginalPrincipal.Add(f.totalInterest(in))

	return total.DivRound(decimal.NewFromInt(int64(in.TermMonths)), in.Precision)
}

// InterestPortion returns the interest share of the installment for a given
// 1-based period.
func (f flatInterest) InterestPortion(in EMIInput, period int) decimal.Decimal {
	if in.TermMonths <= 0 || period < 1 || period > in.TermMonths {
		return decimal.Zero
	}

	total := f.totalInterest(in)
	n := int64(in.TermMonths)

	if !f.ruleOf78 {
		return total.DivRound(decimal.NewFromInt(n), in.Precision)
	}

	// Rule of 78: period p carries weight (N - p + 1) / (N(N+1)/2).
	weight := decimal.NewFromInt(n - int64(period) + 1)
	denominator := decimal.NewFromInt(n * (n + 1) / 2)

	return total.Mul(weight).DivRound(denominator, in.Precision)
}

func (flatInterest) TermDetails(in TermInput) (int, int) {
	return expectedTermOnly(in)
}

// interestOnly defers all principal to a balloon payment; the installment
// covers accrued interest alone.
type interestOnly struct{}

func (interestOnly) CalculateEMI(EMIInput) decimal.Decimal {
	return decimal.Zero
}

func (interestOnly) TermDetails(in TermInput) (int, int) {
	return expectedTermOnly(in)
}

// noRepayment has no due events at all: principal and any uncapitalised
// interest fall due at the contractual end of term.
type noRepayment struct{}

func (noRepayment) CalculateEMI(EMIInput) decimal.Decimal {
	return decimal.Zero
}

func (noRepayment) TermDetails(in TermInput) (int, int) {
	return expectedTermOnly(in)
}

// minimumRepaymentBalloon charges an agreed partial installment; whatever it
// leaves unamortised falls due as the balloon.
type minimumRepaymentBalloon struct{}

func (minimumRepaymentBalloon) CalculateEMI(in EMIInput) decimal.Decimal {
	if in.FixedEMI.IsPositive() {
		return in.FixedEMI.Round(in.Precision)
	}

	// No agreed installment: solve the declining formula with the balloon
	// as the lump sum.
	return decliningPrincipal{}.CalculateEMI(in)
}

func (minimumRepaymentBalloon) TermDetails(in TermInput) (int, int) {
	return expectedTermOnly(in)
}

func expectedTermOnly(in TermInput) (int, int) {
	remaining := in.TermMonths - in.ElapsedTerm
	if remaining < 0 {
		remaining = 0
	}

	return in.ElapsedTerm, remaining
}
