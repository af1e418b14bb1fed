package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// AmortisationMethod selects how installments and interest are computed.
type AmortisationMethod string

const (
	MethodDecliningPrincipal      AmortisationMethod = "declining_principal"
	MethodFlatInterest            AmortisationMethod = "flat_interest"
	MethodRuleOf78                AmortisationMethod = "rule_of_78"
	MethodInterestOnly            AmortisationMethod = "interest_only"
	MethodNoRepayment             AmortisationMethod = "no_repayment"
	MethodMinimumRepaymentBalloon AmortisationMethod = "minimum_repayment_with_balloon"
)

// Valid reports whether the method is one of the supported variants.
func (m AmortisationMethod) Valid() bool {
	switch m {
	case MethodDecliningPrincipal, MethodFlatInterest, MethodRuleOf78,
		MethodInterestOnly, MethodNoRepayment, MethodMinimumRepaymentBalloon:
		return true
	}

	return false
}

// DayCountConvention fixes the denominator for the daily interest rate.
type DayCountConvention string

const (
	DayCount360    DayCountConvention = "360"
	DayCount365    DayCountConvention = "365"
	DayCount366    DayCountConvention = "366"
	DayCountActual DayCountConvention = "actual"
)

// DaysInYear resolves the convention for the year containing t. "actual"
// resolves to 366 in leap years, 365 otherwise.
func (c DayCountConvention) DaysInYear(t time.Time) (int, error) {
	switch c {
	case DayCount360:
		return 360, nil
	case DayCount365:
		return 365, nil
	case DayCount366:
		return 366, nil
	case DayCountActual:
		year := t.Year()
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 366, nil
		}

		return 365, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedDayCount, c)
}

// AccrualRest selects the principal basis for periodic interest.
type AccrualRest string

const (
	// RestDaily accrues on the live end-of-day principal.
	RestDaily AccrualRest = "daily"
	// RestMonthly accrues on the principal as of the previous due-amount
	// calculation, held constant for the whole period.
	RestMonthly AccrualRest = "monthly"
)

// ImpactPreference states how an overpayment or an ending repayment holiday
// affects the contract.
type ImpactPreference string

const (
	ImpactReduceTerm   ImpactPreference = "reduce_term"
	ImpactReduceEMI    ImpactPreference = "reduce_emi"
	ImpactIncreaseTerm ImpactPreference = "increase_term"
	ImpactIncreaseEMI  ImpactPreference = "increase_emi"
)

// InterestRateType distinguishes fixed from variable pricing. A change of
// type is a re-amortization trigger.
type InterestRateType string

const (
	RateFixed    InterestRateType = "fixed"
	RateVariable InterestRateType = "variable"
)

// FeeSchedule is a percentage-plus-flat fee with optional cap and floor.
// A zero Cap means uncapped.
type FeeSchedule struct {
	Rate  decimal.Decimal
	Flat  decimal.Decimal
	Cap   decimal.Decimal
	Floor decimal.Decimal
}

// Compute returns the fee for a base amount, rounded to the precision.
func (f FeeSchedule) Compute(base decimal.Decimal, precision int32) decimal.Decimal {
	fee := base.Mul(f.Rate).Add(f.Flat)

	if f.Cap.IsPositive() && fee.GreaterThan(f.Cap) {
		fee = f.Cap
	}

	if fee.LessThan(f.Floor) {
		fee = f.Floor
	}

	return fee.Round(precision)
}

// Parameters is the configuration snapshot the host hands the engine with
// every invocation. It is read-only to the engine.
type Parameters struct {
	AccountID    string
	Denomination string

	// Contract terms
	Principal          decimal.Decimal
	TermMonths         int
	RepaymentDay       int
	AnnualInterestRate decimal.Decimal
	InterestRateType   InterestRateType
	AmortisationMethod AmortisationMethod
	AccrualRest        AccrualRest
	DayCount           DayCountConvention

	// Impact preferences
	OverpaymentImpact ImpactPreference
	HolidayImpact     ImpactPreference

	// Fees
	OverpaymentFeeRate    decimal.Decimal
	EarlyRepaymentFeeRate decimal.Decimal
	EarlyRepaymentFlatFee decimal.Decimal
	LateRepaymentFee      decimal.Decimal
	UpfrontFee            decimal.Decimal
	BalanceTransferFee    FeeSchedule
	CashAdvanceFee        FeeSchedule

	// Penalty interest
	PenaltyRate              decimal.Decimal
	PenaltyIncludesBaseRate  bool
	PenaltyCompoundsInterest bool
	PenaltyCapitalised       bool

	// Balloon configuration
	BalloonAmount      decimal.Decimal
	BalloonPaymentDate *time.Time
	BalloonDeltaDays   int
	FixedEMIAmount     decimal.Decimal

	// Revolving terms
	CreditLimit   decimal.Decimal
	RedrawEnabled bool

	// Delinquency timing
	RepaymentPeriodDays int
	GracePeriodDays     int

	// Due-amount behaviour
	OverrideFinalEvent bool

	// Precision
	AccrualPrecision    int32
	FulfilmentPrecision int32

	// Host routing
	DepositAccountID        string
	InterestIncomeAccountID string
	FeeIncomeAccountID      string
	PenaltyIncomeAccountID  string
	WriteOffAccountID       string

	// Schedule timing
	ScheduleHour   int
	ScheduleMinute int

	// Allocation order for incoming repayments
	RepaymentHierarchy RepaymentHierarchy

	ActivatedAt time.Time
}

// Validate rejects misconfiguration the engine cannot recover from at
// runtime.
func (p *Parameters) Validate() error {
	if p.AccountID == "" || p.Denomination == "" {
		return fmt.Errorf("%w: account id and denomination", ErrMissingParameter)
	}

	if !p.AmortisationMethod.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedAmortisationMethod, p.AmortisationMethod)
	}

	if _, err := p.DayCount.DaysInYear(time.Now()); err != nil {
		return err
	}

	if p.TermMonths <= 0 && p.AmortisationMethod != MethodNoRepayment {
		return fmt.Errorf("%w: term must be positive", ErrMissingParameter)
	}

	if p.RepaymentDay < 1 || p.RepaymentDay > 31 {
		return fmt.Errorf("%w: repayment day %d", ErrMissingParameter, p.RepaymentDay)
	}

	return nil
}

// MonthlyRate derives the periodic rate from the annual rate.
func (p *Parameters) MonthlyRate() decimal.Decimal {
	return p.AnnualInterestRate.Div(decimal.NewFromInt(12))
}

// Hierarchy returns the configured repayment hierarchy, or the standard one
// when the product does not override it.
func (p *Parameters) Hierarchy() RepaymentHierarchy {
	if len(p.RepaymentHierarchy) > 0 {
		return p.RepaymentHierarchy
	}

	return StandardHierarchy
}

// TimedParameters pins a parameter snapshot to the instant it became
// effective.
type TimedParameters struct {
	EffectiveAt time.Time
	Parameters  Parameters
}

// ParameterTimeline resolves "the parameter value as of datetime T" for
// historical recomputation.
type ParameterTimeline struct {
	entries []TimedParameters
}

// NewParameterTimeline builds a timeline sorted by effective time.
func NewParameterTimeline(entries ...TimedParameters) *ParameterTimeline {
	sorted := make([]TimedParameters, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EffectiveAt.Before(sorted[j].EffectiveAt)
	})

	return &ParameterTimeline{entries: sorted}
}

// Append records a new snapshot taking effect at t.
func (tl *ParameterTimeline) Append(t time.Time, p Parameters) {
	tl.entries = append(tl.entries, TimedParameters{EffectiveAt: t, Parameters: p})
	sort.Slice(tl.entries, func(i, j int) bool {
		return tl.entries[i].EffectiveAt.Before(tl.entries[j].EffectiveAt)
	})
}

// AsOf returns the snapshot effective at t. The earliest snapshot applies to
// any instant before it.
func (tl *ParameterTimeline) AsOf(t time.Time) (Parameters, error) {
	if len(tl.entries) == 0 {
		return Parameters{}, fmt.Errorf("%w: empty parameter timeline", ErrMissingParameter)
	}

	current := tl.entries[0].Parameters
	for _, e := range tl.entries[1:] {
		if e.EffectiveAt.After(t) {
			break
		}

		current = e.Parameters
	}

	return current, nil
}
