package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/usecase"
)

// FeeScheduleRequest configures one percentage-plus-flat fee.
type FeeScheduleRequest struct {
	Rate  decimal.Decimal `json:"rate"`
	Flat  decimal.Decimal `json:"flat"`
	Cap   decimal.Decimal `json:"cap"`
	Floor decimal.Decimal `json:"floor"`
}

func (r FeeScheduleRequest) toDomain() domain.FeeSchedule {
	return domain.FeeSchedule{
		Rate:  r.Rate,
		Flat:  r.Flat,
		Cap:   r.Cap,
		Floor: r.Floor,
	}
}

// LoanParametersRequest is the full parameter document for a loan account.
type LoanParametersRequest struct {
	AccountID    string `json:"account_id,omitempty"`
	Denomination string `json:"denomination"`

	Principal          decimal.Decimal `json:"principal"`
	TermMonths         int             `json:"term_months"`
	RepaymentDay       int             `json:"repayment_day"`
	AnnualInterestRate decimal.Decimal `json:"annual_interest_rate"`
	InterestRateType   string          `json:"interest_rate_type"`
	AmortisationMethod string          `json:"amortisation_method"`
	AccrualRest        string          `json:"accrual_rest"`
	DayCount           string          `json:"day_count"`

	OverpaymentImpact string `json:"overpayment_impact,omitempty"`
	HolidayImpact     string `json:"holiday_impact,omitempty"`

	OverpaymentFeeRate    decimal.Decimal     `json:"overpayment_fee_rate"`
	EarlyRepaymentFeeRate decimal.Decimal     `json:"early_repayment_fee_rate"`
	EarlyRepaymentFlatFee decimal.Decimal     `json:"early_repayment_flat_fee"`
	LateRepaymentFee      decimal.Decimal     `json:"late_repayment_fee"`
	UpfrontFee            decimal.Decimal     `json:"upfront_fee"`
	BalanceTransferFee    *FeeScheduleRequest `json:"balance_transfer_fee,omitempty"`
	CashAdvanceFee        *FeeScheduleRequest `json:"cash_advance_fee,omitempty"`

	PenaltyRate              decimal.Decimal `json:"penalty_rate"`
	PenaltyIncludesBaseRate  bool            `json:"penalty_includes_base_rate"`
	PenaltyCompoundsInterest bool            `json:"penalty_compounds_interest"`
	PenaltyCapitalised       bool            `json:"penalty_capitalised"`

	BalloonAmount      decimal.Decimal `json:"balloon_amount"`
	BalloonPaymentDate *time.Time      `json:"balloon_payment_date,omitempty"`
	BalloonDeltaDays   int             `json:"balloon_delta_days"`
	FixedEMIAmount     decimal.Decimal `json:"fixed_emi_amount"`

	CreditLimit   decimal.Decimal `json:"credit_limit"`
	RedrawEnabled bool            `json:"redraw_enabled"`

	RepaymentPeriodDays int  `json:"repayment_period_days"`
	GracePeriodDays     int  `json:"grace_period_days"`
	OverrideFinalEvent  bool `json:"override_final_event"`

	AccrualPrecision    int32 `json:"accrual_precision"`
	FulfilmentPrecision int32 `json:"fulfilment_precision"`

	DepositAccountID        string `json:"deposit_account_id"`
	InterestIncomeAccountID string `json:"interest_income_account_id"`
	FeeIncomeAccountID      string `json:"fee_income_account_id"`
	PenaltyIncomeAccountID  string `json:"penalty_income_account_id"`
	WriteOffAccountID       string `json:"write_off_account_id"`

	ScheduleHour   int `json:"schedule_hour"`
	ScheduleMinute int `json:"schedule_minute"`

	RepaymentHierarchy []string `json:"repayment_hierarchy,omitempty"`

	ActivatedAt *time.Time `json:"activated_at,omitempty"`
}

// ToDomain converts the request document into engine parameters.
func (r *LoanParametersRequest) ToDomain() domain.Parameters {
	params := domain.Parameters{
		AccountID:    r.AccountID,
		Denomination: r.Denomination,

		Principal:          r.Principal,
		TermMonths:         r.TermMonths,
		RepaymentDay:       r.RepaymentDay,
		AnnualInterestRate: r.AnnualInterestRate,
		InterestRateType:   domain.InterestRateType(r.InterestRateType),
		AmortisationMethod: domain.AmortisationMethod(r.AmortisationMethod),
		AccrualRest:        domain.AccrualRest(r.AccrualRest),
		DayCount:           domain.DayCountConvention(r.DayCount),

		OverpaymentImpact: domain.ImpactPreference(r.OverpaymentImpact),
		HolidayImpact:     domain.ImpactPreference(r.HolidayImpact),

		OverpaymentFeeRate:    r.OverpaymentFeeRate,
		EarlyRepaymentFeeRate: r.EarlyRepaymentFeeRate,
		EarlyRepaymentFlatFee: r.EarlyRepaymentFlatFee,
		LateRepaymentFee:      r.LateRepaymentFee,
		UpfrontFee:            r.UpfrontFee,

		PenaltyRate:              r.PenaltyRate,
		PenaltyIncludesBaseRate:  r.PenaltyIncludesBaseRate,
		PenaltyCompoundsInterest: r.PenaltyCompoundsInterest,
		PenaltyCapitalised:       r.PenaltyCapitalised,

		BalloonAmount:      r.BalloonAmount,
		BalloonPaymentDate: r.BalloonPaymentDate,
		BalloonDeltaDays:   r.BalloonDeltaDays,
		FixedEMIAmount:     r.FixedEMIAmount,

		CreditLimit:   r.CreditLimit,
		RedrawEnabled: r.RedrawEnabled,

		RepaymentPeriodDays: r.RepaymentPeriodDays,
		GracePeriodDays:     r.GracePeriodDays,
		OverrideFinalEvent:  r.OverrideFinalEvent,

		AccrualPrecision:    r.AccrualPrecision,
		FulfilmentPrecision: r.FulfilmentPrecision,

		DepositAccountID:        r.DepositAccountID,
		InterestIncomeAccountID: r.InterestIncomeAccountID,
		FeeIncomeAccountID:      r.FeeIncomeAccountID,
		PenaltyIncomeAccountID:  r.PenaltyIncomeAccountID,
		WriteOffAccountID:       r.WriteOffAccountID,

		ScheduleHour:   r.ScheduleHour,
		ScheduleMinute: r.ScheduleMinute,
	}

	if r.BalanceTransferFee != nil {
		params.BalanceTransferFee = r.BalanceTransferFee.toDomain()
	}
	if r.CashAdvanceFee != nil {
		params.CashAdvanceFee = r.CashAdvanceFee.toDomain()
	}

	for _, address := range r.RepaymentHierarchy {
		params.RepaymentHierarchy = append(params.RepaymentHierarchy, domain.Address(address))
	}

	if r.ActivatedAt != nil {
		params.ActivatedAt = *r.ActivatedAt
	}

	return params
}

// OpenLoanRequest represents a request to open a loan account.
type OpenLoanRequest struct {
	Parameters LoanParametersRequest `json:"parameters"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenLoanRequest) ToUseCaseInput() usecase.OpenLoanInput {
	return usecase.OpenLoanInput{Params: r.Parameters.ToDomain()}
}

// UpdateParametersRequest represents a parameter change for an open account.
type UpdateParametersRequest struct {
	Parameters  LoanParametersRequest `json:"parameters"`
	EffectiveAt *time.Time            `json:"effective_at,omitempty"`
}

// SubmitTransferRequest represents a request to move funds against a loan
// account.
type SubmitTransferRequest struct {
	AccountID      string          `json:"account_id"`
	CounterpartyID string          `json:"counterparty_id"`
	Amount         decimal.Decimal `json:"amount"`
	Type           string          `json:"type"`
	Reference      string          `json:"reference,omitempty"`
	ValueAt        *time.Time      `json:"value_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *SubmitTransferRequest) ToUseCaseInput() usecase.SubmitTransferInput {
	return usecase.SubmitTransferInput{
		AccountID:      r.AccountID,
		CounterpartyID: r.CounterpartyID,
		Amount:         r.Amount,
		Type:           r.Type,
		Reference:      r.Reference,
		ValueAt:        r.ValueAt,
	}
}

// AddFlagRequest represents an activation window for a policy flag.
type AddFlagRequest struct {
	Flag  string     `json:"flag"`
	From  time.Time  `json:"from"`
	Until *time.Time `json:"until,omitempty"`
}

// RunSchedulesRequest triggers the schedule sweep up to a cutoff.
type RunSchedulesRequest struct {
	Before *time.Time `json:"before,omitempty"`
}
