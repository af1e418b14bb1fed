package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/engine"
)

func testParams() domain.Parameters {
	return domain.Parameters{
		AccountID:    "loan-1",
		Denomination: "USD",

		Principal:          decimal.NewFromInt(100000),
		TermMonths:         12,
		RepaymentDay:       28,
		AnnualInterestRate: decimal.NewFromFloat(0.12),
		InterestRateType:   domain.RateFixed,
		AmortisationMethod: domain.MethodDecliningPrincipal,
		AccrualRest:        domain.RestDaily,
		DayCount:           domain.DayCount365,

		OverpaymentImpact: domain.ImpactReduceTerm,
		HolidayImpact:     domain.ImpactIncreaseTerm,

		RepaymentPeriodDays: 10,
		GracePeriodDays:     15,

		AccrualPrecision:    5,
		FulfilmentPrecision: 2,

		DepositAccountID:        "deposit-1",
		InterestIncomeAccountID: "interest-income",
		FeeIncomeAccountID:      "fee-income",
		PenaltyIncomeAccountID:  "penalty-income",
		WriteOffAccountID:       "write-off",

		ActivatedAt: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func newSnapshot(p domain.Parameters, now time.Time) engine.Snapshot {
	return engine.Snapshot{
		Params:   p,
		Policies: domain.NewPolicySet(),
		Balances: domain.NewBalanceSnapshot(p.AccountID, p.Denomination),
		Now:      now,
	}
}

// requireBalanced fails the test unless every posting in the result passes
// the double-entry invariant.
func requireBalanced(t *testing.T, result *engine.Result) {
	t.Helper()

	for i, posting := range result.Postings {
		if err := posting.Validate(); err != nil {
			t.Errorf("posting %d (%s) unbalanced: %v", i, posting.Event, err)
		}
	}
}

func applyResult(snap engine.Snapshot, result *engine.Result) {
	for _, posting := range result.Postings {
		snap.Balances.Apply(posting)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertBalance(t *testing.T, snap engine.Snapshot, address domain.Address, want string) {
	t.Helper()

	got := snap.Balances.Get(address)
	if !got.Equal(dec(want)) {
		t.Errorf("balance %s = %s, want %s", address, got, want)
	}
}
