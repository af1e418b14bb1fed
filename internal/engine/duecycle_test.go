package engine_test

import (
	"testing"
	"time"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/engine"
)

func TestCalculateDue_FirstCycle(t *testing.T) {
	e := engine.New()
	p := testParams()

	// Activated 10 Jan, repayment day 28: two contractual events have
	// occurred by 28 Feb, the counter has recorded one.
	now := time.Date(2025, 2, 28, 0, 1, 0, 0, time.UTC)
	snap := newSnapshot(p, now)
	snap.Balances.Set(domain.AddressPrincipal, dec("100000"))
	snap.Balances.Set(domain.AddressAccruedInterest, dec("493.15068"))
	snap.Balances.Set(domain.AddressMonthlyRestPrincipal, dec("100000"))
	snap.Balances.Set(domain.AddressDueCalculationCount, dec("1"))

	result, err := e.CalculateDue(snap)
	if err != nil {
		t.Fatalf("CalculateDue: %v", err)
	}

	requireBalanced(t, result)
	applyResult(snap, result)

	// EMI seeded on the first processed cycle: remaining term 11 at 1%.
	assertBalance(t, snap, domain.AddressEMI, "9645.41")
	assertBalance(t, snap, domain.AddressInterestDue, "493.15")
	// Principal portion = EMI - interest due.
	assertBalance(t, snap, domain.AddressPrincipalDue, "9152.26")
	assertBalance(t, snap, domain.AddressPrincipal, "90847.74")
	assertBalance(t, snap, domain.AddressMonthlyRestPrincipal, "90847.74")
	assertBalance(t, snap, domain.AddressDueCalculationCount, "2")

	// The sub-cent accrual remainder stays behind for the next cycle.
	assertBalance(t, snap, domain.AddressAccruedInterest, "0.00068")

	if len(result.Notifications) != 1 || result.Notifications[0].Type != engine.NoticeRepaymentDue {
		t.Errorf("expected a repayment due notice, got %+v", result.Notifications)
	}

	var haveDue, haveOverdue bool
	for _, s := range result.Schedules {
		switch s.Type {
		case domain.EventCalculateDue:
			haveDue = true
			want := time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC)
			if !s.NextRunAt.Equal(want) {
				t.Errorf("next due run = %s, want %s", s.NextRunAt, want)
			}
		case domain.EventCheckOverdue:
			haveOverdue = true
			want := now.AddDate(0, 0, p.RepaymentPeriodDays)
			if !s.NextRunAt.Equal(want) {
				t.Errorf("overdue check = %s, want %s", s.NextRunAt, want)
			}
		}
	}
	if !haveDue || !haveOverdue {
		t.Errorf("missing schedule updates: %+v", result.Schedules)
	}
}

func TestCalculateDue_RedeliveredEventIsNoOp(t *testing.T) {
	e := engine.New()
	p := testParams()

	now := time.Date(2025, 2, 28, 0, 1, 0, 0, time.UTC)
	snap := newSnapshot(p, now)
	snap.Balances.Set(domain.AddressPrincipal, dec("100000"))
	snap.Balances.Set(domain.AddressDueCalculationCount, dec("2"))

	result, err := e.CalculateDue(snap)
	if err != nil {
		t.Fatalf("CalculateDue: %v", err)
	}

	if len(result.Postings) != 0 || len(result.Notifications) != 0 {
		t.Errorf("redelivered event must be a no-op, got %d postings and %d notices",
			len(result.Postings), len(result.Notifications))
	}

	// The event still advances to the next cycle, never staying due.
	var advanced bool
	for _, s := range result.Schedules {
		if s.Type == domain.EventCalculateDue && s.NextRunAt.After(now) {
			advanced = true
		}
	}
	if !advanced {
		t.Errorf("expected the due calculation to reschedule itself, got %+v", result.Schedules)
	}
}

func TestCalculateDue_FinalEventConsumesPrincipal(t *testing.T) {
	e := engine.New()
	p := testParams()
	p.TermMonths = 2

	now := time.Date(2025, 2, 28, 0, 1, 0, 0, time.UTC)
	snap := newSnapshot(p, now)
	snap.Balances.Set(domain.AddressPrincipal, dec("500.75"))
	snap.Balances.Set(domain.AddressAccruedInterest, dec("1.5"))
	snap.Balances.Set(domain.AddressEMI, dec("251"))
	snap.Balances.Set(domain.AddressDueCalculationCount, dec("1"))

	result, err := e.CalculateDue(snap)
	if err != nil {
		t.Fatalf("CalculateDue: %v", err)
	}

	requireBalanced(t, result)
	applyResult(snap, result)

	assertBalance(t, snap, domain.AddressPrincipal, "0")
	assertBalance(t, snap, domain.AddressPrincipalDue, "500.75")
	assertBalance(t, snap, domain.AddressInterestDue, "1.5")
}

func TestCalculateDue_NoRepaymentCountsOnly(t *testing.T) {
	e := engine.New()
	p := testParams()
	p.AmortisationMethod = domain.MethodNoRepayment

	now := time.Date(2025, 2, 28, 0, 1, 0, 0, time.UTC)
	snap := newSnapshot(p, now)
	snap.Balances.Set(domain.AddressPrincipal, dec("100000"))
	snap.Balances.Set(domain.AddressAccruedInterest, dec("100"))
	snap.Balances.Set(domain.AddressDueCalculationCount, dec("1"))

	result, err := e.CalculateDue(snap)
	if err != nil {
		t.Fatalf("CalculateDue: %v", err)
	}

	applyResult(snap, result)

	assertBalance(t, snap, domain.AddressPrincipalDue, "0")
	assertBalance(t, snap, domain.AddressInterestDue, "0")
	assertBalance(t, snap, domain.AddressDueCalculationCount, "2")
}

func TestCalculateDue_RepaymentHoliday(t *testing.T) {
	e := engine.New()
	p := testParams()

	now := time.Date(2025, 2, 28, 0, 1, 0, 0, time.UTC)
	snap := newSnapshot(p, now)
	snap.Balances.Set(domain.AddressPrincipal, dec("100000"))
	snap.Balances.Set(domain.AddressAccruedInterest, dec("493.15068"))
	snap.Balances.Set(domain.AddressDueCalculationCount, dec("1"))
	snap.Policies.Add(domain.FlagRepaymentHoliday, now.AddDate(0, -1, 0), nil)

	result, err := e.CalculateDue(snap)
	if err != nil {
		t.Fatalf("CalculateDue: %v", err)
	}

	requireBalanced(t, result)
	applyResult(snap, result)

	assertBalance(t, snap, domain.AddressPrincipalDue, "0")
	assertBalance(t, snap, domain.AddressInterestDue, "0")
	assertBalance(t, snap, domain.AddressAccruedInterest, "0")
	assertBalance(t, snap, domain.AddressPendingCapitalisation, "493.15068")
	assertBalance(t, snap, domain.AddressDueCalculationCount, "2")
}

func TestCalculateDue_CapitalisesAfterHoliday(t *testing.T) {
	e := engine.New()
	p := testParams()

	now := time.Date(2025, 3, 28, 0, 1, 0, 0, time.UTC)
	snap := newSnapshot(p, now)
	snap.Balances.Set(domain.AddressPrincipal, dec("100000"))
	snap.Balances.Set(domain.AddressPendingCapitalisation, dec("500"))
	snap.Balances.Set(domain.AddressEMI, dec("9000"))
	snap.Balances.Set(domain.AddressDueCalculationCount, dec("2"))

	result, err := e.CalculateDue(snap)
	if err != nil {
		t.Fatalf("CalculateDue: %v", err)
	}

	requireBalanced(t, result)
	applyResult(snap, result)

	assertBalance(t, snap, domain.AddressPendingCapitalisation, "0")
	assertBalance(t, snap, domain.AddressCapitalisedInterest, "500")
	// 100500 principal less the 9000 principal portion of the installment.
	assertBalance(t, snap, domain.AddressPrincipal, "91500")
	assertBalance(t, snap, domain.AddressPrincipalDue, "9000")
}
