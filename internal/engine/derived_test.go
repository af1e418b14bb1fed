package engine_test

import (
	"testing"
	"time"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/engine"
)

func TestDerive(t *testing.T) {
	e := engine.New()
	p := testParams()
	p.EarlyRepaymentFlatFee = dec("25")

	now := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	snap := newSnapshot(p, now)
	snap.Balances.Set(domain.AddressPrincipal, dec("100000"))
	snap.Balances.Set(domain.AddressAccruedInterest, dec("123.45678"))
	snap.Balances.Set(domain.AddressEMI, dec("8884.88"))
	snap.Balances.Set(domain.AddressDueCalculationCount, dec("2"))

	derived, err := e.Derive(snap)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	wantNext := time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC)
	if !derived.NextRepaymentDate.Equal(wantNext) {
		t.Errorf("next repayment date = %s, want %s", derived.NextRepaymentDate, wantNext)
	}

	if !derived.TotalOutstandingDebt.Equal(dec("100123.46")) {
		t.Errorf("total outstanding debt = %s, want 100123.46", derived.TotalOutstandingDebt)
	}

	if !derived.EarlyRepaymentTotal.Equal(dec("100148.46")) {
		t.Errorf("early repayment total = %s, want 100148.46", derived.EarlyRepaymentTotal)
	}

	if !derived.EMI.Equal(dec("8884.88")) {
		t.Errorf("EMI = %s, want 8884.88", derived.EMI)
	}

	if derived.ElapsedTerm != 2 {
		t.Errorf("elapsed term = %d, want 2", derived.ElapsedTerm)
	}

	if derived.RemainingTerm < 1 || derived.RemainingTerm > 12 {
		t.Errorf("remaining term = %d out of range", derived.RemainingTerm)
	}

	if !derived.ExpectedBalloon.IsZero() {
		t.Errorf("expected balloon = %s, want 0 for declining principal", derived.ExpectedBalloon)
	}
}

func TestDerive_ExpectedBalloon(t *testing.T) {
	e := engine.New()
	now := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)

	t.Run("interest only defers the whole principal", func(t *testing.T) {
		p := testParams()
		p.AmortisationMethod = domain.MethodInterestOnly

		snap := newSnapshot(p, now)
		snap.Balances.Set(domain.AddressPrincipal, dec("50000"))

		derived, err := e.Derive(snap)
		if err != nil {
			t.Fatalf("Derive: %v", err)
		}

		if !derived.ExpectedBalloon.Equal(dec("50000")) {
			t.Errorf("expected balloon = %s, want 50000", derived.ExpectedBalloon)
		}
	})

	t.Run("fixed installment at zero rate projects the remainder", func(t *testing.T) {
		p := testParams()
		p.AmortisationMethod = domain.MethodMinimumRepaymentBalloon
		p.AnnualInterestRate = dec("0")
		p.FixedEMIAmount = dec("100")

		snap := newSnapshot(p, now)
		snap.Balances.Set(domain.AddressPrincipal, dec("5000"))

		derived, err := e.Derive(snap)
		if err != nil {
			t.Fatalf("Derive: %v", err)
		}

		// 12 installments of 100 leave 3800 of the 5000.
		if !derived.ExpectedBalloon.Equal(dec("3800")) {
			t.Errorf("expected balloon = %s, want 3800", derived.ExpectedBalloon)
		}
	})

	t.Run("configured balloon amount passes through", func(t *testing.T) {
		p := testParams()
		p.AmortisationMethod = domain.MethodMinimumRepaymentBalloon
		p.BalloonAmount = dec("20000")

		snap := newSnapshot(p, now)
		snap.Balances.Set(domain.AddressPrincipal, dec("50000"))

		derived, err := e.Derive(snap)
		if err != nil {
			t.Fatalf("Derive: %v", err)
		}

		if !derived.ExpectedBalloon.Equal(dec("20000")) {
			t.Errorf("expected balloon = %s, want 20000", derived.ExpectedBalloon)
		}
	})
}

func TestBalloonPayment(t *testing.T) {
	e := engine.New()
	p := testParams()
	p.AmortisationMethod = domain.MethodInterestOnly

	now := time.Date(2026, 1, 28, 0, 1, 0, 0, time.UTC)
	snap := newSnapshot(p, now)
	snap.Balances.Set(domain.AddressPrincipal, dec("50000"))
	snap.Balances.Set(domain.AddressAccruedInterest, dec("150.45678"))

	result, err := e.BalloonPayment(snap)
	if err != nil {
		t.Fatalf("BalloonPayment: %v", err)
	}

	requireBalanced(t, result)
	applyResult(snap, result)

	assertBalance(t, snap, domain.AddressPrincipal, "0")
	assertBalance(t, snap, domain.AddressPrincipalDue, "50000")
	assertBalance(t, snap, domain.AddressInterestDue, "150.46")
	// 150.45 drawn from accrual, the 0.01 rounding excess from income.
	assertBalance(t, snap, domain.AddressAccruedInterest, "0.00678")

	if len(result.Notifications) != 1 || result.Notifications[0].Type != engine.NoticeRepaymentDue {
		t.Errorf("expected a repayment due notice, got %+v", result.Notifications)
	}
}

func TestBalloonPayment_NothingOutstanding(t *testing.T) {
	e := engine.New()
	snap := newSnapshot(testParams(), time.Date(2026, 1, 28, 0, 1, 0, 0, time.UTC))

	result, err := e.BalloonPayment(snap)
	if err != nil {
		t.Fatalf("BalloonPayment: %v", err)
	}

	if len(result.Postings) != 0 {
		t.Errorf("expected no postings, got %d", len(result.Postings))
	}
}
