package engine_test

import (
	"testing"
	"time"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/engine"
)

func TestCheckOverdue(t *testing.T) {
	e := engine.New()
	p := testParams()
	p.LateRepaymentFee = dec("15")

	now := time.Date(2025, 3, 10, 0, 2, 0, 0, time.UTC)
	snap := newSnapshot(p, now)
	snap.Balances.Set(domain.AddressPrincipalDue, dec("9152.26"))
	snap.Balances.Set(domain.AddressInterestDue, dec("493.15"))

	result, err := e.CheckOverdue(snap)
	if err != nil {
		t.Fatalf("CheckOverdue: %v", err)
	}

	requireBalanced(t, result)
	applyResult(snap, result)

	assertBalance(t, snap, domain.AddressPrincipalDue, "0")
	assertBalance(t, snap, domain.AddressInterestDue, "0")
	assertBalance(t, snap, domain.AddressPrincipalOverdue, "9152.26")
	assertBalance(t, snap, domain.AddressInterestOverdue, "493.15")
	assertBalance(t, snap, domain.AddressPenalties, "15")

	if len(result.Notifications) != 1 || result.Notifications[0].Type != engine.NoticeOverdue {
		t.Errorf("expected an overdue notice, got %+v", result.Notifications)
	}

	var haveDelinquencyCheck bool
	for _, s := range result.Schedules {
		if s.Type == domain.EventCheckDelinquency {
			haveDelinquencyCheck = true
			want := now.AddDate(0, 0, p.GracePeriodDays)
			if !s.NextRunAt.Equal(want) {
				t.Errorf("delinquency check = %s, want %s", s.NextRunAt, want)
			}
		}
	}
	if !haveDelinquencyCheck {
		t.Errorf("expected a delinquency check schedule, got %+v", result.Schedules)
	}
}

func TestCheckOverdue_NothingDue(t *testing.T) {
	e := engine.New()
	snap := newSnapshot(testParams(), time.Date(2025, 3, 10, 0, 2, 0, 0, time.UTC))

	result, err := e.CheckOverdue(snap)
	if err != nil {
		t.Fatalf("CheckOverdue: %v", err)
	}

	if len(result.Postings) != 0 || len(result.Notifications) != 0 {
		t.Error("nothing due must be a no-op")
	}
}

func TestCheckOverdue_BlockedByFlag(t *testing.T) {
	e := engine.New()
	p := testParams()

	now := time.Date(2025, 3, 10, 0, 2, 0, 0, time.UTC)
	snap := newSnapshot(p, now)
	snap.Balances.Set(domain.AddressPrincipalDue, dec("100"))
	snap.Policies.Add(domain.FlagBlockOverdue, now.AddDate(0, 0, -1), nil)

	result, err := e.CheckOverdue(snap)
	if err != nil {
		t.Fatalf("CheckOverdue: %v", err)
	}

	if len(result.Postings) != 0 {
		t.Errorf("expected no postings while blocked, got %d", len(result.Postings))
	}
}

func TestCheckDelinquency(t *testing.T) {
	e := engine.New()
	p := testParams()

	now := time.Date(2025, 3, 25, 0, 2, 0, 0, time.UTC)

	t.Run("overdue debt raises the notice", func(t *testing.T) {
		snap := newSnapshot(p, now)
		snap.Balances.Set(domain.AddressPrincipalOverdue, dec("100"))

		result, err := e.CheckDelinquency(snap)
		if err != nil {
			t.Fatalf("CheckDelinquency: %v", err)
		}

		if len(result.Notifications) != 1 || result.Notifications[0].Type != engine.NoticeDelinquent {
			t.Errorf("expected a delinquency notice, got %+v", result.Notifications)
		}
		if len(result.Postings) != 0 {
			t.Error("delinquency must not move balances")
		}
	})

	t.Run("clean account stays quiet", func(t *testing.T) {
		snap := newSnapshot(p, now)

		result, err := e.CheckDelinquency(snap)
		if err != nil {
			t.Fatalf("CheckDelinquency: %v", err)
		}

		if len(result.Notifications) != 0 {
			t.Errorf("expected no notices, got %+v", result.Notifications)
		}
	})

	t.Run("blocked by flag", func(t *testing.T) {
		snap := newSnapshot(p, now)
		snap.Balances.Set(domain.AddressPrincipalOverdue, dec("100"))
		snap.Policies.Add(domain.FlagBlockDelinquency, now.AddDate(0, 0, -1), nil)

		result, err := e.CheckDelinquency(snap)
		if err != nil {
			t.Fatalf("CheckDelinquency: %v", err)
		}

		if len(result.Notifications) != 0 {
			t.Errorf("expected no notices while blocked, got %+v", result.Notifications)
		}
	})
}

func TestWriteOff(t *testing.T) {
	e := engine.New()
	p := testParams()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	snap := newSnapshot(p, now)
	snap.Balances.Set(domain.AddressPrincipal, dec("800"))
	snap.Balances.Set(domain.AddressPrincipalOverdue, dec("150"))
	snap.Balances.Set(domain.AddressPenalties, dec("30"))
	snap.Balances.Set(domain.AddressOverpayment, dec("-20"))

	result, err := e.WriteOff(snap)
	if err != nil {
		t.Fatalf("WriteOff: %v", err)
	}

	requireBalanced(t, result)
	applyResult(snap, result)

	for _, address := range domain.DebtAddresses {
		assertBalance(t, snap, address, "0")
	}

	if !result.CloseAccount {
		t.Error("write-off must mark the account closable")
	}
}
