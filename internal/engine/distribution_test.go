package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/engine"
)

func TestPlanDistribution(t *testing.T) {
	balances := domain.NewBalanceSnapshot("loan-1", "USD")
	balances.Set(domain.AddressPrincipalOverdue, dec("50"))
	balances.Set(domain.AddressInterestOverdue, dec("5"))
	balances.Set(domain.AddressPenalties, dec("2"))
	balances.Set(domain.AddressPrincipalDue, dec("100"))
	balances.Set(domain.AddressInterestDue, dec("10"))

	tests := []struct {
		name            string
		payment         string
		wantAllocations []engine.Allocation
		wantOverpayment string
	}{
		{
			name:    "partial payment stops mid hierarchy",
			payment: "60",
			wantAllocations: []engine.Allocation{
				{Address: domain.AddressPrincipalOverdue, Amount: dec("50")},
				{Address: domain.AddressInterestOverdue, Amount: dec("5")},
				{Address: domain.AddressPenalties, Amount: dec("2")},
				{Address: domain.AddressPrincipalDue, Amount: dec("3")},
			},
			wantOverpayment: "0",
		},
		{
			name:    "exact payment clears every bucket",
			payment: "167",
			wantAllocations: []engine.Allocation{
				{Address: domain.AddressPrincipalOverdue, Amount: dec("50")},
				{Address: domain.AddressInterestOverdue, Amount: dec("5")},
				{Address: domain.AddressPenalties, Amount: dec("2")},
				{Address: domain.AddressPrincipalDue, Amount: dec("100")},
				{Address: domain.AddressInterestDue, Amount: dec("10")},
			},
			wantOverpayment: "0",
		},
		{
			name:    "excess survives the walk as overpayment",
			payment: "200",
			wantAllocations: []engine.Allocation{
				{Address: domain.AddressPrincipalOverdue, Amount: dec("50")},
				{Address: domain.AddressInterestOverdue, Amount: dec("5")},
				{Address: domain.AddressPenalties, Amount: dec("2")},
				{Address: domain.AddressPrincipalDue, Amount: dec("100")},
				{Address: domain.AddressInterestDue, Amount: dec("10")},
			},
			wantOverpayment: "33",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment := dec(tt.payment)
			plan := engine.PlanDistribution(balances, domain.StandardHierarchy, payment, 2)

			if len(plan.Allocations) != len(tt.wantAllocations) {
				t.Fatalf("got %d allocations, want %d: %+v",
					len(plan.Allocations), len(tt.wantAllocations), plan.Allocations)
			}

			for i, want := range tt.wantAllocations {
				got := plan.Allocations[i]
				if got.Address != want.Address || !got.Amount.Equal(want.Amount) {
					t.Errorf("allocation %d = %s %s, want %s %s",
						i, got.Address, got.Amount, want.Address, want.Amount)
				}
			}

			if !plan.Overpayment.Equal(dec(tt.wantOverpayment)) {
				t.Errorf("overpayment = %s, want %s", plan.Overpayment, tt.wantOverpayment)
			}

			// Conservation: allocations plus remainder always reconstruct the
			// payment exactly.
			if !plan.Allocated().Add(plan.Overpayment).Equal(payment) {
				t.Errorf("allocated %s + overpayment %s != payment %s",
					plan.Allocated(), plan.Overpayment, payment)
			}
		})
	}
}

func TestPlanDistribution_ReversedHierarchy(t *testing.T) {
	balances := domain.NewBalanceSnapshot("loan-1", "USD")
	balances.Set(domain.AddressPrincipalDue, dec("100"))
	balances.Set(domain.AddressInterestDue, dec("10"))

	plan := engine.PlanDistribution(balances, domain.StandardHierarchy.Reversed(), dec("50"), 2)

	if len(plan.Allocations) != 2 {
		t.Fatalf("got %d allocations, want 2", len(plan.Allocations))
	}
	if plan.Allocations[0].Address != domain.AddressInterestDue {
		t.Errorf("first allocation = %s, want %s",
			plan.Allocations[0].Address, domain.AddressInterestDue)
	}
	if !plan.Allocations[1].Amount.Equal(dec("40")) {
		t.Errorf("second allocation = %s, want 40", plan.Allocations[1].Amount)
	}
}

func TestMaxOverpayment(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		feeRate   string
		want      string
	}{
		{"no fee caps at the principal", "1000", "0", "1000"},
		{"fee raises the ceiling", "950", "0.05", "1000"},
		{"settled principal allows nothing", "0", "0.05", "0"},
		{"degenerate rate falls back to the principal", "1000", "1", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.MaxOverpayment(dec(tt.principal), dec(tt.feeRate))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("MaxOverpayment = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMaxOverpayment_NegativePrincipal(t *testing.T) {
	if got := engine.MaxOverpayment(decimal.NewFromInt(-5), dec("0.05")); !got.IsZero() {
		t.Errorf("MaxOverpayment = %s, want 0", got)
	}
}
