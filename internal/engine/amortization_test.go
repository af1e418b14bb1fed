package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/engine"
)

func TestDecliningPrincipal_CalculateEMI(t *testing.T) {
	amortiser, err := engine.ForMethod(domain.MethodDecliningPrincipal)
	if err != nil {
		t.Fatalf("ForMethod: %v", err)
	}

	tests := []struct {
		name string
		in   engine.EMIInput
		want string
	}{
		{
			name: "standard twelve month loan at one percent monthly",
			in: engine.EMIInput{
				Principal:     decimal.NewFromInt(100000),
				MonthlyRate:   dec("0.01"),
				RemainingTerm: 12,
				Precision:     2,
			},
			want: "8884.88",
		},
		{
			name: "zero rate divides principal evenly",
			in: engine.EMIInput{
				Principal:     decimal.NewFromInt(1200),
				MonthlyRate:   decimal.Zero,
				RemainingTerm: 12,
				Precision:     2,
			},
			want: "100",
		},
		{
			name: "no remaining term leaves the whole balance due",
			in: engine.EMIInput{
				Principal:     dec("4321.99"),
				MonthlyRate:   dec("0.01"),
				RemainingTerm: 0,
				Precision:     2,
			},
			want: "4321.99",
		},
		{
			name: "lump sum is excluded from the equated installments",
			in: engine.EMIInput{
				Principal:     decimal.NewFromInt(1200),
				MonthlyRate:   decimal.Zero,
				RemainingTerm: 12,
				LumpSum:       decimal.NewFromInt(600),
				Precision:     2,
			},
			want: "50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := amortiser.CalculateEMI(tt.in)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("CalculateEMI = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDecliningPrincipal_TermDetails(t *testing.T) {
	amortiser, err := engine.ForMethod(domain.MethodDecliningPrincipal)
	if err != nil {
		t.Fatalf("ForMethod: %v", err)
	}

	tests := []struct {
		name          string
		in            engine.TermInput
		wantElapsed   int
		wantRemaining int
	}{
		{
			name: "zero EMI short-circuits instead of dividing",
			in: engine.TermInput{
				Principal:   decimal.NewFromInt(100000),
				MonthlyRate: decimal.Zero,
				EMI:         decimal.Zero,
				TermMonths:  12,
				ElapsedTerm: 3,
			},
			wantElapsed:   3,
			wantRemaining: 0,
		},
		{
			name: "round trip recovers the contractual term",
			in: engine.TermInput{
				Principal:   decimal.NewFromInt(100000),
				MonthlyRate: dec("0.01"),
				EMI:         dec("8884.88"),
				TermMonths:  12,
				ElapsedTerm: 0,
			},
			wantElapsed:   0,
			wantRemaining: 12,
		},
		{
			name: "fractional term rounds to whole months without overpayment",
			in: engine.TermInput{
				Principal:   decimal.NewFromInt(1020),
				MonthlyRate: decimal.Zero,
				EMI:         decimal.NewFromInt(100),
				TermMonths:  24,
				ElapsedTerm: 0,
			},
			wantElapsed:   0,
			wantRemaining: 10,
		},
		{
			name: "fractional term keeps two places after an overpayment",
			in: engine.TermInput{
				Principal:          decimal.NewFromInt(1020),
				MonthlyRate:        decimal.Zero,
				EMI:                decimal.NewFromInt(100),
				TermMonths:         24,
				ElapsedTerm:        0,
				OverpaymentBalance: dec("-50"),
			},
			wantElapsed:   0,
			wantRemaining: 11,
		},
		{
			name: "expected term preferred under reduce-EMI impact",
			in: engine.TermInput{
				Principal:       decimal.NewFromInt(100000),
				MonthlyRate:     dec("0.01"),
				EMI:             dec("8884.88"),
				TermMonths:      12,
				ElapsedTerm:     5,
				UseExpectedTerm: true,
			},
			wantElapsed:   5,
			wantRemaining: 7,
		},
		{
			name: "installment below period interest reports the contractual remainder",
			in: engine.TermInput{
				Principal:   decimal.NewFromInt(100000),
				MonthlyRate: dec("0.01"),
				EMI:         decimal.NewFromInt(500),
				TermMonths:  12,
				ElapsedTerm: 2,
			},
			wantElapsed:   2,
			wantRemaining: 10,
		},
		{
			name: "settled principal leaves nothing remaining",
			in: engine.TermInput{
				Principal:   decimal.Zero,
				MonthlyRate: dec("0.01"),
				EMI:         dec("8884.88"),
				TermMonths:  12,
				ElapsedTerm: 12,
			},
			wantElapsed:   12,
			wantRemaining: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elapsed, remaining := amortiser.TermDetails(tt.in)
			if elapsed != tt.wantElapsed || remaining != tt.wantRemaining {
				t.Errorf("TermDetails = (%d, %d), want (%d, %d)",
					elapsed, remaining, tt.wantElapsed, tt.wantRemaining)
			}
		})
	}
}

func TestFlatInterest_CalculateEMI(t *testing.T) {
	amortiser, err := engine.ForMethod(domain.MethodFlatInterest)
	if err != nil {
		t.Fatalf("ForMethod: %v", err)
	}

	// 1200 at 10% flat over one year: 120 interest, (1200+120)/12 per month.
	got := amortiser.CalculateEMI(engine.EMIInput{
		Principal:         decimal.NewFromInt(1200),
		OriginalPrincipal: decimal.NewFromInt(1200),
		AnnualRate:        dec("0.10"),
		TermMonths:        12,
		Precision:         2,
	})

	if !got.Equal(dec("110")) {
		t.Errorf("CalculateEMI = %s, want 110", got)
	}
}

func TestFlatInterest_InterestPortion(t *testing.T) {
	in := engine.EMIInput{
		Principal:         decimal.NewFromInt(1200),
		OriginalPrincipal: decimal.NewFromInt(1200),
		AnnualRate:        dec("0.10"),
		TermMonths:        12,
		Precision:         2,
	}

	flat, err := engine.ForMethod(domain.MethodFlatInterest)
	if err != nil {
		t.Fatalf("ForMethod: %v", err)
	}

	even, ok := flat.(interface {
		InterestPortion(engine.EMIInput, int) decimal.Decimal
	})
	if !ok {
		t.Fatal("flat interest amortiser does not expose scheduled interest")
	}

	// Even spread: 120 / 12.
	if got := even.InterestPortion(in, 1); !got.Equal(dec("10")) {
		t.Errorf("flat portion = %s, want 10", got)
	}

	r78, err := engine.ForMethod(domain.MethodRuleOf78)
	if err != nil {
		t.Fatalf("ForMethod: %v", err)
	}

	weighted, ok := r78.(interface {
		InterestPortion(engine.EMIInput, int) decimal.Decimal
	})
	if !ok {
		t.Fatal("rule of 78 amortiser does not expose scheduled interest")
	}

	// First period carries 12/78 of 120, the last 1/78.
	if got := weighted.InterestPortion(in, 1); !got.Equal(dec("18.46")) {
		t.Errorf("rule of 78 first portion = %s, want 18.46", got)
	}
	if got := weighted.InterestPortion(in, 12); !got.Equal(dec("1.54")) {
		t.Errorf("rule of 78 last portion = %s, want 1.54", got)
	}
	if got := weighted.InterestPortion(in, 13); !got.IsZero() {
		t.Errorf("out of range portion = %s, want 0", got)
	}
}

func TestDeferredMethods_CalculateEMI(t *testing.T) {
	in := engine.EMIInput{
		Principal:     decimal.NewFromInt(50000),
		MonthlyRate:   dec("0.01"),
		RemainingTerm: 12,
		Precision:     2,
	}

	for _, method := range []domain.AmortisationMethod{
		domain.MethodInterestOnly,
		domain.MethodNoRepayment,
	} {
		amortiser, err := engine.ForMethod(method)
		if err != nil {
			t.Fatalf("ForMethod(%s): %v", method, err)
		}

		if got := amortiser.CalculateEMI(in); !got.IsZero() {
			t.Errorf("%s EMI = %s, want 0", method, got)
		}
	}
}

func TestMinimumRepaymentBalloon_CalculateEMI(t *testing.T) {
	amortiser, err := engine.ForMethod(domain.MethodMinimumRepaymentBalloon)
	if err != nil {
		t.Fatalf("ForMethod: %v", err)
	}

	fixed := engine.EMIInput{
		Principal:     decimal.NewFromInt(50000),
		MonthlyRate:   dec("0.01"),
		RemainingTerm: 12,
		FixedEMI:      dec("250.555"),
		Precision:     2,
	}
	if got := amortiser.CalculateEMI(fixed); !got.Equal(dec("250.56")) {
		t.Errorf("fixed EMI = %s, want 250.56", got)
	}

	// Without an agreed installment the balloon acts as a lump sum in the
	// declining formula.
	solved := engine.EMIInput{
		Principal:     decimal.NewFromInt(1200),
		MonthlyRate:   decimal.Zero,
		RemainingTerm: 12,
		LumpSum:       decimal.NewFromInt(600),
		Precision:     2,
	}
	if got := amortiser.CalculateEMI(solved); !got.Equal(dec("50")) {
		t.Errorf("solved EMI = %s, want 50", got)
	}
}

func TestForMethod_Unsupported(t *testing.T) {
	if _, err := engine.ForMethod("bullet"); err == nil {
		t.Error("expected error for unsupported method")
	}
}
