package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFeeScheduleCompute(t *testing.T) {
	tests := []struct {
		name string
		fee  FeeSchedule
		base decimal.Decimal
		want decimal.Decimal
	}{
		{
			name: "rate plus flat under cap",
			fee: FeeSchedule{
				Rate: decimal.RequireFromString("0.02"),
				Flat: decimal.NewFromInt(10),
				Cap:  decimal.NewFromInt(100),
			},
			base: decimal.NewFromInt(2800),
			want: decimal.NewFromInt(66),
		},
		{
			name: "cap applied",
			fee: FeeSchedule{
				Rate: decimal.RequireFromString("0.02"),
				Flat: decimal.NewFromInt(10),
				Cap:  decimal.NewFromInt(100),
			},
			base: decimal.NewFromInt(9000),
			want: decimal.NewFromInt(100),
		},
		{
			name: "floor applied",
			fee: FeeSchedule{
				Rate:  decimal.RequireFromString("0.01"),
				Floor: decimal.NewFromInt(5),
			},
			base: decimal.NewFromInt(100),
			want: decimal.NewFromInt(5),
		},
		{
			name: "zero cap means uncapped",
			fee: FeeSchedule{
				Rate: decimal.RequireFromString("0.05"),
			},
			base: decimal.NewFromInt(10000),
			want: decimal.NewFromInt(500),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fee.Compute(tt.base, 2)
			if !got.Equal(tt.want) {
				t.Errorf("expected fee %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDayCountDaysInYear(t *testing.T) {
	leap := date(2024, time.June, 1)
	nonLeap := date(2023, time.June, 1)
	century := date(2100, time.June, 1)

	tests := []struct {
		conv DayCountConvention
		at   time.Time
		want int
	}{
		{DayCount360, leap, 360},
		{DayCount365, leap, 365},
		{DayCount366, nonLeap, 366},
		{DayCountActual, leap, 366},
		{DayCountActual, nonLeap, 365},
		{DayCountActual, century, 365},
	}

	for _, tt := range tests {
		got, err := tt.conv.DaysInYear(tt.at)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("%s at %d: expected %d, got %d", tt.conv, tt.at.Year(), tt.want, got)
		}
	}

	if _, err := DayCountConvention("364").DaysInYear(leap); err == nil {
		t.Error("expected error for unsupported convention")
	}
}

func TestParametersValidate(t *testing.T) {
	valid := Parameters{
		AccountID:          "loan-1",
		Denomination:       "USD",
		Principal:          decimal.NewFromInt(100000),
		TermMonths:         120,
		RepaymentDay:       28,
		AmortisationMethod: MethodDecliningPrincipal,
		DayCount:           DayCountActual,
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("unsupported method", func(t *testing.T) {
		p := valid
		p.AmortisationMethod = "bullet"
		if err := p.Validate(); err == nil {
			t.Error("expected error for unsupported method")
		}
	})

	t.Run("missing denomination", func(t *testing.T) {
		p := valid
		p.Denomination = ""
		if err := p.Validate(); err == nil {
			t.Error("expected error for missing denomination")
		}
	})

	t.Run("zero term allowed for no repayment", func(t *testing.T) {
		p := valid
		p.TermMonths = 0
		if err := p.Validate(); err == nil {
			t.Error("expected error for zero term")
		}

		p.AmortisationMethod = MethodNoRepayment
		if err := p.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestParameterTimelineAsOf(t *testing.T) {
	base := Parameters{RepaymentDay: 10}
	updated := Parameters{RepaymentDay: 20}

	tl := NewParameterTimeline(
		TimedParameters{EffectiveAt: date(2024, time.January, 1), Parameters: base},
		TimedParameters{EffectiveAt: date(2024, time.June, 1), Parameters: updated},
	)

	got, err := tl.AsOf(date(2024, time.March, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RepaymentDay != 10 {
		t.Errorf("expected repayment day 10, got %d", got.RepaymentDay)
	}

	got, _ = tl.AsOf(date(2024, time.June, 1))
	if got.RepaymentDay != 20 {
		t.Errorf("expected repayment day 20, got %d", got.RepaymentDay)
	}

	// Before the first snapshot the earliest applies.
	got, _ = tl.AsOf(date(2023, time.January, 1))
	if got.RepaymentDay != 10 {
		t.Errorf("expected repayment day 10, got %d", got.RepaymentDay)
	}
}

func TestPolicySetIsActive(t *testing.T) {
	until := date(2024, time.April, 1)

	ps := NewPolicySet().
		Add(FlagRepaymentHoliday, date(2024, time.February, 1), &until).
		Add(FlagBlockOverdue, date(2024, time.March, 1), nil)

	if !ps.IsActive(FlagRepaymentHoliday, date(2024, time.March, 15)) {
		t.Error("expected holiday flag active inside window")
	}

	if ps.IsActive(FlagRepaymentHoliday, date(2024, time.April, 1)) {
		t.Error("expected holiday flag inactive at window end")
	}

	if !ps.IsActive(FlagBlockOverdue, date(2025, time.January, 1)) {
		t.Error("expected open-ended flag to stay active")
	}

	if ps.IsActive(FlagBlockDelinquency, date(2024, time.March, 15)) {
		t.Error("expected unknown flag inactive")
	}

	var nilSet *PolicySet
	if nilSet.IsActive(FlagBlockOverdue, time.Now()) {
		t.Error("expected nil policy set to report inactive")
	}
}
