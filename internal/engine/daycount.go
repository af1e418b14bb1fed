package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
)

// dailyRatePrecision fixes the scale of the daily rate before it multiplies
// a balance.
const dailyRatePrecision = 10

// DailyRate converts an annual rate to the daily rate under the convention,
// rounded half-up to 10 decimal places.
func DailyRate(annualRate decimal.Decimal, conv domain.DayCountConvention, at time.Time) (decimal.Decimal, error) {
	days, err := conv.DaysInYear(at)
	if err != nil {
		return decimal.Zero, err
	}

	return annualRate.DivRound(decimal.NewFromInt(int64(days)), dailyRatePrecision), nil
}

// AccrueAmount applies the daily rate to a balance at the accrual precision.
// A zero balance or zero computed accrual is a no-op, not an error.
func AccrueAmount(balance, dailyRate decimal.Decimal, precision int32) decimal.Decimal {
	if balance.IsZero() {
		return decimal.Zero
	}

	return balance.Mul(dailyRate).Round(precision)
}
