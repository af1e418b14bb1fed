package domain

import "time"

// EventType names a recurring schedule trigger owned and fired by the host.
type EventType string

const (
	EventAccrueInterest   EventType = "ACCRUE_INTEREST"
	EventCalculateDue     EventType = "DUE_AMOUNT_CALCULATION"
	EventCheckOverdue     EventType = "CHECK_OVERDUE"
	EventCheckDelinquency EventType = "CHECK_DELINQUENCY"
	EventBalloonPayment   EventType = "BALLOON_PAYMENT"
)

// ScheduleEvent is a trigger definition handed back to the host. A zero
// NextRunAt disables the event.
type ScheduleEvent struct {
	Type      EventType
	NextRunAt time.Time
}

// clampedDate returns the given day in year/month, pulled back to the last
// day of the month when the month is shorter.
func clampedDate(year int, month time.Month, day, hour, minute int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

// NextDueCalculation returns the first due-amount run strictly after the
// given instant, on the configured repayment day. Months shorter than the
// repayment day round back to their last day.
func NextDueCalculation(after time.Time, day, hour, minute int) time.Time {
	candidate := clampedDate(after.Year(), after.Month(), day, hour, minute, after.Location())
	if candidate.After(after) {
		return candidate
	}

	next := after.AddDate(0, 1, 0)

	return clampedDate(next.Year(), next.Month(), day, hour, minute, after.Location())
}

// DueCalculationAfterDayChange computes the next run when the repayment day
// parameter changes mid-cycle. The schedule always rounds forward: if the
// new day has already passed in the period of the last run it lands in the
// following month, and it never fires twice in the same period.
func DueCalculationAfterDayChange(lastRun time.Time, newDay, hour, minute int) time.Time {
	candidate := clampedDate(lastRun.Year(), lastRun.Month(), newDay, hour, minute, lastRun.Location())
	if candidate.After(lastRun) {
		return candidate
	}

	next := lastRun.AddDate(0, 1, 0)

	return clampedDate(next.Year(), next.Month(), newDay, hour, minute, lastRun.Location())
}

// ElapsedDueEvents counts the repayment-day occurrences between activation
// and now. It is the contractual elapsed term in whole months.
func ElapsedDueEvents(activatedAt, now time.Time, day int) int {
	if !now.After(activatedAt) {
		return 0
	}

	count := 0
	cursor := NextDueCalculation(activatedAt, day, 0, 0)
	for !cursor.After(now) {
		count++
		cursor = NextDueCalculation(cursor, day, 0, 0)
	}

	return count
}
