package domain

import "time"

// Flag names a condition that can suppress engine behaviour while active.
type Flag string

const (
	// FlagRepaymentHoliday blocks the due-amount calculation; interest
	// accrues for later capitalisation instead.
	FlagRepaymentHoliday Flag = "REPAYMENT_HOLIDAY"

	// FlagBlockOverdue suppresses the due-to-overdue transition.
	FlagBlockOverdue Flag = "BLOCK_OVERDUE"

	// FlagBlockDelinquency suppresses the delinquency notification.
	FlagBlockDelinquency Flag = "BLOCK_DELINQUENCY"

	// FlagBlockPenaltyAccrual suppresses penalty interest accrual.
	FlagBlockPenaltyAccrual Flag = "BLOCK_PENALTY_ACCRUAL"
)

// FlagWindow is one activation interval for a flag. A nil Until means the
// flag is open-ended.
type FlagWindow struct {
	From  time.Time
	Until *time.Time
}

// PolicySet resolves named conditions to active/inactive as of a timestamp.
// It is built once per invocation from host-supplied flag records.
type PolicySet struct {
	windows map[Flag][]FlagWindow
}

// NewPolicySet creates an empty policy set.
func NewPolicySet() *PolicySet {
	return &PolicySet{windows: make(map[Flag][]FlagWindow)}
}

// Add records an activation window for a flag.
func (ps *PolicySet) Add(flag Flag, from time.Time, until *time.Time) *PolicySet {
	ps.windows[flag] = append(ps.windows[flag], FlagWindow{From: from, Until: until})
	return ps
}

// IsActive reports whether the flag is active at t.
func (ps *PolicySet) IsActive(flag Flag, at time.Time) bool {
	if ps == nil {
		return false
	}

	for _, w := range ps.windows[flag] {
		if at.Before(w.From) {
			continue
		}

		if w.Until == nil || at.Before(*w.Until) {
			return true
		}
	}

	return false
}
