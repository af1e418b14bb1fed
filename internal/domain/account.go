package domain

import "time"

// AccountStatus is the lifecycle state of a loan account.
type AccountStatus string

const (
	StatusPending    AccountStatus = "pending"
	StatusOpen       AccountStatus = "open"
	StatusClosed     AccountStatus = "closed"
	StatusWrittenOff AccountStatus = "written_off"
)

// LoanAccount is the host-side record of one lending product instance. The
// behavioural state lives entirely in balance addresses; this row carries
// identity and lifecycle only.
type LoanAccount struct {
	ID           string
	Denomination string
	Status       AccountStatus
	ActivatedAt  time.Time
	ClosedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active reports whether the account still participates in scheduled events.
func (a *LoanAccount) Active() bool {
	return a.Status == StatusOpen
}
