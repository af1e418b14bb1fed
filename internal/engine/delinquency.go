package engine

import (
	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
)

// CheckOverdue runs after the repayment period has elapsed: unpaid due
// amounts move to the overdue buckets and the late-repayment fee is charged.
// A blocking flag suppresses the transition without error.
func (e *Engine) CheckOverdue(snap Snapshot) (*Result, error) {
	result := &Result{}
	p := snap.Params

	if snap.Policies.IsActive(domain.FlagBlockOverdue, snap.Now) {
		return result, nil
	}

	principalDue := snap.Balances.Get(domain.AddressPrincipalDue)
	interestDue := snap.Balances.Get(domain.AddressInterestDue)

	if principalDue.Add(interestDue).LessThanOrEqual(decimal.Zero) {
		return result, nil
	}

	b := domain.NewInstructionBuilder(eventMoveToOverdue,
		"due amounts unpaid after the repayment period",
		p.Denomination, p.FulfilmentPrecision, snap.Now)

	b.Transfer(p.AccountID, principalDue,
		domain.AddressPrincipalDue, domain.AddressPrincipalOverdue)
	b.Transfer(p.AccountID, interestDue,
		domain.AddressInterestDue, domain.AddressInterestOverdue)

	result.addPosting(b.Build())

	if p.LateRepaymentFee.IsPositive() {
		f := domain.NewInstructionBuilder(eventLateRepaymentFee,
			"late repayment fee", p.Denomination, p.FulfilmentPrecision, snap.Now)
		f.Move(p.LateRepaymentFee,
			loanLeg(&p, domain.AddressPenalties),
			defaultLeg(p.FeeIncomeAccountID),
		)
		result.addPosting(f.Build())
	}

	result.Notifications = append(result.Notifications, Notification{
		Type: NoticeOverdue,
		Details: map[string]string{
			"account_id":        p.AccountID,
			"principal_overdue": principalDue.String(),
			"interest_overdue":  interestDue.String(),
		},
	})

	result.Schedules = append(result.Schedules, domain.ScheduleEvent{
		Type:      domain.EventCheckDelinquency,
		NextRunAt: snap.Now.AddDate(0, 0, p.GracePeriodDays),
	})

	return result, nil
}

// CheckDelinquency fires after the grace period: an account still carrying
// overdue debt becomes delinquent. The transition is a notification only;
// no balances move.
func (e *Engine) CheckDelinquency(snap Snapshot) (*Result, error) {
	result := &Result{}
	p := snap.Params

	if snap.Policies.IsActive(domain.FlagBlockDelinquency, snap.Now) {
		return result, nil
	}

	overdue := snap.Balances.Sum(domain.OverdueAddresses...)
	if overdue.LessThanOrEqual(decimal.Zero) {
		return result, nil
	}

	result.Notifications = append(result.Notifications, Notification{
		Type: NoticeDelinquent,
		Details: map[string]string{
			"account_id":      p.AccountID,
			"overdue_balance": overdue.String(),
		},
	})

	return result, nil
}

// WriteOff administratively zeroes remaining debt against the write-off
// account, ending normal collection. External trigger only.
func (e *Engine) WriteOff(snap Snapshot) (*Result, error) {
	result := &Result{}
	p := snap.Params

	b := domain.NewInstructionBuilder(eventWriteOff,
		"remaining debt written off", p.Denomination, p.FulfilmentPrecision, snap.Now)

	for _, address := range domain.DebtAddresses {
		balance := snap.Balances.Get(address)

		switch {
		case balance.IsPositive():
			b.Move(balance,
				defaultLeg(p.WriteOffAccountID),
				loanLeg(&p, address),
			)
		case balance.IsNegative():
			b.Move(balance.Neg(),
				loanLeg(&p, address),
				defaultLeg(p.WriteOffAccountID),
			)
		}
	}

	result.addPosting(b.Build())
	result.CloseAccount = true

	return result, nil
}
