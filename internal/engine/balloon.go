package engine

import (
	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
)

// BalloonPayment runs the one-off balloon event for deferred-principal
// products: whatever principal the regular installments left behind falls
// due, together with any remaining accrued interest.
func (e *Engine) BalloonPayment(snap Snapshot) (*Result, error) {
	result := &Result{}
	p := snap.Params

	principal := snap.Balances.Get(domain.AddressPrincipal)
	accrued := snap.Balances.Get(domain.AddressAccruedInterest)
	interestDue := accrued.Round(p.FulfilmentPrecision)

	if principal.Add(interestDue).LessThanOrEqual(decimal.Zero) {
		return result, nil
	}

	b := domain.NewInstructionBuilder(eventBalloon,
		"balloon payment due", p.Denomination, p.FulfilmentPrecision, snap.Now)

	if principal.IsPositive() {
		b.Transfer(p.AccountID, principal.Round(p.FulfilmentPrecision),
			domain.AddressPrincipal, domain.AddressPrincipalDue)
	}

	e.applyInterest(&p, b, accrued, interestDue)

	result.addPosting(b.Build())

	result.Notifications = append(result.Notifications, Notification{
		Type: NoticeRepaymentDue,
		Details: map[string]string{
			"account_id":    p.AccountID,
			"principal_due": principal.Round(p.FulfilmentPrecision).String(),
			"interest_due":  interestDue.String(),
			"total_due":     principal.Add(interestDue).Round(p.FulfilmentPrecision).String(),
		},
	})

	result.Schedules = append(result.Schedules, domain.ScheduleEvent{
		Type:      domain.EventCheckOverdue,
		NextRunAt: snap.Now.AddDate(0, 0, p.RepaymentPeriodDays),
	})

	return result, nil
}
