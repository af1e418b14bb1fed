package engine

import (
	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
)

// Allocation records how much of a payment one hierarchy bucket received.
type Allocation struct {
	Address domain.Address
	Amount  decimal.Decimal
}

// DistributionPlan is the outcome of walking the repayment hierarchy.
type DistributionPlan struct {
	Allocations []Allocation
	Overpayment decimal.Decimal
}

// Allocated sums every hierarchy allocation.
func (p *DistributionPlan) Allocated() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Allocations {
		total = total.Add(a.Amount)
	}

	return total
}

// PlanDistribution walks the hierarchy in order, allocating
// min(remaining, bucket balance rounded to fulfilment precision) to each
// bucket. Whatever survives the walk is the overpayment remainder; the sum
// of allocations plus the remainder always equals the payment exactly.
func PlanDistribution(balances *domain.BalanceSnapshot, hierarchy domain.RepaymentHierarchy, payment decimal.Decimal, precision int32) DistributionPlan {
	plan := DistributionPlan{}
	remaining := payment

	for _, address := range hierarchy {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		available := balances.Get(address).Round(precision)
		if available.LessThanOrEqual(decimal.Zero) {
			continue
		}

		allocated := decimal.Min(remaining, available)
		plan.Allocations = append(plan.Allocations, Allocation{
			Address: address,
			Amount:  allocated,
		})
		remaining = remaining.Sub(allocated)
	}

	plan.Overpayment = remaining

	return plan
}

// MaxOverpayment caps the overpayment so the fee taken from it can never
// exceed the available principal: principal / (1 - fee rate).
func MaxOverpayment(principal, feeRate decimal.Decimal) decimal.Decimal {
	if principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	one := decimal.NewFromInt(1)
	if feeRate.GreaterThanOrEqual(one) || feeRate.IsNegative() {
		return principal
	}

	return principal.Div(one.Sub(feeRate))
}

// distributeRepayment emits the movements for a planned distribution. The
// payment has already settled on DEFAULT; each allocation clears its bucket
// against DEFAULT, and any remainder flows to the overpayment (or redraw)
// bucket net of the overpayment fee.
func (e *Engine) distributeRepayment(snap Snapshot, plan DistributionPlan) []*domain.PostingInstruction {
	p := snap.Params
	var postings []*domain.PostingInstruction

	b := domain.NewInstructionBuilder(eventRepayment,
		"repayment distributed across the hierarchy",
		p.Denomination, p.FulfilmentPrecision, snap.Now)

	for _, a := range plan.Allocations {
		b.Transfer(p.AccountID, a.Amount, a.Address, domain.AddressDefault)
	}

	if posting := b.Build(); posting != nil {
		postings = append(postings, posting)
	}

	if plan.Overpayment.IsPositive() {
		if posting := e.overpaymentPosting(snap, plan.Overpayment); posting != nil {
			postings = append(postings, posting)
		}
	}

	return postings
}

// overpaymentPosting deducts the overpayment fee and parks the net amount on
// the overpayment (or redraw) bucket as a negative principal adjustment.
func (e *Engine) overpaymentPosting(snap Snapshot, overpayment decimal.Decimal) *domain.PostingInstruction {
	p := snap.Params

	fee := overpayment.Mul(p.OverpaymentFeeRate).Round(p.FulfilmentPrecision)
	net := overpayment.Sub(fee)

	target := domain.AddressOverpayment
	if p.RedrawEnabled {
		target = domain.AddressRedraw
	}

	b := domain.NewInstructionBuilder(eventOverpayment,
		"overpayment of "+overpayment.StringFixed(2)+" applied",
		p.Denomination, p.FulfilmentPrecision, snap.Now)

	if fee.IsPositive() {
		b.Move(fee,
			defaultLeg(p.AccountID),
			defaultLeg(p.FeeIncomeAccountID),
		)
	}

	// DEFAULT rises back to zero, the target bucket goes further negative.
	b.Transfer(p.AccountID, net, target, domain.AddressDefault)

	return b.Build()
}
