package domain

// RepaymentHierarchy is the ordered allocation priority for an incoming
// payment. It is configuration, not mutable account state.
type RepaymentHierarchy []Address

// StandardHierarchy is the default loan ordering: overdue debt first, then
// penalties, then current dues.
var StandardHierarchy = RepaymentHierarchy{
	AddressPrincipalOverdue,
	AddressInterestOverdue,
	AddressPenalties,
	AddressPrincipalDue,
	AddressInterestDue,
}

// ReversedHierarchy walks the buckets in the opposite order. Some revolving
// products allocate repayments to the last-charged bucket first.
func (h RepaymentHierarchy) Reversed() RepaymentHierarchy {
	out := make(RepaymentHierarchy, len(h))
	for i, a := range h {
		out[len(h)-1-i] = a
	}

	return out
}
