package domain

import (
	"github.com/shopspring/decimal"
)

// Phase identifies the settlement phase a balance movement settles into.
type Phase string

const (
	PhaseCommitted  Phase = "committed"
	PhasePendingIn  Phase = "pending_in"
	PhasePendingOut Phase = "pending_out"
)

// Address is a named balance bucket on an account.
type Address string

// Lending balance addresses. The loan account tracks its debt split across
// these buckets; their net against INTERNAL_CONTRA is always zero.
const (
	// AddressDefault is the customer-facing address that incoming and
	// outgoing funds settle against.
	AddressDefault Address = "DEFAULT"

	AddressPrincipal        Address = "PRINCIPAL"
	AddressAccruedInterest  Address = "ACCRUED_INTEREST"
	AddressPrincipalDue     Address = "PRINCIPAL_DUE"
	AddressInterestDue      Address = "INTEREST_DUE"
	AddressPrincipalOverdue Address = "PRINCIPAL_OVERDUE"
	AddressInterestOverdue  Address = "INTEREST_OVERDUE"
	AddressPenalties        Address = "PENALTIES"

	// AddressEMI caches the currently agreed equated installment. It is
	// rewritten only when a re-amortization trigger fires.
	AddressEMI Address = "EMI"

	// AddressOverpayment accumulates funds paid beyond due amounts. It
	// runs non-positive: a credit balance acting as a negative principal
	// adjustment.
	AddressOverpayment Address = "OVERPAYMENT"

	// AddressRedraw holds overpaid funds available for redraw on
	// redraw-enabled mortgages. Non-positive, like OVERPAYMENT.
	AddressRedraw Address = "REDRAW"

	// AddressMonthlyRestPrincipal snapshots the principal at the last
	// due-amount calculation, the accrual base under monthly rest.
	AddressMonthlyRestPrincipal Address = "MONTHLY_REST_PRINCIPAL"

	// AddressPendingCapitalisation collects interest accrued while a
	// repayment holiday blocks the due-amount calculation.
	AddressPendingCapitalisation Address = "ACCRUED_INTEREST_PENDING_CAPITALISATION"

	AddressCapitalisedInterest  Address = "CAPITALISED_INTEREST_TRACKER"
	AddressCapitalisedPenalties Address = "CAPITALISED_PENALTIES_TRACKER"

	// AddressDueCalculationCount counts executed due-amount events so a
	// replayed event can be recognised without engine-local state.
	AddressDueCalculationCount Address = "DUE_CALCULATION_EVENT_COUNT"

	// AddressInternalContra offsets single-sided tracker updates so every
	// instruction stays balanced.
	AddressInternalContra Address = "INTERNAL_CONTRA"
)

// DebtAddresses are the buckets that make up total outstanding debt, in the
// order they are reported.
// OVERPAYMENT is included: its credit balance nets down the payoff figure.
var DebtAddresses = []Address{
	AddressPrincipal,
	AddressAccruedInterest,
	AddressPrincipalDue,
	AddressInterestDue,
	AddressPrincipalOverdue,
	AddressInterestOverdue,
	AddressPenalties,
	AddressPendingCapitalisation,
	AddressOverpayment,
}

// OverdueAddresses are the buckets penalty interest may accrue on.
var OverdueAddresses = []Address{
	AddressPrincipalOverdue,
	AddressInterestOverdue,
}

// BalanceKey scopes one running balance value.
type BalanceKey struct {
	AccountID    string
	Address      Address
	Denomination string
	Phase        Phase
}

// BalanceSnapshot is a read-only view of live balances, keyed by address.
// The host supplies the committed, as-of-now values; the engine never asks
// for value-dated balances when checking limits.
type BalanceSnapshot struct {
	AccountID    string
	Denomination string
	balances     map[BalanceKey]decimal.Decimal
}

// NewBalanceSnapshot creates an empty snapshot for an account.
func NewBalanceSnapshot(accountID, denomination string) *BalanceSnapshot {
	return &BalanceSnapshot{
		AccountID:    accountID,
		Denomination: denomination,
		balances:     make(map[BalanceKey]decimal.Decimal),
	}
}

// Set records the running value of an address at the committed phase.
func (s *BalanceSnapshot) Set(address Address, value decimal.Decimal) {
	s.SetPhase(address, PhaseCommitted, value)
}

// SetPhase records the running value of an address at a given phase.
func (s *BalanceSnapshot) SetPhase(address Address, phase Phase, value decimal.Decimal) {
	s.balances[BalanceKey{
		AccountID:    s.AccountID,
		Address:      address,
		Denomination: s.Denomination,
		Phase:        phase,
	}] = value
}

// Get returns the committed balance at an address. Missing addresses read as
// zero.
func (s *BalanceSnapshot) Get(address Address) decimal.Decimal {
	return s.GetPhase(address, PhaseCommitted)
}

// GetPhase returns the balance at an address and phase.
func (s *BalanceSnapshot) GetPhase(address Address, phase Phase) decimal.Decimal {
	v, ok := s.balances[BalanceKey{
		AccountID:    s.AccountID,
		Address:      address,
		Denomination: s.Denomination,
		Phase:        phase,
	}]
	if !ok {
		return decimal.Zero
	}

	return v
}

// Sum returns the committed total across the given addresses.
func (s *BalanceSnapshot) Sum(addresses ...Address) decimal.Decimal {
	total := decimal.Zero
	for _, a := range addresses {
		total = total.Add(s.Get(a))
	}

	return total
}

// TotalOutstandingDebt sums every debt bucket.
func (s *BalanceSnapshot) TotalOutstandingDebt() decimal.Decimal {
	return s.Sum(DebtAddresses...)
}

// Clone returns an independent copy of the snapshot.
func (s *BalanceSnapshot) Clone() *BalanceSnapshot {
	clone := NewBalanceSnapshot(s.AccountID, s.Denomination)
	for k, v := range s.balances {
		clone.balances[k] = v
	}

	return clone
}

// Apply replays an instruction's movements onto the snapshot. Used by the
// host-side store and by tests; the engine itself never mutates a snapshot.
func (s *BalanceSnapshot) Apply(instruction *PostingInstruction) {
	for _, m := range instruction.Movements {
		if m.Debit.AccountID == s.AccountID && m.Denomination == s.Denomination {
			s.SetPhase(m.Debit.Address, m.Debit.Phase,
				s.GetPhase(m.Debit.Address, m.Debit.Phase).Add(m.Amount))
		}

		if m.Credit.AccountID == s.AccountID && m.Denomination == s.Denomination {
			s.SetPhase(m.Credit.Address, m.Credit.Phase,
				s.GetPhase(m.Credit.Address, m.Credit.Phase).Sub(m.Amount))
		}
	}
}
