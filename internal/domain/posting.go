package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Leg identifies one side of a balance movement.
type Leg struct {
	AccountID string
	Address   Address
	Phase     Phase
}

// Movement is a single debit/credit pair: the debited leg's balance rises by
// Amount, the credited leg's balance falls by the same amount.
type Movement struct {
	Amount       decimal.Decimal
	Denomination string
	Debit        Leg
	Credit       Leg
}

// PostingInstruction is an atomic, named group of movements. It is created by
// the engine in response to one event, committed exactly once by the host and
// never mutated afterwards. Event and Description are audit metadata only.
type PostingInstruction struct {
	ID          string
	Event       string
	Description string
	ValueAt     time.Time
	Movements   []Movement
	Metadata    map[string]string
}

// Validate enforces the double-entry invariant: every movement strictly
// positive, denominated consistently, and debits equal to credits per
// denomination at the instruction's precision.
func (p *PostingInstruction) Validate() error {
	if len(p.Movements) == 0 {
		return ErrEmptyInstruction
	}

	debits := make(map[string]decimal.Decimal)
	credits := make(map[string]decimal.Decimal)

	for _, m := range p.Movements {
		if m.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: movement of %s", ErrInvalidAmount, m.Amount)
		}

		if m.Denomination == "" {
			return ErrMissingDenomination
		}

		debits[m.Denomination] = debits[m.Denomination].Add(m.Amount)
		credits[m.Denomination] = credits[m.Denomination].Add(m.Amount)
	}

	for denom, d := range debits {
		if !d.Equal(credits[denom]) {
			return fmt.Errorf("%w: %s debits %s != credits %s",
				ErrUnbalancedInstruction, denom, d, credits[denom])
		}
	}

	return nil
}

// InstructionBuilder accumulates movements for one instruction, silently
// omitting non-positive amounts. Only strictly positive transfers are
// meaningful.
type InstructionBuilder struct {
	event        string
	description  string
	valueAt      time.Time
	denomination string
	precision    int32
	movements    []Movement
}

// NewInstructionBuilder creates a builder for one event. Every amount passed
// to Move is rounded half-up to the given precision before emission.
func NewInstructionBuilder(event, description, denomination string, precision int32, valueAt time.Time) *InstructionBuilder {
	return &InstructionBuilder{
		event:        event,
		description:  description,
		valueAt:      valueAt,
		denomination: denomination,
		precision:    precision,
	}
}

// Move appends a movement from one leg to another. Amounts that round to
// zero or below are dropped without error.
func (b *InstructionBuilder) Move(amount decimal.Decimal, debit, credit Leg) *InstructionBuilder {
	rounded := amount.Round(b.precision)
	if rounded.LessThanOrEqual(decimal.Zero) {
		return b
	}

	if debit.Phase == "" {
		debit.Phase = PhaseCommitted
	}

	if credit.Phase == "" {
		credit.Phase = PhaseCommitted
	}

	b.movements = append(b.movements, Movement{
		Amount:       rounded,
		Denomination: b.denomination,
		Debit:        debit,
		Credit:       credit,
	})

	return b
}

// Transfer moves value between two addresses on the same account.
func (b *InstructionBuilder) Transfer(accountID string, amount decimal.Decimal, from, to Address) *InstructionBuilder {
	return b.Move(amount,
		Leg{AccountID: accountID, Address: to},
		Leg{AccountID: accountID, Address: from},
	)
}

// AdjustTracker moves a tracker address to a target value, offsetting
// against INTERNAL_CONTRA on the same account.
func (b *InstructionBuilder) AdjustTracker(accountID string, tracker Address, current, target decimal.Decimal) *InstructionBuilder {
	delta := target.Sub(current)
	if delta.IsZero() {
		return b
	}

	if delta.IsPositive() {
		return b.Move(delta,
			Leg{AccountID: accountID, Address: tracker},
			Leg{AccountID: accountID, Address: AddressInternalContra},
		)
	}

	return b.Move(delta.Neg(),
		Leg{AccountID: accountID, Address: AddressInternalContra},
		Leg{AccountID: accountID, Address: tracker},
	)
}

// Empty reports whether no movement survived the positive-amount guard.
func (b *InstructionBuilder) Empty() bool {
	return len(b.movements) == 0
}

// Build returns the instruction, or nil if every movement was omitted.
// The returned instruction still needs an ID from the committing host.
func (b *InstructionBuilder) Build() *PostingInstruction {
	if b.Empty() {
		return nil
	}

	return &PostingInstruction{
		Event:       b.event,
		Description: b.description,
		ValueAt:     b.valueAt,
		Movements:   b.movements,
	}
}
