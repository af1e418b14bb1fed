package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Valid denominations (ISO 4217)
var validDenominations = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"AUD": true, "CAD": true, "CHF": true, "SGD": true,
	"NZD": true, "HKD": true, "SEK": true, "NOK": true,
	"IDR": true, "INR": true, "MYR": true, "PHP": true,
}

// MaxMovementAmount bounds a single movement.
const MaxMovementAmount = "1000000000000"

// ValidateDenomination validates a denomination code.
func ValidateDenomination(denomination string) error {
	denomination = strings.ToUpper(strings.TrimSpace(denomination))

	if !validDenominations[denomination] {
		return fmt.Errorf("%w: %s is not a valid ISO 4217 code", ErrWrongDenomination, denomination)
	}

	return nil
}

// ValidateMovementAmount validates a proposed movement amount.
func ValidateMovementAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxMovementAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: exceeds %s", ErrInvalidAmount, MaxMovementAmount)
	}

	return nil
}

// RestrictedAddresses may only be posted to by the engine itself; an
// external instruction naming one is rejected.
var RestrictedAddresses = map[Address]bool{
	AddressPrincipal:             true,
	AddressAccruedInterest:       true,
	AddressPrincipalDue:          true,
	AddressInterestDue:           true,
	AddressPrincipalOverdue:      true,
	AddressInterestOverdue:       true,
	AddressPenalties:             true,
	AddressEMI:                   true,
	AddressOverpayment:           true,
	AddressMonthlyRestPrincipal:  true,
	AddressPendingCapitalisation: true,
	AddressCapitalisedInterest:   true,
	AddressCapitalisedPenalties:  true,
	AddressDueCalculationCount:   true,
	AddressInternalContra:        true,
}
