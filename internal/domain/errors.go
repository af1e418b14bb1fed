package domain

import "errors"

var (
	// Instruction errors
	ErrEmptyInstruction      = errors.New("instruction has no movements")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrMissingDenomination   = errors.New("movement is missing a denomination")
	ErrUnbalancedInstruction = errors.New("instruction debits do not equal credits")

	// Transfer rejections
	ErrWrongDenomination      = errors.New("denomination does not match the account")
	ErrMultipleInstructions   = errors.New("only a single instruction is accepted")
	ErrRestrictedAddress      = errors.New("address may not be debited directly")
	ErrDrawdownsNotPermitted  = errors.New("product does not permit further drawdowns")
	ErrExceedsCreditLimit     = errors.New("transfer exceeds the credit limit")
	ErrExceedsOverdraft       = errors.New("transfer exceeds the available balance")
	ErrReferenceAlreadyUsed   = errors.New("transaction reference has already been used")
	ErrOverpaymentExceedsDebt = errors.New("overpayment exceeds the remaining principal debt")

	// Lifecycle rejections
	ErrAccountNotFound   = errors.New("loan account not found")
	ErrAccountNotOpen    = errors.New("loan account is not open")
	ErrOutstandingDebt   = errors.New("account still has outstanding debt")
	ErrOutstandingRedraw = errors.New("account still holds redraw funds")

	// Configuration errors
	ErrUnsupportedAmortisationMethod = errors.New("unsupported amortisation method")
	ErrUnsupportedDayCount           = errors.New("unsupported day count convention")
	ErrMissingParameter              = errors.New("required parameter is missing")
)
