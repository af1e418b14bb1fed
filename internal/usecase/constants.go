package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// ReferenceTTL is how long a claimed client transaction reference stays
	// reserved. A duplicate reference inside the window is rejected.
	ReferenceTTL = 24 * time.Hour

	// ScheduleBatchSize bounds one sweep of the schedule runner.
	ScheduleBatchSize = 100
)
