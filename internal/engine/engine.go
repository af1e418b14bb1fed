package engine

import (
	"time"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
)

// Engine is the pure lending decision engine. It holds no state between
// invocations: every method derives its output from the snapshot alone, so
// the host may safely re-deliver an event.
type Engine struct{}

// New creates an Engine.
func New() *Engine {
	return &Engine{}
}

// Snapshot is the immutable input to one invocation: the parameter set as of
// the event, the active policy flags and the live committed balances.
type Snapshot struct {
	Params   domain.Parameters
	Policies *domain.PolicySet
	Balances *domain.BalanceSnapshot
	Now      time.Time
}

// Notification is a directive for the host's delivery channels.
type Notification struct {
	Type    string
	Details map[string]string
}

// Result collects everything one invocation hands back to the host.
type Result struct {
	Postings      []*domain.PostingInstruction
	Schedules     []domain.ScheduleEvent
	Notifications []Notification
	CloseAccount  bool
}

func (r *Result) addPosting(p *domain.PostingInstruction) {
	if p != nil {
		r.Postings = append(r.Postings, p)
	}
}

// Notification types emitted to the host.
const (
	NoticeRepaymentDue    = "REPAYMENT_DUE"
	NoticeOverdue         = "REPAYMENT_OVERDUE"
	NoticeDelinquent      = "ACCOUNT_DELINQUENT"
	NoticeClosureEligible = "CLOSURE_ELIGIBLE"
)

// Posting event tags. Audit metadata only, never control flow.
const (
	eventActivation       = "account_activation"
	eventAccrueInterest   = "accrue_interest"
	eventAccruePenalty    = "accrue_penalty_interest"
	eventCalculateDue     = "due_amount_calculation"
	eventCapitalise       = "capitalise_pending_interest"
	eventRepayment        = "repayment_distribution"
	eventOverpayment      = "overpayment"
	eventEarlyRepayment   = "early_repayment"
	eventTransferFees     = "transfer_fees"
	eventMoveToOverdue    = "move_balances_to_overdue"
	eventLateRepaymentFee = "late_repayment_fee"
	eventReamortisation   = "reamortisation"
	eventTopUp            = "top_up_consolidation"
	eventClosure          = "closure_netting"
	eventWriteOff         = "write_off"
	eventBalloon          = "balloon_payment"
)

// defaultLeg is the customer-facing leg of an account.
func defaultLeg(accountID string) domain.Leg {
	return domain.Leg{AccountID: accountID, Address: domain.AddressDefault, Phase: domain.PhaseCommitted}
}

func loanLeg(p *domain.Parameters, address domain.Address) domain.Leg {
	return domain.Leg{AccountID: p.AccountID, Address: address, Phase: domain.PhaseCommitted}
}
