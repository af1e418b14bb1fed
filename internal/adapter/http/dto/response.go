package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/engine"
)

// LoanResponse represents a loan account in API responses.
type LoanResponse struct {
	ID           string     `json:"id"`
	Denomination string     `json:"denomination"`
	Status       string     `json:"status"`
	ActivatedAt  time.Time  `json:"activated_at"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// LoanFromDomain converts a domain loan account to a response.
func LoanFromDomain(l *domain.LoanAccount) *LoanResponse {
	return &LoanResponse{
		ID:           l.ID,
		Denomination: l.Denomination,
		Status:       string(l.Status),
		ActivatedAt:  l.ActivatedAt,
		ClosedAt:     l.ClosedAt,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// LoansFromDomain converts domain loan accounts to responses.
func LoansFromDomain(loans []*domain.LoanAccount) []*LoanResponse {
	result := make([]*LoanResponse, len(loans))
	for i, l := range loans {
		result[i] = LoanFromDomain(l)
	}
	return result
}

// ListLoansResponse is the paginated loan listing.
type ListLoansResponse struct {
	Loans []*LoanResponse `json:"loans"`
	Total int64           `json:"total"`
}

// BalanceResponse is one address balance on an account.
type BalanceResponse struct {
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount"`
}

// BalancesResponse lists the committed balances of an account.
type BalancesResponse struct {
	AccountID            string            `json:"account_id"`
	Denomination         string            `json:"denomination"`
	Balances             []BalanceResponse `json:"balances"`
	TotalOutstandingDebt decimal.Decimal   `json:"total_outstanding_debt"`
}

// reportedAddresses are the addresses exposed on the balances endpoint, in
// reporting order.
var reportedAddresses = []domain.Address{
	domain.AddressDefault,
	domain.AddressPrincipal,
	domain.AddressAccruedInterest,
	domain.AddressPrincipalDue,
	domain.AddressInterestDue,
	domain.AddressPrincipalOverdue,
	domain.AddressInterestOverdue,
	domain.AddressPenalties,
	domain.AddressOverpayment,
	domain.AddressRedraw,
	domain.AddressEMI,
	domain.AddressPendingCapitalisation,
}

// BalancesFromSnapshot converts a balance snapshot to a response.
func BalancesFromSnapshot(snap *domain.BalanceSnapshot) *BalancesResponse {
	balances := make([]BalanceResponse, 0, len(reportedAddresses))
	for _, address := range reportedAddresses {
		balances = append(balances, BalanceResponse{
			Address: string(address),
			Amount:  snap.Get(address),
		})
	}

	return &BalancesResponse{
		AccountID:            snap.AccountID,
		Denomination:         snap.Denomination,
		Balances:             balances,
		TotalOutstandingDebt: snap.TotalOutstandingDebt(),
	}
}

// DerivedParametersResponse carries the computed contract figures.
type DerivedParametersResponse struct {
	NextRepaymentDate    time.Time       `json:"next_repayment_date"`
	ElapsedTerm          int             `json:"elapsed_term"`
	RemainingTerm        int             `json:"remaining_term"`
	TotalOutstandingDebt decimal.Decimal `json:"total_outstanding_debt"`
	EarlyRepaymentTotal  decimal.Decimal `json:"early_repayment_total"`
	EMI                  decimal.Decimal `json:"emi"`
	ExpectedBalloon      decimal.Decimal `json:"expected_balloon"`
}

// DerivedFromEngine converts engine figures to a response.
func DerivedFromEngine(d *engine.DerivedParameters) *DerivedParametersResponse {
	return &DerivedParametersResponse{
		NextRepaymentDate:    d.NextRepaymentDate,
		ElapsedTerm:          d.ElapsedTerm,
		RemainingTerm:        d.RemainingTerm,
		TotalOutstandingDebt: d.TotalOutstandingDebt,
		EarlyRepaymentTotal:  d.EarlyRepaymentTotal,
		EMI:                  d.EMI,
		ExpectedBalloon:      d.ExpectedBalloon,
	}
}

// MovementResponse is one debit/credit pair of a posting.
type MovementResponse struct {
	Amount        decimal.Decimal `json:"amount"`
	Denomination  string          `json:"denomination"`
	DebitAccount  string          `json:"debit_account"`
	DebitAddress  string          `json:"debit_address"`
	CreditAccount string          `json:"credit_account"`
	CreditAddress string          `json:"credit_address"`
}

// PostingResponse represents a committed posting instruction.
type PostingResponse struct {
	ID          string             `json:"id"`
	Event       string             `json:"event"`
	Description string             `json:"description,omitempty"`
	ValueAt     time.Time          `json:"value_at"`
	Movements   []MovementResponse `json:"movements"`
	Metadata    map[string]string  `json:"metadata,omitempty"`
}

// PostingFromDomain converts a domain posting instruction to a response.
func PostingFromDomain(p *domain.PostingInstruction) *PostingResponse {
	movements := make([]MovementResponse, len(p.Movements))
	for i, m := range p.Movements {
		movements[i] = MovementResponse{
			Amount:        m.Amount,
			Denomination:  m.Denomination,
			DebitAccount:  m.Debit.AccountID,
			DebitAddress:  string(m.Debit.Address),
			CreditAccount: m.Credit.AccountID,
			CreditAddress: string(m.Credit.Address),
		}
	}

	return &PostingResponse{
		ID:          p.ID,
		Event:       p.Event,
		Description: p.Description,
		ValueAt:     p.ValueAt,
		Movements:   movements,
		Metadata:    p.Metadata,
	}
}

// PostingsFromDomain converts domain postings to responses.
func PostingsFromDomain(postings []*domain.PostingInstruction) []*PostingResponse {
	result := make([]*PostingResponse, len(postings))
	for i, p := range postings {
		result[i] = PostingFromDomain(p)
	}
	return result
}

// RunSchedulesResponse reports the result of a schedule sweep.
type RunSchedulesResponse struct {
	Ran int `json:"ran"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
