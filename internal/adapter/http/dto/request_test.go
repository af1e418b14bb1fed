package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
)

func TestLoanParametersRequestToDomain(t *testing.T) {
	doc := `{
		"denomination": "USD",
		"principal": "100000",
		"term_months": 12,
		"repayment_day": 28,
		"annual_interest_rate": "0.12",
		"interest_rate_type": "fixed",
		"amortisation_method": "declining_principal",
		"accrual_rest": "daily",
		"day_count": "365",
		"overpayment_impact": "reduce_term",
		"balance_transfer_fee": {"rate": "0.02", "flat": "10", "cap": "100"},
		"repayment_hierarchy": ["PRINCIPAL_OVERDUE", "INTEREST_OVERDUE"],
		"accrual_precision": 5,
		"fulfilment_precision": 2
	}`

	var req LoanParametersRequest
	if err := json.Unmarshal([]byte(doc), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	params := req.ToDomain()

	if params.Denomination != "USD" || params.TermMonths != 12 {
		t.Errorf("contract terms not carried: %+v", params)
	}

	if !params.Principal.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("expected principal 100000, got %s", params.Principal)
	}

	if params.AmortisationMethod != domain.MethodDecliningPrincipal {
		t.Errorf("unexpected method %q", params.AmortisationMethod)
	}

	if params.OverpaymentImpact != domain.ImpactReduceTerm {
		t.Errorf("unexpected impact %q", params.OverpaymentImpact)
	}

	if !params.BalanceTransferFee.Cap.Equal(decimal.NewFromInt(100)) {
		t.Errorf("fee schedule not carried: %+v", params.BalanceTransferFee)
	}

	want := domain.RepaymentHierarchy{domain.AddressPrincipalOverdue, domain.AddressInterestOverdue}
	if len(params.RepaymentHierarchy) != len(want) || params.RepaymentHierarchy[0] != want[0] {
		t.Errorf("hierarchy not carried: %v", params.RepaymentHierarchy)
	}

	if err := params.Validate(); err != nil {
		t.Errorf("converted parameters invalid: %v", err)
	}
}

func TestSubmitTransferRequestToUseCaseInput(t *testing.T) {
	valueAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	req := SubmitTransferRequest{
		AccountID:      "loan-1",
		CounterpartyID: "customer-checking",
		Amount:         decimal.NewFromInt(550),
		Type:           "repayment",
		Reference:      "txn-9",
		ValueAt:        &valueAt,
	}

	input := req.ToUseCaseInput()

	if input.AccountID != "loan-1" || input.Type != "repayment" || input.Reference != "txn-9" {
		t.Errorf("input not carried: %+v", input)
	}

	if input.ValueAt == nil || !input.ValueAt.Equal(valueAt) {
		t.Errorf("value date not carried: %v", input.ValueAt)
	}
}

func TestBalancesFromSnapshot(t *testing.T) {
	snap := domain.NewBalanceSnapshot("loan-1", "USD")
	snap.Set(domain.AddressPrincipal, decimal.NewFromInt(90000))
	snap.Set(domain.AddressInterestDue, decimal.RequireFromString("123.45"))
	snap.Set(domain.AddressOverpayment, decimal.NewFromInt(-500))

	resp := BalancesFromSnapshot(snap)

	if resp.AccountID != "loan-1" || resp.Denomination != "USD" {
		t.Errorf("identity not carried: %+v", resp)
	}

	if !resp.TotalOutstandingDebt.Equal(decimal.RequireFromString("89623.45")) {
		t.Errorf("expected debt 89623.45, got %s", resp.TotalOutstandingDebt)
	}

	byAddress := make(map[string]decimal.Decimal)
	for _, b := range resp.Balances {
		byAddress[b.Address] = b.Amount
	}

	if !byAddress["PRINCIPAL"].Equal(decimal.NewFromInt(90000)) {
		t.Errorf("principal not reported: %s", byAddress["PRINCIPAL"])
	}

	if !byAddress["OVERPAYMENT"].Equal(decimal.NewFromInt(-500)) {
		t.Errorf("overpayment not reported: %s", byAddress["OVERPAYMENT"])
	}
}
