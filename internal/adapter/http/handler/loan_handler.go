package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/khrisnaSoluix/lending-engine/internal/adapter/http/dto"
	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/engine"
	"github.com/khrisnaSoluix/lending-engine/internal/usecase"
)

// LoanService defines the behavior needed by LoanHandler.
type LoanService interface {
	OpenLoan(ctx context.Context, input usecase.OpenLoanInput) (*domain.LoanAccount, error)
	GetLoan(ctx context.Context, accountID string) (*domain.LoanAccount, error)
	ListLoans(ctx context.Context, limit, offset int) ([]*domain.LoanAccount, error)
	Balances(ctx context.Context, accountID string) (*domain.BalanceSnapshot, error)
	DerivedParameters(ctx context.Context, accountID string) (*engine.DerivedParameters, error)
	Postings(ctx context.Context, accountID string, limit, offset int) ([]*domain.PostingInstruction, error)
	UpdateParameters(ctx context.Context, accountID string, params domain.Parameters, effectiveAt time.Time) error
	AddFlag(ctx context.Context, accountID string, flag domain.Flag, from time.Time, until *time.Time) error
	CloseLoan(ctx context.Context, accountID string) error
	WriteOffLoan(ctx context.Context, accountID string) error
}

// DerivedCache caches derived-parameter responses for a short window.
type DerivedCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

const derivedCacheTTL = 30 * time.Second

// LoanHandler handles loan-account HTTP requests.
type LoanHandler struct {
	loanUC LoanService
	cache  DerivedCache
}

// NewLoanHandler creates a new LoanHandler. The cache is optional.
func NewLoanHandler(loanUC LoanService, cache DerivedCache) *LoanHandler {
	return &LoanHandler{loanUC: loanUC, cache: cache}
}

// Open opens a new loan account.
func (h *LoanHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	loan, err := h.loanUC.OpenLoan(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to open loan", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.LoanFromDomain(loan))
}

// Get retrieves a loan account by ID.
func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	loan, err := h.loanUC.GetLoan(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get loan", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.LoanFromDomain(loan))
}

// List lists loan accounts.
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	loans, err := h.loanUC.ListLoans(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list loans", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListLoansResponse{
		Loans: dto.LoansFromDomain(loans),
		Total: int64(len(loans)),
	})
}

// Balances retrieves the live balances of a loan account.
func (h *LoanHandler) Balances(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	snap, err := h.loanUC.Balances(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get balances", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesFromSnapshot(snap))
}

// Derived retrieves the computed contract figures of a loan account.
func (h *LoanHandler) Derived(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	cacheKey := "derived:" + id
	if h.cache != nil {
		if cached, err := h.cache.Get(r.Context(), cacheKey); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))

			return
		}
	}

	derived, err := h.loanUC.DerivedParameters(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to derive parameters", err.Error())

		return
	}

	resp := dto.DerivedFromEngine(derived)
	if h.cache != nil {
		if body, err := json.Marshal(resp); err == nil {
			_ = h.cache.Set(r.Context(), cacheKey, string(body), derivedCacheTTL)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Postings lists committed posting instructions for a loan account.
func (h *LoanHandler) Postings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	postings, err := h.loanUC.Postings(r.Context(), id, limit, offset)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list postings", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PostingsFromDomain(postings))
}

// UpdateParameters records a parameter change for a loan account.
func (h *LoanHandler) UpdateParameters(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	var req dto.UpdateParametersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	params := req.Parameters.ToDomain()
	params.AccountID = id

	effectiveAt := time.Now().UTC()
	if req.EffectiveAt != nil {
		effectiveAt = *req.EffectiveAt
	}

	if err := h.loanUC.UpdateParameters(r.Context(), id, params, effectiveAt); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update parameters", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// AddFlag records a policy flag window for a loan account.
func (h *LoanHandler) AddFlag(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	var req dto.AddFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.loanUC.AddFlag(r.Context(), id, domain.Flag(req.Flag), req.From, req.Until); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to add flag", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// Close closes a settled loan account.
func (h *LoanHandler) Close(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	if err := h.loanUC.CloseLoan(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to close loan", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// WriteOff writes off a loan account.
func (h *LoanHandler) WriteOff(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	if err := h.loanUC.WriteOffLoan(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to write off loan", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "written_off"})
}
