package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/khrisnaSoluix/lending-engine/internal/adapter/http/dto"
	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	SubmitTransfer(ctx context.Context, input usecase.SubmitTransferInput) (*domain.PostingInstruction, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Submit submits a transfer against a loan account.
func (h *TransferHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	settlement, err := h.transferUC.SubmitTransfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to submit transfer", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.PostingFromDomain(settlement))
}
