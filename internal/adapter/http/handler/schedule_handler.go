package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/khrisnaSoluix/lending-engine/internal/adapter/http/dto"
)

// ScheduleService defines the behavior needed by ScheduleHandler.
type ScheduleService interface {
	RunDueSchedules(ctx context.Context, before time.Time) (int, error)
}

// ScheduleHandler exposes the operator endpoint that sweeps due schedules.
type ScheduleHandler struct {
	scheduleUC ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleUC ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleUC: scheduleUC}
}

// Run executes every schedule entry due before the cutoff.
func (h *ScheduleHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req dto.RunSchedulesRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	}

	before := time.Now().UTC()
	if req.Before != nil {
		before = *req.Before
	}

	ran, err := h.scheduleUC.RunDueSchedules(r.Context(), before)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to run schedules", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.RunSchedulesResponse{Ran: ran})
}
