package handler

import (
	"context"
	"net/http"

	"github.com/kudipay/kudipay/internal/adapter/http/dto"
)

// SweepService defines the behavior needed by AdminHandler.
type SweepService interface {
	SweepStaleLocks(ctx context.Context) (int64, error)
}

// AdminHandler exposes operational endpoints for on-call use.
type AdminHandler struct {
	sweeper SweepService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(sweeper SweepService) *AdminHandler {
	return &AdminHandler{sweeper: sweeper}
}

// SweepLocks force-releases stale withdrawal locks on demand, without
// waiting for the next scheduled sweep.
func (h *AdminHandler) SweepLocks(w http.ResponseWriter, r *http.Request) {
	released, err := h.sweeper.SweepStaleLocks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sweep failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SweepResponse{Released: released})
}
