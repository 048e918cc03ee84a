package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/logx"
	"getmystuff-courier/internal/service/capacity"
)

// CapacityHandler serves allocate and release calls made by booking flows.
type CapacityHandler struct {
	usecase capacityUsecase
	logger  logx.Logger
}

// NewCapacityHandler creates a new CapacityHandler.
func NewCapacityHandler(logger logx.Logger, uc capacityUsecase) *CapacityHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &CapacityHandler{usecase: uc, logger: logger}
}

// Allocate handles POST /trips/{id}/allocate.
func (h *CapacityHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.usecase.Allocate)
}

// Release handles POST /trips/{id}/release.
func (h *CapacityHandler) Release(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.usecase.Release)
}

// Get handles GET /trips/{id}/capacity.
func (h *CapacityHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.usecase.Current(r.Context(), domain.TripID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, snapshotToResponse(snap))
}

func (h *CapacityHandler) apply(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, domain.TripID, float64) (capacity.Snapshot, error),
) {
	var req capacityRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	snap, err := op(r.Context(), domain.TripID(chi.URLParam(r, "id")), req.AmountKg)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, snapshotToResponse(snap))
}
