package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/logx"
)

// TripHandler serves trip posting and lookup.
type TripHandler struct {
	usecase tripUsecase
	logger  logx.Logger
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(logger logx.Logger, uc tripUsecase) *TripHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &TripHandler{usecase: uc, logger: logger}
}

// Post handles POST /trips.
func (h *TripHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req postTripRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	t, err := h.usecase.Post(r.Context(), req.toInput())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/trips/"+string(t.ID))
	writeJSON(h.logger, w, r, http.StatusCreated, tripToResponse(t))
}

// Get handles GET /trips/{id}.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.usecase.Get(r.Context(), domain.TripID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, tripToResponse(t))
}

// List handles GET /trips?traveler_id=.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.ListByTraveler(r.Context(), domain.UserID(queryParam(r, "traveler_id")))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, tripsToResponse(list))
}
