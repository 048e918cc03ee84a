package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/logx"
)

// UserHandler serves profile lookups and social provider linking.
type UserHandler struct {
	usecase userUsecase
	logger  logx.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(logger logx.Logger, uc userUsecase) *UserHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &UserHandler{usecase: uc, logger: logger}
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.usecase.Get(r.Context(), domain.UserID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, userToResponse(u))
}

// UpdateSocials handles PUT /users/{id}/socials.
func (h *UserHandler) UpdateSocials(w http.ResponseWriter, r *http.Request) {
	var req socialsRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	u, err := h.usecase.SetSocials(r.Context(), domain.UserID(chi.URLParam(r, "id")), req.Socials)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, userToResponse(u))
}
