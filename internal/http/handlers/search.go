package handlers

import (
	"fmt"
	"net/http"

	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/logx"
)

// SearchHandler serves ranked trip matches to senders.
type SearchHandler struct {
	usecase searchUsecase
	users   travelerLookup
	logger  logx.Logger
}

// NewSearchHandler creates a new SearchHandler. users may be nil, in which case
// matches are returned without traveler profiles.
func NewSearchHandler(logger logx.Logger, uc searchUsecase, users travelerLookup) *SearchHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &SearchHandler{usecase: uc, users: users, logger: logger}
}

// Search handles GET /search?from=&to=&category=.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := domain.SearchQuery{
		Origin:      queryParam(r, "from"),
		Destination: queryParam(r, "to"),
	}
	if raw := queryParam(r, "category"); raw != "" {
		c, ok := domain.ParseCategory(raw)
		if !ok {
			writeError(h.logger, w, r, http.StatusBadRequest, fmt.Sprintf("unknown category %q", raw))
			return
		}
		q.Category = c
	}

	matches := h.usecase.Search(r.Context(), q)
	out := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		dto := matchToResponse(m)
		if h.users != nil {
			if u, err := h.users.Get(m.Trip.Traveler); err == nil {
				dto.Traveler = userToResponse(u)
			}
		}
		out = append(out, dto)
	}
	writeJSON(h.logger, w, r, http.StatusOK, out)
}

// Categories handles GET /categories with the vocabulary senders can filter by.
func (h *SearchHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats := domain.Categories()
	out := categoriesDTO{Categories: make([]string, 0, len(cats))}
	for _, c := range cats {
		out.Categories = append(out.Categories, string(c))
	}
	writeJSON(h.logger, w, r, http.StatusOK, out)
}
