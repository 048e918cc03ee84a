package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"getmystuff-courier/internal/logx"
)

// NotificationHandler serves the notification feed.
type NotificationHandler struct {
	usecase notificationUsecase
	logger  logx.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(logger logx.Logger, uc notificationUsecase) *NotificationHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &NotificationHandler{usecase: uc, logger: logger}
}

// List handles GET /notifications.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.usecase.List(r.Context())
	out := notificationsDTO{Items: make([]notificationDTO, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, itemToResponse(it))
		if it.Unread {
			out.UnreadCount++
		}
	}
	writeJSON(h.logger, w, r, http.StatusOK, out)
}

// MarkRead handles POST /notifications/{id}/read. Unknown ids still return 204.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.usecase.MarkRead(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles POST /notifications/read-all.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	n := h.usecase.MarkAllRead(r.Context())
	writeJSON(h.logger, w, r, http.StatusOK, map[string]int{"marked": n})
}

// UnreadCount handles GET /notifications/unread-count.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, map[string]int{"unread_count": h.usecase.UnreadCount(r.Context())})
}
