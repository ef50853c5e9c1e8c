package handler

import (
	"log/slog"
	"net/http"

	"github.com/hyjain/hyjain-api/internal/middleware"
	"github.com/hyjain/hyjain-api/internal/service"
)

// UserHandler serves the users listing.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		middleware.Log(r.Context(), h.logger).Error("users_list_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch users: "+service.RootCause(err).Error())
		return
	}
	writeJSON(w, http.StatusOK, users)
}
