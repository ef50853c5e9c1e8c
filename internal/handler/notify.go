package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/hyjain/hyjain-api/internal/geo"
	"github.com/hyjain/hyjain-api/internal/handler/dto"
	"github.com/hyjain/hyjain-api/internal/middleware"
	"github.com/hyjain/hyjain-api/internal/model"
	"github.com/hyjain/hyjain-api/internal/service"
	"github.com/hyjain/hyjain-api/internal/validation"
)

const (
	msgEmailRequired = "Email is required."
	msgSendFailed    = "Failed to send email."
)

// NotifyHandler serves the notification and subscription routes.
type NotifyHandler struct {
	svc    *service.NotificationService
	logger *slog.Logger
}

// NewNotifyHandler creates a new NotifyHandler.
func NewNotifyHandler(svc *service.NotificationService, logger *slog.Logger) *NotifyHandler {
	return &NotifyHandler{svc: svc, logger: logger}
}

// Route returns the handler for one notification kind, e.g.
// POST /api/notify-login or POST /api/subscribe. It panics on an unknown
// kind so a bad route table fails at startup.
func (h *NotifyHandler) Route(kind model.NotificationKind) http.HandlerFunc {
	if !kind.IsValid() {
		panic(fmt.Sprintf("handler: unknown notification kind %q", kind))
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.NotifyRequest
		if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			if isTooLarge(err) {
				writeError(w, http.StatusRequestEntityTooLarge, "Request body too large.")
				return
			}
			writeError(w, http.StatusBadRequest, "Invalid request body.")
			return
		}
		if err := validation.ValidateStruct(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgEmailRequired)
			return
		}

		notification := model.NotificationRequest{
			Kind:  kind,
			Email: req.Email,
			Name:  req.Name,
		}
		if kind.NeedsLocation() {
			notification.SourceIP = geo.ClientIP(r)
		}

		outcome, err := h.svc.Notify(r.Context(), notification)
		if err != nil {
			h.handleServiceError(w, r, kind, err)
			return
		}

		writeJSON(w, http.StatusOK, dto.MessageResponse{Message: outcome.Message})
	}
}

func (h *NotifyHandler) handleServiceError(w http.ResponseWriter, r *http.Request, kind model.NotificationKind, err error) {
	switch {
	case errors.Is(err, service.ErrEmailRequired):
		writeError(w, http.StatusBadRequest, msgEmailRequired)
	default:
		middleware.Log(r.Context(), h.logger).Error("notification_request_failed",
			"kind", kind,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, msgSendFailed)
	}
}
