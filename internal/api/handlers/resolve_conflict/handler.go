package resolve_conflict

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/artel-platform/AOM-BookingService/internal/api/handlers"
	"github.com/artel-platform/AOM-BookingService/internal/api/middleware"
	"github.com/artel-platform/AOM-BookingService/internal/service/conflicts"
)

const (
	msgInvalidConflictID  = "некорректный ID конфликта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidResolution  = "некорректные данные разрешения конфликта"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "конфликт не найден"
	msgForbidden          = "доступ запрещен"
	msgAlreadyResolved    = "конфликт уже разрешен"
)

type Handler struct {
	service ConflictService
	logger  Logger
}

func NewHandler(service ConflictService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/conflicts/{conflictId}/resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	conflictID, err := strconv.ParseInt(vars["conflictId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /conflicts/{id}/resolve - Invalid conflict ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConflictID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /conflicts/{id}/resolve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ResolveConflictRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /conflicts/{id}/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ResolveConflict(r.Context(), conflictID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, conflicts.ErrConflictNotFound):
			h.logger.Warn("PATCH /conflicts/{id}/resolve - Conflict not found: conflict_id=%d", conflictID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, conflicts.ErrAccessDenied):
			h.logger.Warn("PATCH /conflicts/{id}/resolve - Access denied: conflict_id=%d, user_id=%d",
				conflictID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, conflicts.ErrAlreadyResolved):
			h.logger.Warn("PATCH /conflicts/{id}/resolve - Already resolved: conflict_id=%d", conflictID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyResolved)

		case errors.Is(err, conflicts.ErrInvalidInput):
			h.logger.Warn("PATCH /conflicts/{id}/resolve - Invalid resolution data: conflict_id=%d, error=%v",
				conflictID, err)
			handlers.RespondBadRequest(w, msgInvalidResolution)

		default:
			h.logger.Error("PATCH /conflicts/{id}/resolve - Failed to resolve conflict: conflict_id=%d, error=%v",
				conflictID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /conflicts/{id}/resolve - Conflict resolved successfully: conflict_id=%d, status=%s, user_id=%d",
		conflictID, result.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
