package log_conflict

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
	msgInvalidOrgID       = "некорректный ID организации"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConflict    = "некорректные данные конфликта"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgOrgNotFound        = "организация не найдена"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/organizations/{orgId}/conflicts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	organizationID, err := strconv.ParseInt(vars["orgId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /organizations/{id}/conflicts - Invalid organization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /organizations/{id}/conflicts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req LogConflictRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /organizations/{id}/conflicts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReportConflict(r.Context(), req.ToServiceRequest(organizationID, userID))
	if err != nil {
		switch {
		case errors.Is(err, conflicts.ErrOrganizationNotFound):
			h.logger.Warn("POST /organizations/{id}/conflicts - Organization not found: org_id=%d", organizationID)
			handlers.RespondNotFound(w, msgOrgNotFound)

		case errors.Is(err, conflicts.ErrAccessDenied):
			h.logger.Warn("POST /organizations/{id}/conflicts - Access denied: org_id=%d, user_id=%d",
				organizationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, conflicts.ErrInvalidInput):
			h.logger.Warn("POST /organizations/{id}/conflicts - Invalid conflict data: org_id=%d, type=%s",
				organizationID, req.ConflictType)
			handlers.RespondBadRequest(w, msgInvalidConflict)

		default:
			h.logger.Error("POST /organizations/{id}/conflicts - Failed to log conflict: org_id=%d, error=%v",
				organizationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /organizations/{id}/conflicts - Conflict logged successfully: conflict_id=%d, org_id=%d, type=%s",
		result.ID, organizationID, req.ConflictType)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
