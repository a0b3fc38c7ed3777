package list_conflicts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/artel-platform/AOM-BookingService/internal/api/handlers"
	"github.com/artel-platform/AOM-BookingService/internal/api/middleware"
	"github.com/artel-platform/AOM-BookingService/internal/service/conflicts"
	"github.com/artel-platform/AOM-BookingService/internal/service/conflicts/models"
)

const (
	msgInvalidOrgID  = "некорректный ID организации"
	msgInvalidParams = "некорректные параметры запроса"
	msgMissingUserID = "отсутствует ID пользователя"
	msgOrgNotFound   = "организация не найдена"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/organizations/{orgId}/conflicts
// Query params: status, severity (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	organizationID, err := strconv.ParseInt(vars["orgId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/conflicts - Invalid organization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /organizations/{id}/conflicts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq := &models.ListConflictsRequest{
		UserID:         userID,
		OrganizationID: organizationID,
	}

	if status := r.URL.Query().Get("status"); status != "" {
		serviceReq.Status = &status
	}
	if severity := r.URL.Query().Get("severity"); severity != "" {
		serviceReq.Severity = &severity
	}

	result, err := h.service.ListConflicts(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, conflicts.ErrOrganizationNotFound):
			h.logger.Warn("GET /organizations/{id}/conflicts - Organization not found: org_id=%d", organizationID)
			handlers.RespondNotFound(w, msgOrgNotFound)

		case errors.Is(err, conflicts.ErrAccessDenied):
			h.logger.Warn("GET /organizations/{id}/conflicts - Access denied: org_id=%d, user_id=%d",
				organizationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, conflicts.ErrInvalidInput):
			h.logger.Warn("GET /organizations/{id}/conflicts - Invalid filter: org_id=%d", organizationID)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /organizations/{id}/conflicts - Failed to list conflicts: org_id=%d, error=%v",
				organizationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /organizations/{id}/conflicts - Conflicts retrieved successfully: org_id=%d, count=%d",
		organizationID, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, result.Conflicts)
}
