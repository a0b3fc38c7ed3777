package conflict_stats

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

// Handle GET /api/v1/organizations/{orgId}/conflicts/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	organizationID, err := strconv.ParseInt(vars["orgId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/conflicts/stats - Invalid organization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /organizations/{id}/conflicts/stats - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetConflictStats(r.Context(), &models.GetConflictStatsRequest{
		UserID:         userID,
		OrganizationID: organizationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, conflicts.ErrOrganizationNotFound):
			h.logger.Warn("GET /organizations/{id}/conflicts/stats - Organization not found: org_id=%d",
				organizationID)
			handlers.RespondNotFound(w, msgOrgNotFound)

		case errors.Is(err, conflicts.ErrAccessDenied):
			h.logger.Warn("GET /organizations/{id}/conflicts/stats - Access denied: org_id=%d, user_id=%d",
				organizationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /organizations/{id}/conflicts/stats - Failed to get stats: org_id=%d, error=%v",
				organizationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /organizations/{id}/conflicts/stats - Stats retrieved successfully: org_id=%d, total=%d",
		organizationID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
