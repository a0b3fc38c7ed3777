package get_organization_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/artel-platform/AOM-BookingService/internal/api/handlers"
	"github.com/artel-platform/AOM-BookingService/internal/api/middleware"
	"github.com/artel-platform/AOM-BookingService/internal/service/bookings"
)

const (
	msgInvalidOrgID  = "некорректный ID организации"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgOrgNotFound   = "организация не найдена"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/organizations/{orgId}/bookings
// Query params: resourceId, status, from, to, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	organizationID, err := strconv.ParseInt(vars["orgId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/bookings - Invalid organization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /organizations/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(organizationID, userID,
		query.Get("resourceId"), query.Get("status"),
		query.Get("from"), query.Get("to"), query.Get("includeInactive"))
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит права менеджера
	result, err := h.service.GetOrganizationBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrOrganizationNotFound):
			h.logger.Warn("GET /organizations/{id}/bookings - Organization not found: org_id=%d", organizationID)
			handlers.RespondNotFound(w, msgOrgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /organizations/{id}/bookings - Access denied: org_id=%d, user_id=%d",
				organizationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /organizations/{id}/bookings - Invalid filter: org_id=%d", organizationID)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /organizations/{id}/bookings - Failed to get bookings: org_id=%d, error=%v",
				organizationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /organizations/{id}/bookings - Bookings retrieved successfully: org_id=%d, count=%d",
		organizationID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
