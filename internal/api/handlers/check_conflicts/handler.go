package check_conflicts

import (
	"net/http"

	"github.com/artel-platform/AOM-BookingService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeWindow  = "некорректное временное окно, ожидается RFC 3339 и начало раньше окончания"
	msgInvalidIDs         = "некорректные ID организации или ресурса"
)

type Handler struct {
	detector ConflictDetector
	logger   Logger
}

func NewHandler(detector ConflictDetector, logger Logger) *Handler {
	return &Handler{
		detector: detector,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckConflictsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.OrganizationID <= 0 || req.ResourceID <= 0 {
		h.logger.Warn("POST /bookings/check - Invalid IDs: org_id=%d, resource_id=%d",
			req.OrganizationID, req.ResourceID)
		handlers.RespondBadRequest(w, msgInvalidIDs)
		return
	}

	parsed, err := req.parse()
	if err != nil {
		h.logger.Warn("POST /bookings/check - Invalid time window: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeWindow)
		return
	}

	findings, err := h.detector.CheckBookingConflicts(r.Context(),
		req.OrganizationID, req.ResourceID, parsed.start, parsed.end, req.ExcludeBookingID)
	if err != nil {
		h.logger.Error("POST /bookings/check - Check failed: org_id=%d, resource_id=%d, error=%v",
			req.OrganizationID, req.ResourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /bookings/check - Check completed: org_id=%d, resource_id=%d, conflicts=%d",
		req.OrganizationID, req.ResourceID, len(findings))
	handlers.RespondJSON(w, http.StatusOK, FromDomainFindings(findings))
}
