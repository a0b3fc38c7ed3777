package create_booking

import (
	"errors"
	"net/http"

	"github.com/artel-platform/AOM-BookingService/internal/api/handlers"
	"github.com/artel-platform/AOM-BookingService/internal/api/middleware"
	createBooking "github.com/artel-platform/AOM-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeFormat  = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidTimeRange   = "начало бронирования должно быть строго раньше окончания"
	msgInvalidRequest     = "некорректные данные бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingConflict    = "бронирование конфликтует с текущим состоянием ресурса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictsErr *createBooking.ConflictsError

		switch {
		case errors.As(err, &conflictsErr):
			h.logger.Warn("POST /bookings - Conflicts detected: user_id=%d, org_id=%d, resource_id=%d, conflicts=%d",
				userID, req.OrganizationID, req.ResourceID, len(conflictsErr.Findings))
			handlers.RespondJSON(w, http.StatusConflict,
				FromConflictFindings(msgBookingConflict, conflictsErr.Findings))

		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: user_id=%d, org_id=%d", userID, req.OrganizationID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, org_id=%d, error=%v",
				userID, req.OrganizationID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, org_id=%d, error=%v",
				userID, req.OrganizationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, org_id=%d",
		result.ID, userID, req.OrganizationID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
