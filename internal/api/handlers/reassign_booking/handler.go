package reassign_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	reassignBooking "github.com/m04kA/SMC-MeetingService/internal/usecase/reassign_booking"
)

const (
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingActor        = "пользователь не определен"
	msgNotFound            = "бронирование не найдено"
	msgMemberNotFound      = "новый ведущий не найден"
	msgTeamMeeting         = "командную встречу нельзя переназначить"
	msgHostNotInDepartment = "новый ведущий не состоит в отделе бронирования"
	msgForbidden           = "доступ запрещен"
	msgSlotNotAvailable    = "новый ведущий занят в это время"
)

type Handler struct {
	useCase ReassignBookingUseCase
	logger  Logger
}

func NewHandler(useCase ReassignBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reassign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reassign - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ReassignBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reassign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &reassignBooking.Request{
		Actor:     actor,
		BookingID: bookingID,
		NewHostID: req.NewHostID,
	})
	if err != nil {
		if handlers.RespondFinalized(w, err) {
			h.logger.Warn("PATCH /bookings/{id}/reassign - Booking finalized: booking_id=%d", bookingID)
			return
		}
		if errors.Is(err, reassignBooking.ErrSlotNotAvailable) {
			h.logger.Warn("PATCH /bookings/{id}/reassign - New host not available: booking_id=%d: %v", bookingID, err)
			if !handlers.RespondUnavailable(w, err) {
				handlers.RespondConflict(w, msgSlotNotAvailable)
			}
			return
		}

		switch {
		case errors.Is(err, reassignBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reassign - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reassignBooking.ErrMemberNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reassign - New host not found: host_id=%d", req.NewHostID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, reassignBooking.ErrTeamMeetingImmutable):
			h.logger.Warn("PATCH /bookings/{id}/reassign - Team meeting: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgTeamMeeting)

		case errors.Is(err, reassignBooking.ErrHostNotInDepartment):
			h.logger.Warn("PATCH /bookings/{id}/reassign - Host not in department: host_id=%d", req.NewHostID)
			handlers.RespondBadRequest(w, msgHostNotInDepartment)

		case errors.Is(err, reassignBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/reassign - Access denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reassignBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/reassign - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /bookings/{id}/reassign - Failed to reassign: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reassign - Booking reassigned successfully: booking_id=%d, new_host_id=%d, user_id=%d",
		bookingID, req.NewHostID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
