package cancel_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/service/bookings"
	"github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingToken       = "токен отмены обязателен"
	msgNotFound           = "бронирование не найдено"
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

// Handle POST /api/v1/public/bookings/cancel
// Отмена клиентом по токену из письма, без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CancelByTokenRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/bookings/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		h.logger.Warn("POST /public/bookings/cancel - Missing token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	booking, err := h.service.CancelByToken(r.Context(), &req)
	if err != nil {
		if handlers.RespondFinalized(w, err) {
			h.logger.Warn("POST /public/bookings/cancel - Booking already finalized: %v", err)
			return
		}

		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /public/bookings/cancel - Booking not found by token")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /public/bookings/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /public/bookings/cancel - Failed to cancel booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /public/bookings/cancel - Booking cancelled by customer: booking_id=%d", booking.ID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
