package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/domain"
	createBooking "github.com/m04kA/SMC-MeetingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateTime     = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingActor        = "пользователь не определен"
	msgMeetingTypeNotFound = "тип встречи не найден"
	msgMemberNotFound      = "ведущий не найден"
	msgCustomerNotFound    = "клиент не найден"
	msgHostNotInDepartment = "ведущий не состоит в отделе типа встречи"
	msgForbidden           = "доступ запрещен"
	msgInvalidBookingDate  = "дата или время бронирования в прошлом"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
	msgBookingWindow       = "время вне окна бронирования"
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
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Конфликты доступности отдаются вместе со списком причин
		if errors.Is(err, createBooking.ErrSlotNotAvailable) {
			h.logger.Warn("POST /bookings - Slot not available: member_id=%d, user_id=%d: %v", req.MemberID, actor.UserID, err)
			if !handlers.RespondUnavailable(w, err) {
				handlers.RespondConflict(w, msgSlotNotAvailable)
			}
			return
		}

		switch {
		case errors.Is(err, createBooking.ErrMeetingTypeNotFound):
			h.logger.Warn("POST /bookings - Meeting type not found: meeting_type_id=%d", req.MeetingTypeID)
			handlers.RespondNotFound(w, msgMeetingTypeNotFound)

		case errors.Is(err, createBooking.ErrMemberNotFound):
			h.logger.Warn("POST /bookings - Member not found: member_id=%d", req.MemberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, createBooking.ErrCustomerNotFound):
			h.logger.Warn("POST /bookings - Customer not found: %v", err)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createBooking.ErrHostNotInDepartment):
			h.logger.Warn("POST /bookings - Host not in department: member_id=%d", req.MemberID)
			handlers.RespondBadRequest(w, msgHostNotInDepartment)

		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d", actor.UserID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrBookingWindow):
			h.logger.Warn("POST /bookings - Outside booking window: %v", err)
			handlers.RespondBadRequest(w, bookingWindowMessage(err))

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, kind=%s, user_id=%d",
		result.ID, useCaseReq.Kind, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// bookingWindowMessage текст нарушенного ограничения правила ведущего
func bookingWindowMessage(err error) string {
	var availErr *domain.AvailabilityError
	if errors.As(err, &availErr) {
		return availErr.Error()
	}
	return msgBookingWindow
}
