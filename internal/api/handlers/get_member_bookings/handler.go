package get_member_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/service/bookings"
	"github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
)

const (
	msgInvalidMemberID = "некорректный ID участника"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFlag     = "некорректное значение includeInactive"
	msgMissingActor    = "пользователь не определен"
	msgForbidden       = "доступ запрещен"
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

// Handle GET /api/v1/members/{memberId}/bookings
// Query params: from, to (optional, YYYY-MM-DD, включительно), status (optional), includeInactive (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	memberID, err := handlers.PathInt64(r, "memberId")
	if err != nil {
		h.logger.Warn("GET /members/{id}/bookings - Invalid member ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	from, err := handlers.OptionalQueryDate(r, "from")
	if err != nil {
		h.logger.Warn("GET /members/{id}/bookings - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := handlers.OptionalQueryDate(r, "to")
	if err != nil {
		h.logger.Warn("GET /members/{id}/bookings - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &models.ListMemberBookingsRequest{
		Actor:    actor,
		MemberID: memberID,
		From:     from,
		To:       to,
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}
	if raw := r.URL.Query().Get("includeInactive"); raw != "" {
		req.IncludeInactive, err = strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFlag)
			return
		}
	}

	result, err := h.service.ListMemberBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /members/{id}/bookings - Access denied: member_id=%d, user_id=%d", memberID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidStatus), errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /members/{id}/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /members/{id}/bookings - Failed to get bookings: member_id=%d, error=%v", memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /members/{id}/bookings - Bookings retrieved successfully: member_id=%d, count=%d",
		memberID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
