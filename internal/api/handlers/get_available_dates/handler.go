package get_available_dates

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-MeetingService/internal/usecase/get_available_dates"
)

const (
	msgInvalidMemberID  = "некорректный ID участника"
	msgInvalidMembers   = "список участников обязателен, ожидается members=1,2,3"
	msgInvalidMonth     = "некорректный формат месяца, ожидается YYYY-MM"
	msgInvalidDuration  = "некорректная длительность"
	msgMissingActor     = "пользователь не определен"
	msgMemberNotFound   = "участник не найден"
	msgMonthOutOfRange  = "месяц в прошлом или дальше горизонта бронирования"
	msgInvalidParameter = "некорректные параметры поиска"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleMember GET /api/v1/members/{memberId}/available-dates
// Query params: month (required, YYYY-MM), duration (optional, minutes)
func (h *Handler) HandleMember(w http.ResponseWriter, r *http.Request) {
	const route = "GET /members/{id}/available-dates"

	memberID, err := handlers.PathInt64(r, "memberId")
	if err != nil {
		h.logger.Warn("%s - Invalid member ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	h.handle(w, r, route, []int64{memberID})
}

// HandleTeam GET /api/v1/teams/available-dates
// Query params: members (required, 1,2,3), month (required), duration (optional)
func (h *Handler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	const route = "GET /teams/available-dates"

	memberIDs, err := handlers.QueryInt64List(r, "members")
	if err != nil {
		h.logger.Warn("%s - Invalid members: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidMembers)
		return
	}

	h.handle(w, r, route, memberIDs)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, route string, memberIDs []int64) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	month, err := time.Parse(domain.MonthFormat, r.URL.Query().Get("month"))
	if err != nil {
		h.logger.Warn("%s - Invalid month: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	duration, err := handlers.QueryInt(r, "duration")
	if err != nil {
		h.logger.Warn("%s - Invalid duration: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{
		UserID:          actor.UserID,
		MemberIDs:       memberIDs,
		Month:           month,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrMemberNotFound):
			h.logger.Warn("%s - Member not found: member_ids=%v", route, memberIDs)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, getAvailableDates.ErrInvalidMonth):
			h.logger.Warn("%s - Month out of range: %v", route, err)
			handlers.RespondBadRequest(w, msgMonthOutOfRange)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidParameter)

		default:
			h.logger.Error("%s - Failed to get dates: member_ids=%v, error=%v", route, memberIDs, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Dates retrieved successfully: member_ids=%v, dates_count=%d, user_id=%d",
		route, memberIDs, len(result.Dates), actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
