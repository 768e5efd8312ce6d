package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-MeetingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidMemberID  = "некорректный ID участника"
	msgInvalidMembers   = "список участников обязателен, ожидается members=1,2,3"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration  = "некорректная длительность"
	msgMissingActor     = "пользователь не определен"
	msgMemberNotFound   = "участник не найден"
	msgDateInPast       = "дата в прошлом"
	msgDateTooFar       = "дата слишком далеко в будущем"
	msgInvalidParameter = "некорректные параметры поиска"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleMember GET /api/v1/members/{memberId}/available-slots
// Query params: date (required, YYYY-MM-DD), duration (optional, minutes)
func (h *Handler) HandleMember(w http.ResponseWriter, r *http.Request) {
	const route = "GET /members/{id}/available-slots"

	memberID, err := handlers.PathInt64(r, "memberId")
	if err != nil {
		h.logger.Warn("%s - Invalid member ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	h.handle(w, r, route, []int64{memberID})
}

// HandleTeam GET /api/v1/teams/available-slots
// Query params: members (required, 1,2,3), date (required), duration (optional)
func (h *Handler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	const route = "GET /teams/available-slots"

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

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("%s - Invalid date: %v", route, err)
		if errors.Is(err, handlers.ErrMissingParam) {
			handlers.RespondBadRequest(w, msgMissingDate)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	duration, err := handlers.QueryInt(r, "duration")
	if err != nil {
		h.logger.Warn("%s - Invalid duration: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		UserID:          actor.UserID,
		MemberIDs:       memberIDs,
		Date:            date,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrMemberNotFound):
			h.logger.Warn("%s - Member not found: member_ids=%v", route, memberIDs)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("%s - Date in the past: %v", route, err)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("%s - Date too far in future: %v", route, err)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidParameter)

		default:
			h.logger.Error("%s - Failed to get slots: member_ids=%v, error=%v", route, memberIDs, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Slots retrieved successfully: member_ids=%v, slots_count=%d, user_id=%d",
		route, memberIDs, len(result.Slots), actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
