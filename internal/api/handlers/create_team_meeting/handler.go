package create_team_meeting

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	createTeamMeeting "github.com/m04kA/SMC-MeetingService/internal/usecase/create_team_meeting"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateTime     = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingActor        = "пользователь не определен"
	msgMeetingTypeNotFound = "тип встречи не найден"
	msgMemberNotFound      = "участник не найден"
	msgForbidden           = "командные встречи создает руководитель отдела"
	msgInvalidMeetingDate  = "дата или время встречи в прошлом"
	msgSlotNotAvailable    = "не все участники свободны в выбранное время"
)

type Handler struct {
	useCase CreateTeamMeetingUseCase
	logger  Logger
}

func NewHandler(useCase CreateTeamMeetingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/team
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req CreateTeamMeetingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/team - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings/team - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, createTeamMeeting.ErrSlotNotAvailable) {
			h.logger.Warn("POST /bookings/team - Participants not available: user_id=%d: %v", actor.UserID, err)
			if !handlers.RespondUnavailable(w, err) {
				handlers.RespondConflict(w, msgSlotNotAvailable)
			}
			return
		}

		switch {
		case errors.Is(err, createTeamMeeting.ErrMeetingTypeNotFound):
			h.logger.Warn("POST /bookings/team - Meeting type not found: meeting_type_id=%d", req.MeetingTypeID)
			handlers.RespondNotFound(w, msgMeetingTypeNotFound)

		case errors.Is(err, createTeamMeeting.ErrMemberNotFound):
			h.logger.Warn("POST /bookings/team - Member not found: %v", err)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, createTeamMeeting.ErrAccessDenied):
			h.logger.Warn("POST /bookings/team - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createTeamMeeting.ErrInvalidDate):
			h.logger.Warn("POST /bookings/team - Invalid meeting date: user_id=%d", actor.UserID)
			handlers.RespondBadRequest(w, msgInvalidMeetingDate)

		case errors.Is(err, createTeamMeeting.ErrInvalidInput):
			h.logger.Warn("POST /bookings/team - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/team - Failed to create team meeting: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/team - Team meeting created successfully: booking_id=%d, participants=%d, user_id=%d",
		result.ID, len(result.Participants), actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
