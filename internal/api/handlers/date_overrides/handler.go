package date_overrides

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/service/rules"
	"github.com/m04kA/SMC-MeetingService/internal/service/rules/models"
)

const (
	msgInvalidMemberID    = "некорректный ID участника"
	msgInvalidOverrideID  = "некорректный ID исключения"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingActor       = "пользователь не определен"
	msgMemberNotFound     = "участник не найден"
	msgOverrideNotFound   = "исключение на дату не найдено"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service RuleService
	logger  Logger
}

func NewHandler(service RuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Add POST /api/v1/members/{memberId}/date-overrides
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	const route = "POST /members/{id}/date-overrides"

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	memberID, err := handlers.PathInt64(r, "memberId")
	if err != nil {
		h.logger.Warn("%s - Invalid member ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	var req models.AddOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Actor = actor
	req.MemberID = memberID

	override, err := h.service.AddOverride(r.Context(), &req)
	if err != nil {
		h.respondError(w, route, memberID, err)
		return
	}

	h.logger.Info("%s - Override added successfully: member_id=%d, override_id=%d", route, memberID, override.ID)
	handlers.RespondJSON(w, http.StatusCreated, override)
}

// Delete DELETE /api/v1/members/{memberId}/date-overrides/{overrideId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /members/{id}/date-overrides/{id}"

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	memberID, err := handlers.PathInt64(r, "memberId")
	if err != nil {
		h.logger.Warn("%s - Invalid member ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	overrideID, err := handlers.PathInt64(r, "overrideId")
	if err != nil {
		h.logger.Warn("%s - Invalid override ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidOverrideID)
		return
	}

	if err := h.service.DeleteOverride(r.Context(), actor, memberID, overrideID); err != nil {
		h.respondError(w, route, memberID, err)
		return
	}

	h.logger.Info("%s - Override deleted successfully: member_id=%d, override_id=%d", route, memberID, overrideID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, memberID int64, err error) {
	switch {
	case errors.Is(err, rules.ErrMemberNotFound):
		h.logger.Warn("%s - Member not found: member_id=%d", route, memberID)
		handlers.RespondNotFound(w, msgMemberNotFound)

	case errors.Is(err, rules.ErrOverrideNotFound):
		h.logger.Warn("%s - Override not found: member_id=%d", route, memberID)
		handlers.RespondNotFound(w, msgOverrideNotFound)

	case errors.Is(err, rules.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: member_id=%d", route, memberID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, rules.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: member_id=%d, error=%v", route, memberID, err)
		handlers.RespondInternalError(w)
	}
}
