package availability_rule

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingActor       = "пользователь не определен"
	msgMemberNotFound     = "участник не найден"
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

// Get GET /api/v1/members/{memberId}/availability-rule
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const route = "GET /members/{id}/availability-rule"

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

	rule, err := h.service.GetRule(r.Context(), actor, memberID)
	if err != nil {
		h.respondError(w, route, memberID, err)
		return
	}

	h.logger.Info("%s - Rule retrieved successfully: member_id=%d", route, memberID)
	handlers.RespondJSON(w, http.StatusOK, rule)
}

// Update PUT /api/v1/members/{memberId}/availability-rule
// Поля, отсутствующие в теле, не изменяются
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /members/{id}/availability-rule"

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

	var req models.UpdateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Actor = actor
	req.MemberID = memberID

	rule, err := h.service.UpdateRule(r.Context(), &req)
	if err != nil {
		h.respondError(w, route, memberID, err)
		return
	}

	h.logger.Info("%s - Rule updated successfully: member_id=%d, user_id=%d", route, memberID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, rule)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, memberID int64, err error) {
	switch {
	case errors.Is(err, rules.ErrMemberNotFound):
		h.logger.Warn("%s - Member not found: member_id=%d", route, memberID)
		handlers.RespondNotFound(w, msgMemberNotFound)

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
