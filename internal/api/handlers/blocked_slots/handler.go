package blocked_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/service/blockedslots"
	"github.com/m04kA/SMC-MeetingService/internal/service/blockedslots/models"
)

const (
	msgInvalidMemberID    = "некорректный ID участника"
	msgInvalidSlotID      = "некорректный ID блокировки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPeriod      = "период обязателен, ожидается from и to в формате YYYY-MM-DD"
	msgMissingActor       = "пользователь не определен"
	msgMemberNotFound     = "участник не найден"
	msgSlotNotFound       = "блокировка не найдена"
	msgSlotOverlap        = "блокировка пересекается с существующей"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service BlockedSlotService
	logger  Logger
}

func NewHandler(service BlockedSlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/members/{memberId}/blocked-slots
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /members/{id}/blocked-slots"

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

	var req models.CreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Actor = actor
	req.MemberID = memberID

	slot, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, route, memberID, err)
		return
	}

	h.logger.Info("%s - Blocked slot created successfully: member_id=%d, slot_id=%d", route, memberID, slot.ID)
	handlers.RespondJSON(w, http.StatusCreated, slot)
}

// List GET /api/v1/members/{memberId}/blocked-slots?from=&to=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const route = "GET /members/{id}/blocked-slots"

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

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		h.logger.Warn("%s - Invalid from: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		h.logger.Warn("%s - Invalid to: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListRequest{
		Actor:    actor,
		MemberID: memberID,
		From:     from,
		To:       to,
	})
	if err != nil {
		h.respondError(w, route, memberID, err)
		return
	}

	h.logger.Info("%s - Blocked slots retrieved successfully: member_id=%d, count=%d", route, memberID, len(result.BlockedSlots))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/members/{memberId}/blocked-slots/{slotId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /members/{id}/blocked-slots/{id}"

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

	slotID, err := handlers.PathInt64(r, "slotId")
	if err != nil {
		h.logger.Warn("%s - Invalid slot ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.Delete(r.Context(), actor, memberID, slotID); err != nil {
		h.respondError(w, route, memberID, err)
		return
	}

	h.logger.Info("%s - Blocked slot deleted successfully: member_id=%d, slot_id=%d", route, memberID, slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, memberID int64, err error) {
	switch {
	case errors.Is(err, blockedslots.ErrMemberNotFound):
		h.logger.Warn("%s - Member not found: member_id=%d", route, memberID)
		handlers.RespondNotFound(w, msgMemberNotFound)

	case errors.Is(err, blockedslots.ErrBlockedSlotNotFound):
		h.logger.Warn("%s - Blocked slot not found: member_id=%d", route, memberID)
		handlers.RespondNotFound(w, msgSlotNotFound)

	case errors.Is(err, blockedslots.ErrSlotOverlap):
		h.logger.Warn("%s - Overlapping blocked slot: member_id=%d", route, memberID)
		handlers.RespondConflict(w, msgSlotOverlap)

	case errors.Is(err, blockedslots.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: member_id=%d", route, memberID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, blockedslots.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: member_id=%d, error=%v", route, memberID, err)
		handlers.RespondInternalError(w)
	}
}
