package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	availabilityModels "github.com/m04kA/SMC-MeetingService/internal/service/availability/models"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// UnavailableMemberResponse участник, который не может занять интервал
type UnavailableMemberResponse struct {
	MemberID  int64                                 `json:"memberId"`
	Name      string                                `json:"name"`
	Reason    string                                `json:"reason"`
	Conflicts []availabilityModels.ConflictResponse `json:"conflicts"`
}

// ConflictErrorResponse тело ответа 409 с конфликтами доступности
type ConflictErrorResponse struct {
	Code    int                         `json:"code"`
	Message string                      `json:"message"`
	Members []UnavailableMemberResponse `json:"members,omitempty"`
}

// DecodeJSON декодирует тело запроса
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(v)
}

// RespondJSON отправляет JSON ответ. При payload == nil отправляется только статус
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError отправляет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError скрывает детали ошибки от клиента
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondUnavailable отвечает 409 со списком конфликтов, если в цепочке ошибок есть
// *domain.AvailabilityError. Возвращает false, если такой ошибки нет
func RespondUnavailable(w http.ResponseWriter, err error) bool {
	var availErr *domain.AvailabilityError
	if !errors.As(err, &availErr) {
		return false
	}

	members := make([]UnavailableMemberResponse, 0, len(availErr.Members))
	for _, m := range availErr.Members {
		member := UnavailableMemberResponse{
			MemberID:  m.MemberID,
			Name:      m.Name,
			Conflicts: []availabilityModels.ConflictResponse{},
		}
		if m.Result != nil {
			member.Reason = m.Result.Reason
			member.Conflicts = availabilityModels.FromDomainConflicts(m.Result.Conflicts)
		}
		members = append(members, member)
	}

	RespondJSON(w, http.StatusConflict, ConflictErrorResponse{
		Code:    http.StatusConflict,
		Message: availErr.Error(),
		Members: members,
	})
	return true
}

// RespondFinalized отвечает 409, если бронирование в финальном статусе
func RespondFinalized(w http.ResponseWriter, err error) bool {
	var finalized *domain.FinalizedError
	if !errors.As(err, &finalized) {
		return false
	}

	RespondConflict(w, finalized.Error())
	return true
}
