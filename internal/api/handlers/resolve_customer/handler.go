package resolve_customer

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/service/customers"
	"github.com/m04kA/SMC-MeetingService/internal/service/customers/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDuplicateContact   = "контакт уже принадлежит другому клиенту"
)

type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/customers/resolve
// Находит клиента по email или телефону, иначе создает нового
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ResolveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /customers/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.FindOrCreate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrInvalidInput):
			h.logger.Warn("POST /customers/resolve - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, customers.ErrDuplicateContact):
			h.logger.Warn("POST /customers/resolve - Duplicate contact: %v", err)
			handlers.RespondConflict(w, msgDuplicateContact)

		default:
			h.logger.Error("POST /customers/resolve - Failed to resolve customer: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	h.logger.Info("POST /customers/resolve - Customer resolved: customer_id=%d, matched_by=%s",
		result.CustomerID, result.MatchedBy)
	handlers.RespondJSON(w, status, result)
}
