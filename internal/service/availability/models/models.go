package models

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// CheckRequest параметры проверки доступности участника
type CheckRequest struct {
	MemberID         int64
	Date             time.Time
	StartTime        types.TimeString
	DurationMinutes  int
	ExcludeBookingID *int64 // бронирование, которое переносится или переназначается
}

// Start начало запрошенного интервала
func (r *CheckRequest) Start() time.Time {
	return types.Combine(r.Date, r.StartTime)
}

// End конец запрошенного интервала
func (r *CheckRequest) End() time.Time {
	return types.AddMinutes(r.Start(), r.DurationMinutes)
}

// ConflictResponse конфликт в ответе API
type ConflictResponse struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	BookingID *int64 `json:"bookingId,omitempty"`
}

// AvailabilityResponse результат проверки в ответе API
type AvailabilityResponse struct {
	Available bool               `json:"available"`
	Reason    *string            `json:"reason"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

// FromDomainConflicts конвертирует конфликты
func FromDomainConflicts(conflicts []domain.Conflict) []ConflictResponse {
	out := make([]ConflictResponse, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, ConflictResponse{
			Type:      string(c.Type),
			Message:   c.Message,
			BookingID: c.BookingID,
		})
	}
	return out
}

// FromDomainResult конвертирует результат проверки
func FromDomainResult(r *domain.AvailabilityResult) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		Available: r.Available,
		Conflicts: FromDomainConflicts(r.Conflicts),
	}
	if r.Reason != "" {
		reason := r.Reason
		resp.Reason = &reason
	}
	return resp
}
