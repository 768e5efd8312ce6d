package check_availability

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/service/availability/models"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	MemberID         int64  `json:"memberId"`
	Date             string `json:"date"`      // "2026-03-02"
	StartTime        string `json:"startTime"` // "10:00"
	DurationMinutes  int    `json:"durationMinutes"`
	ExcludeBookingID *int64 `json:"excludeBookingId,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CheckAvailabilityRequest) ToServiceRequest() (*models.CheckRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &models.CheckRequest{
		MemberID:         r.MemberID,
		Date:             date,
		StartTime:        startTime,
		DurationMinutes:  r.DurationMinutes,
		ExcludeBookingID: r.ExcludeBookingID,
	}, nil
}
