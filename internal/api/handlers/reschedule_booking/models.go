package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-MeetingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(actor *domain.Actor, bookingID int64) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		Actor:     actor,
		BookingID: bookingID,
		Date:      date,
		StartTime: startTime,
	}, nil
}
