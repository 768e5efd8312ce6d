package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// Request запрос на перенос бронирования.
// Длительность сохраняется, меняется только начало.
type Request struct {
	Actor     *domain.Actor
	BookingID int64
	Date      time.Time
	StartTime types.TimeString
}

// Response перенесенное бронирование
type Response = bookingModels.BookingResponse
