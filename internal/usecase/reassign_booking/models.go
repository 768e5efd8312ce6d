package reassign_booking

import (
	"github.com/m04kA/SMC-MeetingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
)

// Request запрос на смену основного ведущего
type Request struct {
	Actor     *domain.Actor
	BookingID int64
	NewHostID int64
}

// Response бронирование с новым ведущим
type Response = bookingModels.BookingResponse
