package create_team_meeting

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// Request модель запроса на создание командной встречи
type Request struct {
	Actor          *domain.Actor
	MeetingTypeID  int64
	ParticipantIDs []int64
	Date           time.Time
	StartTime      types.TimeString
	Title          *string
	Notes          *string
}

// Response созданная встреча
type Response = bookingModels.BookingResponse
