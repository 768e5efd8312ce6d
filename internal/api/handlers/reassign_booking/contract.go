package reassign_booking

import (
	"context"

	reassignBooking "github.com/m04kA/SMC-MeetingService/internal/usecase/reassign_booking"
)

type ReassignBookingUseCase interface {
	Execute(ctx context.Context, req *reassignBooking.Request) (*reassignBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
