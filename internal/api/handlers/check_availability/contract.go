package check_availability

import (
	"context"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/service/availability/models"
)

type AvailabilityService interface {
	CheckMemberAvailability(ctx context.Context, req *models.CheckRequest) (*domain.AvailabilityResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
