package date_overrides

import (
	"context"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/service/rules/models"
)

type RuleService interface {
	AddOverride(ctx context.Context, req *models.AddOverrideRequest) (*models.OverrideResponse, error)
	DeleteOverride(ctx context.Context, actor *domain.Actor, memberID, overrideID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
