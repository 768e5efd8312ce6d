package availability_rule

import (
	"context"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/service/rules/models"
)

type RuleService interface {
	GetRule(ctx context.Context, actor *domain.Actor, memberID int64) (*models.RuleResponse, error)
	UpdateRule(ctx context.Context, req *models.UpdateRuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
