package rules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// RuleRepository правила доступности и исключения на даты
type RuleRepository interface {
	GetDefaultRule(ctx context.Context, memberID int64) (*domain.AvailabilityRule, error)
	CreateRule(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	UpdateRule(ctx context.Context, rule *domain.AvailabilityRule) error
	ListOverridesFrom(ctx context.Context, ruleID int64, from time.Time) ([]domain.DateOverride, error)
	AddOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error)
	DeleteOverride(ctx context.Context, memberID, overrideID int64) error
}

// MemberRepository участники и их рабочие часы
type MemberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	IsActiveDepartmentMember(ctx context.Context, departmentID, memberID int64) (bool, error)
	GetWorkingHours(ctx context.Context, memberID int64) ([]byte, error)
	SetWorkingHours(ctx context.Context, memberID int64, raw []byte) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
