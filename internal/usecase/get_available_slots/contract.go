package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// MemberRepository интерфейс репозитория участников
type MemberRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Member, error)
}

// AvailabilityChecker проверка доступности всех участников в интервале
type AvailabilityChecker interface {
	AllAvailable(
		ctx context.Context,
		memberIDs []int64,
		date time.Time,
		startTime types.TimeString,
		durationMinutes int,
	) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
