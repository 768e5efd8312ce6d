package get_available_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// MemberRepository интерфейс репозитория участников
type MemberRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Member, error)
}

// SlotFinder поиск свободного слота в дне
type SlotFinder interface {
	HasFreeSlot(ctx context.Context, memberIDs []int64, date time.Time, durationMinutes int, now time.Time) (bool, error)
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
