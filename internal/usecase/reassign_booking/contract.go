package reassign_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ReplaceAssignedUsers(ctx context.Context, booking *domain.Booking) error
	AddHistory(ctx context.Context, entry *domain.HistoryEntry) error
}

// MemberRepository интерфейс репозитория участников
type MemberRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Member, error)
	LockMembers(ctx context.Context, ids []int64) error
	IsActiveDepartmentMember(ctx context.Context, departmentID, memberID int64) (bool, error)
}

// AvailabilityChecker проверка доступности нового ведущего
type AvailabilityChecker interface {
	CheckMembers(
		ctx context.Context,
		members []*domain.Member,
		date time.Time,
		startTime types.TimeString,
		durationMinutes int,
		excludeBookingID *int64,
	) (*domain.AvailabilityError, error)
}

// Notifier уведомления участникам
type Notifier interface {
	BookingReassigned(ctx context.Context, b *domain.Booking, oldHostName, newHostName string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
