package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCancelToken(ctx context.Context, token string) (*domain.Booking, error)
	ListByMember(ctx context.Context, filter domain.MemberBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, booking *domain.Booking) error
	AddHistory(ctx context.Context, entry *domain.HistoryEntry) error
}

// MemberRepository членство в отделах
type MemberRepository interface {
	IsActiveDepartmentMember(ctx context.Context, departmentID, memberID int64) (bool, error)
}

// Notifier уведомления об изменениях
type Notifier interface {
	BookingCancelled(ctx context.Context, b *domain.Booking)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
