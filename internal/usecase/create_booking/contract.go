package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	customerModels "github.com/m04kA/SMC-MeetingService/internal/service/customers/models"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// MemberRepository интерфейс репозитория участников
type MemberRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Member, error)
	LockMembers(ctx context.Context, ids []int64) error
	IsActiveDepartmentMember(ctx context.Context, departmentID, memberID int64) (bool, error)
}

// MeetingTypeRepository интерфейс репозитория типов встреч
type MeetingTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MeetingType, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// CustomerResolver поиск или создание клиента по контактам
type CustomerResolver interface {
	FindOrCreate(ctx context.Context, req *customerModels.ResolveRequest) (*customerModels.ResolveResponse, error)
	RecordBooking(ctx context.Context, customerID int64, bookingDate time.Time) error
}

// AvailabilityChecker проверка доступности ведущего
type AvailabilityChecker interface {
	CheckMembers(
		ctx context.Context,
		members []*domain.Member,
		date time.Time,
		startTime types.TimeString,
		durationMinutes int,
		excludeBookingID *int64,
	) (*domain.AvailabilityError, error)
	CheckBookingWindow(ctx context.Context, memberID int64, start, now time.Time) (*domain.Conflict, error)
}

// Notifier уведомления участникам
type Notifier interface {
	BookingCreated(ctx context.Context, b *domain.Booking)
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
