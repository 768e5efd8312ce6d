package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// BookingRepository активные бронирования участника в обеих ролях
type BookingRepository interface {
	ListOverlapping(ctx context.Context, memberID int64, start, end time.Time, excludeBookingID *int64) ([]domain.MemberBooking, error)
	ListStartingBetween(ctx context.Context, memberID int64, from, to time.Time, excludeBookingID *int64) ([]domain.MemberBooking, error)
}

// BlockedSlotRepository блокировки участника
type BlockedSlotRepository interface {
	ListByMemberAndDate(ctx context.Context, memberID int64, date time.Time) ([]domain.BlockedSlot, error)
}

// RuleRepository правила доступности и исключения на даты
type RuleRepository interface {
	GetDefaultRule(ctx context.Context, memberID int64) (*domain.AvailabilityRule, error)
	ListOverridesForDate(ctx context.Context, memberID int64, date time.Time) ([]domain.DateOverride, error)
}

// WorkingHoursRepository сырой JSON недельного расписания
type WorkingHoursRepository interface {
	GetWorkingHours(ctx context.Context, memberID int64) ([]byte, error)
}

// CalendarRepository события внешних календарей
type CalendarRepository interface {
	ListBlockingEvents(ctx context.Context, memberID int64, start, end time.Time) ([]domain.CalendarEvent, error)
}

// Metrics счетчики проверок доступности
type Metrics interface {
	ObserveAvailability(available bool, conflictTypes []string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
