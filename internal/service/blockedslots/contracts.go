package blockedslots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// BlockedSlotRepository хранилище блокировок
type BlockedSlotRepository interface {
	ListByMemberAndDate(ctx context.Context, memberID int64, date time.Time) ([]domain.BlockedSlot, error)
	ListByMember(ctx context.Context, memberID int64, from, to time.Time) ([]domain.BlockedSlot, error)
	Create(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error)
	Delete(ctx context.Context, memberID, slotID int64) error
}

// MemberRepository участники и членство в отделах
type MemberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	LockMembers(ctx context.Context, ids []int64) error
	IsActiveDepartmentMember(ctx context.Context, departmentID, memberID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
