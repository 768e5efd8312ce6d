package customers

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// CustomerRepository хранилище клиентов и их контактов
type CustomerRepository interface {
	FindByPrimaryEmail(ctx context.Context, email string) (int64, error)
	FindByEmailRecord(ctx context.Context, email string) (int64, error)
	FindByPhone(ctx context.Context, normalized string) (int64, error)
	FindEmailOwner(ctx context.Context, email string, excludeCustomerID int64) (*domain.Customer, error)
	FindPhoneOwner(ctx context.Context, normalized string, excludeCustomerID int64) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	AddEmail(ctx context.Context, e *domain.CustomerEmail) error
	RecordBooking(ctx context.Context, customerID int64, bookingDate time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
