package notifications

import (
	"context"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/integrations/mailer"
)

// Mailer отправка писем
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// MemberRepository контакты сотрудников
type MemberRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Member, error)
}

// CustomerRepository контакты клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
