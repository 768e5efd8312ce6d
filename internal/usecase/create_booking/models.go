package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
	customerModels "github.com/m04kA/SMC-MeetingService/internal/service/customers/models"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// Виды бронирования
const (
	KindCustomer = "customer" // руководитель записывает клиента к сотруднику
	KindSelf     = "self"     // сотрудник записывает клиента к себе
	KindSlot     = "slot"     // бронирование из календаря
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor          *domain.Actor
	Kind           string
	MeetingTypeID  int64
	MemberID       int64            // ведущий для customer и slot; для self игнорируется
	Date           time.Time        // дата (без времени)
	StartTime      types.TimeString // время начала, например "10:00"
	Title          *string
	Notes          *string
	CustomerID     *int64                         // существующий клиент
	Customer       *customerModels.ResolveRequest // или контакты для поиска/создания
	ExternalEmails []string                       // внешние гости
}

// Response созданное бронирование
type Response = bookingModels.BookingResponse
