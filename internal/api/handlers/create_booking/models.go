package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	customerModels "github.com/m04kA/SMC-MeetingService/internal/service/customers/models"
	createBooking "github.com/m04kA/SMC-MeetingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Kind           string                         `json:"kind"` // customer | self | slot
	MeetingTypeID  int64                          `json:"meetingTypeId"`
	MemberID       int64                          `json:"memberId,omitempty"`
	Date           string                         `json:"date"`      // "2026-03-02"
	StartTime      string                         `json:"startTime"` // "10:00"
	Title          *string                        `json:"title,omitempty"`
	Notes          *string                        `json:"notes,omitempty"`
	CustomerID     *int64                         `json:"customerId,omitempty"`
	Customer       *customerModels.ResolveRequest `json:"customer,omitempty"`
	ExternalEmails []string                       `json:"externalEmails,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor *domain.Actor) (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	kind := r.Kind
	if kind == "" {
		kind = createBooking.KindCustomer
	}

	return &createBooking.Request{
		Actor:          actor,
		Kind:           kind,
		MeetingTypeID:  r.MeetingTypeID,
		MemberID:       r.MemberID,
		Date:           date,
		StartTime:      startTime,
		Title:          r.Title,
		Notes:          r.Notes,
		CustomerID:     r.CustomerID,
		Customer:       r.Customer,
		ExternalEmails: r.ExternalEmails,
	}, nil
}
