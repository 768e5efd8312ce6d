package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/customer"
	meetingTypeRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/meetingtype"
	bookingModels "github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MeetingService/internal/service/customers"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// UseCase use case для создания бронирования с одним ведущим
type UseCase struct {
	bookingRepo     BookingRepository
	memberRepo      MemberRepository
	meetingTypeRepo MeetingTypeRepository
	customerRepo    CustomerRepository
	customers       CustomerResolver
	availability    AvailabilityChecker
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	memberRepo MemberRepository,
	meetingTypeRepo MeetingTypeRepository,
	customerRepo CustomerRepository,
	customers CustomerResolver,
	availability AvailabilityChecker,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		memberRepo:      memberRepo,
		meetingTypeRepo: meetingTypeRepo,
		customerRepo:    customerRepo,
		customers:       customers,
		availability:    availability,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и запись выполняются в одной сериализуемой транзакции
// под блокировкой строки ведущего.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: kind=%s, user=%d, meetingType=%d, member=%d, date=%s, time=%s",
		req.Kind, req.Actor.UserID, req.MeetingTypeID, req.MemberID, req.Date.Format(domain.DateFormat), req.StartTime)

	externalEmails, err := normalizeEmails(req.ExternalEmails)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата и время не в прошлом
	now := uc.timeProvider.Now()
	start := types.Combine(req.Date, req.StartTime)
	if err := validateDate(req.Date, start, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Тип встречи
	meetingType, err := uc.getMeetingType(ctx, req.MeetingTypeID)
	if err != nil {
		return nil, err
	}

	// 4. Ведущий и права
	host, err := uc.resolveHost(ctx, req, meetingType)
	if err != nil {
		return nil, err
	}

	duration := meetingDuration(meetingType)
	end := types.AddMinutes(start, duration)

	// 5. Минимальное уведомление и горизонт бронирования
	windowConflict, err := uc.availability.CheckBookingWindow(ctx, host.ID, start, now)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check booking window for member=%d: %v", host.ID, err)
		return nil, fmt.Errorf("%w: failed to check booking window: %v", ErrInternal, err)
	}
	if windowConflict != nil {
		uc.logger.Warn("CreateBooking: booking window violated for member=%d: %s", host.ID, windowConflict.Message)
		return nil, fmt.Errorf("%w: %w", ErrBookingWindow, &domain.AvailabilityError{Members: []domain.UnavailableMember{{
			MemberID: host.ID,
			Name:     host.DisplayName(),
			Result:   domain.NewAvailabilityResult([]domain.Conflict{*windowConflict}),
		}}})
	}

	var result *domain.Booking

	// 6. Операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Клиент
		customerID, customerName, err := uc.resolveCustomer(txCtx, req)
		if err != nil {
			return err
		}

		// 6.2. Блокируем ведущего до конца транзакции
		if err := uc.memberRepo.LockMembers(txCtx, []int64{host.ID}); err != nil {
			return fmt.Errorf("%w: failed to lock member: %v", ErrInternal, err)
		}

		// 6.3. Доступность ведущего
		availErr, err := uc.availability.CheckMembers(txCtx, []*domain.Member{host}, req.Date, req.StartTime, duration, nil)
		if err != nil {
			return fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
		}
		if availErr != nil {
			return fmt.Errorf("%w: %w", ErrSlotNotAvailable, availErr)
		}

		// 6.4. Создаем бронирование
		status := string(domain.StatusNewBooking)
		booking := &domain.Booking{
			DepartmentID:    meetingType.DepartmentID,
			MeetingTypeID:   meetingType.ID,
			Status:          domain.StatusNewBooking,
			Title:           buildTitle(req.Title, meetingType, customerName),
			StartDatetime:   start,
			EndDatetime:     end,
			DurationMinutes: duration,
			CustomerID:      customerID,
			Notes:           req.Notes,
			CancelToken:     uuid.NewString(),
			RescheduleToken: uuid.NewString(),
			AssignedUsers:   []domain.AssignedUser{{MemberID: host.ID, IsPrimaryHost: true}},
			Participants:    externalParticipants(externalEmails),
			CreatedBy:       req.Actor.UserID,
		}
		booking.AppendHistory(domain.ActionCreated, req.Actor.UserID, now, nil, &status)

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) {
				return fmt.Errorf("%w: %w", ErrSlotNotAvailable, domain.NewStorageOverlapError([]*domain.Member{host}))
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 6.5. Статистика клиента
		if customerID != nil {
			if err := uc.customers.RecordBooking(txCtx, *customerID, req.Date); err != nil {
				return fmt.Errorf("%w: failed to record customer booking: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, uc.handleTxError(err)
	}

	uc.notifier.BookingCreated(ctx, result)

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)
	return bookingModels.FromDomainBooking(result), nil
}

func (uc *UseCase) getMeetingType(ctx context.Context, id int64) (*domain.MeetingType, error) {
	meetingType, err := uc.meetingTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, meetingTypeRepo.ErrMeetingTypeNotFound) {
			uc.logger.Warn("CreateBooking: meeting type id=%d not found", id)
			return nil, ErrMeetingTypeNotFound
		}
		uc.logger.Error("CreateBooking: failed to get meeting type id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get meeting type: %v", ErrInternal, err)
	}

	if !meetingType.IsActive {
		uc.logger.Warn("CreateBooking: meeting type id=%d is inactive", id)
		return nil, fmt.Errorf("%w: meeting type is not active", ErrInvalidInput)
	}
	if meetingType.IsInternal {
		uc.logger.Warn("CreateBooking: meeting type id=%d is internal", id)
		return nil, fmt.Errorf("%w: internal meeting types are booked as team meetings", ErrInvalidInput)
	}

	return meetingType, nil
}

// resolveHost определяет ведущего по виду бронирования и проверяет права
func (uc *UseCase) resolveHost(ctx context.Context, req *Request, meetingType *domain.MeetingType) (*domain.Member, error) {
	var hostID int64
	switch req.Kind {
	case KindCustomer:
		if !req.Actor.CanManageDepartment(meetingType.DepartmentID) {
			uc.logger.Warn("CreateBooking: user=%d cannot book for department=%d", req.Actor.UserID, meetingType.DepartmentID)
			return nil, ErrAccessDenied
		}
		hostID = req.MemberID
	case KindSelf:
		hostID = req.Actor.UserID
	case KindSlot:
		hostID = req.MemberID
		if hostID <= 0 {
			hostID = req.Actor.UserID
		}
		if hostID != req.Actor.UserID && !req.Actor.CanManageDepartment(meetingType.DepartmentID) {
			uc.logger.Warn("CreateBooking: user=%d cannot book slot for member=%d", req.Actor.UserID, hostID)
			return nil, ErrAccessDenied
		}
	}

	ok, err := uc.memberRepo.IsActiveDepartmentMember(ctx, meetingType.DepartmentID, hostID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check department membership for member=%d: %v", hostID, err)
		return nil, fmt.Errorf("%w: failed to check department membership: %v", ErrInternal, err)
	}
	if !ok {
		uc.logger.Warn("CreateBooking: member=%d is not in department=%d", hostID, meetingType.DepartmentID)
		return nil, ErrHostNotInDepartment
	}

	members, err := uc.memberRepo.GetByIDs(ctx, []int64{hostID})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get member id=%d: %v", hostID, err)
		return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}
	if len(members) == 0 {
		uc.logger.Warn("CreateBooking: member id=%d not found", hostID)
		return nil, ErrMemberNotFound
	}

	return members[0], nil
}

// resolveCustomer возвращает ID и имя клиента; для бронирования без клиента - nil
func (uc *UseCase) resolveCustomer(ctx context.Context, req *Request) (*int64, string, error) {
	var customerID int64
	switch {
	case req.CustomerID != nil:
		customerID = *req.CustomerID
	case req.Customer != nil && req.Customer.Email != "":
		resolved, err := uc.customers.FindOrCreate(ctx, req.Customer)
		if err != nil {
			if errors.Is(err, customers.ErrInvalidInput) || errors.Is(err, customers.ErrDuplicateContact) {
				return nil, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			return nil, "", fmt.Errorf("%w: failed to resolve customer: %v", ErrInternal, err)
		}
		customerID = resolved.CustomerID
	default:
		return nil, "", nil
	}

	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			return nil, "", ErrCustomerNotFound
		}
		return nil, "", fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	return &customer.ID, customer.Name, nil
}

func (uc *UseCase) handleTxError(err error) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		uc.logger.Warn("CreateBooking: slot not available: %v", err)
		return err
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrCustomerNotFound):
		uc.logger.Warn("CreateBooking: rejected: %v", err)
		return err
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateBooking: %v", err)
		return err
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}

func externalParticipants(emails []string) []domain.Participant {
	participants := make([]domain.Participant, 0, len(emails))
	for _, email := range emails {
		email := email
		participants = append(participants, domain.Participant{
			Email:           &email,
			ParticipantType: domain.ParticipantExternal,
			ResponseStatus:  domain.ResponsePending,
		})
	}
	return participants
}
