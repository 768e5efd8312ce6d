package reassign_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/booking"
	bookingModels "github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// UseCase use case для передачи бронирования другому ведущему
type UseCase struct {
	bookingRepo  BookingRepository
	memberRepo   MemberRepository
	availability AvailabilityChecker
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	memberRepo MemberRepository,
	availability AvailabilityChecker,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		memberRepo:   memberRepo,
		availability: availability,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case переназначения.
// Командные встречи не переназначаются никогда, даже администратором.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReassignBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ReassignBooking: booking=%d, user=%d, newHost=%d", req.BookingID, req.Actor.UserID, req.NewHostID)

	now := uc.timeProvider.Now()

	var (
		result           *domain.Booking
		oldName, newName string
	)

	// 2. Все шаги в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.1. Финальный статус, командная встреча, права
		if err := booking.EnsureMutable(); err != nil {
			return err
		}
		if booking.IsInternal {
			return ErrTeamMeetingImmutable
		}
		if !req.Actor.CanReassignBooking(booking) {
			return ErrAccessDenied
		}

		primary, hasPrimary := booking.PrimaryHost()
		if hasPrimary && primary.MemberID == req.NewHostID {
			return fmt.Errorf("%w: member %d is already the primary host", ErrInvalidInput, req.NewHostID)
		}

		// 2.2. Новый ведущий должен состоять в отделе
		ok, err := uc.memberRepo.IsActiveDepartmentMember(txCtx, booking.DepartmentID, req.NewHostID)
		if err != nil {
			return fmt.Errorf("%w: failed to check department membership: %v", ErrInternal, err)
		}
		if !ok {
			return fmt.Errorf("%w: member %d", ErrHostNotInDepartment, req.NewHostID)
		}

		newHost, oldHost, err := uc.loadHosts(txCtx, req.NewHostID, primary.MemberID, hasPrimary)
		if err != nil {
			return err
		}

		// 2.3. Доступность нового ведущего в текущем интервале встречи
		if err := uc.memberRepo.LockMembers(txCtx, []int64{newHost.ID}); err != nil {
			return fmt.Errorf("%w: failed to lock member: %v", ErrInternal, err)
		}

		date := types.DateOnly(booking.StartDatetime)
		startTime := types.NewTimeString(booking.StartDatetime)
		duration := booking.DurationMinutes
		if duration <= 0 {
			duration = int(booking.EndDatetime.Sub(booking.StartDatetime).Minutes())
		}

		availErr, err := uc.availability.CheckMembers(txCtx, []*domain.Member{newHost}, date, startTime, duration, &booking.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
		}
		if availErr != nil {
			return fmt.Errorf("%w: %w", ErrSlotNotAvailable, availErr)
		}

		// 2.4. Меняем основного ведущего
		booking.ReplacePrimaryHost(newHost.ID)
		booking.UpdatedAt = now

		if err := uc.bookingRepo.ReplaceAssignedUsers(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) {
				return fmt.Errorf("%w: %w", ErrSlotNotAvailable, domain.NewStorageOverlapError([]*domain.Member{newHost}))
			}
			return fmt.Errorf("%w: failed to replace hosts: %v", ErrInternal, err)
		}

		oldName = hostName(oldHost)
		newName = newHost.DisplayName()
		entry := booking.AppendHistory(domain.ActionReassigned, req.Actor.UserID, now, &oldName, &newName)
		if err := uc.bookingRepo.AddHistory(txCtx, &entry); err != nil {
			return fmt.Errorf("%w: failed to add history: %v", ErrInternal, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, uc.handleTxError(req.BookingID, err)
	}

	uc.notifier.BookingReassigned(ctx, result, oldName, newName)

	uc.logger.Info("ReassignBooking: booking id=%d reassigned from %q to %q", result.ID, oldName, newName)
	return bookingModels.FromDomainBooking(result), nil
}

// loadHosts новый ведущий обязателен, прежний мог быть удален
func (uc *UseCase) loadHosts(ctx context.Context, newHostID, oldHostID int64, hasOld bool) (*domain.Member, *domain.Member, error) {
	ids := []int64{newHostID}
	if hasOld {
		ids = append(ids, oldHostID)
	}

	members, err := uc.memberRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to get members: %v", ErrInternal, err)
	}

	var newHost, oldHost *domain.Member
	for _, m := range members {
		switch m.ID {
		case newHostID:
			newHost = m
		case oldHostID:
			oldHost = m
		}
	}
	if newHost == nil {
		return nil, nil, fmt.Errorf("%w: member %d", ErrMemberNotFound, newHostID)
	}
	if oldHost == nil && hasOld {
		oldHost = &domain.Member{ID: oldHostID, FullName: fmt.Sprintf("Member %d", oldHostID)}
	}
	return newHost, oldHost, nil
}

func (uc *UseCase) handleTxError(bookingID int64, err error) error {
	var finalized *domain.FinalizedError
	switch {
	case errors.As(err, &finalized):
		uc.logger.Warn("ReassignBooking: booking id=%d is finalized: %v", bookingID, err)
		return err
	case errors.Is(err, ErrSlotNotAvailable):
		uc.logger.Warn("ReassignBooking: new host not available for booking id=%d: %v", bookingID, err)
		return err
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrMemberNotFound),
		errors.Is(err, ErrTeamMeetingImmutable),
		errors.Is(err, ErrHostNotInDepartment),
		errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrInvalidInput):
		uc.logger.Warn("ReassignBooking: booking id=%d rejected: %v", bookingID, err)
		return err
	case errors.Is(err, ErrInternal):
		uc.logger.Error("ReassignBooking: booking id=%d: %v", bookingID, err)
		return err
	default:
		uc.logger.Error("ReassignBooking: booking id=%d transaction failed: %v", bookingID, err)
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}

func hostName(m *domain.Member) string {
	if m == nil {
		return ""
	}
	return m.DisplayName()
}
