package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/booking"
	bookingModels "github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// UseCase use case для переноса бронирования на другое время
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

// Execute выполняет use case переноса.
// Доступность проверяется для нового интервала без учета самого бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking=%d, user=%d, date=%s, time=%s",
		req.BookingID, req.Actor.UserID, req.Date.Format(domain.DateFormat), req.StartTime)

	now := uc.timeProvider.Now()
	newStart := types.Combine(req.Date, req.StartTime)

	var (
		result   *domain.Booking
		oldStart time.Time
	)

	// 2. Все шаги в сериализуемой транзакции, строка бронирования блокируется при чтении
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.1. Права и финальный статус
		if !req.Actor.CanRescheduleBooking(booking) {
			return ErrAccessDenied
		}
		if err := booking.EnsureMutable(); err != nil {
			return err
		}

		// 2.2. Новое время не в прошлом
		if newStart.Before(now) {
			return fmt.Errorf("%w: new start time is in the past", ErrInvalidDate)
		}

		// 2.3. Кого проверяем
		ids := membersToCheck(booking.HostIDs(), booking.InternalParticipantIDs(), booking.IsInternal)
		members, err := uc.loadMembers(txCtx, ids)
		if err != nil {
			return err
		}

		lockIDs := append([]int64{}, ids...)
		sort.Slice(lockIDs, func(i, j int) bool { return lockIDs[i] < lockIDs[j] })
		if err := uc.memberRepo.LockMembers(txCtx, lockIDs); err != nil {
			return fmt.Errorf("%w: failed to lock members: %v", ErrInternal, err)
		}

		// 2.4. Доступность в новом интервале
		duration := booking.DurationMinutes
		if duration <= 0 {
			duration = int(booking.EndDatetime.Sub(booking.StartDatetime).Minutes())
		}

		availErr, err := uc.availability.CheckMembers(txCtx, members, req.Date, req.StartTime, duration, &booking.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
		}
		if availErr != nil {
			availErr.Team = booking.IsInternal
			return fmt.Errorf("%w: %w", ErrSlotNotAvailable, availErr)
		}

		// 2.5. Сохраняем новое расписание
		oldStart = booking.StartDatetime
		oldValue := booking.StartDatetime.Format(domain.DatetimeFormat)
		newValue := newStart.Format(domain.DatetimeFormat)

		booking.StartDatetime = newStart
		booking.EndDatetime = types.AddMinutes(newStart, duration)
		booking.DurationMinutes = duration
		booking.UpdatedAt = now

		if err := uc.bookingRepo.UpdateSchedule(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) {
				return fmt.Errorf("%w: %w", ErrSlotNotAvailable, domain.NewStorageOverlapError(hostsOf(booking, members)))
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}

		entry := booking.AppendHistory(domain.ActionRescheduled, req.Actor.UserID, now, &oldValue, &newValue)
		if err := uc.bookingRepo.AddHistory(txCtx, &entry); err != nil {
			return fmt.Errorf("%w: failed to add history: %v", ErrInternal, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, uc.handleTxError(req.BookingID, err)
	}

	uc.notifier.BookingRescheduled(ctx, result, oldStart)

	uc.logger.Info("RescheduleBooking: successfully moved booking id=%d to %s", result.ID, newStart.Format(domain.DatetimeFormat))
	return bookingModels.FromDomainBooking(result), nil
}

// loadMembers возвращает участников в порядке ids
func (uc *UseCase) loadMembers(ctx context.Context, ids []int64) ([]*domain.Member, error) {
	found, err := uc.memberRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get members: %v", ErrInternal, err)
	}

	byID := make(map[int64]*domain.Member, len(found))
	for _, m := range found {
		byID[m.ID] = m
	}

	members := make([]*domain.Member, 0, len(ids))
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: member %d", ErrMemberNotFound, id)
		}
		members = append(members, m)
	}
	return members, nil
}

func (uc *UseCase) handleTxError(bookingID int64, err error) error {
	var finalized *domain.FinalizedError
	switch {
	case errors.As(err, &finalized):
		uc.logger.Warn("RescheduleBooking: booking id=%d is finalized: %v", bookingID, err)
		return err
	case errors.Is(err, ErrSlotNotAvailable):
		uc.logger.Warn("RescheduleBooking: slot not available for booking id=%d: %v", bookingID, err)
		return err
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrMemberNotFound),
		errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrInvalidDate):
		uc.logger.Warn("RescheduleBooking: booking id=%d rejected: %v", bookingID, err)
		return err
	case errors.Is(err, ErrInternal):
		uc.logger.Error("RescheduleBooking: booking id=%d: %v", bookingID, err)
		return err
	default:
		uc.logger.Error("RescheduleBooking: booking id=%d transaction failed: %v", bookingID, err)
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}

// hostsOf ведущие бронирования среди загруженных участников
func hostsOf(booking *domain.Booking, members []*domain.Member) []*domain.Member {
	hosts := make([]*domain.Member, 0, len(booking.AssignedUsers))
	for _, m := range members {
		if booking.IsHost(m.ID) {
			hosts = append(hosts, m)
		}
	}
	return hosts
}
