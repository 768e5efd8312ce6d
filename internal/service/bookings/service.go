package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	memberRepo   MemberRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	memberRepo MemberRepository,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		memberRepo:   memberRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно ведущим, внутренним участникам, руководителю отдела и администратору.
func (s *Service) GetByID(ctx context.Context, id int64, actor *domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.CanViewBooking(booking) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// ListMemberBookings получает бронирования участника (как ведущего и как участника).
// Доступно самому участнику, руководителю его отдела и администратору.
func (s *Service) ListMemberBookings(ctx context.Context, req *models.ListMemberBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListMemberBookings: fetching bookings for member=%d by user=%d", req.MemberID, req.Actor.UserID)

	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListMemberBookings: invalid filter for member=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	if err := s.checkMemberAccess(ctx, req.Actor, req.MemberID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByMember(ctx, filter)
	if err != nil {
		s.logger.Error("ListMemberBookings: repository error for member=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: ListMemberBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListMemberBookings: successfully fetched %d bookings for member=%d", len(bookings), req.MemberID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование в новый статус.
// Финальные бронирования не изменяются при любом целевом статусе; при отмене фиксируются причина, роль и время.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d", bookingID, req.Status, req.Actor.UserID)

	var updated *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get booking: %v", ErrInternal, err)
		}

		if !req.Actor.CanManageBooking(booking) {
			return ErrAccessDenied
		}

		// Финальный статус проверяется раньше целевого
		if err := booking.EnsureMutable(); err != nil {
			return err
		}

		newStatus, err := domain.ParseBookingStatus(req.Status)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidStatus, err)
		}

		role := req.Actor.ActingRoleFor(booking)
		if err := s.applyStatus(ctx, booking, newStatus, req.Actor.UserID, role, req.Reason); err != nil {
			return err
		}

		updated = booking
		return nil
	})
	if err != nil {
		return nil, s.logStatusError("UpdateStatus", bookingID, err)
	}

	if updated.Status == domain.StatusCancelled {
		s.notifier.BookingCancelled(ctx, updated)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// CancelByToken отменяет бронирование по токену отмены (публичная ссылка клиента)
func (s *Service) CancelByToken(ctx context.Context, req *models.CancelByTokenRequest) (*models.BookingResponse, error) {
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	var cancelled *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByCancelToken(ctx, token)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: CancelByToken - get booking: %v", ErrInternal, err)
		}

		// Действие клиента записывается от имени создателя бронирования
		if err := s.applyStatus(ctx, booking, domain.StatusCancelled, booking.CreatedBy, domain.ActingRoleCustomer, req.Reason); err != nil {
			return err
		}

		cancelled = booking
		return nil
	})
	if err != nil {
		return nil, s.logStatusError("CancelByToken", 0, err)
	}

	s.notifier.BookingCancelled(ctx, cancelled)

	s.logger.Info("CancelByToken: booking id=%d cancelled by customer", cancelled.ID)
	return models.FromDomainBooking(cancelled), nil
}

// applyStatus меняет статус внутри уже открытой транзакции
func (s *Service) applyStatus(
	ctx context.Context,
	booking *domain.Booking,
	newStatus domain.BookingStatus,
	performedBy int64,
	role string,
	reason *string,
) error {
	if err := booking.EnsureMutable(); err != nil {
		return err
	}

	now := s.timeProvider.Now()
	oldStatus := booking.Status
	booking.Status = newStatus
	booking.UpdatedAt = now

	action := domain.ActionStatusChanged
	if newStatus == domain.StatusCancelled {
		action = domain.ActionCancelled
		booking.CancelledByRole = &role
		booking.CancelledAt = &now
		if reason != nil && strings.TrimSpace(*reason) != "" {
			trimmed := strings.TrimSpace(*reason)
			if len(trimmed) > domain.MaxReasonLength {
				return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
			}
			booking.CancellationReason = &trimmed
		}
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("%w: update status: %v", ErrInternal, err)
	}

	oldValue, newValue := string(oldStatus), string(newStatus)
	entry := booking.AppendHistory(action, performedBy, now, &oldValue, &newValue)
	if err := s.bookingRepo.AddHistory(ctx, &entry); err != nil {
		return fmt.Errorf("%w: add history: %v", ErrInternal, err)
	}

	return nil
}

// checkMemberAccess участник видит свои бронирования, руководитель - бронирования своего отдела
func (s *Service) checkMemberAccess(ctx context.Context, actor *domain.Actor, memberID int64) error {
	if actor.UserID == memberID || actor.IsSystemManager() {
		return nil
	}

	for _, departmentID := range actor.LedDepartments {
		ok, err := s.memberRepo.IsActiveDepartmentMember(ctx, departmentID, memberID)
		if err != nil {
			s.logger.Error("checkMemberAccess: failed to check department=%d member=%d: %v", departmentID, memberID, err)
			return fmt.Errorf("%w: checkMemberAccess - repository error: %v", ErrInternal, err)
		}
		if ok {
			return nil
		}
	}

	s.logger.Warn("checkMemberAccess: user=%d has no access to member=%d", actor.UserID, memberID)
	return ErrAccessDenied
}

func (s *Service) logStatusError(op string, bookingID int64, err error) error {
	var finalized *domain.FinalizedError
	switch {
	case errors.As(err, &finalized),
		errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidInput):
		s.logger.Warn("%s: booking id=%d rejected: %v", op, bookingID, err)
		return err
	case errors.Is(err, ErrInternal):
		s.logger.Error("%s: booking id=%d failed: %v", op, bookingID, err)
		return err
	default:
		s.logger.Error("%s: booking id=%d transaction failed: %v", op, bookingID, err)
		return fmt.Errorf("%w: %s - transaction: %v", ErrInternal, op, err)
	}
}
