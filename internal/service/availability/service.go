package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	rulesRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/availability"
	memberRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/member"
	"github.com/m04kA/SMC-MeetingService/internal/service/availability/models"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// Service оркестратор проверки доступности участника.
// Источники опрашиваются в порядке приоритета: блокировки, исключения на дату
// (или рабочие часы), бронирования, внешние календари, буферы, квоты.
type Service struct {
	bookingRepo      BookingRepository
	blockedSlotRepo  BlockedSlotRepository
	ruleRepo         RuleRepository
	workingHoursRepo WorkingHoursRepository
	calendarRepo     CalendarRepository
	metrics          Metrics
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности.
// metrics может быть nil.
func NewService(
	bookingRepo BookingRepository,
	blockedSlotRepo BlockedSlotRepository,
	ruleRepo RuleRepository,
	workingHoursRepo WorkingHoursRepository,
	calendarRepo CalendarRepository,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		blockedSlotRepo:  blockedSlotRepo,
		ruleRepo:         ruleRepo,
		workingHoursRepo: workingHoursRepo,
		calendarRepo:     calendarRepo,
		metrics:          metrics,
		logger:           logger,
	}
}

// CheckMemberAvailability проверяет, может ли участник занять интервал.
// Ошибка возвращается только при сбоях инфраструктуры и некорректном вводе,
// бизнес-отказ выражается через Available=false и список конфликтов.
func (s *Service) CheckMemberAvailability(ctx context.Context, req *models.CheckRequest) (*domain.AvailabilityResult, error) {
	if err := validateCheckRequest(req); err != nil {
		return nil, err
	}

	start, end := req.Start(), req.End()
	date := types.DateOnly(req.Date)

	// Шаг 1: блокировки абсолютны, остальные источники не опрашиваются
	blocked, err := s.checkBlocked(ctx, req.MemberID, date, start, end)
	if err != nil {
		return nil, s.internal("checkBlocked", req.MemberID, err)
	}
	if blocked != nil {
		return s.finish(req, []domain.Conflict{*blocked}), nil
	}

	conflicts := make([]domain.Conflict, 0)

	// Шаг 2: исключение на дату полностью заменяет рабочие часы
	override, hasOverride, err := s.checkDateOverride(ctx, req.MemberID, date, start, end)
	if err != nil {
		return nil, s.internal("checkDateOverride", req.MemberID, err)
	}
	if hasOverride {
		if override != nil {
			conflicts = append(conflicts, *override)
		}
	} else {
		workingHours, err := s.checkWorkingHours(ctx, req.MemberID, date, start, end)
		if err != nil {
			if errors.Is(err, memberRepo.ErrMemberNotFound) {
				return nil, ErrMemberNotFound
			}
			return nil, s.internal("checkWorkingHours", req.MemberID, err)
		}
		if workingHours != nil {
			conflicts = append(conflicts, *workingHours)
		}
	}

	// Шаг 3: бронирования (хост и участник)
	bookingConflicts, err := s.checkBookingConflicts(ctx, req.MemberID, start, end, req.ExcludeBookingID)
	if err != nil {
		return nil, s.internal("checkBookingConflicts", req.MemberID, err)
	}
	conflicts = append(conflicts, bookingConflicts...)

	// Шаг 4: внешние календари
	calendarConflicts, err := s.checkCalendarConflicts(ctx, req.MemberID, start, end)
	if err != nil {
		return nil, s.internal("checkCalendarConflicts", req.MemberID, err)
	}
	conflicts = append(conflicts, calendarConflicts...)

	// Шаги 5-6 читают правило участника
	rule, err := s.getRule(ctx, req.MemberID)
	if err != nil {
		return nil, s.internal("getRule", req.MemberID, err)
	}

	var dayBookings []domain.MemberBooking
	if rule != nil && (rule.HasBuffer() || limitSet(rule.MaxBookingsPerDay)) {
		dayBookings, err = s.bookingRepo.ListStartingBetween(ctx, req.MemberID, date, date.AddDate(0, 0, 1), req.ExcludeBookingID)
		if err != nil {
			return nil, s.internal("listDayBookings", req.MemberID, err)
		}
	}

	// Шаг 5: буферы между встречами
	conflicts = append(conflicts, checkBuffer(rule, dayBookings, start, end)...)

	// Шаг 6: квоты
	quota, err := s.checkQuota(ctx, rule, req.MemberID, date, dayBookings, req.ExcludeBookingID)
	if err != nil {
		return nil, s.internal("checkQuota", req.MemberID, err)
	}
	if quota != nil {
		conflicts = append(conflicts, *quota)
	}

	return s.finish(req, conflicts), nil
}

// CheckBookingWindow проверяет минимальное время уведомления и горизонт бронирования
// по правилу участника. Возвращает nil, если ограничений нет или они соблюдены.
func (s *Service) CheckBookingWindow(ctx context.Context, memberID int64, start, now time.Time) (*domain.Conflict, error) {
	rule, err := s.getRule(ctx, memberID)
	if err != nil {
		return nil, s.internal("CheckBookingWindow", memberID, err)
	}
	if rule == nil {
		return nil, nil
	}

	if limitSet(rule.MinNoticeHours) && start.Before(now.Add(time.Duration(*rule.MinNoticeHours)*time.Hour)) {
		return &domain.Conflict{
			Type:    domain.ConflictAvailabilityRule,
			Message: fmt.Sprintf("Booking requires at least %d hours notice", *rule.MinNoticeHours),
		}, nil
	}

	if limitSet(rule.MaxDaysAdvance) {
		lastDay := types.DateOnly(now).AddDate(0, 0, *rule.MaxDaysAdvance)
		if types.DateOnly(start).After(lastDay) {
			return &domain.Conflict{
				Type:    domain.ConflictAvailabilityRule,
				Message: fmt.Sprintf("Booking is too far in advance (maximum %d days)", *rule.MaxDaysAdvance),
			}, nil
		}
	}

	return nil, nil
}

func (s *Service) getRule(ctx context.Context, memberID int64) (*domain.AvailabilityRule, error) {
	rule, err := s.ruleRepo.GetDefaultRule(ctx, memberID)
	if err != nil {
		if errors.Is(err, rulesRepo.ErrRuleNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rule, nil
}

func (s *Service) finish(req *models.CheckRequest, conflicts []domain.Conflict) *domain.AvailabilityResult {
	result := domain.NewAvailabilityResult(conflicts)
	if s.metrics != nil {
		s.metrics.ObserveAvailability(result.Available, result.ConflictTypes())
	}
	if !result.Available {
		s.logger.Info("CheckMemberAvailability: member=%d %s %s unavailable: %s",
			req.MemberID, req.Date.Format(domain.DateFormat), req.StartTime, result.Reason)
	}
	return result
}

func (s *Service) internal(step string, memberID int64, err error) error {
	s.logger.Error("CheckMemberAvailability: %s failed for member=%d: %v", step, memberID, err)
	return fmt.Errorf("%w: CheckMemberAvailability - %s: %v", ErrInternal, step, err)
}

func validateCheckRequest(req *models.CheckRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.MemberID <= 0 {
		return fmt.Errorf("%w: member id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInput, types.ErrInvalidTimeRange)
	}
	return nil
}

func limitSet(limit *int) bool {
	return limit != nil && *limit > 0
}
