package get_available_dates

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// UseCase use case для поиска дней месяца со свободными слотами
type UseCase struct {
	memberRepo      MemberRepository
	finder          SlotFinder
	defaultDuration int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	memberRepo MemberRepository,
	finder SlotFinder,
	defaultDuration int,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if defaultDuration <= 0 {
		defaultDuration = domain.DefaultMeetingDurationMinutes
	}
	return &UseCase{
		memberRepo:      memberRepo,
		finder:          finder,
		defaultDuration: defaultDuration,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case. День попадает в ответ, если в нем есть слот,
// свободный для всех участников.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: user=%d, members=%v, month=%s, duration=%d",
		req.UserID, req.MemberIDs, req.Month.Format(domain.MonthFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	memberIDs, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Диапазон дней
	now := uc.timeProvider.Now()
	from, to, err := searchRange(req.Month, now)
	if err != nil {
		uc.logger.Warn("GetAvailableDates: %v", err)
		return nil, err
	}

	// 3. Участники существуют
	if err := uc.ensureMembersExist(ctx, memberIDs); err != nil {
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.defaultDuration
	}

	// 4. Проверяем каждый день до первого свободного слота
	dates := make([]time.Time, 0)
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		ok, err := uc.finder.HasFreeSlot(ctx, memberIDs, date, duration, now)
		if err != nil {
			uc.logger.Error("GetAvailableDates: failed to check %s: %v", date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
		}
		if ok {
			dates = append(dates, date)
		}
	}

	uc.logger.Info("GetAvailableDates: found %d days for members=%v in %s",
		len(dates), memberIDs, req.Month.Format(domain.MonthFormat))

	return &Response{
		Month:           time.Date(req.Month.Year(), req.Month.Month(), 1, 0, 0, 0, 0, req.Month.Location()),
		MemberIDs:       memberIDs,
		DurationMinutes: duration,
		Dates:           dates,
	}, nil
}

func (uc *UseCase) ensureMembersExist(ctx context.Context, ids []int64) error {
	members, err := uc.memberRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get members: %v", err)
		return fmt.Errorf("%w: failed to get members: %v", ErrInternal, err)
	}

	found := make(map[int64]struct{}, len(members))
	for _, m := range members {
		found[m.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			uc.logger.Warn("GetAvailableDates: member id=%d not found", id)
			return fmt.Errorf("%w: member %d", ErrMemberNotFound, id)
		}
	}
	return nil
}
