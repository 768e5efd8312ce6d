package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// UseCase use case для получения свободных слотов одного или нескольких участников
type UseCase struct {
	memberRepo      MemberRepository
	finder          *Finder
	defaultDuration int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	memberRepo MemberRepository,
	finder *Finder,
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

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, members=%v, date=%s, duration=%d",
		req.UserID, req.MemberIDs, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	memberIDs, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Участники существуют
	if err := ensureMembersExist(ctx, uc.memberRepo, memberIDs); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			uc.logger.Warn("GetAvailableSlots: %v", err)
		} else {
			uc.logger.Error("GetAvailableSlots: %v", err)
		}
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.defaultDuration
	}

	// 4. Обходим сетку
	slots, err := uc.finder.FreeSlots(ctx, memberIDs, req.Date, duration, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check availability: %v", err)
		return nil, fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: found %d slots for members=%v on %s",
		len(slots), memberIDs, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		MemberIDs:       memberIDs,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}

// ensureMembersExist проверяет, что все участники есть в хранилище
func ensureMembersExist(ctx context.Context, repo MemberRepository, ids []int64) error {
	members, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: failed to get members: %v", ErrInternal, err)
	}

	found := make(map[int64]struct{}, len(members))
	for _, m := range members {
		found[m.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return fmt.Errorf("%w: member %d", ErrMemberNotFound, id)
		}
	}
	return nil
}
