package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/service/availability/models"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// CheckMembers проверяет каждого участника (логическое И).
// Возвращает nil, если свободны все; иначе ошибку со всеми недоступными в порядке входа.
func (s *Service) CheckMembers(
	ctx context.Context,
	members []*domain.Member,
	date time.Time,
	startTime types.TimeString,
	durationMinutes int,
	excludeBookingID *int64,
) (*domain.AvailabilityError, error) {
	unavailable := make([]domain.UnavailableMember, 0)

	for _, m := range members {
		result, err := s.CheckMemberAvailability(ctx, &models.CheckRequest{
			MemberID:         m.ID,
			Date:             date,
			StartTime:        startTime,
			DurationMinutes:  durationMinutes,
			ExcludeBookingID: excludeBookingID,
		})
		if err != nil {
			return nil, err
		}
		if !result.Available {
			unavailable = append(unavailable, domain.UnavailableMember{
				MemberID: m.ID,
				Name:     m.DisplayName(),
				Result:   result,
			})
		}
	}

	if len(unavailable) == 0 {
		return nil, nil
	}
	return &domain.AvailabilityError{Members: unavailable}, nil
}

// AllAvailable true, если свободны все участники.
// Останавливается на первом занятом: используется поиском слотов, где причины не нужны.
func (s *Service) AllAvailable(
	ctx context.Context,
	memberIDs []int64,
	date time.Time,
	startTime types.TimeString,
	durationMinutes int,
) (bool, error) {
	for _, id := range memberIDs {
		result, err := s.CheckMemberAvailability(ctx, &models.CheckRequest{
			MemberID:        id,
			Date:            date,
			StartTime:       startTime,
			DurationMinutes: durationMinutes,
		})
		if err != nil {
			return false, err
		}
		if !result.Available {
			return false, nil
		}
	}
	return true, nil
}
