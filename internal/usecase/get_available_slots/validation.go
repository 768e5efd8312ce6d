package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// validateRequest валидирует входные данные и убирает повторы участников
func validateRequest(req *Request) ([]int64, error) {
	if len(req.MemberIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one member is required", ErrInvalidInput)
	}
	if len(req.MemberIDs) > domain.MaxTeamParticipants {
		return nil, fmt.Errorf("%w: too many members (maximum %d)", ErrInvalidInput, domain.MaxTeamParticipants)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes != 0 &&
		(req.DurationMinutes < domain.MinMeetingDurationMinutes || req.DurationMinutes > domain.MaxMeetingDurationMinutes) {
		return nil, fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinMeetingDurationMinutes, domain.MaxMeetingDurationMinutes)
	}

	return uniqueMemberIDs(req.MemberIDs)
}

// uniqueMemberIDs убирает повторы, сохраняя порядок; ID должны быть положительными
func uniqueMemberIDs(ids []int64) ([]int64, error) {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("%w: member ids must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

// validateDate проверяет, что дата не в прошлом и не дальше горизонта
func validateDate(requestDate, now time.Time) error {
	// Проверяем, что дата не в прошлом
	if types.DateOnly(requestDate).Before(types.DateOnly(now)) {
		return ErrInvalidDate
	}

	maxDate := types.DateOnly(now).AddDate(0, 0, domain.MaxAdvanceDays)
	if types.DateOnly(requestDate).After(maxDate) {
		return fmt.Errorf("%w: can only search %d days in advance", ErrDateTooFarInFuture, domain.MaxAdvanceDays)
	}

	return nil
}
