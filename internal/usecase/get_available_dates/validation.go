package get_available_dates

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
	if req.Month.IsZero() {
		return nil, fmt.Errorf("%w: month is required", ErrInvalidInput)
	}
	if req.DurationMinutes != 0 &&
		(req.DurationMinutes < domain.MinMeetingDurationMinutes || req.DurationMinutes > domain.MaxMeetingDurationMinutes) {
		return nil, fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinMeetingDurationMinutes, domain.MaxMeetingDurationMinutes)
	}

	seen := make(map[int64]struct{}, len(req.MemberIDs))
	ids := make([]int64, 0, len(req.MemberIDs))
	for _, id := range req.MemberIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: member ids must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// searchRange дни месяца, которые имеет смысл проверять: с сегодняшнего дня и до горизонта
func searchRange(month, now time.Time) (time.Time, time.Time, error) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	last := first.AddDate(0, 1, -1)

	today := types.DateOnly(now)
	horizon := today.AddDate(0, 0, domain.MaxAdvanceDays)

	if last.Before(today) {
		return first, last, fmt.Errorf("%w: month %s is in the past", ErrInvalidMonth, first.Format(domain.MonthFormat))
	}
	if first.After(horizon) {
		return first, last, fmt.Errorf("%w: month %s is too far in the future", ErrInvalidMonth, first.Format(domain.MonthFormat))
	}

	from, to := first, last
	if from.Before(today) {
		from = today
	}
	if to.After(horizon) {
		to = horizon
	}
	return from, to, nil
}
