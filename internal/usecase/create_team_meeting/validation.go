package create_team_meeting

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Actor == nil {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if req.MeetingTypeID <= 0 {
		return fmt.Errorf("%w: meetingTypeId must be positive", ErrInvalidInput)
	}

	if len(req.ParticipantIDs) == 0 {
		return fmt.Errorf("%w: at least one participant is required", ErrInvalidInput)
	}
	if len(req.ParticipantIDs) > domain.MaxTeamParticipants {
		return fmt.Errorf("%w: too many participants (maximum %d)", ErrInvalidInput, domain.MaxTeamParticipants)
	}
	for _, id := range req.ParticipantIDs {
		if id <= 0 {
			return fmt.Errorf("%w: participant ids must be positive", ErrInvalidInput)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что встреча не в прошлом
func validateDate(date, start, now time.Time) error {
	if types.DateOnly(date).Before(types.DateOnly(now)) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}
	if start.Before(now) {
		return fmt.Errorf("%w: start time is in the past", ErrInvalidDate)
	}
	return nil
}

// uniqueIDs убирает повторы, сохраняя порядок
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// buildTitle явный заголовок или "{тип} - Team Meeting ({n} participants)"
func buildTitle(title *string, meetingType *domain.MeetingType, participants int) string {
	if title != nil && strings.TrimSpace(*title) != "" {
		return strings.TrimSpace(*title)
	}
	return fmt.Sprintf("%s - Team Meeting (%d participants)", meetingType.Name, participants)
}
