package create_booking

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

	switch req.Kind {
	case KindCustomer, KindSelf, KindSlot:
	default:
		return fmt.Errorf("%w: unknown booking kind %q", ErrInvalidInput, req.Kind)
	}

	if req.MeetingTypeID <= 0 {
		return fmt.Errorf("%w: meetingTypeId must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if len(req.ExternalEmails) > domain.MaxTeamParticipants {
		return fmt.Errorf("%w: too many external participants (maximum %d)", ErrInvalidInput, domain.MaxTeamParticipants)
	}

	switch req.Kind {
	case KindCustomer:
		if req.MemberID <= 0 {
			return fmt.Errorf("%w: assignedTo is required", ErrInvalidInput)
		}
		if req.Customer == nil || strings.TrimSpace(req.Customer.Name) == "" || strings.TrimSpace(req.Customer.Email) == "" {
			return fmt.Errorf("%w: customer name and email are required", ErrInvalidInput)
		}
	case KindSelf:
		if req.CustomerID == nil && (req.Customer == nil || strings.TrimSpace(req.Customer.Email) == "") {
			return fmt.Errorf("%w: customerId or customer email is required", ErrInvalidInput)
		}
	}

	return nil
}

// validateDate проверяет, что дата и время начала не в прошлом
func validateDate(date, start, now time.Time) error {
	if types.DateOnly(date).Before(types.DateOnly(now)) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}
	if start.Before(now) {
		return fmt.Errorf("%w: start time is in the past", ErrInvalidDate)
	}
	return nil
}

// normalizeEmails приводит адреса гостей к нижнему регистру и убирает повторы
func normalizeEmails(emails []string) ([]string, error) {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		email := domain.NormalizeEmail(e)
		if email == "" || !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: invalid participant email %q", ErrInvalidInput, e)
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}
	return out, nil
}

// buildTitle явный заголовок, иначе "{тип} with {клиент}" или название типа
func buildTitle(title *string, meetingType *domain.MeetingType, customerName string) string {
	if title != nil && strings.TrimSpace(*title) != "" {
		return strings.TrimSpace(*title)
	}
	if customerName != "" {
		return fmt.Sprintf("%s with %s", meetingType.Name, customerName)
	}
	return meetingType.Name
}

func meetingDuration(meetingType *domain.MeetingType) int {
	if meetingType.DurationMinutes > 0 {
		return meetingType.DurationMinutes
	}
	return domain.DefaultMeetingDurationMinutes
}
