package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/service/rules/models"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// validateLimit проверяет, что значение в диапазоне [0, max]
func validateLimit(name string, value *int, max int) error {
	if value == nil {
		return nil
	}
	if *value < 0 || *value > max {
		return fmt.Errorf("%w: %s must be between 0 and %d", ErrInvalidInput, name, max)
	}
	return nil
}

func validateRuleRequest(req *models.UpdateRuleRequest) error {
	checks := []struct {
		name  string
		value *int
		max   int
	}{
		{"bufferTimeBefore", req.BufferTimeBefore, domain.MaxBufferMinutes},
		{"bufferTimeAfter", req.BufferTimeAfter, domain.MaxBufferMinutes},
		{"maxBookingsPerDay", req.MaxBookingsPerDay, domain.MaxBookingsLimit},
		{"maxBookingsPerWeek", req.MaxBookingsPerWeek, domain.MaxBookingsLimit},
		{"minNoticeHours", req.MinNoticeHours, domain.MaxNoticeHours},
		{"maxDaysAdvance", req.MaxDaysAdvance, domain.MaxAdvanceDays},
	}
	for _, c := range checks {
		if err := validateLimit(c.name, c.value, c.max); err != nil {
			return err
		}
	}
	return nil
}

// buildSchedule проверяет и нормализует рабочие часы перед сохранением.
// Пустые границы включенного дня заменяются на границы суток.
func buildSchedule(in map[string]models.DayScheduleRequest) (*domain.WeeklySchedule, error) {
	schedule := &domain.WeeklySchedule{Days: make(map[time.Weekday]domain.DaySchedule, len(in))}

	for key, day := range in {
		weekday, ok := weekdays[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidInput, key)
		}

		start, err := parseBound(day.Start, domain.DefaultWorkStart)
		if err != nil {
			return nil, fmt.Errorf("%w: %s start: %v", ErrInvalidInput, key, err)
		}
		end, err := parseBound(day.End, domain.DefaultWorkEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: %s end: %v", ErrInvalidInput, key, err)
		}
		if day.Enabled && !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: %s start must be before end", ErrInvalidInput, key)
		}

		schedule.Days[weekday] = domain.DaySchedule{Enabled: day.Enabled, Start: start, End: end}
	}

	return schedule, nil
}

func parseBound(raw, fallback string) (types.TimeString, error) {
	if strings.TrimSpace(raw) == "" {
		return types.TimeString(fallback), nil
	}
	return types.NewTimeStringFromString(raw)
}

// buildOverride проверяет запрос исключения на дату
func buildOverride(req *models.AddOverrideRequest, today time.Time) (*domain.DateOverride, error) {
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if date.Before(types.DateOnly(today)) {
		return nil, fmt.Errorf("%w: date must not be in the past", ErrInvalidInput)
	}

	override := &domain.DateOverride{Date: date, Available: req.Available}

	if req.Reason != nil {
		reason := strings.TrimSpace(*req.Reason)
		if len(reason) > domain.MaxReasonLength {
			return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
		}
		if reason != "" {
			override.Reason = &reason
		}
	}

	hasStart := req.CustomHoursStart != nil && strings.TrimSpace(*req.CustomHoursStart) != ""
	hasEnd := req.CustomHoursEnd != nil && strings.TrimSpace(*req.CustomHoursEnd) != ""
	if !hasStart && !hasEnd {
		return override, nil
	}
	if hasStart != hasEnd {
		return nil, fmt.Errorf("%w: custom hours need both start and end", ErrInvalidInput)
	}
	if !req.Available {
		return nil, fmt.Errorf("%w: custom hours are only allowed for available dates", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(*req.CustomHoursStart)
	if err != nil {
		return nil, fmt.Errorf("%w: customHoursStart: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(*req.CustomHoursEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: customHoursEnd: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: custom hours start must be before end", ErrInvalidInput)
	}

	override.CustomHoursStart = &start
	override.CustomHoursEnd = &end
	return override, nil
}
