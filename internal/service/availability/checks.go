package availability

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// checkBlocked возвращает первую блокировку, пересекающую интервал
func (s *Service) checkBlocked(ctx context.Context, memberID int64, date, start, end time.Time) (*domain.Conflict, error) {
	slots, err := s.blockedSlotRepo.ListByMemberAndDate(ctx, memberID, date)
	if err != nil {
		return nil, err
	}

	for i := range slots {
		slot := slots[i]
		if !types.Overlaps(start, end, types.Combine(date, slot.StartTime), types.Combine(date, slot.EndTime)) {
			continue
		}

		reason := strings.TrimSpace(slot.Reason)
		if reason == "" {
			reason = domain.DefaultBlockedReason
		}
		return &domain.Conflict{
			Type:    domain.ConflictBlockedSlot,
			Message: fmt.Sprintf("Blocked: %s (%s - %s)", reason, slot.StartTime, slot.EndTime),
		}, nil
	}

	return nil, nil
}

// checkDateOverride применяет исключения на дату.
// hasOverride=false означает, что решение принимают рабочие часы.
func (s *Service) checkDateOverride(ctx context.Context, memberID int64, date, start, end time.Time) (*domain.Conflict, bool, error) {
	overrides, err := s.ruleRepo.ListOverridesForDate(ctx, memberID, date)
	if err != nil {
		return nil, false, err
	}
	if len(overrides) == 0 {
		return nil, false, nil
	}

	// Любая недоступная строка закрывает весь день
	for _, o := range overrides {
		if o.Available {
			continue
		}
		reason := domain.DefaultOverrideUnavailable
		if o.Reason != nil && strings.TrimSpace(*o.Reason) != "" {
			reason = *o.Reason
		}
		return &domain.Conflict{Type: domain.ConflictDateOverride, Message: reason}, true, nil
	}

	windows := make([]domain.DateOverride, 0, len(overrides))
	for _, o := range overrides {
		if o.HasCustomHours() {
			windows = append(windows, o)
		}
	}
	if len(windows) == 0 {
		return nil, true, nil
	}

	labels := make([]string, 0, len(windows))
	for _, w := range windows {
		windowStart := types.Combine(date, *w.CustomHoursStart)
		windowEnd := types.Combine(date, *w.CustomHoursEnd)
		if !start.Before(windowStart) && !end.After(windowEnd) {
			return nil, true, nil
		}
		labels = append(labels, fmt.Sprintf("%s-%s", *w.CustomHoursStart, *w.CustomHoursEnd))
	}

	return &domain.Conflict{
		Type:    domain.ConflictDateOverride,
		Message: "Time is outside available slots for this date: " + strings.Join(labels, ", "),
	}, true, nil
}

// checkWorkingHours сверяет интервал с недельным расписанием.
// Отсутствующее или поврежденное расписание означает доступность без ограничений.
func (s *Service) checkWorkingHours(ctx context.Context, memberID int64, date, start, end time.Time) (*domain.Conflict, error) {
	raw, err := s.workingHoursRepo.GetWorkingHours(ctx, memberID)
	if err != nil {
		return nil, err
	}

	schedule := domain.ParseWeeklySchedule(raw)
	if schedule == nil {
		return nil, nil
	}

	day, ok := schedule.Day(date)
	if !ok || !day.Enabled {
		return &domain.Conflict{
			Type:    domain.ConflictWorkingHours,
			Message: fmt.Sprintf("Member is not available on %ss", date.Weekday()),
		}, nil
	}

	workStart := types.Combine(date, day.Start)
	workEnd := types.Combine(date, day.End)
	if start.Before(workStart) || end.After(workEnd) {
		return &domain.Conflict{
			Type:    domain.ConflictWorkingHours,
			Message: fmt.Sprintf("Time is outside working hours (%s - %s)", day.Start, day.End),
		}, nil
	}

	return nil, nil
}

// checkBookingConflicts возвращает по одному конфликту на каждое пересекающееся бронирование
func (s *Service) checkBookingConflicts(ctx context.Context, memberID int64, start, end time.Time, excludeBookingID *int64) ([]domain.Conflict, error) {
	bookings, err := s.bookingRepo.ListOverlapping(ctx, memberID, start, end, excludeBookingID)
	if err != nil {
		return nil, err
	}

	conflicts := make([]domain.Conflict, 0)
	for _, b := range dedupeBookings(bookings, excludeBookingID) {
		if !types.Overlaps(start, end, b.StartDatetime, b.EndDatetime) {
			continue
		}

		suffix := ""
		if b.Role == domain.RoleParticipant {
			suffix = " (as participant)"
		}
		id := b.BookingID
		conflicts = append(conflicts, domain.Conflict{
			Type: domain.ConflictBooking,
			Message: fmt.Sprintf("Conflicts with existing booking %d%s (%s - %s)",
				id, suffix, b.StartDatetime.Format(domain.TimeFormat), b.EndDatetime.Format(domain.TimeFormat)),
			BookingID: &id,
		})
	}

	return conflicts, nil
}

// checkCalendarConflicts сверяет интервал с синхронизированными событиями
func (s *Service) checkCalendarConflicts(ctx context.Context, memberID int64, start, end time.Time) ([]domain.Conflict, error) {
	events, err := s.calendarRepo.ListBlockingEvents(ctx, memberID, start, end)
	if err != nil {
		return nil, err
	}

	conflicts := make([]domain.Conflict, 0)
	for i := range events {
		e := events[i]
		if !e.BlocksAvailability() || !types.Overlaps(start, end, e.StartDatetime, e.EndDatetime) {
			continue
		}

		title := strings.TrimSpace(e.Title)
		if title == "" {
			title = domain.DefaultCalendarEventTitle
		}
		conflicts = append(conflicts, domain.Conflict{
			Type: domain.ConflictCalendarEvent,
			Message: fmt.Sprintf("Conflicts with calendar event: %s (%s - %s)",
				title, e.StartDatetime.Format(domain.TimeFormat), e.EndDatetime.Format(domain.TimeFormat)),
		})
	}

	return conflicts, nil
}

// checkBuffer ищет бронирования того же дня, попадающие в буфер до или после интервала.
// Пересечения с самим интервалом остаются за checkBookingConflicts.
func checkBuffer(rule *domain.AvailabilityRule, dayBookings []domain.MemberBooking, start, end time.Time) []domain.Conflict {
	conflicts := make([]domain.Conflict, 0)
	if rule == nil || !rule.HasBuffer() {
		return conflicts
	}

	bufferStart := types.AddMinutes(start, -rule.BufferTimeBefore)
	bufferEnd := types.AddMinutes(end, rule.BufferTimeAfter)

	for _, b := range dedupeBookings(dayBookings, nil) {
		if types.Overlaps(start, end, b.StartDatetime, b.EndDatetime) {
			continue
		}

		id := b.BookingID
		switch {
		case rule.BufferTimeBefore > 0 && b.EndDatetime.After(bufferStart) && !b.EndDatetime.After(start):
			conflicts = append(conflicts, domain.Conflict{
				Type:      domain.ConflictBufferTime,
				Message:   fmt.Sprintf("Violates %d-minute buffer before meeting (conflicts with %d)", rule.BufferTimeBefore, id),
				BookingID: &id,
			})
		case rule.BufferTimeAfter > 0 && !b.StartDatetime.Before(end) && b.StartDatetime.Before(bufferEnd):
			conflicts = append(conflicts, domain.Conflict{
				Type:      domain.ConflictBufferTime,
				Message:   fmt.Sprintf("Violates %d-minute buffer after meeting (conflicts with %d)", rule.BufferTimeAfter, id),
				BookingID: &id,
			})
		}
	}

	return conflicts
}

// checkQuota сверяет число активных бронирований дня и недели с лимитами правила
func (s *Service) checkQuota(
	ctx context.Context,
	rule *domain.AvailabilityRule,
	memberID int64,
	date time.Time,
	dayBookings []domain.MemberBooking,
	excludeBookingID *int64,
) (*domain.Conflict, error) {
	if rule == nil {
		return nil, nil
	}

	if limitSet(rule.MaxBookingsPerDay) && len(dedupeBookings(dayBookings, excludeBookingID)) >= *rule.MaxBookingsPerDay {
		return &domain.Conflict{
			Type:    domain.ConflictAvailabilityRule,
			Message: fmt.Sprintf("Member has reached maximum bookings per day (%d)", *rule.MaxBookingsPerDay),
		}, nil
	}

	if limitSet(rule.MaxBookingsPerWeek) {
		monday, nextMonday := types.WeekBounds(date)
		weekBookings, err := s.bookingRepo.ListStartingBetween(ctx, memberID, monday, nextMonday, excludeBookingID)
		if err != nil {
			return nil, err
		}
		if len(dedupeBookings(weekBookings, excludeBookingID)) >= *rule.MaxBookingsPerWeek {
			return &domain.Conflict{
				Type:    domain.ConflictAvailabilityRule,
				Message: fmt.Sprintf("Member has reached maximum bookings per week (%d)", *rule.MaxBookingsPerWeek),
			}, nil
		}
	}

	return nil, nil
}

// dedupeBookings сворачивает бронирование, найденное в обеих ролях, в одну запись.
// Роль хоста важнее роли участника. Результат упорядочен по началу и ID.
func dedupeBookings(bookings []domain.MemberBooking, excludeBookingID *int64) []domain.MemberBooking {
	byID := make(map[int64]domain.MemberBooking, len(bookings))
	for _, b := range bookings {
		if excludeBookingID != nil && b.BookingID == *excludeBookingID {
			continue
		}
		existing, ok := byID[b.BookingID]
		if !ok || (existing.Role == domain.RoleParticipant && b.Role == domain.RoleHost) {
			byID[b.BookingID] = b
		}
	}

	out := make([]domain.MemberBooking, 0, len(byID))
	for _, b := range byID {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDatetime.Equal(out[j].StartDatetime) {
			return out[i].StartDatetime.Before(out[j].StartDatetime)
		}
		return out[i].BookingID < out[j].BookingID
	})
	return out
}
