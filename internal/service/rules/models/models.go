package models

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// Request модели

// DayScheduleRequest рабочие часы одного дня недели
type DayScheduleRequest struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start,omitempty"` // "09:00"
	End     string `json:"end,omitempty"`   // "17:00"
}

// UpdateRuleRequest запрос на обновление правила и рабочих часов.
// Nil поля не изменяются.
type UpdateRuleRequest struct {
	Actor              *domain.Actor                 `json:"-"`
	MemberID           int64                         `json:"-"`
	BufferTimeBefore   *int                          `json:"bufferTimeBefore,omitempty"`
	BufferTimeAfter    *int                          `json:"bufferTimeAfter,omitempty"`
	MaxBookingsPerDay  *int                          `json:"maxBookingsPerDay,omitempty"`
	MaxBookingsPerWeek *int                          `json:"maxBookingsPerWeek,omitempty"`
	MinNoticeHours     *int                          `json:"minNoticeHours,omitempty"`
	MaxDaysAdvance     *int                          `json:"maxDaysAdvance,omitempty"`
	WorkingHours       map[string]DayScheduleRequest `json:"workingHours,omitempty"`
}

// AddOverrideRequest запрос на добавление исключения на дату
type AddOverrideRequest struct {
	Actor            *domain.Actor `json:"-"`
	MemberID         int64         `json:"-"`
	Date             string        `json:"date"` // "2026-03-02"
	Available        bool          `json:"available"`
	CustomHoursStart *string       `json:"customHoursStart,omitempty"`
	CustomHoursEnd   *string       `json:"customHoursEnd,omitempty"`
	Reason           *string       `json:"reason,omitempty"`
}

// Response модели

// OverrideResponse исключение на дату
type OverrideResponse struct {
	ID               int64   `json:"id"`
	Date             string  `json:"date"`
	Available        bool    `json:"available"`
	CustomHoursStart *string `json:"customHoursStart,omitempty"`
	CustomHoursEnd   *string `json:"customHoursEnd,omitempty"`
	Reason           *string `json:"reason,omitempty"`
}

// RuleResponse действующее правило участника вместе с рабочими часами
type RuleResponse struct {
	ID                 int64                         `json:"id,omitempty"`
	MemberID           int64                         `json:"memberId"`
	BufferTimeBefore   int                           `json:"bufferTimeBefore"`
	BufferTimeAfter    int                           `json:"bufferTimeAfter"`
	MaxBookingsPerDay  *int                          `json:"maxBookingsPerDay"`
	MaxBookingsPerWeek *int                          `json:"maxBookingsPerWeek"`
	MinNoticeHours     *int                          `json:"minNoticeHours"`
	MaxDaysAdvance     *int                          `json:"maxDaysAdvance"`
	WorkingHours       map[string]DayScheduleRequest `json:"workingHours"` // null = без ограничений
	Overrides          []OverrideResponse            `json:"overrides"`
}

// FromDomainOverride конвертирует исключение
func FromDomainOverride(o domain.DateOverride) OverrideResponse {
	resp := OverrideResponse{
		ID:        o.ID,
		Date:      o.Date.Format(domain.DateFormat),
		Available: o.Available,
		Reason:    o.Reason,
	}
	if o.CustomHoursStart != nil && !o.CustomHoursStart.IsZero() {
		start := o.CustomHoursStart.String()
		resp.CustomHoursStart = &start
	}
	if o.CustomHoursEnd != nil && !o.CustomHoursEnd.IsZero() {
		end := o.CustomHoursEnd.String()
		resp.CustomHoursEnd = &end
	}
	return resp
}

// FromDomainSchedule конвертирует недельное расписание (nil - без ограничений)
func FromDomainSchedule(s *domain.WeeklySchedule) map[string]DayScheduleRequest {
	if s == nil {
		return nil
	}
	out := make(map[string]DayScheduleRequest, len(s.Days))
	for weekday, day := range s.Days {
		out[domain.WeekdayKey(weekday)] = DayScheduleRequest{
			Enabled: day.Enabled,
			Start:   day.Start.String(),
			End:     day.End.String(),
		}
	}
	return out
}

// FromDomainRule собирает ответ; rule может быть nil, если правило еще не создано
func FromDomainRule(memberID int64, rule *domain.AvailabilityRule, schedule *domain.WeeklySchedule, overrides []domain.DateOverride) *RuleResponse {
	resp := &RuleResponse{
		MemberID:     memberID,
		WorkingHours: FromDomainSchedule(schedule),
		Overrides:    make([]OverrideResponse, 0, len(overrides)),
	}

	if rule != nil {
		resp.ID = rule.ID
		resp.BufferTimeBefore = rule.BufferTimeBefore
		resp.BufferTimeAfter = rule.BufferTimeAfter
		resp.MaxBookingsPerDay = rule.MaxBookingsPerDay
		resp.MaxBookingsPerWeek = rule.MaxBookingsPerWeek
		resp.MinNoticeHours = rule.MinNoticeHours
		resp.MaxDaysAdvance = rule.MaxDaysAdvance
	}

	sort.SliceStable(overrides, func(i, j int) bool {
		return overrides[i].Date.Before(overrides[j].Date)
	})
	for _, o := range overrides {
		resp.Overrides = append(resp.Overrides, FromDomainOverride(o))
	}

	return resp
}

// ParseDate разбирает дату YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}
