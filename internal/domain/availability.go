package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// AvailabilityRule per-member booking limits. The default-flagged rule is authoritative.
type AvailabilityRule struct {
	ID                 int64
	MemberID           int64
	Name               string
	IsDefault          bool
	BufferTimeBefore   int  // minutes
	BufferTimeAfter    int  // minutes
	MaxBookingsPerDay  *int // nil = unlimited
	MaxBookingsPerWeek *int // nil = unlimited
	MinNoticeHours     *int
	MaxDaysAdvance     *int
	Overrides          []DateOverride
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasBuffer returns true if any buffer is configured
func (r *AvailabilityRule) HasBuffer() bool {
	return r.BufferTimeBefore > 0 || r.BufferTimeAfter > 0
}

// DateOverride a one-off exception for a single date.
// Any override row for a date replaces recurring working hours for that date.
type DateOverride struct {
	ID               int64
	RuleID           int64
	Date             time.Time
	Available        bool
	CustomHoursStart *types.TimeString
	CustomHoursEnd   *types.TimeString
	Reason           *string
}

// HasCustomHours returns true if the override restricts the day to a window
func (o *DateOverride) HasCustomHours() bool {
	return o.CustomHoursStart != nil && o.CustomHoursEnd != nil &&
		!o.CustomHoursStart.IsZero() && !o.CustomHoursEnd.IsZero()
}

// BlockedSlot an explicit "do not book" interval, highest precedence signal
type BlockedSlot struct {
	ID          int64
	MemberID    int64
	BlockedDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Reason      string
	CreatedAt   time.Time
}

// Start returns the slot start as a datetime
func (s *BlockedSlot) Start() time.Time {
	return types.Combine(s.BlockedDate, s.StartTime)
}

// End returns the slot end as a datetime
func (s *BlockedSlot) End() time.Time {
	return types.Combine(s.BlockedDate, s.EndTime)
}

// CalendarEvent a synced third-party calendar event
type CalendarEvent struct {
	ID                     int64
	MemberID               int64
	Title                  string
	StartDatetime          time.Time
	EndDatetime            time.Time
	IsAllDay               bool
	IsBlockingAvailability bool
	EventType              string
	SyncStatus             string
}

// SyncStatusSynced only synced events participate in conflict checks
const SyncStatusSynced = "Synced"

// BlocksAvailability true for blocking, timed, successfully synced events
func (e *CalendarEvent) BlocksAvailability() bool {
	return e.IsBlockingAvailability && !e.IsAllDay && e.SyncStatus == SyncStatusSynced
}

// DaySchedule working hours for one weekday
type DaySchedule struct {
	Enabled bool
	Start   types.TimeString
	End     types.TimeString
}

// WeeklySchedule recurring working hours keyed by weekday.
// A weekday missing from the map is treated as disabled.
type WeeklySchedule struct {
	Days map[time.Weekday]DaySchedule
}

// Day returns the schedule for the date's weekday
func (w *WeeklySchedule) Day(date time.Time) (DaySchedule, bool) {
	day, ok := w.Days[date.Weekday()]
	return day, ok
}

var weekdayKeys = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

type dayScheduleJSON struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
}

// ParseWeeklySchedule parses the stored working-hours JSON.
// Empty or malformed input yields nil, which callers treat as unrestricted availability.
func ParseWeeklySchedule(raw []byte) *WeeklySchedule {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}

	var parsed map[string]dayScheduleJSON
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil
	}

	schedule := &WeeklySchedule{Days: make(map[time.Weekday]DaySchedule, len(parsed))}
	for key, cfg := range parsed {
		weekday, ok := weekdayKeys[strings.ToLower(key)]
		if !ok {
			continue
		}

		day := DaySchedule{
			Enabled: cfg.Enabled,
			Start:   types.TimeString(DefaultWorkStart),
			End:     types.TimeString(DefaultWorkEnd),
		}
		if ts, err := types.NewTimeStringFromString(cfg.Start); err == nil {
			day.Start = ts
		}
		if ts, err := types.NewTimeStringFromString(cfg.End); err == nil {
			day.End = ts
		}
		schedule.Days[weekday] = day
	}

	return schedule
}

// MarshalWeeklySchedule encodes the schedule in the stored JSON shape
func MarshalWeeklySchedule(s *WeeklySchedule) ([]byte, error) {
	out := make(map[string]dayScheduleJSON, len(s.Days))
	for key, weekday := range weekdayKeys {
		day, ok := s.Days[weekday]
		if !ok {
			continue
		}
		out[key] = dayScheduleJSON{Enabled: day.Enabled, Start: day.Start.String(), End: day.End.String()}
	}
	return json.Marshal(out)
}

// WeekdayKey returns the lower-case JSON key of the weekday
func WeekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}
