package domain

// Slot search grid defaults
const (
	DefaultSlotGridStart          = "09:00"
	DefaultSlotGridEnd            = "17:00"
	DefaultSlotStepMinutes        = 30
	DefaultTodayLeadMinutes       = 30
	DefaultMeetingDurationMinutes = 30
)

// Working hours fallbacks for an enabled day without explicit bounds
const (
	DefaultWorkStart = "00:00"
	DefaultWorkEnd   = "23:59"
)

// Business validation constants
const (
	MinMeetingDurationMinutes = 5
	MaxMeetingDurationMinutes = 480 // 8 hours
	MaxBufferMinutes          = 240
	MaxBookingsLimit          = 100
	MaxNoticeHours            = 24 * 30
	MaxAdvanceDays            = 365
	MaxReasonLength           = 500
	MaxNotesLength            = 2000
	MaxTeamParticipants       = 50
)

// Default messages
const (
	DefaultBlockedReason       = "Time slot is blocked"
	DefaultOverrideUnavailable = "Member is not available on this date"
	DefaultCalendarEventTitle  = "Busy"
)

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	MonthFormat    = "2006-01"          // YYYY-MM
	DatetimeFormat = "2006-01-02T15:04" // wall-clock datetime
)
