package domain

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// SlotGrid the fixed grid that slot searches walk over
type SlotGrid struct {
	Start            types.TimeString
	End              types.TimeString
	StepMinutes      int
	TodayLeadMinutes int
}

// DefaultSlotGrid 09:00-17:00 in 30-minute steps
func DefaultSlotGrid() SlotGrid {
	return SlotGrid{
		Start:            types.MustTimeString(DefaultSlotGridStart),
		End:              types.MustTimeString(DefaultSlotGridEnd),
		StepMinutes:      DefaultSlotStepMinutes,
		TodayLeadMinutes: DefaultTodayLeadMinutes,
	}
}

// Candidates returns every grid start on the date regardless of duration;
// whether the meeting fits is left to the availability check.
// Past dates yield nothing; today drops starts earlier than now + lead.
func (g SlotGrid) Candidates(date time.Time, durationMinutes int, now time.Time) []types.TimeString {
	out := make([]types.TimeString, 0)
	if g.StepMinutes <= 0 || durationMinutes <= 0 {
		return out
	}

	day := types.DateOnly(date)
	if day.Before(types.DateOnly(now)) {
		return out
	}

	gridEnd := types.Combine(day, g.End)
	earliest := types.AddMinutes(now, g.TodayLeadMinutes)
	today := types.SameDay(day, now)

	for start := types.Combine(day, g.Start); start.Before(gridEnd); start = types.AddMinutes(start, g.StepMinutes) {
		if today && start.Before(earliest) {
			continue
		}
		out = append(out, types.NewTimeString(start))
	}
	return out
}
