package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// Finder обходит сетку слотов и оставляет те, где свободны все участники.
// Используется и поиском по дню, и поиском дней в месяце.
type Finder struct {
	availability AvailabilityChecker
	grid         domain.SlotGrid
}

// NewFinder создает поиск по сетке
func NewFinder(availability AvailabilityChecker, grid domain.SlotGrid) *Finder {
	return &Finder{availability: availability, grid: grid}
}

// FreeSlots возвращает все свободные слоты дня
func (f *Finder) FreeSlots(ctx context.Context, memberIDs []int64, date time.Time, durationMinutes int, now time.Time) ([]Slot, error) {
	slots := make([]Slot, 0)
	for _, start := range f.grid.Candidates(date, durationMinutes, now) {
		ok, err := f.availability.AllAvailable(ctx, memberIDs, date, start, durationMinutes)
		if err != nil {
			return nil, err
		}
		if ok {
			slots = append(slots, newSlot(date, start, durationMinutes))
		}
	}
	return slots, nil
}

// HasFreeSlot true, если в дне есть хотя бы один свободный слот
func (f *Finder) HasFreeSlot(ctx context.Context, memberIDs []int64, date time.Time, durationMinutes int, now time.Time) (bool, error) {
	for _, start := range f.grid.Candidates(date, durationMinutes, now) {
		ok, err := f.availability.AllAvailable(ctx, memberIDs, date, start, durationMinutes)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func newSlot(date time.Time, start types.TimeString, durationMinutes int) Slot {
	end := types.AddMinutes(types.Combine(date, start), durationMinutes)
	return Slot{StartTime: start, EndTime: types.NewTimeString(end)}
}
