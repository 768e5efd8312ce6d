package types

import (
	"errors"
	"time"
)

// ErrInvalidTimeRange возвращается, когда начало интервала не раньше конца
var ErrInvalidTimeRange = errors.New("invalid time range")

// Overlaps проверяет пересечение полуоткрытых интервалов [startA, endA) и [startB, endB).
// Смежные интервалы (endA == startB) не пересекаются.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return !(!endA.After(startB) || !startA.Before(endB))
}

// Combine собирает момент времени из даты и времени суток
func Combine(date time.Time, t TimeString) time.Time {
	minutes := t.Minutes()
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location())
}

// AddMinutes сдвигает момент времени на n минут
func AddMinutes(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * time.Minute)
}

// DateOnly отбрасывает время суток
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay проверяет, что два момента относятся к одной дате
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// WeekBounds возвращает границы недели понедельник-воскресенье, содержащей дату: [monday, nextMonday)
func WeekBounds(date time.Time) (time.Time, time.Time) {
	day := DateOnly(date)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 7)
}

// ValidateRange проверяет, что start < end
func ValidateRange(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidTimeRange
	}
	return nil
}
