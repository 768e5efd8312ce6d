package types

import "time"

// WallClock отдает текущее время платформы в виде "настенного" времени.
// Все даты в сервисе хранятся без смещения, поэтому текущее время переводится
// в часовой пояс платформы и помечается как UTC.
type WallClock struct {
	loc *time.Location
}

// NewWallClock создает часы для указанного часового пояса (nil = UTC)
func NewWallClock(loc *time.Location) *WallClock {
	if loc == nil {
		loc = time.UTC
	}
	return &WallClock{loc: loc}
}

// Now возвращает текущее время платформы
func (c *WallClock) Now() time.Time {
	return ToWall(time.Now(), c.loc)
}

// ToWall переводит момент в часовой пояс loc и отбрасывает смещение
func ToWall(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), time.UTC)
}
