package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// Request модель запроса свободных слотов.
// Один участник - личный поиск, несколько - пересечение для командной встречи.
type Request struct {
	UserID          int64     // ID пользователя (для логирования, не влияет на результат)
	MemberIDs       []int64   // участники, которые должны быть свободны одновременно
	Date            time.Time // дата без времени
	DurationMinutes int       // 0 - длительность по умолчанию
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date            time.Time
	MemberIDs       []int64
	DurationMinutes int
	Slots           []Slot
}

// Slot свободный интервал
type Slot struct {
	StartTime types.TimeString // "10:00"
	EndTime   types.TimeString // "10:30"
}
