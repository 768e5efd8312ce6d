package get_available_dates

import "time"

// Request модель запроса дней месяца, в которых есть свободный слот
type Request struct {
	UserID          int64
	MemberIDs       []int64
	Month           time.Time // любой день месяца
	DurationMinutes int       // 0 - длительность по умолчанию
}

// Response модель ответа
type Response struct {
	Month           time.Time // первое число месяца
	MemberIDs       []int64
	DurationMinutes int
	Dates           []time.Time
}
