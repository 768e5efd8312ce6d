package get_available_dates

import (
	"github.com/m04kA/SMC-MeetingService/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-MeetingService/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	Month           string   `json:"month"` // "2026-03"
	MemberIDs       []int64  `json:"memberIds"`
	DurationMinutes int      `json:"durationMinutes"`
	Dates           []string `json:"dates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]string, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = d.Format(domain.DateFormat)
	}

	return &AvailableDatesResponse{
		Month:           resp.Month.Format(domain.MonthFormat),
		MemberIDs:       resp.MemberIDs,
		DurationMinutes: resp.DurationMinutes,
		Dates:           dates,
	}
}
