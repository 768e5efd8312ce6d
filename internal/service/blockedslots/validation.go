package blockedslots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/service/blockedslots/models"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// maxListRangeDays ограничение периода выборки
const maxListRangeDays = 366

func buildSlot(req *models.CreateRequest) (*domain.BlockedSlot, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return &domain.BlockedSlot{
		MemberID:    req.MemberID,
		BlockedDate: date,
		StartTime:   start,
		EndTime:     end,
		Reason:      reason,
	}, nil
}

func validateListRequest(req *models.ListRequest) error {
	if req.To.Before(req.From) {
		return fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}
	if req.To.Sub(req.From) > maxListRangeDays*24*time.Hour {
		return fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, maxListRangeDays)
	}
	return nil
}
