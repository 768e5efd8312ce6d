package create_team_meeting

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	createTeamMeeting "github.com/m04kA/SMC-MeetingService/internal/usecase/create_team_meeting"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// CreateTeamMeetingRequest HTTP request model
type CreateTeamMeetingRequest struct {
	MeetingTypeID  int64   `json:"meetingTypeId"`
	ParticipantIDs []int64 `json:"participantIds"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	Title          *string `json:"title,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateTeamMeetingRequest) ToUseCaseRequest(actor *domain.Actor) (*createTeamMeeting.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createTeamMeeting.Request{
		Actor:          actor,
		MeetingTypeID:  r.MeetingTypeID,
		ParticipantIDs: r.ParticipantIDs,
		Date:           date,
		StartTime:      startTime,
		Title:          r.Title,
		Notes:          r.Notes,
	}, nil
}
