package create_team_meeting

import (
	"context"

	createTeamMeeting "github.com/m04kA/SMC-MeetingService/internal/usecase/create_team_meeting"
)

type CreateTeamMeetingUseCase interface {
	Execute(ctx context.Context, req *createTeamMeeting.Request) (*createTeamMeeting.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
