package create_team_meeting

import "errors"

var (
	// ErrMeetingTypeNotFound возвращается, когда тип встречи не найден
	ErrMeetingTypeNotFound = errors.New("create_team_meeting: meeting type not found")

	// ErrMemberNotFound возвращается, когда один из участников не найден
	ErrMemberNotFound = errors.New("create_team_meeting: member not found")

	// ErrAccessDenied возвращается, когда пользователь не руководит отделом
	ErrAccessDenied = errors.New("create_team_meeting: access denied")

	// ErrInvalidDate возвращается, когда дата или время встречи в прошлом
	ErrInvalidDate = errors.New("create_team_meeting: invalid meeting date")

	// ErrSlotNotAvailable возвращается, когда хотя бы один участник недоступен
	ErrSlotNotAvailable = errors.New("create_team_meeting: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_team_meeting: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_team_meeting: internal error")
)
