package reassign_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reassign_booking: booking not found")

	// ErrMemberNotFound возвращается, когда новый ведущий не найден
	ErrMemberNotFound = errors.New("reassign_booking: member not found")

	// ErrTeamMeetingImmutable возвращается при попытке переназначить командную встречу
	ErrTeamMeetingImmutable = errors.New("reassign_booking: team meetings cannot be reassigned")

	// ErrHostNotInDepartment возвращается, когда новый ведущий не состоит в отделе бронирования
	ErrHostNotInDepartment = errors.New("reassign_booking: host is not an active member of the department")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на переназначение
	ErrAccessDenied = errors.New("reassign_booking: access denied")

	// ErrSlotNotAvailable возвращается, когда новый ведущий занят в это время
	ErrSlotNotAvailable = errors.New("reassign_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reassign_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reassign_booking: internal error")
)
