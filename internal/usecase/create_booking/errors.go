package create_booking

import "errors"

var (
	// ErrMeetingTypeNotFound возвращается, когда тип встречи не найден
	ErrMeetingTypeNotFound = errors.New("create_booking: meeting type not found")

	// ErrMemberNotFound возвращается, когда ведущий не найден
	ErrMemberNotFound = errors.New("create_booking: member not found")

	// ErrCustomerNotFound возвращается, когда указанный клиент не найден
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrHostNotInDepartment возвращается, когда ведущий не состоит в отделе типа встречи
	ErrHostNotInDepartment = errors.New("create_booking: host is not an active member of the department")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на бронирование
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrInvalidDate возвращается, когда дата или время бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrBookingWindow возвращается при нарушении минимального уведомления или горизонта бронирования
	ErrBookingWindow = errors.New("create_booking: outside of booking window")

	// ErrSlotNotAvailable возвращается, когда ведущий недоступен в выбранное время
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
