package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrMemberNotFound возвращается, когда ведущий или участник не найден
	ErrMemberNotFound = errors.New("reschedule_booking: member not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на перенос
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrInvalidDate возвращается, когда новое время в прошлом
	ErrInvalidDate = errors.New("reschedule_booking: invalid booking date")

	// ErrSlotNotAvailable возвращается, когда кто-то из участников занят в новое время
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
