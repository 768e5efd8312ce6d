package availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах проверки
	ErrInvalidInput = errors.New("availability: invalid input")

	// ErrMemberNotFound возвращается, когда участник не найден
	ErrMemberNotFound = errors.New("availability: member not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
