package get_available_dates

import "errors"

var (
	// ErrMemberNotFound возвращается, когда участник не найден
	ErrMemberNotFound = errors.New("get_available_dates: member not found")

	// ErrInvalidMonth возвращается, когда месяц целиком в прошлом или дальше горизонта
	ErrInvalidMonth = errors.New("get_available_dates: invalid month")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_dates: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_dates: internal error")
)
