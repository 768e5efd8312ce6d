package customers

import "errors"

var (
	// ErrDuplicateContact возвращается, когда email или телефон уже принадлежит другому клиенту
	ErrDuplicateContact = errors.New("contact already belongs to another customer")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
