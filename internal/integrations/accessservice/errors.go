package accessservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда сервис доступов не знает пользователя
	ErrUserNotFound = errors.New("accessservice client: user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("accessservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("accessservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation:
	// сервис доступов недоступен, пользователь получает только права участника без ролей
	ErrServiceDegraded = errors.New("accessservice unavailable: graceful degradation applied")
)
