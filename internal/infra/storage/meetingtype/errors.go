package meetingtype

import "errors"

var (
	// ErrMeetingTypeNotFound возвращается, когда тип встречи не найден
	ErrMeetingTypeNotFound = errors.New("meetingtype.repository: meeting type not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("meetingtype.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("meetingtype.repository: failed to scan row")
)
