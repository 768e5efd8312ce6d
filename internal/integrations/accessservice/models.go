package accessservice

// UserAccess роли пользователя и руководимые им отделы
type UserAccess struct {
	UserID         int64    `json:"user_id"`
	Roles          []string `json:"roles"`
	LedDepartments []int64  `json:"led_departments"`
}

// ErrorResponse модель ошибки от сервиса доступов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
