package authservice

// Identity личность пользователя, подтвержденная сервисом аутентификации
type Identity struct {
	UserID     int64  `json:"user_id"`
	Username   string `json:"username"`
	EmployeeID string `json:"employee_id"`
	IsAdmin    bool   `json:"is_admin"`
}

// ErrorResponse модель ошибки от сервиса аутентификации
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
