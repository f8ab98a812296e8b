package authservice

import "errors"

var (
	// ErrTokenInvalid возвращается, когда сервис аутентификации отклонил токен
	ErrTokenInvalid = errors.New("authservice client: token is invalid or expired")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("authservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("authservice client: invalid response")
)
