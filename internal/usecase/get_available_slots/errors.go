package get_available_slots

import "errors"

var (
	// ErrCabinNotFound возвращается, когда кабина не найдена или неактивна
	ErrCabinNotFound = errors.New("get_available_slots: cabin not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
