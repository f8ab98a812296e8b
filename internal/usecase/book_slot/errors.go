package book_slot

import "errors"

var (
	// ErrCabinNotFound кабина не найдена или неактивна
	ErrCabinNotFound = errors.New("book_slot: cabin not found")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("book_slot: invalid input")
	// ErrInvalidDuration длительность не соответствует конфигурации кабины
	ErrInvalidDuration = errors.New("book_slot: invalid duration")
	// ErrInvalidSlot слот не принадлежит сетке кабины
	ErrInvalidSlot = errors.New("book_slot: invalid slot")
	// ErrSlotInPast слот уже прошел
	ErrSlotInPast = errors.New("book_slot: slot is in the past")
	// ErrSlotRestricted слот пересекается с запрещенным диапазоном
	ErrSlotRestricted = errors.New("book_slot: slot is restricted")
	// ErrSlotAlreadyBooked слот пересекается с активным бронированием
	ErrSlotAlreadyBooked = errors.New("book_slot: slot is already booked")
	// ErrDailyLimitReached пользователь исчерпал дневной лимит бронирований
	ErrDailyLimitReached = errors.New("book_slot: daily booking limit reached")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("book_slot: internal error")
)
