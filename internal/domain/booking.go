package domain

import (
	"time"

	"github.com/m04kA/SMC-CabinService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCancelled BookingStatus = "cancelled"
)

// Label returns the capitalized form shown to API clients
func (s BookingStatus) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// Booking represents a committed cabin reservation in the ledger
type Booking struct {
	ID              int64
	CabinID         int64
	UserID          int64
	BookingDate     time.Time // calendar day of the slot
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history and the booked-slots view
	UserName   string
	EmployeeID string
	CabinName  string

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// SlotEnd returns the wall-clock end time of the booked slot
func (b *Booking) SlotEnd() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// EndsBefore returns true if the booked slot has fully elapsed at the given instant.
// Used to split bookings into active and past for the history view.
func (b *Booking) EndsBefore(now time.Time, loc *time.Location) bool {
	end, err := b.SlotEnd()
	if err != nil {
		return false
	}
	endInstant, err := end.OnDate(b.BookingDate, loc)
	if err != nil {
		return false
	}
	return !endInstant.After(now)
}

// BookingsFilter фильтр выборки бронирований из леджера
type BookingsFilter struct {
	CabinID         *int64         // Фильтр по кабине (nil - все кабины)
	UserID          *int64         // Фильтр по пользователю (nil - все пользователи)
	Date            *time.Time     // Конкретная календарная дата слота (nil - без ограничения)
	DateFrom        *time.Time     // Начало периода включительно (nil - без ограничения)
	DateTo          *time.Time     // Конец периода включительно (nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (nil - см. IncludeInactive)
	IncludeInactive bool           // Включать ли отменённые бронирования
}
