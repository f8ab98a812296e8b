package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CabinService/internal/domain"
)

// BookingResponse ответ с данными бронирования.
// slot_time объединяет дату и время начала слота ("2026-08-31 10:00"),
// статус отдается в капитализированном виде ("Active" / "Cancelled").
type BookingResponse struct {
	ID              int64   `json:"id"`
	CabinID         int64   `json:"cabin_id"`
	CabinName       string  `json:"cabin_name"`
	UserID          int64   `json:"user_id"`
	UserName        string  `json:"user_name"`
	EmployeeID      string  `json:"employee_id"`
	SlotTime        string  `json:"slot_time"`
	BookingDate     string  `json:"booking_date"` // "2026-08-31"
	StartTime       string  `json:"start_time"`   // "10:00"
	EndTime         string  `json:"end_time"`     // "10:40"
	DurationMinutes int     `json:"duration"`
	Status          string  `json:"status"`
	CancelledAt     *string `json:"cancelled_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// MyBookingsResponse бронирования пользователя, разделенные на актуальные и прошедшие
type MyBookingsResponse struct {
	Active []BookingResponse `json:"active_bookings"`
	Past   []BookingResponse `json:"past_bookings"`
}

// FromDomainBooking конвертирует domain.Booking в response модель
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	date := b.BookingDate.Format(domain.DateFormat)
	resp := &BookingResponse{
		ID:              b.ID,
		CabinID:         b.CabinID,
		CabinName:       b.CabinName,
		UserID:          b.UserID,
		UserName:        b.UserName,
		EmployeeID:      b.EmployeeID,
		SlotTime:        fmt.Sprintf("%s %s", date, b.StartTime),
		BookingDate:     date,
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status.Label(),
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}

	if end, err := b.SlotEnd(); err == nil {
		resp.EndTime = end.String()
	}
	if b.CancelledAt != nil {
		cancelled := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainBookingList конвертирует список domain.Booking в response модель
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}
