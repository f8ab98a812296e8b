package book_slot

import (
	"time"

	"github.com/m04kA/SMC-CabinService/internal/domain"
	"github.com/m04kA/SMC-CabinService/pkg/types"
)

// Request запрос на бронирование слота.
// Идентификационные поля берутся из проверенного токена, не из тела запроса.
type Request struct {
	CabinID         int64
	UserID          int64
	UserName        string
	EmployeeID      string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
}

// Response созданное бронирование
type Response struct {
	Booking *domain.Booking
}
