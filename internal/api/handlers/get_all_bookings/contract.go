package get_all_bookings

import (
	"context"

	"github.com/m04kA/SMC-CabinService/internal/service/bookings/models"
)

type BookingsService interface {
	GetAllBookings(ctx context.Context) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
