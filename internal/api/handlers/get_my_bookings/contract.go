package get_my_bookings

import (
	"context"

	"github.com/m04kA/SMC-CabinService/internal/service/bookings/models"
)

type BookingsService interface {
	GetMyBookings(ctx context.Context, userID int64) (*models.MyBookingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
