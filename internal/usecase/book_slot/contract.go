package book_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CabinService/internal/domain"
)

// BookingRepository интерфейс хранилища бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	CountActiveByUserAndDate(ctx context.Context, cabinID, userID int64, date time.Time) (int, error)
}

// CabinRepository интерфейс хранилища кабин
type CabinRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Cabin, error)
}

// TransactionManager менеджер транзакций для атомарного бронирования
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider абстракция над текущим временем для тестируемости
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
