package cabins

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CabinService/internal/domain"
)

// CabinRepository интерфейс репозитория кабин
type CabinRepository interface {
	Create(ctx context.Context, cabin *domain.Cabin) (*domain.Cabin, error)
	GetByID(ctx context.Context, id int64) (*domain.Cabin, error)
	List(ctx context.Context) ([]*domain.Cabin, error)
	Update(ctx context.Context, id int64, cabin *domain.Cabin) (*domain.Cabin, error)
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований.
// Нужен для проверки активных бронирований перед удалением кабины.
type BookingRepository interface {
	HasActiveFromDate(ctx context.Context, cabinID int64, fromDate time.Time) (bool, error)
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
