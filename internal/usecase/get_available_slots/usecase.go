package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CabinService/internal/domain"
	cabinRepo "github.com/m04kA/SMC-CabinService/internal/infra/storage/cabin"
)

// UseCase use case для получения классифицированных слотов кабины
type UseCase struct {
	bookingRepo  BookingRepository
	cabinRepo    CabinRepository
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// location - часовой пояс, в котором работают кабины; в нем считаются
// границы слотов и классификация Past.
func NewUseCase(
	bookingRepo BookingRepository,
	cabinRepo CabinRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		cabinRepo:    cabinRepo,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute генерирует классифицированные слоты кабины на сегодня и завтра
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, cabin=%d", req.UserID, req.CabinID)

	// 1. Валидация входных данных
	if req.CabinID <= 0 {
		uc.logger.Warn("GetAvailableSlots: invalid cabin id=%d", req.CabinID)
		return nil, fmt.Errorf("%w: cabinID must be positive", ErrInvalidInput)
	}

	// 2. Получаем текущее время в рабочем часовом поясе
	now := uc.timeProvider.Now().In(uc.location)
	today := dayStart(now, uc.location)
	lastDay := today.AddDate(0, 0, domain.HorizonDays-1)

	// 3. Получаем конфигурацию кабины
	cabin, err := uc.cabinRepo.GetByID(ctx, req.CabinID)
	if err != nil {
		if errors.Is(err, cabinRepo.ErrCabinNotFound) {
			uc.logger.Warn("GetAvailableSlots: cabin id=%d not found", req.CabinID)
			return nil, ErrCabinNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get cabin id=%d: %v", req.CabinID, err)
		return nil, fmt.Errorf("%w: failed to get cabin: %v", ErrInternal, err)
	}
	if !cabin.IsActive {
		uc.logger.Warn("GetAvailableSlots: cabin id=%d is inactive", req.CabinID)
		return nil, ErrCabinNotFound
	}

	// 4. Один снапшот леджера на весь горизонт - никаких частичных результатов
	filter := domain.BookingsFilter{
		CabinID:         &req.CabinID,
		DateFrom:        &today,
		DateTo:          &lastDay,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for cabin id=%d: %v", req.CabinID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Группируем бронирования по дням и генерируем слоты на каждый день горизонта
	days := make([]domain.DaySlots, 0, domain.HorizonDays)
	for offset := 0; offset < domain.HorizonDays; offset++ {
		date := today.AddDate(0, 0, offset)

		day, err := generateDaySlots(cabin, date, now, uc.location, bookingsForDate(bookings, date))
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to generate slots for cabin id=%d date=%s: %v",
				req.CabinID, date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		days = append(days, day)
	}

	uc.logger.Info("GetAvailableSlots: generated %d days for cabin=%d (%s)",
		len(days), req.CabinID, cabin.Name)

	return &Response{
		CabinID:             cabin.ID,
		CabinName:           cabin.Name,
		SlotDurationMinutes: cabin.SlotDurationMinutes,
		Days:                days,
	}, nil
}

// bookingsForDate отбирает бронирования, относящиеся к календарной дате
func bookingsForDate(bookings []*domain.Booking, date time.Time) []*domain.Booking {
	result := make([]*domain.Booking, 0)
	for _, b := range bookings {
		if isSameDay(b.BookingDate, date) {
			result = append(result, b)
		}
	}
	return result
}
