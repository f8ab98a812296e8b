package book_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CabinService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CabinService/internal/infra/storage/booking"
	cabinRepo "github.com/m04kA/SMC-CabinService/internal/infra/storage/cabin"
	"github.com/m04kA/SMC-CabinService/pkg/types"
)

// UseCase use case бронирования слота.
//
// Все проверки и вставка выполняются в одной serializable-транзакции:
// чтение бронирований дня идет с SELECT ... FOR UPDATE, так что два
// конкурентных запроса на один слот сериализуются, и ровно один из них
// получает ErrSlotAlreadyBooked. Частичный уникальный индекс в базе
// останавливает гонку даже в обход этого пути.
type UseCase struct {
	bookingRepo  BookingRepository
	cabinRepo    CabinRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	cabinRepo CabinRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		cabinRepo:    cabinRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute бронирует слот для пользователя.
//
// Порядок отказов фиксирован: ErrCabinNotFound → ErrInvalidDuration →
// ErrInvalidSlot → ErrSlotInPast → ErrSlotRestricted → ErrSlotAlreadyBooked.
// Дневной лимит (ErrDailyLimitReached) проверяется после всех проверок слота.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: user=%d, cabin=%d, date=%s, start=%s, duration=%d",
		req.UserID, req.CabinID, req.BookingDate.Format(domain.DateFormat),
		req.StartTime, req.DurationMinutes)

	// 1. Базовая валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: invalid request: %v", err)
		return nil, err
	}

	var created *domain.Booking

	// 2. Все проверки и вставка - в одной serializable-транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.attemptBook(txCtx, req)
		if err != nil {
			return err
		}
		created = booking
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		uc.logger.Error("BookSlot: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("BookSlot: created booking id=%d for user=%d, cabin=%d",
		created.ID, req.UserID, req.CabinID)

	return &Response{Booking: created}, nil
}

// attemptBook выполняет проверки предусловий в фиксированном порядке и
// создает бронирование. Вызывается внутри транзакции.
func (uc *UseCase) attemptBook(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 1. Кабина существует и активна
	cabin, err := uc.cabinRepo.GetByID(ctx, req.CabinID)
	if err != nil {
		if errors.Is(err, cabinRepo.ErrCabinNotFound) {
			return nil, ErrCabinNotFound
		}
		return nil, fmt.Errorf("%w: failed to get cabin: %v", ErrInternal, err)
	}
	if !cabin.IsActive {
		return nil, ErrCabinNotFound
	}

	// 2. Длительность соответствует конфигурации кабины
	if req.DurationMinutes != cabin.SlotDurationMinutes {
		return nil, fmt.Errorf("%w: expected %d minutes, got %d",
			ErrInvalidDuration, cabin.SlotDurationMinutes, req.DurationMinutes)
	}

	end, err := req.StartTime.AddMinutes(req.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}

	// 3. Слот принадлежит сетке кабины и входит в горизонт бронирования
	if !slotOnGrid(cabin, req.StartTime, end) {
		return nil, fmt.Errorf("%w: slot %s is not offered by cabin %d",
			ErrInvalidSlot, req.StartTime, cabin.ID)
	}
	now := uc.timeProvider.Now().In(uc.location)
	today := dayStart(now, uc.location)
	// Дата приходит без часового пояса - заякориваем календарный день в рабочей локации
	bookingDate := time.Date(req.BookingDate.Year(), req.BookingDate.Month(), req.BookingDate.Day(),
		0, 0, 0, 0, uc.location)
	if bookingDate.After(today.AddDate(0, 0, domain.HorizonDays-1)) {
		return nil, fmt.Errorf("%w: date %s is beyond the booking horizon",
			ErrInvalidSlot, bookingDate.Format(domain.DateFormat))
	}

	// 4. Слот еще не начался: идущий слот бронировать нельзя
	startInstant, err := req.StartTime.OnDate(bookingDate, uc.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	if bookingDate.Before(today) || !startInstant.After(now) {
		return nil, ErrSlotInPast
	}

	// 5. Слот не запрещен
	if _, restricted := cabin.RestrictedAt(req.StartTime, end); restricted {
		return nil, ErrSlotRestricted
	}

	// 6. Слот не занят: читаем бронирования дня с блокировкой строк
	filter := domain.BookingsFilter{
		CabinID:         &req.CabinID,
		Date:            &bookingDate,
		IncludeInactive: false,
	}
	dayBookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	for _, b := range dayBookings {
		if !b.IsActive() {
			continue
		}
		bEnd, err := b.SlotEnd()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to compute slot end: %v", ErrInternal, err)
		}
		if b.StartTime.IsBefore(end) && bEnd.IsAfter(req.StartTime) {
			return nil, ErrSlotAlreadyBooked
		}
	}

	// 7. Дневной лимит пользователя
	if cabin.HasDailyLimit() {
		count, err := uc.bookingRepo.CountActiveByUserAndDate(ctx, req.CabinID, req.UserID, bookingDate)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}
		if count >= cabin.MaxBookingsPerDay {
			return nil, fmt.Errorf("%w: limit is %d per day", ErrDailyLimitReached, cabin.MaxBookingsPerDay)
		}
	}

	booking := &domain.Booking{
		CabinID:         req.CabinID,
		UserID:          req.UserID,
		BookingDate:     bookingDate,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Status:          domain.StatusActive,
		UserName:        req.UserName,
		EmployeeID:      req.EmployeeID,
		CabinName:       cabin.Name,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		// Уникальный индекс - последний рубеж против гонки
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	return created, nil
}

func (uc *UseCase) validateRequest(req *Request) error {
	if req.CabinID <= 0 {
		return fmt.Errorf("%w: cabinID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.BookingDate.IsZero() {
		return fmt.Errorf("%w: booking date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	return nil
}

// slotOnGrid проверяет, что слот лежит в рабочем окне кабины и его начало
// выровнено по сетке слотов.
func slotOnGrid(cabin *domain.Cabin, start, end types.TimeString) bool {
	if start.IsBefore(cabin.StartTime) || end.IsAfter(cabin.EndTime) {
		return false
	}
	startMin, err := start.Minutes()
	if err != nil {
		return false
	}
	windowMin, err := cabin.StartTime.Minutes()
	if err != nil {
		return false
	}
	offset := startMin - windowMin
	return offset >= 0 && offset%cabin.SlotDurationMinutes == 0
}

// dayStart обрезает время до полуночи в указанном часовом поясе
func dayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// isDomainError отличает доменные отказы от инфраструктурных ошибок
func isDomainError(err error) bool {
	return errors.Is(err, ErrCabinNotFound) ||
		errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrInvalidSlot) ||
		errors.Is(err, ErrSlotInPast) ||
		errors.Is(err, ErrSlotRestricted) ||
		errors.Is(err, ErrSlotAlreadyBooked) ||
		errors.Is(err, ErrDailyLimitReached) ||
		errors.Is(err, ErrInvalidInput)
}
