package cabins

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CabinService/internal/domain"
	cabinRepo "github.com/m04kA/SMC-CabinService/internal/infra/storage/cabin"
	"github.com/m04kA/SMC-CabinService/internal/service/cabins/models"
)

// Service сервис для работы с кабинами
type Service struct {
	cabinRepo    CabinRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса кабин
func NewService(
	cabinRepo CabinRepository,
	bookingRepo BookingRepository,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		cabinRepo:    cabinRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// List возвращает все активные кабины плоским массивом
func (s *Service) List(ctx context.Context) ([]models.CabinResponse, error) {
	s.logger.Info("List: fetching cabins")

	cabins, err := s.cabinRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d cabins", len(cabins))
	return models.FromDomainCabinList(cabins), nil
}

// GetByID возвращает кабину по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.CabinResponse, error) {
	s.logger.Info("GetByID: fetching cabin id=%d", id)

	cabin, err := s.cabinRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, cabinRepo.ErrCabinNotFound) {
			s.logger.Warn("GetByID: cabin id=%d not found", id)
			return nil, ErrCabinNotFound
		}
		s.logger.Error("GetByID: repository error for cabin id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCabin(cabin), nil
}

// Create создает новую кабину.
// Доступно только администраторам; права проверяет middleware.
func (s *Service) Create(ctx context.Context, req *models.CreateCabinRequest) (*models.CabinResponse, error) {
	s.logger.Info("Create: creating cabin name=%q", req.Name)

	cabin, err := req.ToDomainCabin()
	if err != nil {
		s.logger.Warn("Create: bad restricted ranges for cabin name=%q: %v", req.Name, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.validateCabin(cabin); err != nil {
		s.logger.Warn("Create: validation failed for cabin name=%q: %v", req.Name, err)
		return nil, err
	}

	created, err := s.cabinRepo.Create(ctx, cabin)
	if err != nil {
		s.logger.Error("Create: repository error for cabin name=%q: %v", req.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created cabin id=%d name=%q", created.ID, created.Name)
	return models.FromDomainCabin(created), nil
}

// Update обновляет кабину. Не указанные в запросе поля сохраняются.
// Доступно только администраторам; права проверяет middleware.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateCabinRequest) (*models.CabinResponse, error) {
	s.logger.Info("Update: updating cabin id=%d", id)

	cabin, err := s.cabinRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, cabinRepo.ErrCabinNotFound) {
			s.logger.Warn("Update: cabin id=%d not found", id)
			return nil, ErrCabinNotFound
		}
		s.logger.Error("Update: repository error for cabin id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := req.ApplyTo(cabin); err != nil {
		s.logger.Warn("Update: bad restricted ranges for cabin id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.validateCabin(cabin); err != nil {
		s.logger.Warn("Update: validation failed for cabin id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.cabinRepo.Update(ctx, id, cabin)
	if err != nil {
		if errors.Is(err, cabinRepo.ErrCabinNotFound) {
			return nil, ErrCabinNotFound
		}
		s.logger.Error("Update: repository error for cabin id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated cabin id=%d", id)
	return models.FromDomainCabin(updated), nil
}

// Delete удаляет кабину. Кабина с активными бронированиями, чьи слоты
// еще не прошли, не удаляется - сначала бронирования должны быть отменены.
// Доступно только администраторам; права проверяет middleware.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting cabin id=%d", id)

	if _, err := s.cabinRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, cabinRepo.ErrCabinNotFound) {
			s.logger.Warn("Delete: cabin id=%d not found", id)
			return ErrCabinNotFound
		}
		s.logger.Error("Delete: repository error for cabin id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now().In(s.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)

	hasActive, err := s.bookingRepo.HasActiveFromDate(ctx, id, today)
	if err != nil {
		s.logger.Error("Delete: failed to check bookings for cabin id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - failed to check bookings: %v", ErrInternal, err)
	}
	if hasActive {
		s.logger.Warn("Delete: cabin id=%d has active bookings", id)
		return ErrCabinHasActiveBookings
	}

	if err := s.cabinRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, cabinRepo.ErrCabinNotFound) {
			return ErrCabinNotFound
		}
		s.logger.Error("Delete: repository error for cabin id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted cabin id=%d", id)
	return nil
}

// validateCabin проверяет инварианты конфигурации кабины
func (s *Service) validateCabin(cabin *domain.Cabin) error {
	if cabin.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(cabin.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long (max %d)", ErrInvalidInput, domain.MaxNameLength)
	}
	if len(cabin.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description is too long (max %d)", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	if cabin.SlotDurationMinutes < domain.MinSlotDurationMinutes ||
		cabin.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if err := cabin.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	if err := cabin.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid end time: %v", ErrInvalidInput, err)
	}
	if !cabin.StartTime.IsBefore(cabin.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}
	if cabin.MaxBookingsPerDay < 0 || cabin.MaxBookingsPerDay > domain.MaxBookingsPerDayLimit {
		return fmt.Errorf("%w: max bookings per day must be between 0 and %d",
			ErrInvalidInput, domain.MaxBookingsPerDayLimit)
	}

	for _, r := range cabin.RestrictedRanges {
		if err := r.Start.Validate(); err != nil {
			return fmt.Errorf("%w: invalid restricted range start: %v", ErrInvalidInput, err)
		}
		if err := r.End.Validate(); err != nil {
			return fmt.Errorf("%w: invalid restricted range end: %v", ErrInvalidInput, err)
		}
		if !r.Start.IsBefore(r.End) {
			return fmt.Errorf("%w: restricted range %s is empty", ErrInvalidInput, r)
		}
		// Запрещенный диапазон должен лежать внутри рабочего окна
		if r.Start.IsBefore(cabin.StartTime) || r.End.IsAfter(cabin.EndTime) {
			return fmt.Errorf("%w: restricted range %s is outside the operating window", ErrInvalidInput, r)
		}
	}

	return nil
}
