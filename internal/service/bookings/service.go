package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CabinService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CabinService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CabinService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, location *time.Location, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование, админ - любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID && !isAdmin {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetMyBookings получает бронирования пользователя, разделенные на актуальные
// и прошедшие. Актуальные - активные бронирования, чей слот еще не закончился;
// прошедшие - отмененные плюс активные с истекшим слотом.
func (s *Service) GetMyBookings(ctx context.Context, userID int64) (*models.MyBookingsResponse, error) {
	s.logger.Info("GetMyBookings: fetching bookings for user=%d", userID)

	allBookings, err := s.bookingRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetMyBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetMyBookings - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now().In(s.location)

	active := make([]models.BookingResponse, 0)
	past := make([]models.BookingResponse, 0)
	for _, b := range allBookings {
		if b.IsActive() && !b.EndsBefore(now, s.location) {
			active = append(active, *models.FromDomainBooking(b))
		} else {
			past = append(past, *models.FromDomainBooking(b))
		}
	}

	s.logger.Info("GetMyBookings: user=%d has %d active, %d past bookings",
		userID, len(active), len(past))

	return &models.MyBookingsResponse{Active: active, Past: past}, nil
}

// GetAllBookings получает все бронирования всех пользователей.
// Доступно только администраторам; права проверяет middleware.
func (s *Service) GetAllBookings(ctx context.Context) (*models.BookingListResponse, error) {
	s.logger.Info("GetAllBookings: fetching all bookings")

	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{IncludeInactive: true})
	if err != nil {
		s.logger.Error("GetAllBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllBookings: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование: статус становится cancelled, запись остается.
// Пользователь может отменить только своё бронирование, админ - любое.
func (s *Service) Cancel(ctx context.Context, bookingID int64, userID int64, isAdmin bool) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, userID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID && !isAdmin {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", userID, bookingID)
		return ErrAccessDenied
	}

	if booking.IsCancelled() {
		s.logger.Warn("Cancel: booking id=%d is already cancelled", bookingID)
		return ErrAlreadyCancelled
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Delete безвозвратно удаляет бронирование из базы.
// Доступно только администраторам; права проверяет middleware.
func (s *Service) Delete(ctx context.Context, bookingID int64) error {
	s.logger.Info("Delete: deleting booking id=%d", bookingID)

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", bookingID)
	return nil
}
