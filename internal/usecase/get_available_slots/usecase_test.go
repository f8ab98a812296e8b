package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CabinService/internal/domain"
	cabinRepo "github.com/m04kA/SMC-CabinService/internal/infra/storage/cabin"
	"github.com/m04kA/SMC-CabinService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type stubCabinRepo struct {
	cabin *domain.Cabin
	err   error
}

func (s *stubCabinRepo) GetByID(_ context.Context, _ int64) (*domain.Cabin, error) {
	return s.cabin, s.err
}

type stubBookingRepo struct {
	bookings   []*domain.Booking
	err        error
	lastFilter domain.BookingsFilter
}

func (s *stubBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.lastFilter = filter
	return s.bookings, s.err
}

func newTestUseCase(t *testing.T, cabins *stubCabinRepo, bookings *stubBookingRepo, now time.Time) *UseCase {
	t.Helper()
	uc := NewUseCase(bookings, cabins, kolkata(t), nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_TwoDayHorizon(t *testing.T) {
	loc := kolkata(t)
	now := time.Date(2026, 8, 31, 10, 30, 0, 0, loc)

	today := time.Date(2026, 8, 31, 0, 0, 0, 0, loc)
	tomorrow := time.Date(2026, 9, 1, 0, 0, 0, 0, loc)

	cabins := &stubCabinRepo{cabin: testCabin()}
	bookings := &stubBookingRepo{
		bookings: []*domain.Booking{
			{
				BookingDate:     today,
				StartTime:       "15:00",
				DurationMinutes: 60,
				Status:          domain.StatusActive,
				UserName:        "rahul",
				EmployeeID:      "EMP-42",
			},
			{
				BookingDate:     tomorrow,
				StartTime:       "09:00",
				DurationMinutes: 60,
				Status:          domain.StatusActive,
				UserName:        "priya",
				EmployeeID:      "EMP-77",
			},
		},
	}

	uc := newTestUseCase(t, cabins, bookings, now)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, CabinID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.CabinID)
	assert.Equal(t, "Cabin A", resp.CabinName)
	assert.Equal(t, 60, resp.SlotDurationMinutes)
	require.Len(t, resp.Days, 2)

	// Дни упорядочены: сегодня, затем завтра
	assert.True(t, isSameDay(resp.Days[0].Date, today))
	assert.True(t, isSameDay(resp.Days[1].Date, tomorrow))

	// Один снапшот леджера на весь горизонт
	require.NotNil(t, bookings.lastFilter.DateFrom)
	require.NotNil(t, bookings.lastFilter.DateTo)
	assert.True(t, isSameDay(*bookings.lastFilter.DateFrom, today))
	assert.True(t, isSameDay(*bookings.lastFilter.DateTo, tomorrow))
	assert.False(t, bookings.lastFilter.IncludeInactive)

	// Бронирования разнесены по своим дням
	findState := func(day domain.DaySlots, start types.TimeString) domain.SlotState {
		for _, slot := range day.Slots {
			if slot.StartTime == start {
				return slot.State
			}
		}
		return ""
	}
	assert.Equal(t, domain.SlotBooked, findState(resp.Days[0], "15:00"))
	assert.Equal(t, domain.SlotAvailable, findState(resp.Days[1], "15:00"))
	// Завтрашний 09:00 занят, но не Past
	assert.Equal(t, domain.SlotBooked, findState(resp.Days[1], "09:00"))
	assert.Equal(t, domain.SlotPast, findState(resp.Days[0], "09:00"))
}

func TestExecute_CabinNotFound(t *testing.T) {
	loc := kolkata(t)
	now := time.Date(2026, 8, 31, 10, 30, 0, 0, loc)

	cabins := &stubCabinRepo{err: cabinRepo.ErrCabinNotFound}
	uc := newTestUseCase(t, cabins, &stubBookingRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{UserID: 1, CabinID: 99})
	assert.ErrorIs(t, err, ErrCabinNotFound)
}

func TestExecute_InactiveCabin(t *testing.T) {
	loc := kolkata(t)
	now := time.Date(2026, 8, 31, 10, 30, 0, 0, loc)

	cabin := testCabin()
	cabin.IsActive = false
	uc := newTestUseCase(t, &stubCabinRepo{cabin: cabin}, &stubBookingRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{UserID: 1, CabinID: 1})
	assert.ErrorIs(t, err, ErrCabinNotFound)
}

func TestExecute_InvalidCabinID(t *testing.T) {
	loc := kolkata(t)
	now := time.Date(2026, 8, 31, 10, 30, 0, 0, loc)

	uc := newTestUseCase(t, &stubCabinRepo{cabin: testCabin()}, &stubBookingRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{UserID: 1, CabinID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryError(t *testing.T) {
	loc := kolkata(t)
	now := time.Date(2026, 8, 31, 10, 30, 0, 0, loc)

	bookings := &stubBookingRepo{err: errors.New("connection refused")}
	uc := newTestUseCase(t, &stubCabinRepo{cabin: testCabin()}, bookings, now)

	_, err := uc.Execute(context.Background(), &Request{UserID: 1, CabinID: 1})
	assert.ErrorIs(t, err, ErrInternal)
}
