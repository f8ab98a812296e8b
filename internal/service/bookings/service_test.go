package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CabinService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CabinService/internal/infra/storage/booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type stubRepo struct {
	byID      map[int64]*domain.Booking
	byUser    []*domain.Booking
	all       []*domain.Booking
	cancelled []int64
	deleted   []int64
}

func (s *stubRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := s.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *stubRepo) GetByUserID(_ context.Context, _ int64) ([]*domain.Booking, error) {
	return s.byUser, nil
}

func (s *stubRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return s.all, nil
}

func (s *stubRepo) Cancel(_ context.Context, id int64) error {
	if _, ok := s.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	s.cancelled = append(s.cancelled, id)
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func newTestService(t *testing.T, repo *stubRepo, now time.Time) *Service {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	svc := NewService(repo, loc, nopLogger{})
	svc.timeProvider = fixedTime{now: now}
	return svc
}

func TestGetMyBookings_ActivePastSplit(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, loc)
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, loc)

	repo := &stubRepo{
		byUser: []*domain.Booking{
			{ // активное бронирование в будущем
				ID: 1, UserID: 7, BookingDate: today,
				StartTime: "15:00", DurationMinutes: 60,
				Status: domain.StatusActive,
			},
			{ // активное, но слот уже закончился
				ID: 2, UserID: 7, BookingDate: today,
				StartTime: "09:00", DurationMinutes: 60,
				Status: domain.StatusActive,
			},
			{ // отмененное, хоть и в будущем
				ID: 3, UserID: 7, BookingDate: today,
				StartTime: "16:00", DurationMinutes: 60,
				Status: domain.StatusCancelled,
			},
			{ // активное, слот идет прямо сейчас - еще не закончился
				ID: 4, UserID: 7, BookingDate: today,
				StartTime: "11:30", DurationMinutes: 60,
				Status: domain.StatusActive,
			},
		},
	}

	svc := newTestService(t, repo, now)

	resp, err := svc.GetMyBookings(context.Background(), 7)
	require.NoError(t, err)

	activeIDs := make([]int64, 0)
	for _, b := range resp.Active {
		activeIDs = append(activeIDs, b.ID)
	}
	pastIDs := make([]int64, 0)
	for _, b := range resp.Past {
		pastIDs = append(pastIDs, b.ID)
	}

	assert.ElementsMatch(t, []int64{1, 4}, activeIDs)
	assert.ElementsMatch(t, []int64{2, 3}, pastIDs)
}

func TestCancel_Permissions(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, loc)
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, loc)

	newRepo := func(status domain.BookingStatus) *stubRepo {
		return &stubRepo{
			byID: map[int64]*domain.Booking{
				1: {
					ID: 1, UserID: 7, CabinID: 1, BookingDate: today,
					StartTime: "15:00", DurationMinutes: 60, Status: status,
				},
			},
		}
	}

	t.Run("владелец отменяет свое бронирование", func(t *testing.T) {
		repo := newRepo(domain.StatusActive)
		svc := newTestService(t, repo, now)
		require.NoError(t, svc.Cancel(context.Background(), 1, 7, false))
		assert.Equal(t, []int64{1}, repo.cancelled)
	})

	t.Run("чужое бронирование отменить нельзя", func(t *testing.T) {
		repo := newRepo(domain.StatusActive)
		svc := newTestService(t, repo, now)
		assert.ErrorIs(t, svc.Cancel(context.Background(), 1, 8, false), ErrAccessDenied)
		assert.Empty(t, repo.cancelled)
	})

	t.Run("админ отменяет любое бронирование", func(t *testing.T) {
		repo := newRepo(domain.StatusActive)
		svc := newTestService(t, repo, now)
		require.NoError(t, svc.Cancel(context.Background(), 1, 8, true))
		assert.Equal(t, []int64{1}, repo.cancelled)
	})

	t.Run("повторная отмена", func(t *testing.T) {
		repo := newRepo(domain.StatusCancelled)
		svc := newTestService(t, repo, now)
		assert.ErrorIs(t, svc.Cancel(context.Background(), 1, 7, false), ErrAlreadyCancelled)
	})

	t.Run("несуществующее бронирование", func(t *testing.T) {
		svc := newTestService(t, &stubRepo{byID: map[int64]*domain.Booking{}}, now)
		assert.ErrorIs(t, svc.Cancel(context.Background(), 99, 7, false), ErrBookingNotFound)
	})

	t.Run("прошедшее активное бронирование можно отменить", func(t *testing.T) {
		repo := &stubRepo{
			byID: map[int64]*domain.Booking{
				1: {
					ID: 1, UserID: 7, CabinID: 1, BookingDate: today,
					StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusActive,
				},
			},
		}
		svc := newTestService(t, repo, now)
		require.NoError(t, svc.Cancel(context.Background(), 1, 7, false))
	})
}

func TestGetByID_Access(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, loc)
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, loc)

	repo := &stubRepo{
		byID: map[int64]*domain.Booking{
			1: {
				ID: 1, UserID: 7, CabinID: 1, BookingDate: today,
				StartTime: "15:00", DurationMinutes: 60, Status: domain.StatusActive,
			},
		},
	}
	svc := newTestService(t, repo, now)

	resp, err := svc.GetByID(context.Background(), 1, 7, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "15:00", resp.StartTime)
	assert.Equal(t, "16:00", resp.EndTime)

	_, err = svc.GetByID(context.Background(), 1, 8, false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 1, 8, true)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 99, 7, false)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestDelete(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, loc)

	repo := &stubRepo{
		byID: map[int64]*domain.Booking{
			1: {ID: 1, UserID: 7, Status: domain.StatusActive, StartTime: "15:00", DurationMinutes: 60},
		},
	}
	svc := newTestService(t, repo, now)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []int64{1}, repo.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), 99), ErrBookingNotFound)
}
