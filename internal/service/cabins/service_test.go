package cabins

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CabinService/internal/domain"
	cabinRepo "github.com/m04kA/SMC-CabinService/internal/infra/storage/cabin"
	"github.com/m04kA/SMC-CabinService/internal/service/cabins/models"
	"github.com/m04kA/SMC-CabinService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubCabinRepo struct {
	byID    map[int64]*domain.Cabin
	created *domain.Cabin
	updated *domain.Cabin
	deleted []int64
}

func (s *stubCabinRepo) Create(_ context.Context, cabin *domain.Cabin) (*domain.Cabin, error) {
	created := *cabin
	created.ID = 1
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.created = &created
	return &created, nil
}

func (s *stubCabinRepo) GetByID(_ context.Context, id int64) (*domain.Cabin, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, cabinRepo.ErrCabinNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *stubCabinRepo) List(_ context.Context) ([]*domain.Cabin, error) {
	result := make([]*domain.Cabin, 0, len(s.byID))
	for _, c := range s.byID {
		copied := *c
		result = append(result, &copied)
	}
	return result, nil
}

func (s *stubCabinRepo) Update(_ context.Context, id int64, cabin *domain.Cabin) (*domain.Cabin, error) {
	if _, ok := s.byID[id]; !ok {
		return nil, cabinRepo.ErrCabinNotFound
	}
	updated := *cabin
	updated.ID = id
	s.updated = &updated
	return &updated, nil
}

func (s *stubCabinRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.byID[id]; !ok {
		return cabinRepo.ErrCabinNotFound
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type stubBookingRepo struct {
	hasActive bool
}

func (s *stubBookingRepo) HasActiveFromDate(_ context.Context, _ int64, _ time.Time) (bool, error) {
	return s.hasActive, nil
}

func newTestService(t *testing.T, cabins *stubCabinRepo, bookings *stubBookingRepo) *Service {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return NewService(cabins, bookings, loc, nopLogger{})
}

func existingCabin() *domain.Cabin {
	return &domain.Cabin{
		ID:                  1,
		Name:                "Cabin A",
		SlotDurationMinutes: 40,
		StartTime:           "09:00",
		EndTime:             "19:00",
		MaxBookingsPerDay:   5,
		IsActive:            true,
	}
}

func TestCreate_Defaults(t *testing.T) {
	repo := &stubCabinRepo{}
	svc := newTestService(t, repo, &stubBookingRepo{})

	resp, err := svc.Create(context.Background(), &models.CreateCabinRequest{Name: "Cabin A"})
	require.NoError(t, err)

	assert.Equal(t, "Cabin A", resp.Name)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.SlotDurationMinutes)
	assert.Equal(t, domain.DefaultStartTime, resp.StartTime)
	assert.Equal(t, domain.DefaultEndTime, resp.EndTime)
	assert.Equal(t, domain.DefaultMaxBookingsPerDay, resp.MaxBookingsPerDay)
	assert.True(t, resp.IsActive)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateCabinRequest
	}{
		{
			name: "пустое имя",
			req:  models.CreateCabinRequest{},
		},
		{
			name: "слишком короткий слот",
			req:  models.CreateCabinRequest{Name: "A", SlotDurationMinutes: ptr.Ptr(5)},
		},
		{
			name: "слишком длинный слот",
			req:  models.CreateCabinRequest{Name: "A", SlotDurationMinutes: ptr.Ptr(600)},
		},
		{
			name: "начало позже конца",
			req: models.CreateCabinRequest{
				Name: "A", StartTime: ptr.Ptr("19:00"), EndTime: ptr.Ptr("09:00"),
			},
		},
		{
			name: "кривой формат времени",
			req:  models.CreateCabinRequest{Name: "A", StartTime: ptr.Ptr("9am")},
		},
		{
			name: "пустой запрещенный диапазон",
			req: models.CreateCabinRequest{
				Name:            "A",
				RestrictedTimes: []string{"14:00-13:00"},
			},
		},
		{
			name: "кривой формат запрещенного диапазона",
			req: models.CreateCabinRequest{
				Name:            "A",
				RestrictedTimes: []string{"13:00"},
			},
		},
		{
			name: "запрещенный диапазон вне рабочего окна",
			req: models.CreateCabinRequest{
				Name:            "A",
				RestrictedTimes: []string{"08:00-10:00"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, &stubCabinRepo{}, &stubBookingRepo{})
			_, err := svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_Partial(t *testing.T) {
	repo := &stubCabinRepo{byID: map[int64]*domain.Cabin{1: existingCabin()}}
	svc := newTestService(t, repo, &stubBookingRepo{})

	resp, err := svc.Update(context.Background(), 1, &models.UpdateCabinRequest{
		Description:     ptr.Ptr("near the window"),
		RestrictedTimes: &[]string{"13:00-14:00"},
	})
	require.NoError(t, err)

	// Не указанные поля сохранили значения
	assert.Equal(t, "Cabin A", resp.Name)
	assert.Equal(t, 40, resp.SlotDurationMinutes)
	assert.Equal(t, "near the window", resp.Description)
	assert.Equal(t, []string{"13:00-14:00"}, resp.RestrictedTimes)
}

func TestList_ReturnsFlatArray(t *testing.T) {
	repo := &stubCabinRepo{byID: map[int64]*domain.Cabin{1: existingCabin()}}
	svc := newTestService(t, repo, &stubBookingRepo{})

	cabins, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cabins, 1)
	assert.Equal(t, "Cabin A", cabins[0].Name)
	assert.Equal(t, 40, cabins[0].SlotDurationMinutes)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(t, &stubCabinRepo{byID: map[int64]*domain.Cabin{}}, &stubBookingRepo{})

	_, err := svc.Update(context.Background(), 99, &models.UpdateCabinRequest{Name: ptr.Ptr("B")})
	assert.ErrorIs(t, err, ErrCabinNotFound)
}

func TestDelete_BlockedByActiveBookings(t *testing.T) {
	repo := &stubCabinRepo{byID: map[int64]*domain.Cabin{1: existingCabin()}}
	svc := newTestService(t, repo, &stubBookingRepo{hasActive: true})

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCabinHasActiveBookings)
	assert.Empty(t, repo.deleted)
}

func TestDelete_Success(t *testing.T) {
	repo := &stubCabinRepo{byID: map[int64]*domain.Cabin{1: existingCabin()}}
	svc := newTestService(t, repo, &stubBookingRepo{hasActive: false})

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []int64{1}, repo.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), 99), ErrCabinNotFound)
}
