package get_my_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CabinService/internal/api/middleware"
	"github.com/m04kA/SMC-CabinService/internal/domain"
	"github.com/m04kA/SMC-CabinService/internal/integrations/authservice"
	"github.com/m04kA/SMC-CabinService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	resp *models.MyBookingsResponse
	err  error
}

func (s *stubService) GetMyBookings(_ context.Context, _ int64) (*models.MyBookingsResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func TestHandle_BookingFields(t *testing.T) {
	active := models.FromDomainBooking(&domain.Booking{
		ID:              12,
		CabinID:         3,
		CabinName:       "Cabin A",
		UserID:          7,
		UserName:        "rahul",
		EmployeeID:      "EMP-42",
		BookingDate:     time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 40,
		Status:          domain.StatusActive,
		CreatedAt:       time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC),
	})
	past := models.FromDomainBooking(&domain.Booking{
		ID:              9,
		CabinID:         3,
		CabinName:       "Cabin A",
		UserID:          7,
		UserName:        "rahul",
		EmployeeID:      "EMP-42",
		BookingDate:     time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       "11:00",
		DurationMinutes: 40,
		Status:          domain.StatusCancelled,
		CreatedAt:       time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC),
	})

	svc := &stubService{resp: &models.MyBookingsResponse{
		Active: []models.BookingResponse{*active},
		Past:   []models.BookingResponse{*past},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/my-bookings", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(),
		&authservice.Identity{UserID: 7, Username: "rahul", EmployeeID: "EMP-42"}))
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Active []map[string]interface{} `json:"active_bookings"`
		Past   []map[string]interface{} `json:"past_bookings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Active, 1)
	require.Len(t, body.Past, 1)

	item := body.Active[0]
	assert.Equal(t, "rahul", item["user_name"])
	assert.Equal(t, "Cabin A", item["cabin_name"])
	assert.Equal(t, "2026-08-31 10:00", item["slot_time"])
	assert.Equal(t, float64(40), item["duration"])
	assert.Equal(t, "Active", item["status"])

	assert.Equal(t, "Cancelled", body.Past[0]["status"])
	assert.Equal(t, "2026-08-20 11:00", body.Past[0]["slot_time"])
}

func TestHandle_NoIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/my-bookings", nil)
	rec := httptest.NewRecorder()
	NewHandler(&stubService{}, nopLogger{}).Handle(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
