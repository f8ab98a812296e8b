package list_cabins

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CabinService/internal/service/cabins/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	cabins []models.CabinResponse
	err    error
}

func (s *stubService) List(_ context.Context) ([]models.CabinResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cabins, nil
}

func TestHandle_ReturnsFlatArray(t *testing.T) {
	svc := &stubService{
		cabins: []models.CabinResponse{
			{
				ID:                  1,
				Name:                "Cabin A",
				SlotDurationMinutes: 40,
				StartTime:           "09:00",
				EndTime:             "19:00",
				RestrictedTimes:     []string{"13:00-14:00"},
				MaxBookingsPerDay:   5,
				IsActive:            true,
			},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cabins", nil)
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// Список отдается плоским массивом, без обертки
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Cabin A", body[0]["name"])
	assert.Equal(t, float64(40), body[0]["slot_duration"])
	assert.Equal(t, []interface{}{"13:00-14:00"}, body[0]["restricted_times"])
}

func TestHandle_EmptyList(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cabins", nil)
	rec := httptest.NewRecorder()
	NewHandler(&stubService{}, nopLogger{}).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
