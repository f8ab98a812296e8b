package create_cabin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CabinService/internal/service/cabins"
	"github.com/m04kA/SMC-CabinService/internal/service/cabins/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	resp    *models.CabinResponse
	err     error
	lastReq *models.CreateCabinRequest
}

func (s *stubService) Create(_ context.Context, req *models.CreateCabinRequest) (*models.CabinResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func doRequest(t *testing.T, svc *stubService, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cabins", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &stubService{
		resp: &models.CabinResponse{
			ID:                  1,
			Name:                "Cabin A",
			SlotDurationMinutes: 40,
			StartTime:           "09:00",
			EndTime:             "19:00",
			RestrictedTimes:     []string{"13:00-14:00"},
			MaxBookingsPerDay:   5,
			IsActive:            true,
		},
	}

	rec := doRequest(t, svc, `{
		"name": "Cabin A",
		"slot_duration": 40,
		"restricted_times": ["13:00-14:00"],
		"start_time": "09:00",
		"end_time": "19:00",
		"max_bookings_per_day": 5
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	// Поля запроса разобраны из тела как есть
	require.NotNil(t, svc.lastReq)
	assert.Equal(t, "Cabin A", svc.lastReq.Name)
	require.NotNil(t, svc.lastReq.SlotDurationMinutes)
	assert.Equal(t, 40, *svc.lastReq.SlotDurationMinutes)
	assert.Equal(t, []string{"13:00-14:00"}, svc.lastReq.RestrictedTimes)
	require.NotNil(t, svc.lastReq.MaxBookingsPerDay)
	assert.Equal(t, 5, *svc.lastReq.MaxBookingsPerDay)

	// Ответ использует те же имена полей, что и запрос
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "slot_duration")
	assert.Contains(t, body, "restricted_times")
	assert.Contains(t, body, "max_bookings_per_day")
	assert.Equal(t, float64(40), body["slot_duration"])
}

func TestHandle_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"битый JSON", `{"name":`},
		{"неизвестное поле", `{"name": "A", "slotDuration": 40}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubService{}, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_BodyTooLarge(t *testing.T) {
	body := `{"name": "` + strings.Repeat("a", 1<<20) + `"}`
	rec := doRequest(t, &stubService{}, body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandle_ValidationError(t *testing.T) {
	svc := &stubService{err: cabins.ErrInvalidInput}
	rec := doRequest(t, svc, `{"name": "Cabin A"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
