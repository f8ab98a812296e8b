package book_slot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CabinService/internal/api/middleware"
	"github.com/m04kA/SMC-CabinService/internal/domain"
	"github.com/m04kA/SMC-CabinService/internal/integrations/authservice"
	bookSlot "github.com/m04kA/SMC-CabinService/internal/usecase/book_slot"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	resp    *bookSlot.Response
	err     error
	lastReq *bookSlot.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *bookSlot.Request) (*bookSlot.Response, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func testIdentity() *authservice.Identity {
	return &authservice.Identity{
		UserID:     7,
		Username:   "rahul",
		EmployeeID: "EMP-42",
	}
}

func doRequest(t *testing.T, uc *stubUseCase, cabinID string, identity *authservice.Identity, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/bookings/"+cabinID+"/book-selected-slot", bytes.NewBufferString(body))
	req = mux.SetURLVars(req, map[string]string{"cabinId": cabinID})
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}

	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func errorDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestHandle_Success(t *testing.T) {
	createdAt := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	uc := &stubUseCase{
		resp: &bookSlot.Response{
			Booking: &domain.Booking{
				ID:              12,
				CabinID:         3,
				CabinName:       "Cabin A",
				UserID:          7,
				BookingDate:     time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
				StartTime:       "10:00",
				DurationMinutes: 40,
				Status:          domain.StatusActive,
				CreatedAt:       createdAt,
			},
		},
	}

	rec := doRequest(t, uc, "3", testIdentity(),
		`{"selected_slot": "2026-08-31 10:00", "duration": 40}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp.ID)
	assert.Equal(t, "Cabin A", resp.CabinName)
	assert.Equal(t, "2026-08-31 10:00", resp.SlotTime)
	assert.Equal(t, "2026-08-31", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "Active", resp.Status)

	// Метка слота разобрана на дату и время начала
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(3), uc.lastReq.CabinID)
	assert.Equal(t, int64(7), uc.lastReq.UserID)
	assert.Equal(t, "rahul", uc.lastReq.UserName)
	assert.Equal(t, "2026-08-31", uc.lastReq.BookingDate.Format(domain.DateFormat))
	assert.Equal(t, "10:00", uc.lastReq.StartTime.String())
	assert.Equal(t, 40, uc.lastReq.DurationMinutes)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		cabinID string
		body    string
		detail  string
	}{
		{
			name:    "нечисловой cabin id",
			cabinID: "abc",
			body:    `{"selected_slot": "2026-08-31 10:00", "duration": 40}`,
			detail:  msgInvalidCabinID,
		},
		{
			name:    "битый JSON",
			cabinID: "3",
			body:    `{"selected_slot":`,
			detail:  msgInvalidRequestBody,
		},
		{
			name:    "метка слота без даты",
			cabinID: "3",
			body:    `{"selected_slot": "10:00", "duration": 40}`,
			detail:  msgInvalidSlotLabel,
		},
		{
			name:    "метка слота с кривым временем",
			cabinID: "3",
			body:    `{"selected_slot": "2026-08-31 25:00", "duration": 40}`,
			detail:  msgInvalidSlotLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubUseCase{}, tt.cabinID, testIdentity(), tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.detail, errorDetail(t, rec))
		})
	}
}

func TestHandle_NoIdentity(t *testing.T) {
	rec := doRequest(t, &stubUseCase{}, "3", nil,
		`{"selected_slot": "2026-08-31 10:00", "duration": 40}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		useCaseErr error
		wantStatus int
		wantDetail string
	}{
		{"кабина не найдена", bookSlot.ErrCabinNotFound, http.StatusNotFound, msgCabinNotFound},
		{"неверная длительность", bookSlot.ErrInvalidDuration, http.StatusBadRequest, msgInvalidDuration},
		{"слот вне сетки", bookSlot.ErrInvalidSlot, http.StatusBadRequest, msgInvalidSlot},
		{"слот в прошлом", bookSlot.ErrSlotInPast, http.StatusBadRequest, msgSlotInPast},
		{"запрещенный слот", bookSlot.ErrSlotRestricted, http.StatusConflict, msgSlotRestricted},
		{"слот уже занят", bookSlot.ErrSlotAlreadyBooked, http.StatusConflict, msgSlotAlreadyBooked},
		{"дневной лимит", bookSlot.ErrDailyLimitReached, http.StatusConflict, msgDailyLimitReached},
		{"внутренняя ошибка", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubUseCase{err: tt.useCaseErr}, "3", testIdentity(),
				`{"selected_slot": "2026-08-31 10:00", "duration": 40}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDetail, errorDetail(t, rec))
		})
	}
}
