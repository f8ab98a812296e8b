package book_slot

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CabinService/internal/domain"
	"github.com/m04kA/SMC-CabinService/internal/integrations/authservice"
	bookSlot "github.com/m04kA/SMC-CabinService/internal/usecase/book_slot"
	"github.com/m04kA/SMC-CabinService/pkg/types"
)

// BookSlotRequest HTTP request model.
// SelectedSlot - метка слота из ответа available-slots: "2026-08-31 10:00".
type BookSlotRequest struct {
	SelectedSlot string `json:"selected_slot"`
	Duration     int    `json:"duration"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	CabinID         int64  `json:"cabin_id"`
	CabinName       string `json:"cabin_name"`
	SlotTime        string `json:"slot_time"`
	BookingDate     string `json:"booking_date"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case,
// разбирая метку слота на дату и время начала
func (r *BookSlotRequest) ToUseCaseRequest(cabinID int64, identity *authservice.Identity) (*bookSlot.Request, error) {
	slot := strings.TrimSpace(r.SelectedSlot)

	parsed, err := time.Parse(domain.DateTimeFormat, slot)
	if err != nil {
		return nil, fmt.Errorf("slot label must be %q: %w", "YYYY-MM-DD HH:MM", err)
	}

	bookingDate := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)

	startTime, err := types.NewTimeStringFromString(parsed.Format(domain.TimeFormat))
	if err != nil {
		return nil, err
	}

	return &bookSlot.Request{
		CabinID:         cabinID,
		UserID:          identity.UserID,
		UserName:        identity.Username,
		EmployeeID:      identity.EmployeeID,
		BookingDate:     bookingDate,
		StartTime:       startTime,
		DurationMinutes: r.Duration,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *BookingResponse {
	b := resp.Booking
	date := b.BookingDate.Format(domain.DateFormat)
	return &BookingResponse{
		ID:              b.ID,
		CabinID:         b.CabinID,
		CabinName:       b.CabinName,
		SlotTime:        fmt.Sprintf("%s %s", date, b.StartTime),
		BookingDate:     date,
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status.Label(),
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}
