package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CabinService/internal/domain"
	getSlots "github.com/m04kA/SMC-CabinService/internal/usecase/get_available_slots"
)

func TestFromUseCaseResponse(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	resp := FromUseCaseResponse(&getSlots.Response{
		CabinID:             3,
		CabinName:           "Cabin A",
		SlotDurationMinutes: 40,
		Days: []domain.DaySlots{
			{
				Date: date,
				Slots: []domain.Slot{
					{Date: date, StartTime: "09:00", EndTime: "09:40", DurationMinutes: 40, State: domain.SlotPast},
					{Date: date, StartTime: "09:40", EndTime: "10:20", DurationMinutes: 40, State: domain.SlotAvailable},
					{
						Date: date, StartTime: "10:20", EndTime: "11:00", DurationMinutes: 40,
						State:    domain.SlotBooked,
						BookedBy: &domain.BookedBy{UserName: "rahul", EmployeeID: "EMP-42"},
					},
					{Date: date, StartTime: "13:00", EndTime: "13:40", DurationMinutes: 40, State: domain.SlotRestricted},
				},
				RestrictedRanges: []domain.TimeRange{
					{Start: "13:00", End: "14:00"},
				},
			},
		},
	})

	assert.Equal(t, "Cabin A", resp.CabinName)
	assert.Equal(t, 40, resp.SlotDuration)

	// Запрещенный слот не попадает в список, прошедший помечен суффиксом
	assert.Equal(t, []string{
		"2026-08-31 09:00 (40 min) (Past)",
		"2026-08-31 09:40 (40 min)",
		"2026-08-31 10:20 (40 min)",
	}, resp.AvailableSlots["2026-08-31"])

	info, ok := resp.BookedSlots["2026-08-31 10:20"]
	require.True(t, ok)
	assert.Equal(t, "rahul", info.Username)
	assert.Equal(t, "EMP-42", info.EmployeeID)

	// Границы запрещенных диапазонов содержат дату
	assert.Equal(t, [][2]string{
		{"2026-08-31 13:00", "2026-08-31 14:00"},
	}, resp.RestrictedSlots["2026-08-31"])
}
