package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-CabinService/internal/domain"
	getSlots "github.com/m04kA/SMC-CabinService/internal/usecase/get_available_slots"
)

// BookedSlotInfo данные владельца занятого слота
type BookedSlotInfo struct {
	Username   string `json:"username"`
	EmployeeID string `json:"employee_id"`
}

// AvailableSlotsResponse HTTP response model.
//
// Слоты передаются человекочитаемыми метками вида
// "2026-08-31 10:00 (40 min)", прошедшие - с суффиксом " (Past)".
// Занятые слоты дополнительно описаны в BookedSlots по ключу
// "YYYY-MM-DD HH:MM". Запрещенные диапазоны перечислены отдельно
// по дням и в списки слотов не попадают.
type AvailableSlotsResponse struct {
	CabinName       string                    `json:"cabin_name"`
	AvailableSlots  map[string][]string       `json:"available_slots"`
	BookedSlots     map[string]BookedSlotInfo `json:"booked_slots_info"`
	RestrictedSlots map[string][][2]string    `json:"restricted_slots"`
	SlotDuration    int                       `json:"slot_duration"`
}

// FromUseCaseResponse конвертирует структурированный ответ use case
// в формат меток внешнего API
func FromUseCaseResponse(resp *getSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		CabinName:       resp.CabinName,
		AvailableSlots:  make(map[string][]string, len(resp.Days)),
		BookedSlots:     make(map[string]BookedSlotInfo),
		RestrictedSlots: make(map[string][][2]string, len(resp.Days)),
		SlotDuration:    resp.SlotDurationMinutes,
	}

	for _, day := range resp.Days {
		date := day.Date.Format(domain.DateFormat)

		labels := make([]string, 0, len(day.Slots))
		for _, slot := range day.Slots {
			if slot.State == domain.SlotRestricted {
				continue
			}

			labels = append(labels, slotLabel(date, slot))

			if slot.State == domain.SlotBooked && slot.BookedBy != nil {
				key := fmt.Sprintf("%s %s", date, slot.StartTime)
				out.BookedSlots[key] = BookedSlotInfo{
					Username:   slot.BookedBy.UserName,
					EmployeeID: slot.BookedBy.EmployeeID,
				}
			}
		}
		out.AvailableSlots[date] = labels

		// Границы запрещенных диапазонов отдаются с датой,
		// как и метки слотов: "2026-08-31 13:00"
		ranges := make([][2]string, 0, len(day.RestrictedRanges))
		for _, r := range day.RestrictedRanges {
			ranges = append(ranges, [2]string{
				fmt.Sprintf("%s %s", date, r.Start),
				fmt.Sprintf("%s %s", date, r.End),
			})
		}
		out.RestrictedSlots[date] = ranges
	}

	return out
}

// slotLabel форматирует метку слота: "2026-08-31 10:00 (40 min)",
// для прошедших слотов добавляется суффикс " (Past)"
func slotLabel(date string, slot domain.Slot) string {
	label := fmt.Sprintf("%s %s (%d min)", date, slot.StartTime, slot.DurationMinutes)
	if slot.State == domain.SlotPast {
		label += " (Past)"
	}
	return label
}
