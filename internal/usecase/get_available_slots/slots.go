package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CabinService/internal/domain"
	"github.com/m04kA/SMC-CabinService/pkg/types"
)

// generateDaySlots генерирует и классифицирует слоты кабины на один календарный день.
//
// Слоты перечисляются от начала рабочего окна с шагом slot_duration, пока
// конец слота не выходит за рабочее окно; неполный хвостовой слот отбрасывается.
//
// Классификация по приоритету:
//  1. Past - слот уже начался (возможно только для сегодняшнего дня)
//  2. Booked - слот пересекается с активным бронированием
//  3. Restricted - слот пересекается с запрещенным диапазоном этого дня
//  4. Available - всё остальное
func generateDaySlots(
	cabin *domain.Cabin,
	date time.Time,
	now time.Time,
	loc *time.Location,
	bookings []*domain.Booking,
) (domain.DaySlots, error) {
	day := domain.DaySlots{
		Date:             date,
		Slots:            make([]domain.Slot, 0),
		RestrictedRanges: cabin.RestrictedRanges,
	}

	duration := cabin.SlotDurationMinutes
	start := cabin.StartTime

	for start.IsBefore(cabin.EndTime) {
		end, err := start.AddMinutes(duration)
		if err != nil {
			return domain.DaySlots{}, err
		}
		// Хвостовой слот, пересекающий конец рабочего окна, не предлагается
		if end.IsAfter(cabin.EndTime) {
			break
		}

		slot := domain.Slot{
			Date:            date,
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: duration,
		}
		slot.State, slot.BookedBy = classifySlot(cabin, start, end, date, now, loc, bookings)

		day.Slots = append(day.Slots, slot)

		start = end
	}

	return day, nil
}

// classifySlot классифицирует один слот в порядке приоритета Past → Booked → Restricted
func classifySlot(
	cabin *domain.Cabin,
	start, end types.TimeString,
	date time.Time,
	now time.Time,
	loc *time.Location,
	bookings []*domain.Booking,
) (domain.SlotState, *domain.BookedBy) {
	if isSlotPast(start, date, now, loc) {
		return domain.SlotPast, nil
	}

	if booking := findOverlappingBooking(start, end, bookings); booking != nil {
		return domain.SlotBooked, &domain.BookedBy{
			UserName:   booking.UserName,
			EmployeeID: booking.EmployeeID,
		}
	}

	if _, restricted := cabin.RestrictedAt(start, end); restricted {
		return domain.SlotRestricted, nil
	}

	return domain.SlotAvailable, nil
}

// isSlotPast возвращает true, если слот уже начался: идущий слот бронировать
// нельзя. Для завтрашнего дня начало слота всегда в будущем, поэтому
// завтрашние слоты никогда не классифицируются как Past.
func isSlotPast(start types.TimeString, date time.Time, now time.Time, loc *time.Location) bool {
	startInstant, err := start.OnDate(date, loc)
	if err != nil {
		return false
	}
	return !startInstant.After(now)
}

// findOverlappingBooking возвращает активное бронирование, реально пересекающее
// интервал [start, end), либо nil.
//
// Пересечение считается по строгим неравенствам: бронирование, заканчивающееся
// ровно в начале слота (или начинающееся ровно в его конце), не пересекается.
// При одинаковых длительностях пересечение эквивалентно точному совпадению
// интервалов; для исторических бронирований с другой длительностью слот
// тоже считается занятым.
func findOverlappingBooking(start, end types.TimeString, bookings []*domain.Booking) *domain.Booking {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		bookingEnd, err := booking.SlotEnd()
		if err != nil {
			continue
		}

		if booking.StartTime.IsBefore(end) && bookingEnd.IsAfter(start) {
			return booking
		}
	}
	return nil
}

// dayStart обнуляет время, оставляя календарную дату в указанной локации
func dayStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
