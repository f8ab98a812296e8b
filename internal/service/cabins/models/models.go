package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CabinService/internal/domain"
	"github.com/m04kA/SMC-CabinService/pkg/types"
)

// Request модели

// CreateCabinRequest запрос на создание кабины.
// Запрещенные интервалы передаются строками вида "HH:MM-HH:MM".
type CreateCabinRequest struct {
	Name                string   `json:"name"`
	Description         string   `json:"description,omitempty"`
	SlotDurationMinutes *int     `json:"slot_duration,omitempty"`
	StartTime           *string  `json:"start_time,omitempty"`
	EndTime             *string  `json:"end_time,omitempty"`
	RestrictedTimes     []string `json:"restricted_times,omitempty"`
	MaxBookingsPerDay   *int     `json:"max_bookings_per_day,omitempty"`
}

// UpdateCabinRequest запрос на обновление кабины. Все поля опциональны,
// не указанные поля сохраняют текущее значение.
type UpdateCabinRequest struct {
	Name                *string   `json:"name,omitempty"`
	Description         *string   `json:"description,omitempty"`
	SlotDurationMinutes *int      `json:"slot_duration,omitempty"`
	StartTime           *string   `json:"start_time,omitempty"`
	EndTime             *string   `json:"end_time,omitempty"`
	RestrictedTimes     *[]string `json:"restricted_times,omitempty"`
	MaxBookingsPerDay   *int      `json:"max_bookings_per_day,omitempty"`
	IsActive            *bool     `json:"is_active,omitempty"`
}

// Response модели

// CabinResponse ответ с данными кабины
type CabinResponse struct {
	ID                  int64    `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description,omitempty"`
	SlotDurationMinutes int      `json:"slot_duration"`
	StartTime           string   `json:"start_time"`
	EndTime             string   `json:"end_time"`
	RestrictedTimes     []string `json:"restricted_times"`
	MaxBookingsPerDay   int      `json:"max_bookings_per_day"`
	IsActive            bool     `json:"is_active"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

// ToDomainCabin конвертирует запрос на создание в domain модель,
// подставляя значения по умолчанию для незаполненных полей
func (r *CreateCabinRequest) ToDomainCabin() (*domain.Cabin, error) {
	cabin := &domain.Cabin{
		Name:                r.Name,
		Description:         r.Description,
		SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
		StartTime:           types.TimeString(domain.DefaultStartTime),
		EndTime:             types.TimeString(domain.DefaultEndTime),
		MaxBookingsPerDay:   domain.DefaultMaxBookingsPerDay,
		IsActive:            true,
	}

	if r.SlotDurationMinutes != nil {
		cabin.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.StartTime != nil {
		cabin.StartTime = types.TimeString(*r.StartTime)
	}
	if r.EndTime != nil {
		cabin.EndTime = types.TimeString(*r.EndTime)
	}
	if r.MaxBookingsPerDay != nil {
		cabin.MaxBookingsPerDay = *r.MaxBookingsPerDay
	}

	ranges, err := toDomainRanges(r.RestrictedTimes)
	if err != nil {
		return nil, err
	}
	cabin.RestrictedRanges = ranges

	return cabin, nil
}

// ApplyTo накладывает частичное обновление на существующую domain модель
func (r *UpdateCabinRequest) ApplyTo(cabin *domain.Cabin) error {
	if r.Name != nil {
		cabin.Name = *r.Name
	}
	if r.Description != nil {
		cabin.Description = *r.Description
	}
	if r.SlotDurationMinutes != nil {
		cabin.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.StartTime != nil {
		cabin.StartTime = types.TimeString(*r.StartTime)
	}
	if r.EndTime != nil {
		cabin.EndTime = types.TimeString(*r.EndTime)
	}
	if r.RestrictedTimes != nil {
		ranges, err := toDomainRanges(*r.RestrictedTimes)
		if err != nil {
			return err
		}
		cabin.RestrictedRanges = ranges
	}
	if r.MaxBookingsPerDay != nil {
		cabin.MaxBookingsPerDay = *r.MaxBookingsPerDay
	}
	if r.IsActive != nil {
		cabin.IsActive = *r.IsActive
	}
	return nil
}

// FromDomainCabin конвертирует domain.Cabin в response модель
func FromDomainCabin(c *domain.Cabin) *CabinResponse {
	ranges := make([]string, 0, len(c.RestrictedRanges))
	for _, r := range c.RestrictedRanges {
		ranges = append(ranges, r.String())
	}

	return &CabinResponse{
		ID:                  c.ID,
		Name:                c.Name,
		Description:         c.Description,
		SlotDurationMinutes: c.SlotDurationMinutes,
		StartTime:           c.StartTime.String(),
		EndTime:             c.EndTime.String(),
		RestrictedTimes:     ranges,
		MaxBookingsPerDay:   c.MaxBookingsPerDay,
		IsActive:            c.IsActive,
		CreatedAt:           c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           c.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainCabinList конвертирует список domain.Cabin в response модель.
// Список отдается плоским массивом, без обертки.
func FromDomainCabinList(cabins []*domain.Cabin) []CabinResponse {
	result := make([]CabinResponse, 0, len(cabins))
	for _, c := range cabins {
		result = append(result, *FromDomainCabin(c))
	}
	return result
}

func toDomainRanges(raw []string) ([]domain.TimeRange, error) {
	ranges := make([]domain.TimeRange, 0, len(raw))
	for _, s := range raw {
		r, err := domain.ParseTimeRange(s)
		if err != nil {
			return nil, fmt.Errorf("restricted range %q: %w", s, err)
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}
