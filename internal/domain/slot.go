package domain

import (
	"time"

	"github.com/m04kA/SMC-CabinService/pkg/types"
)

// SlotState classifies a generated slot
type SlotState string

const (
	SlotAvailable  SlotState = "available"
	SlotPast       SlotState = "past"
	SlotBooked     SlotState = "booked"
	SlotRestricted SlotState = "restricted"
)

// BookedBy identifies the owner of a booked slot for display
type BookedBy struct {
	UserName   string
	EmployeeID string
}

// Slot is a derived, never persisted projection over cabin configuration
// and the active bookings of the query horizon
type Slot struct {
	Date            time.Time // calendar day the slot belongs to
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	State           SlotState
	BookedBy        *BookedBy // set only for SlotBooked
}

// DaySlots groups the classified slots of one calendar day together with
// the restricted ranges that explain the gaps
type DaySlots struct {
	Date             time.Time
	Slots            []Slot
	RestrictedRanges []TimeRange
}
