package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CabinService/pkg/types"
)

// TimeRange is a wall-clock interval within one operating day, e.g. 13:00-14:00.
// Restricted ranges are stored per cabin and apply to every calendar day.
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Overlaps returns true if [start, end) actually intersects the range.
// Touching boundaries do not count as overlap.
func (r TimeRange) Overlaps(start, end types.TimeString) bool {
	return r.Start.IsBefore(end) && r.End.IsAfter(start)
}

// String returns the "HH:MM-HH:MM" form used in storage and admin input
func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// ParseTimeRange parses a "HH:MM-HH:MM" range
func ParseTimeRange(s string) (TimeRange, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("invalid time range %q, expected HH:MM-HH:MM", s)
	}

	start, err := types.NewTimeStringFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return TimeRange{}, fmt.Errorf("invalid time range %q: %w", s, err)
	}
	end, err := types.NewTimeStringFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return TimeRange{}, fmt.Errorf("invalid time range %q: %w", s, err)
	}
	if !start.IsBefore(end) {
		return TimeRange{}, fmt.Errorf("invalid time range %q: start must be before end", s)
	}

	return TimeRange{Start: start, End: end}, nil
}

// Cabin represents a bookable cabin and its slot configuration
type Cabin struct {
	ID                  int64
	Name                string
	Description         string
	SlotDurationMinutes int
	StartTime           types.TimeString // operating window start, e.g. 09:00
	EndTime             types.TimeString // operating window end, e.g. 19:00
	RestrictedRanges    []TimeRange
	MaxBookingsPerDay   int // per-user daily booking cap, 0 = unlimited
	IsActive            bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRestrictions returns true if the cabin has configured restricted ranges
func (c *Cabin) HasRestrictions() bool {
	return len(c.RestrictedRanges) > 0
}

// RestrictedAt returns the first restricted range intersecting [start, end), if any
func (c *Cabin) RestrictedAt(start, end types.TimeString) (TimeRange, bool) {
	for _, r := range c.RestrictedRanges {
		if r.Overlaps(start, end) {
			return r, true
		}
	}
	return TimeRange{}, false
}

// HasDailyLimit returns true if the per-user daily booking cap is configured
func (c *Cabin) HasDailyLimit() bool {
	return c.MaxBookingsPerDay > 0
}
