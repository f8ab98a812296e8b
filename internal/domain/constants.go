package domain

// Default cabin configuration values
const (
	DefaultSlotDurationMinutes = 40
	DefaultStartTime           = "09:00"
	DefaultEndTime             = "19:00"
	DefaultMaxBookingsPerDay   = 5
)

// Business validation constants
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 360 // 6 hours
	MaxBookingsPerDayLimit = 50
	MaxNameLength          = 100
	MaxDescriptionLength   = 1000
)

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04" // YYYY-MM-DD HH:MM (slot identifiers on the wire)
)

// HorizonDays глубина генерации слотов: сегодня и завтра
const HorizonDays = 2
