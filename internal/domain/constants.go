package domain

// Slot generation limits
const (
	DefaultSlotDurationMinutes = 60
	MinSlotDurationMinutes     = 15
	MaxSlotDurationMinutes     = 240 // 4 hours

	MaxRecurrenceWeeks = 26

	DefaultAdvanceDays = 90
	MinAdvanceDays     = 1
	MaxAdvanceDays     = 365 // 1 year
)

// MaxEmailLength limits the stored email
const MaxEmailLength = 255

// DateFormat YYYY-MM-DD
const DateFormat = "2006-01-02"
