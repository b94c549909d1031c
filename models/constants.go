package models

// Appointment statuses
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCanceled  = "canceled"
)

// Schedule status types
const (
	ScheduleStatusAppointment         = "appointment"
	ScheduleStatusPendingAvailability = "pending_availability"
)

// Layout of the date and time strings in a TimeSlot
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// TimestampLayout is the fixed-width UTC layout used for createdAt fields, so
// that they sort lexicographically in sort keys.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
