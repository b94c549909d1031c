package models

import (
	"errors"
	"fmt"
	"time"
)

// TimeSlot is a same-day window. Date is YYYY-MM-DD, times are HH:mm.
type TimeSlot struct {
	Date      string `dynamodbav:"date" json:"date"`
	StartTime string `dynamodbav:"startTime" json:"startTime"`
	EndTime   string `dynamodbav:"endTime" json:"endTime"`
}

// Minutes returns start and end as minutes since midnight.
func (s TimeSlot) Minutes() (start, end int, err error) {
	start, err = ParseClock(s.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err = ParseClock(s.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Validate checks the date and time formats and that start is before end.
func (s TimeSlot) Validate() error {
	if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return fmt.Errorf("invalid date %q", s.Date)
	}
	start, end, err := s.Minutes()
	if err != nil {
		return err
	}
	if start >= end {
		return errors.New("startTime must be before endTime")
	}
	return nil
}

// Duration returns the length of the slot in minutes, 0 if it is malformed.
func (s TimeSlot) Duration() int {
	start, end, err := s.Minutes()
	if err != nil || end < start {
		return 0
	}
	return end - start
}

// Contains reports whether other lies within s.
func (s TimeSlot) Contains(other TimeSlot) bool {
	if s.Date != other.Date {
		return false
	}
	start, end, err := s.Minutes()
	if err != nil {
		return false
	}
	oStart, oEnd, err := other.Minutes()
	if err != nil {
		return false
	}
	return start <= oStart && oEnd <= end
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s %s-%s", s.Date, s.StartTime, s.EndTime)
}

// ParseClock converts an HH:mm string to minutes since midnight.
func ParseClock(clock string) (int, error) {
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", clock)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes since midnight to HH:mm.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Availability is one party's free windows for meeting a specific counterpart.
// There is at most one record per ordered (submitter, counterpart) pair.
type Availability struct {
	SubmitterID   string     `dynamodbav:"submitterId" json:"submitterId"`     // Partition Key
	CounterpartID string     `dynamodbav:"counterpartId" json:"counterpartId"` // Sort Key
	Slots         []TimeSlot `dynamodbav:"slots" json:"slots"`
	UpdatedAt     string     `dynamodbav:"updatedAt" json:"updatedAt"`
}

// Appointment is a confirmed meeting between an unordered pair of parties.
type Appointment struct {
	AppointmentID string `dynamodbav:"appointmentId" json:"appointmentId"`
	PartyA        string `dynamodbav:"partyA" json:"partyA"`
	PartyB        string `dynamodbav:"partyB" json:"partyB"`
	Date          string `dynamodbav:"date" json:"date"`
	StartTime     string `dynamodbav:"startTime" json:"startTime"`
	EndTime       string `dynamodbav:"endTime" json:"endTime"`
	Status        string `dynamodbav:"status" json:"status"`
	CreatedAt     string `dynamodbav:"createdAt" json:"createdAt"`
}

// Slot returns the window of the appointment.
func (a *Appointment) Slot() TimeSlot {
	return TimeSlot{Date: a.Date, StartTime: a.StartTime, EndTime: a.EndTime}
}

// Involves reports whether partyID is one of the two participants.
func (a *Appointment) Involves(partyID string) bool {
	return a.PartyA == partyID || a.PartyB == partyID
}

// Counterpart returns the participant that is not partyID.
func (a *Appointment) Counterpart(partyID string) string {
	if a.PartyA == partyID {
		return a.PartyB
	}
	return a.PartyA
}

// AppointmentView is an appointment with the counterpart's display fields.
type AppointmentView struct {
	Appointment
	With PartyInfo `json:"with"`
}

// ScheduleStatus describes where a pair stands in the scheduling flow.
// The partner's slots are never included.
type ScheduleStatus struct {
	Type                string       `json:"type"` // appointment or pending_availability
	Appointment         *Appointment `json:"appointment,omitempty"`
	MyAvailability      []TimeSlot   `json:"myAvailability"`
	PartnerHasSubmitted bool         `json:"partnerHasSubmitted"`
}

// DynamoDB table names for scheduling
const (
	AvailabilityTable = "Availability"
	AppointmentsTable = "Appointments"
)
