package services

import (
	"context"
	"fmt"

	"rendezvous_server/models"
)

const partnerConflictWarning = "Your match already has another date during this time."

// ConflictDetector finds scheduled appointments that collide with a candidate window.
type ConflictDetector struct {
	Store    AppointmentStore
	Profiles *ProfileService
}

// FindConflicts returns advisory warnings for candidate. A collision of
// partyA's own appointments names the other participant; a collision of
// partyB's appointments is reported without saying who it is with.
func (d *ConflictDetector) FindConflicts(ctx context.Context, partyA, partyB string, candidate models.TimeSlot) ([]string, error) {
	candStart, candEnd, err := candidate.Minutes()
	if err != nil {
		return nil, newError(KindInvalidInput, "invalid candidate window: %v", err)
	}

	var existing []models.Appointment
	seen := make(map[string]bool)
	for _, party := range []string{partyA, partyB} {
		appointments, err := d.Store.ListAppointmentsOnDate(ctx, party, candidate.Date)
		if err != nil {
			return nil, internalError(err, "failed to load appointments of %s on %s", party, candidate.Date)
		}
		for _, appt := range appointments {
			if appt.Status != models.AppointmentStatusScheduled || seen[appt.AppointmentID] {
				continue
			}
			seen[appt.AppointmentID] = true
			existing = append(existing, appt)
		}
	}

	var warnings []string
	for i := range existing {
		appt := &existing[i]
		start, end, err := appt.Slot().Minutes()
		if err != nil || max(start, candStart) >= min(end, candEnd) {
			continue
		}
		if appt.Involves(partyA) {
			other := appt.Counterpart(partyA)
			name := other
			if info, err := d.Profiles.DisplayInfo(ctx, other); err == nil && info.Name != "" {
				name = info.Name
			}
			warnings = append(warnings, fmt.Sprintf("You already have a date with %s from %s to %s on %s.",
				name, appt.StartTime, appt.EndTime, appt.Date))
		}
		if appt.Involves(partyB) {
			warnings = append(warnings, partnerConflictWarning)
		}
	}
	return warnings, nil
}
