package services

import (
	"context"
	"errors"
	"sort"

	"rendezvous_server/metrics"
	"rendezvous_server/models"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const maxSlotsPerSubmission = 50

// ScheduleStore is the storage needed by the scheduler.
type ScheduleStore interface {
	AvailabilityStore
	AppointmentStore
}

// ScheduleService turns two parties' availability into a confirmed appointment.
//
// Per ordered pair the flow is: no submission, awaiting the counterpart, a
// common window pending confirmation, and finally confirmed. Submissions only
// propose a window; nothing is booked until ConfirmAppointment.
type ScheduleService struct {
	Store             ScheduleStore
	Profiles          *ProfileService
	Conflicts         *ConflictDetector
	Notifier          *NotificationService
	Metrics           metrics.Metrics
	MinOverlapMinutes int
}

type SubmitResult struct {
	Matched          bool             `json:"isMatched"`
	Message          string           `json:"message"`
	CommonSlot       *models.TimeSlot `json:"commonSlot,omitempty"`
	ConflictWarnings []string         `json:"conflictWarnings,omitempty"`
}

const (
	msgAwaitingCounterpart = "Availability saved. Waiting for your match to choose their times."
	msgNoCommonSlot        = "No common time found yet. Please choose again."
	msgCommonSlotFound     = "Found a time that works for both of you!"
)

func (s *ScheduleService) minOverlap() int {
	if s.MinOverlapMinutes > 0 {
		return s.MinOverlapMinutes
	}
	return DefaultMinOverlapMinutes
}

// requireMatch gates scheduling on the match relation.
func (s *ScheduleService) requireMatch(ctx context.Context, selfID, counterpartID string) error {
	self, err := s.Profiles.Party(ctx, selfID)
	if err != nil {
		return err
	}
	if _, err := s.Profiles.CheckActive(ctx, counterpartID); err != nil {
		return err
	}
	if !self.IsMatchedWith(counterpartID) {
		return newError(KindInvalidState, "you can only schedule a date with a match")
	}
	return nil
}

func validateSlots(slots []models.TimeSlot) error {
	if len(slots) == 0 {
		return newError(KindInvalidInput, "at least one slot is required")
	}
	if len(slots) > maxSlotsPerSubmission {
		return newError(KindInvalidInput, "at most %d slots can be submitted", maxSlotsPerSubmission)
	}
	for i, slot := range slots {
		if err := slot.Validate(); err != nil {
			return newError(KindInvalidInput, "slot %d: %v", i, err)
		}
	}
	return nil
}

// SubmitAvailability replaces submitter's slots for counterpart and, if the
// counterpart has already submitted, proposes the first common window together
// with any conflict warnings.
func (s *ScheduleService) SubmitAvailability(ctx context.Context, submitterID, counterpartID string, slots []models.TimeSlot) (*SubmitResult, error) {
	if err := validatePair(submitterID, counterpartID); err != nil {
		return nil, err
	}
	if err := validateSlots(slots); err != nil {
		return nil, err
	}
	if err := s.requireMatch(ctx, submitterID, counterpartID); err != nil {
		return nil, err
	}

	err := s.Store.PutAvailability(ctx, &models.Availability{
		SubmitterID:   submitterID,
		CounterpartID: counterpartID,
		Slots:         slots,
		UpdatedAt:     timestamp(),
	})
	if err != nil {
		return nil, internalError(err, "failed to save availability of %s", submitterID)
	}
	s.Metrics.IncAvailabilitySubmitted()

	theirs, err := s.Store.GetAvailability(ctx, counterpartID, submitterID)
	if err != nil {
		return nil, internalError(err, "failed to load availability of %s", counterpartID)
	}
	if theirs == nil || len(theirs.Slots) == 0 {
		return &SubmitResult{Matched: false, Message: msgAwaitingCounterpart}, nil
	}

	common, ok := Intersect(slots, theirs.Slots, s.minOverlap())
	if !ok {
		return &SubmitResult{Matched: false, Message: msgNoCommonSlot}, nil
	}

	warnings, err := s.Conflicts.FindConflicts(ctx, submitterID, counterpartID, *common)
	if err != nil {
		return nil, err
	}
	log.Info("Common slot found", "submitter", submitterID, "counterpart", counterpartID, "slot", common.String(), "warnings", len(warnings))
	return &SubmitResult{
		Matched:          true,
		Message:          msgCommonSlotFound,
		CommonSlot:       common,
		ConflictWarnings: warnings,
	}, nil
}

func coveredBy(slots []models.TimeSlot, window models.TimeSlot) bool {
	for _, slot := range slots {
		if slot.Contains(window) {
			return true
		}
	}
	return false
}

// ConfirmAppointment books window between self and counterpart. Both parties'
// submissions must still exist and cover the window; they are deleted in the
// same write that creates the appointment, so the same pair of submissions can
// only be confirmed once. Conflicts are advisory and are not re-checked.
func (s *ScheduleService) ConfirmAppointment(ctx context.Context, selfID, counterpartID string, window models.TimeSlot) (*models.Appointment, error) {
	if err := validatePair(selfID, counterpartID); err != nil {
		return nil, err
	}
	if err := window.Validate(); err != nil {
		return nil, newError(KindInvalidInput, "invalid window: %v", err)
	}
	if window.Duration() < s.minOverlap() {
		return nil, newError(KindInvalidInput, "window must be at least %d minutes", s.minOverlap())
	}
	if err := s.requireMatch(ctx, selfID, counterpartID); err != nil {
		return nil, err
	}

	mine, err := s.Store.GetAvailability(ctx, selfID, counterpartID)
	if err != nil {
		return nil, internalError(err, "failed to load availability of %s", selfID)
	}
	theirs, err := s.Store.GetAvailability(ctx, counterpartID, selfID)
	if err != nil {
		return nil, internalError(err, "failed to load availability of %s", counterpartID)
	}
	if mine == nil || theirs == nil {
		return nil, newError(KindInvalidState, "both parties must submit availability before confirming")
	}
	if !coveredBy(mine.Slots, window) || !coveredBy(theirs.Slots, window) {
		return nil, newError(KindInvalidState, "window %s is not within both parties' availability", window.String())
	}

	appt := &models.Appointment{
		AppointmentID: uuid.NewString(),
		PartyA:        selfID,
		PartyB:        counterpartID,
		Date:          window.Date,
		StartTime:     window.StartTime,
		EndTime:       window.EndTime,
		Status:        models.AppointmentStatusScheduled,
		CreatedAt:     timestamp(),
	}
	err = s.Store.ConfirmAppointment(ctx, appt)
	if errors.Is(err, ErrStaleState) {
		return nil, newError(KindInvalidState, "these submissions were already confirmed or replaced")
	}
	if err != nil {
		return nil, internalError(err, "failed to confirm appointment %s <-> %s", selfID, counterpartID)
	}
	s.Metrics.IncAppointmentsConfirmed()
	log.Info("Appointment confirmed", "appointmentId", appt.AppointmentID, "partyA", selfID, "partyB", counterpartID, "slot", window.String())

	if _, err := s.Notifier.Notify(ctx, selfID, counterpartID, models.NotificationKindDateScheduled); err != nil {
		return nil, err
	}
	return appt, nil
}

func scheduledSorted(appointments []models.Appointment) []models.Appointment {
	scheduled := make([]models.Appointment, 0, len(appointments))
	for _, appt := range appointments {
		if appt.Status == models.AppointmentStatusScheduled {
			scheduled = append(scheduled, appt)
		}
	}
	sort.SliceStable(scheduled, func(i, j int) bool {
		if scheduled[i].Date != scheduled[j].Date {
			return scheduled[i].Date < scheduled[j].Date
		}
		return scheduled[i].StartTime < scheduled[j].StartTime
	})
	return scheduled
}

// ListAppointments returns self's scheduled appointments ordered by date and
// start time, with the counterpart's display fields.
func (s *ScheduleService) ListAppointments(ctx context.Context, selfID string) ([]models.AppointmentView, error) {
	appointments, err := s.Store.ListAppointments(ctx, selfID)
	if err != nil {
		return nil, internalError(err, "failed to list appointments of %s", selfID)
	}
	scheduled := scheduledSorted(appointments)

	counterparts := make([]string, 0, len(scheduled))
	for i := range scheduled {
		counterparts = append(counterparts, scheduled[i].Counterpart(selfID))
	}
	infos, err := s.Profiles.DisplayInfos(ctx, counterparts)
	if err != nil {
		return nil, err
	}

	views := make([]models.AppointmentView, 0, len(scheduled))
	for i := range scheduled {
		views = append(views, models.AppointmentView{
			Appointment: scheduled[i],
			With:        infos[scheduled[i].Counterpart(selfID)],
		})
	}
	return views, nil
}

// GetStatus reports the scheduled appointment between viewer and counterpart,
// or else the viewer's own pending slots and whether the counterpart has
// submitted. The counterpart's slots are never returned.
func (s *ScheduleService) GetStatus(ctx context.Context, viewerID, counterpartID string) (*models.ScheduleStatus, error) {
	if err := validatePair(viewerID, counterpartID); err != nil {
		return nil, err
	}

	appointments, err := s.Store.ListAppointments(ctx, viewerID)
	if err != nil {
		return nil, internalError(err, "failed to list appointments of %s", viewerID)
	}
	for _, appt := range scheduledSorted(appointments) {
		if appt.Involves(counterpartID) {
			appt := appt
			return &models.ScheduleStatus{
				Type:           models.ScheduleStatusAppointment,
				Appointment:    &appt,
				MyAvailability: []models.TimeSlot{},
			}, nil
		}
	}

	mine, err := s.Store.GetAvailability(ctx, viewerID, counterpartID)
	if err != nil {
		return nil, internalError(err, "failed to load availability of %s", viewerID)
	}
	theirs, err := s.Store.GetAvailability(ctx, counterpartID, viewerID)
	if err != nil {
		return nil, internalError(err, "failed to load availability of %s", counterpartID)
	}

	status := &models.ScheduleStatus{
		Type:                models.ScheduleStatusPendingAvailability,
		MyAvailability:      []models.TimeSlot{},
		PartnerHasSubmitted: theirs != nil,
	}
	if mine != nil {
		status.MyAvailability = mine.Slots
	}
	return status, nil
}
