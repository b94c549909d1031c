package controllers

import (
	"net/http"

	"rendezvous_server/models"
	"rendezvous_server/services"

	"github.com/gorilla/mux"
)

type ScheduleController struct {
	ScheduleService *services.ScheduleService
}

func NewScheduleController(scheduleService *services.ScheduleService) *ScheduleController {
	return &ScheduleController{ScheduleService: scheduleService}
}

type availabilityRequest struct {
	CounterpartID string            `json:"counterpartId"`
	Slots         []models.TimeSlot `json:"slots"`
}

type confirmRequest struct {
	CounterpartID string          `json:"counterpartId"`
	Slot          models.TimeSlot `json:"slot"`
}

// SubmitAvailability stores the caller's free windows for a match
func (sc *ScheduleController) SubmitAvailability(w http.ResponseWriter, r *http.Request) {
	var payload availabilityRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	result, err := sc.ScheduleService.SubmitAvailability(r.Context(), PartyID(r), payload.CounterpartID, payload.Slots)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, result.Message, result)
}

// ConfirmAppointment books the proposed window
func (sc *ScheduleController) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	var payload confirmRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	appointment, err := sc.ScheduleService.ConfirmAppointment(r.Context(), PartyID(r), payload.CounterpartID, payload.Slot)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeResult(w, http.StatusCreated, "Date confirmed", appointment)
}

// GetAppointments lists the caller's scheduled appointments
func (sc *ScheduleController) GetAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := sc.ScheduleService.ListAppointments(r.Context(), PartyID(r))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, "Appointments fetched successfully", appointments)
}

// GetStatus reports where the caller and a match stand in scheduling
func (sc *ScheduleController) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := sc.ScheduleService.GetStatus(r.Context(), PartyID(r), mux.Vars(r)["counterpartId"])
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, "Schedule status fetched successfully", status)
}
