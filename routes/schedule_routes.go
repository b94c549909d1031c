package routes

import (
	"rendezvous_server/controllers"
	"rendezvous_server/services"

	"github.com/gorilla/mux"
)

// RegisterScheduleRoutes sets up routes for date scheduling under /api/schedule
func RegisterScheduleRoutes(api *mux.Router, scheduleService *services.ScheduleService) {
	controller := controllers.NewScheduleController(scheduleService)

	scheduleRouter := api.PathPrefix("/schedule").Subrouter()
	scheduleRouter.HandleFunc("/availability", controller.SubmitAvailability).Methods("POST")
	scheduleRouter.HandleFunc("/confirm", controller.ConfirmAppointment).Methods("POST")
	scheduleRouter.HandleFunc("/appointments", controller.GetAppointments).Methods("GET")
	scheduleRouter.HandleFunc("/status/{counterpartId}", controller.GetStatus).Methods("GET")
}
