package routes

import (
	"rendezvous_server/controllers"
	"rendezvous_server/services"

	"github.com/gorilla/mux"
)

// RegisterNotificationRoutes sets up the notification list under /api/notifications
func RegisterNotificationRoutes(api *mux.Router, notificationService *services.NotificationService, defaultLimit int) {
	controller := controllers.NewNotificationController(notificationService, defaultLimit)
	api.HandleFunc("/notifications", controller.GetNotifications).Methods("GET")
}
