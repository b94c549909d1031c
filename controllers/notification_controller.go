package controllers

import (
	"net/http"
	"strconv"

	"rendezvous_server/services"
)

type NotificationController struct {
	NotificationService *services.NotificationService
	DefaultLimit        int
}

func NewNotificationController(notificationService *services.NotificationService, defaultLimit int) *NotificationController {
	return &NotificationController{NotificationService: notificationService, DefaultLimit: defaultLimit}
}

// GetNotifications returns the caller's newest notifications
func (nc *NotificationController) GetNotifications(w http.ResponseWriter, r *http.Request) {
	limit := nc.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			badRequest(w, r, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	notifications, err := nc.NotificationService.ListNotifications(r.Context(), PartyID(r), limit)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, "Notifications fetched successfully", notifications)
}
