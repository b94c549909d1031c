package services

import (
	"context"

	"rendezvous_server/metrics"
	"rendezvous_server/models"
	"rendezvous_server/socket"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	DefaultNotificationLimit = 30
	MaxNotificationLimit     = 100
)

// SessionLookup resolves the live channel of a party.
type SessionLookup interface {
	Lookup(partyID string) (socket.Channel, bool)
}

// NotificationService persists notifications and pushes them to live channels.
type NotificationService struct {
	Store    NotificationStore
	Profiles *ProfileService
	Sessions SessionLookup
	Metrics  metrics.Metrics
}

// Notify stores a notification for receiver and then pushes it if the receiver
// has a live channel. Only the store write can fail the call; push failures are
// logged and dropped.
func (s *NotificationService) Notify(ctx context.Context, senderID, receiverID, kind string) (*models.NotificationView, error) {
	notification := &models.Notification{
		ReceiverID:     receiverID,
		NotificationID: uuid.NewString(),
		SenderID:       senderID,
		Kind:           kind,
		CreatedAt:      timestamp(),
	}
	if err := s.Store.PutNotification(ctx, notification); err != nil {
		return nil, internalError(err, "failed to store %s notification for %s", kind, receiverID)
	}
	s.Metrics.IncNotificationsStored()

	sender, err := s.Profiles.DisplayInfo(ctx, senderID)
	if err != nil {
		log.Warn("Sender display fields unavailable", "senderId", senderID, "error", err)
	}
	view := viewNotification(notification, sender)
	s.push(receiverID, &view)
	return &view, nil
}

func (s *NotificationService) push(receiverID string, view *models.NotificationView) {
	ch, ok := s.Sessions.Lookup(receiverID)
	if !ok {
		log.Debug("Receiver offline, notification kept for later", "receiverId", receiverID, "kind", view.Kind)
		return
	}
	if err := ch.Push(models.EventReceiveNotification, view); err != nil {
		s.Metrics.IncNotificationsDropped()
		log.Warn("Dropped live notification", "receiverId", receiverID, "channel", ch.ID(), "error", err)
		return
	}
	s.Metrics.IncNotificationsPushed()
}

// ListNotifications returns the newest notifications of receiver with the
// senders' display fields inlined.
func (s *NotificationService) ListNotifications(ctx context.Context, receiverID string, limit int) ([]models.NotificationView, error) {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	limit = min(limit, MaxNotificationLimit)

	notifications, err := s.Store.ListNotifications(ctx, receiverID, limit)
	if err != nil {
		return nil, internalError(err, "failed to list notifications for %s", receiverID)
	}

	var senderIDs []string
	seen := make(map[string]bool)
	for _, n := range notifications {
		if !seen[n.SenderID] {
			seen[n.SenderID] = true
			senderIDs = append(senderIDs, n.SenderID)
		}
	}
	senders, err := s.Profiles.DisplayInfos(ctx, senderIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.NotificationView, 0, len(notifications))
	for i := range notifications {
		views = append(views, viewNotification(&notifications[i], senders[notifications[i].SenderID]))
	}
	return views, nil
}

func viewNotification(n *models.Notification, sender models.PartyInfo) models.NotificationView {
	if sender.PartyID == "" {
		sender.PartyID = n.SenderID
	}
	return models.NotificationView{
		NotificationID: n.NotificationID,
		Receiver:       n.ReceiverID,
		Sender:         sender,
		Kind:           n.Kind,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}
