package models

// Notification kinds
const (
	NotificationKindLike          = "like"
	NotificationKindMatch         = "match"
	NotificationKindDateScheduled = "date_scheduled"
)

// EventReceiveNotification is the live channel event carrying a NotificationView
const EventReceiveNotification = "receive_notification"

// Notification is an immutable event addressed to one party.
type Notification struct {
	ReceiverID     string `dynamodbav:"receiverId" json:"receiverId"` // Partition Key
	SortKey        string `dynamodbav:"SK" json:"-"`                  // Sort Key: "<createdAt>#<notificationId>"
	NotificationID string `dynamodbav:"notificationId" json:"notificationId"`
	SenderID       string `dynamodbav:"senderId" json:"senderId"`
	Kind           string `dynamodbav:"kind" json:"kind"`
	IsRead         bool   `dynamodbav:"isRead" json:"isRead"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// NotificationView is a notification with the sender's display fields inlined.
// It is both the list item and the push payload.
type NotificationView struct {
	NotificationID string    `json:"notificationId"`
	Receiver       string    `json:"receiver"`
	Sender         PartyInfo `json:"sender"`
	Kind           string    `json:"kind"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      string    `json:"createdAt"`
}

// NotificationsTable is the DynamoDB table name for notifications
const NotificationsTable = "Notifications"
