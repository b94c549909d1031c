package metrics

// Metrics defines the interface for collecting application metrics.
type Metrics interface {
	IncLikes()
	IncUnlikes()
	IncMatches()
	IncMatchesRemoved()
	IncTransitionRetries()
	IncNotificationsStored()
	IncNotificationsPushed()
	IncNotificationsDropped()
	IncAvailabilitySubmitted()
	IncAppointmentsConfirmed()
	SetLiveChannels(n int)
}
