package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	Likes                 prometheus.Counter
	Unlikes               prometheus.Counter
	Matches               prometheus.Counter
	MatchesRemoved        prometheus.Counter
	TransitionRetries     prometheus.Counter
	NotificationsStored   prometheus.Counter
	NotificationsPushed   prometheus.Counter
	NotificationsDropped  prometheus.Counter
	AvailabilitySubmitted prometheus.Counter
	AppointmentsConfirmed prometheus.Counter
	LiveChannels          prometheus.Gauge
}
