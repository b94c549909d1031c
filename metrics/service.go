package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

func counter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rendezvous",
		Name:      name,
		Help:      help,
	})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Likes:                 counter("likes_total", "The total number of successful likes."),
		Unlikes:               counter("unlikes_total", "The total number of successful unlikes."),
		Matches:               counter("matches_total", "The total number of matches created."),
		MatchesRemoved:        counter("matches_removed_total", "The total number of matches removed by an unlike."),
		TransitionRetries:     counter("transition_retries_total", "The total number of like/unlike transitions retried after a stale snapshot."),
		NotificationsStored:   counter("notifications_stored_total", "The total number of notifications persisted."),
		NotificationsPushed:   counter("notifications_pushed_total", "The total number of notifications pushed to a live channel."),
		NotificationsDropped:  counter("notifications_dropped_total", "The total number of live pushes that failed and were dropped."),
		AvailabilitySubmitted: counter("availability_submitted_total", "The total number of availability submissions."),
		AppointmentsConfirmed: counter("appointments_confirmed_total", "The total number of confirmed appointments."),
		LiveChannels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rendezvous",
			Name:      "live_channels",
			Help:      "The number of parties with a registered live channel.",
		}),
	}

	reg.MustRegister(
		s.Likes,
		s.Unlikes,
		s.Matches,
		s.MatchesRemoved,
		s.TransitionRetries,
		s.NotificationsStored,
		s.NotificationsPushed,
		s.NotificationsDropped,
		s.AvailabilitySubmitted,
		s.AppointmentsConfirmed,
		s.LiveChannels,
	)

	return s
}

func (s *Service) IncLikes()                 { s.Likes.Inc() }
func (s *Service) IncUnlikes()               { s.Unlikes.Inc() }
func (s *Service) IncMatches()               { s.Matches.Inc() }
func (s *Service) IncMatchesRemoved()        { s.MatchesRemoved.Inc() }
func (s *Service) IncTransitionRetries()     { s.TransitionRetries.Inc() }
func (s *Service) IncNotificationsStored()   { s.NotificationsStored.Inc() }
func (s *Service) IncNotificationsPushed()   { s.NotificationsPushed.Inc() }
func (s *Service) IncNotificationsDropped()  { s.NotificationsDropped.Inc() }
func (s *Service) IncAvailabilitySubmitted() { s.AvailabilitySubmitted.Inc() }
func (s *Service) IncAppointmentsConfirmed() { s.AppointmentsConfirmed.Inc() }
func (s *Service) SetLiveChannels(n int)     { s.LiveChannels.Set(float64(n)) }
