package services

import (
	"context"
	"sync"
	"testing"

	"rendezvous_server/metrics"
	"rendezvous_server/models"
	"rendezvous_server/socket"

	"github.com/stretchr/testify/require"
)

type pushed struct {
	event   string
	payload any
}

// recordingChannel is a socket.Channel that keeps every pushed event.
type recordingChannel struct {
	id      string
	pushErr error

	mu     sync.Mutex
	events []pushed
	closed bool
}

func (c *recordingChannel) ID() string { return c.id }

func (c *recordingChannel) Push(event string, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pushErr != nil {
		return c.pushErr
	}
	c.events = append(c.events, pushed{event: event, payload: payload})
	return nil
}

func (c *recordingChannel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *recordingChannel) notifications() []*models.NotificationView {
	c.mu.Lock()
	defer c.mu.Unlock()
	var views []*models.NotificationView
	for _, e := range c.events {
		if v, ok := e.payload.(*models.NotificationView); ok && e.event == models.EventReceiveNotification {
			views = append(views, v)
		}
	}
	return views
}

type testEnv struct {
	store    *MemoryStore
	metrics  *metrics.Mock
	registry *socket.Registry

	profiles      *ProfileService
	notifications *NotificationService
	matches       *MatchService
	conflicts     *ConflictDetector
	schedule      *ScheduleService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := NewMemoryStore()
	m := metrics.NewMock()
	registry := socket.NewRegistry(m)

	profiles := &ProfileService{Store: store}
	notifier := &NotificationService{Store: store, Profiles: profiles, Sessions: registry, Metrics: m}
	conflicts := &ConflictDetector{Store: store, Profiles: profiles}
	return &testEnv{
		store:         store,
		metrics:       m,
		registry:      registry,
		profiles:      profiles,
		notifications: notifier,
		matches:       &MatchService{Store: store, Profiles: profiles, Notifier: notifier, Metrics: m},
		conflicts:     conflicts,
		schedule: &ScheduleService{
			Store:             store,
			Profiles:          profiles,
			Conflicts:         conflicts,
			Notifier:          notifier,
			Metrics:           m,
			MinOverlapMinutes: DefaultMinOverlapMinutes,
		},
	}
}

func (e *testEnv) addParty(t *testing.T, id, name string) {
	t.Helper()
	_, err := e.profiles.SaveProfile(context.Background(), id, models.ProfileFields{Name: name, Age: 30})
	require.NoError(t, err)
}

func (e *testEnv) deactivate(t *testing.T, id string) {
	t.Helper()
	party, err := e.store.GetParty(context.Background(), id)
	require.NoError(t, err)
	inactive := false
	err = e.store.SaveProfile(context.Background(), id, models.ProfileFields{Name: party.Name, Age: party.Age, IsActive: &inactive}, party.CreatedAt)
	require.NoError(t, err)
}

func (e *testEnv) connect(id string) *recordingChannel {
	ch := &recordingChannel{id: "conn-" + id}
	e.registry.Register(id, ch)
	return ch
}

func (e *testEnv) match(t *testing.T, a, b string) {
	t.Helper()
	ctx := context.Background()
	_, err := e.matches.Like(ctx, a, b)
	require.NoError(t, err)
	res, err := e.matches.Like(ctx, b, a)
	require.NoError(t, err)
	require.True(t, res.Matched)
}

func (e *testEnv) appointment(t *testing.T, id, a, b, date, start, end string) {
	t.Helper()
	ctx := context.Background()
	slot := []models.TimeSlot{{Date: date, StartTime: start, EndTime: end}}
	require.NoError(t, e.store.PutAvailability(ctx, &models.Availability{SubmitterID: a, CounterpartID: b, Slots: slot}))
	require.NoError(t, e.store.PutAvailability(ctx, &models.Availability{SubmitterID: b, CounterpartID: a, Slots: slot}))
	require.NoError(t, e.store.ConfirmAppointment(ctx, &models.Appointment{
		AppointmentID: id,
		PartyA:        a,
		PartyB:        b,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		Status:        models.AppointmentStatusScheduled,
	}))
}

func slot(date, start, end string) models.TimeSlot {
	return models.TimeSlot{Date: date, StartTime: start, EndTime: end}
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "unexpected error: %v", err)
}
