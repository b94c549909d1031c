package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu       sync.Mutex
	counters map[string]int
	channels int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{counters: make(map[string]int)}
}

func (m *Mock) inc(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

func (m *Mock) IncLikes()                 { m.inc("likes") }
func (m *Mock) IncUnlikes()               { m.inc("unlikes") }
func (m *Mock) IncMatches()               { m.inc("matches") }
func (m *Mock) IncMatchesRemoved()        { m.inc("matches_removed") }
func (m *Mock) IncTransitionRetries()     { m.inc("transition_retries") }
func (m *Mock) IncNotificationsStored()   { m.inc("notifications_stored") }
func (m *Mock) IncNotificationsPushed()   { m.inc("notifications_pushed") }
func (m *Mock) IncNotificationsDropped()  { m.inc("notifications_dropped") }
func (m *Mock) IncAvailabilitySubmitted() { m.inc("availability_submitted") }
func (m *Mock) IncAppointmentsConfirmed() { m.inc("appointments_confirmed") }

func (m *Mock) SetLiveChannels(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels = n
}

// Count returns how many times the named counter was incremented,
// e.g. "matches" or "notifications_pushed".
func (m *Mock) Count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// LiveChannels returns the last value passed to SetLiveChannels.
func (m *Mock) LiveChannels() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.channels
}
