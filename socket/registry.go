package socket

import (
	"sync"

	"rendezvous_server/metrics"

	"github.com/charmbracelet/log"
)

// Channel is a live push destination for one connected party.
type Channel interface {
	ID() string
	// Push queues an event without blocking.
	Push(event string, payload any) error
	Close()
}

// Registry maps each party to at most one live channel.
// A later Register for the same party supersedes the earlier channel.
type Registry struct {
	mu        sync.RWMutex
	byParty   map[string]Channel
	byChannel map[string]string
	metrics   metrics.Metrics
}

func NewRegistry(m metrics.Metrics) *Registry {
	return &Registry{
		byParty:   make(map[string]Channel),
		byChannel: make(map[string]string),
		metrics:   m,
	}
}

// Register associates ch with partyID. Any other channel object displaced by
// this call is closed, including an earlier channel for the same connection.
func (r *Registry) Register(partyID string, ch Channel) {
	r.mu.Lock()
	var superseded []Channel
	if old, ok := r.byParty[partyID]; ok && old != ch {
		delete(r.byChannel, old.ID())
		superseded = append(superseded, old)
	}
	// the same connection re-registering as another party
	if prev, ok := r.byChannel[ch.ID()]; ok && prev != partyID {
		if old, ok := r.byParty[prev]; ok && old != ch {
			superseded = append(superseded, old)
		}
		delete(r.byParty, prev)
	}
	r.byParty[partyID] = ch
	r.byChannel[ch.ID()] = partyID
	n := len(r.byParty)
	r.mu.Unlock()

	for _, old := range superseded {
		log.Debug("Live channel superseded", "partyId", partyID, "channel", old.ID())
		old.Close()
	}
	log.Info("Live channel registered", "partyId", partyID, "channel", ch.ID())
	r.metrics.SetLiveChannels(n)
}

// Unregister removes whichever party currently owns channelID.
func (r *Registry) Unregister(channelID string) (string, bool) {
	r.mu.Lock()
	partyID, ok := r.byChannel[channelID]
	var ch Channel
	if ok {
		ch = r.byParty[partyID]
		delete(r.byChannel, channelID)
		delete(r.byParty, partyID)
	}
	n := len(r.byParty)
	r.mu.Unlock()

	if !ok {
		return "", false
	}
	if ch != nil {
		ch.Close()
	}
	log.Info("Live channel unregistered", "partyId", partyID, "channel", channelID)
	r.metrics.SetLiveChannels(n)
	return partyID, true
}

// Lookup returns the live channel of partyID, if any.
func (r *Registry) Lookup(partyID string) (Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.byParty[partyID]
	return ch, ok
}

// Count returns the number of parties with a live channel.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byParty)
}
