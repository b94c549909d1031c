package services

import (
	"context"
	"slices"
	"sort"
	"sync"

	"rendezvous_server/models"
)

var _ Store = (*MemoryStore)(nil)

type pairKey struct{ submitter, counterpart string }

// MemoryStore is an in-process Store. Every transition runs under one mutex,
// so the two-sided writes are never observable half-applied.
type MemoryStore struct {
	mu            sync.RWMutex
	parties       map[string]*models.Party
	notifications map[string][]models.Notification
	availability  map[pairKey]models.Availability
	appointments  []models.Appointment
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		parties:       make(map[string]*models.Party),
		notifications: make(map[string][]models.Notification),
		availability:  make(map[pairKey]models.Availability),
	}
}

func cloneParty(p *models.Party) *models.Party {
	c := *p
	c.Likes = slices.Clone(p.Likes)
	c.LikedBy = slices.Clone(p.LikedBy)
	c.Matches = slices.Clone(p.Matches)
	return &c
}

func addMember(set []string, id string) []string {
	if slices.Contains(set, id) {
		return set
	}
	return append(set, id)
}

func removeMember(set []string, id string) []string {
	return slices.DeleteFunc(set, func(s string) bool { return s == id })
}

func (m *MemoryStore) GetParty(ctx context.Context, partyID string) (*models.Party, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.parties[partyID]
	if !ok {
		return nil, ErrItemNotFound
	}
	return cloneParty(p), nil
}

func (m *MemoryStore) GetParties(ctx context.Context, partyIDs []string) ([]models.Party, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	parties := make([]models.Party, 0, len(partyIDs))
	for _, id := range partyIDs {
		if p, ok := m.parties[id]; ok {
			parties = append(parties, *cloneParty(p))
		}
	}
	return parties, nil
}

func (m *MemoryStore) ListParties(ctx context.Context) ([]models.Party, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	parties := make([]models.Party, 0, len(m.parties))
	for _, p := range m.parties {
		parties = append(parties, *cloneParty(p))
	}
	sort.Slice(parties, func(i, j int) bool { return parties[i].PartyID < parties[j].PartyID })
	return parties, nil
}

func (m *MemoryStore) SaveProfile(ctx context.Context, partyID string, fields models.ProfileFields, createdAt string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.parties[partyID]
	if !ok {
		p = &models.Party{PartyID: partyID, IsActive: true, CreatedAt: createdAt}
		m.parties[partyID] = p
	}
	p.Name = fields.Name
	p.Age = fields.Age
	p.Gender = fields.Gender
	p.Bio = fields.Bio
	p.Avatar = fields.Avatar
	if fields.IsActive != nil {
		p.IsActive = *fields.IsActive
	}
	return nil
}

func (m *MemoryStore) ApplyLike(ctx context.Context, actorID, targetID string, mutual bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	actor, ok := m.parties[actorID]
	if !ok {
		return ErrStaleState
	}
	target, ok := m.parties[targetID]
	if !ok || !target.IsActive {
		return ErrStaleState
	}
	if actor.HasLiked(targetID) || actor.IsLikedBy(targetID) != mutual {
		return ErrStaleState
	}

	actor.Likes = addMember(actor.Likes, targetID)
	target.LikedBy = addMember(target.LikedBy, actorID)
	if mutual {
		actor.Matches = addMember(actor.Matches, targetID)
		target.Matches = addMember(target.Matches, actorID)
	}
	return nil
}

func (m *MemoryStore) ApplyUnlike(ctx context.Context, actorID, targetID string, matched bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	actor, ok := m.parties[actorID]
	if !ok {
		return ErrStaleState
	}
	target, ok := m.parties[targetID]
	if !ok {
		return ErrStaleState
	}
	if !actor.HasLiked(targetID) || actor.IsMatchedWith(targetID) != matched {
		return ErrStaleState
	}

	actor.Likes = removeMember(actor.Likes, targetID)
	target.LikedBy = removeMember(target.LikedBy, actorID)
	actor.Matches = removeMember(actor.Matches, targetID)
	target.Matches = removeMember(target.Matches, actorID)
	return nil
}

func (m *MemoryStore) PutNotification(ctx context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications[n.ReceiverID] = append(m.notifications[n.ReceiverID], *n)
	return nil
}

func (m *MemoryStore) ListNotifications(ctx context.Context, receiverID string, limit int) ([]models.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored := m.notifications[receiverID]
	result := make([]models.Notification, 0, min(len(stored), limit))
	// stored is in insertion order; walk it backwards for newest first
	for i := len(stored) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, stored[i])
	}
	return result, nil
}

func (m *MemoryStore) PutAvailability(ctx context.Context, a *models.Availability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *a
	stored.Slots = slices.Clone(a.Slots)
	m.availability[pairKey{a.SubmitterID, a.CounterpartID}] = stored
	return nil
}

func (m *MemoryStore) GetAvailability(ctx context.Context, submitterID, counterpartID string) (*models.Availability, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.availability[pairKey{submitterID, counterpartID}]
	if !ok {
		return nil, nil
	}
	a.Slots = slices.Clone(a.Slots)
	return &a, nil
}

func (m *MemoryStore) ConfirmAppointment(ctx context.Context, appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	forward := pairKey{appt.PartyA, appt.PartyB}
	reverse := pairKey{appt.PartyB, appt.PartyA}
	if _, ok := m.availability[forward]; !ok {
		return ErrStaleState
	}
	if _, ok := m.availability[reverse]; !ok {
		return ErrStaleState
	}
	m.appointments = append(m.appointments, *appt)
	delete(m.availability, forward)
	delete(m.availability, reverse)
	return nil
}

func (m *MemoryStore) ListAppointments(ctx context.Context, partyID string) ([]models.Appointment, error) {
	return m.filterAppointments(func(a *models.Appointment) bool { return a.Involves(partyID) }), nil
}

func (m *MemoryStore) ListAppointmentsOnDate(ctx context.Context, partyID, date string) ([]models.Appointment, error) {
	return m.filterAppointments(func(a *models.Appointment) bool {
		return a.Involves(partyID) && a.Date == date
	}), nil
}

func (m *MemoryStore) filterAppointments(keep func(*models.Appointment) bool) []models.Appointment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []models.Appointment
	for i := range m.appointments {
		if keep(&m.appointments[i]) {
			result = append(result, m.appointments[i])
		}
	}
	return result
}
