package services

import (
	"context"

	"rendezvous_server/models"
)

// PartyStore persists parties and applies the two-sided relation transitions.
// ApplyLike and ApplyUnlike must write both records as one unit and return
// ErrStaleState when the snapshot they are conditioned on no longer holds.
type PartyStore interface {
	GetParty(ctx context.Context, partyID string) (*models.Party, error)
	GetParties(ctx context.Context, partyIDs []string) ([]models.Party, error)
	ListParties(ctx context.Context) ([]models.Party, error)
	SaveProfile(ctx context.Context, partyID string, fields models.ProfileFields, createdAt string) error

	// ApplyLike adds target to actor.Likes and actor to target.LikedBy, plus both
	// Matches entries when mutual is true. Conditions: actor has not liked target,
	// target is active, and whether target is in actor.LikedBy equals mutual.
	ApplyLike(ctx context.Context, actorID, targetID string, mutual bool) error

	// ApplyUnlike removes the like in both directions and, when matched, the match
	// in both directions. Conditions: actor has liked target, and whether the pair
	// is matched equals matched.
	ApplyUnlike(ctx context.Context, actorID, targetID string, matched bool) error
}

// NotificationStore persists notifications.
type NotificationStore interface {
	PutNotification(ctx context.Context, n *models.Notification) error
	// ListNotifications returns the newest notifications for receiverID first.
	ListNotifications(ctx context.Context, receiverID string, limit int) ([]models.Notification, error)
}

// AvailabilityStore persists one Availability per ordered pair.
type AvailabilityStore interface {
	PutAvailability(ctx context.Context, a *models.Availability) error
	// GetAvailability returns nil, nil when the pair has no submission.
	GetAvailability(ctx context.Context, submitterID, counterpartID string) (*models.Availability, error)
}

// AppointmentStore persists confirmed appointments.
type AppointmentStore interface {
	// ConfirmAppointment stores appt and deletes both Availability directions of the
	// pair in one unit. It returns ErrStaleState if either Availability is gone.
	ConfirmAppointment(ctx context.Context, appt *models.Appointment) error
	ListAppointments(ctx context.Context, partyID string) ([]models.Appointment, error)
	ListAppointmentsOnDate(ctx context.Context, partyID, date string) ([]models.Appointment, error)
}

// Store is the full backing store used by the service layer.
type Store interface {
	PartyStore
	NotificationStore
	AvailabilityStore
	AppointmentStore
}
