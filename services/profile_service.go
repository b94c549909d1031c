package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"rendezvous_server/models"
)

const maxPartyIDLength = 128

// ProfileService answers existence, active-flag and display lookups for parties.
type ProfileService struct {
	Store PartyStore
}

func timestamp() string {
	return time.Now().UTC().Format(models.TimestampLayout)
}

// ValidatePartyID rejects identifiers that cannot name a party.
func ValidatePartyID(partyID string) error {
	if partyID == "" || len(partyID) > maxPartyIDLength || strings.ContainsAny(partyID, "# \t\r\n") {
		return newError(KindInvalidReference, "invalid party id %q", partyID)
	}
	return nil
}

func validatePair(self, other string) error {
	if err := ValidatePartyID(self); err != nil {
		return err
	}
	if err := ValidatePartyID(other); err != nil {
		return err
	}
	if self == other {
		return newError(KindSelfReference, "a party cannot target itself")
	}
	return nil
}

func internalError(err error, format string, args ...any) *Error {
	e := newError(KindInternal, format, args...)
	e.Err = err
	return e
}

// Party loads a party, failing with NotFound when it does not exist.
func (s *ProfileService) Party(ctx context.Context, partyID string) (*models.Party, error) {
	party, err := s.Store.GetParty(ctx, partyID)
	if errors.Is(err, ErrItemNotFound) {
		return nil, newError(KindNotFound, "party %s not found", partyID)
	}
	if err != nil {
		return nil, internalError(err, "failed to load party %s", partyID)
	}
	return party, nil
}

// CheckActive loads a party that is being referenced by another party. Missing
// and inactive parties are both invalid references.
func (s *ProfileService) CheckActive(ctx context.Context, partyID string) (*models.Party, error) {
	party, err := s.Store.GetParty(ctx, partyID)
	if errors.Is(err, ErrItemNotFound) || (err == nil && !party.IsActive) {
		return nil, newError(KindInvalidReference, "party %s does not exist or is inactive", partyID)
	}
	if err != nil {
		return nil, internalError(err, "failed to load party %s", partyID)
	}
	return party, nil
}

// DisplayInfo returns the display fields of a party.
func (s *ProfileService) DisplayInfo(ctx context.Context, partyID string) (models.PartyInfo, error) {
	party, err := s.Party(ctx, partyID)
	if err != nil {
		return models.PartyInfo{PartyID: partyID}, err
	}
	return party.Info(), nil
}

// DisplayInfos resolves many parties at once. Unknown ids map to an id-only entry.
func (s *ProfileService) DisplayInfos(ctx context.Context, partyIDs []string) (map[string]models.PartyInfo, error) {
	parties, err := s.Store.GetParties(ctx, partyIDs)
	if err != nil {
		return nil, internalError(err, "failed to load parties")
	}
	infos := make(map[string]models.PartyInfo, len(partyIDs))
	for _, id := range partyIDs {
		infos[id] = models.PartyInfo{PartyID: id}
	}
	for i := range parties {
		infos[parties[i].PartyID] = parties[i].Info()
	}
	return infos, nil
}

// ActiveInfos returns the display fields of the active parties among partyIDs,
// preserving their order.
func (s *ProfileService) ActiveInfos(ctx context.Context, partyIDs []string) ([]models.PartyInfo, error) {
	parties, err := s.Store.GetParties(ctx, partyIDs)
	if err != nil {
		return nil, internalError(err, "failed to load parties")
	}
	infos := make([]models.PartyInfo, 0, len(parties))
	for i := range parties {
		if parties[i].IsActive {
			infos = append(infos, parties[i].Info())
		}
	}
	return infos, nil
}

func viewOf(viewer, target *models.Party) models.ProfileView {
	return models.ProfileView{
		PartyID:     target.PartyID,
		Name:        target.Name,
		Age:         target.Age,
		Gender:      target.Gender,
		Bio:         target.Bio,
		Avatar:      target.Avatar,
		CreatedAt:   target.CreatedAt,
		IsLikedByMe: viewer.HasLiked(target.PartyID),
		HasLikedMe:  viewer.IsLikedBy(target.PartyID),
		IsMatch:     viewer.IsMatchedWith(target.PartyID),
	}
}

// GetProfile returns target as seen by viewer. The flags are derived from the
// viewer's own record; the target's relation sets are never exposed.
func (s *ProfileService) GetProfile(ctx context.Context, viewerID, targetID string) (*models.ProfileView, error) {
	if err := ValidatePartyID(targetID); err != nil {
		return nil, err
	}
	viewer, err := s.Party(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	target, err := s.Party(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !target.IsActive {
		return nil, newError(KindNotFound, "party %s not found", targetID)
	}
	view := viewOf(viewer, target)
	return &view, nil
}

// ListProfiles returns every active party except the viewer.
func (s *ProfileService) ListProfiles(ctx context.Context, viewerID string) ([]models.ProfileView, error) {
	viewer, err := s.Party(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	parties, err := s.Store.ListParties(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list parties")
	}
	views := make([]models.ProfileView, 0, len(parties))
	for i := range parties {
		if parties[i].PartyID == viewerID || !parties[i].IsActive {
			continue
		}
		views = append(views, viewOf(viewer, &parties[i]))
	}
	return views, nil
}

// SaveProfile creates or updates the display fields of partyID. Relation sets
// are left untouched.
func (s *ProfileService) SaveProfile(ctx context.Context, partyID string, fields models.ProfileFields) (*models.ProfileView, error) {
	if err := ValidatePartyID(partyID); err != nil {
		return nil, err
	}
	fields.Name = strings.TrimSpace(fields.Name)
	if fields.Name == "" {
		return nil, newError(KindInvalidInput, "name is required")
	}
	if fields.Age != 0 && fields.Age < 18 {
		return nil, newError(KindInvalidInput, "age must be at least 18")
	}
	if err := s.Store.SaveProfile(ctx, partyID, fields, timestamp()); err != nil {
		return nil, internalError(err, "failed to save profile %s", partyID)
	}
	party, err := s.Party(ctx, partyID)
	if err != nil {
		return nil, err
	}
	view := viewOf(party, party)
	return &view, nil
}
