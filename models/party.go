package models

import "slices"

// Party is a registered participant together with its relation sets.
// Matches is always a subset of both Likes and LikedBy, and symmetric across records.
type Party struct {
	PartyID   string   `dynamodbav:"partyId" json:"partyId"` // Partition Key
	Name      string   `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Age       int      `dynamodbav:"age,omitempty" json:"age,omitempty"`
	Gender    string   `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	Bio       string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	Avatar    string   `dynamodbav:"avatar,omitempty" json:"avatar,omitempty"`
	IsActive  bool     `dynamodbav:"isActive" json:"isActive"`
	Likes     []string `dynamodbav:"likes,stringset,omitempty" json:"-"`   // parties this party liked
	LikedBy   []string `dynamodbav:"likedBy,stringset,omitempty" json:"-"` // parties who liked this party
	Matches   []string `dynamodbav:"matches,stringset,omitempty" json:"-"` // mutual likes
	CreatedAt string   `dynamodbav:"createdAt" json:"createdAt"`
}

// HasLiked reports whether p liked other.
func (p *Party) HasLiked(other string) bool { return slices.Contains(p.Likes, other) }

// IsLikedBy reports whether other liked p.
func (p *Party) IsLikedBy(other string) bool { return slices.Contains(p.LikedBy, other) }

// IsMatchedWith reports whether p and other are matched.
func (p *Party) IsMatchedWith(other string) bool { return slices.Contains(p.Matches, other) }

// Info returns the display fields used in notifications and lists.
func (p *Party) Info() PartyInfo {
	return PartyInfo{PartyID: p.PartyID, Name: p.Name, Avatar: p.Avatar}
}

// PartyInfo holds the minimal display fields of a party
type PartyInfo struct {
	PartyID string `json:"partyId"`
	Name    string `json:"name,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
}

// ProfileFields are the writable display fields of a party. Relation sets are
// never written through a profile update.
type ProfileFields struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// ProfileView is a party as seen by a viewer. It exposes derived flags only,
// never the raw relation sets of the viewed party.
type ProfileView struct {
	PartyID     string `json:"partyId"`
	Name        string `json:"name,omitempty"`
	Age         int    `json:"age,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	IsLikedByMe bool   `json:"isLikedByMe"`
	HasLikedMe  bool   `json:"hasLikedMe"`
	IsMatch     bool   `json:"isMatch"`
}

// PartiesTable is the DynamoDB table name for parties
const PartiesTable = "Parties"
