package domain

import (
	"fmt"
	"slices"
	"time"
)

// Visibility controls who can see a group or trip.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// ParseVisibility converts user input into a Visibility.
// Returns ErrValidation for anything other than "public" or "private".
func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(s); v {
	case VisibilityPublic, VisibilityPrivate:
		return v, nil
	}
	return "", fmt.Errorf("%w: visibility must be public or private, got %q", ErrValidation, s)
}

// Group is a riding club. OwnerID never changes after creation and the
// owner is always listed in MemberIDs.
type Group struct {
	ID          GroupID    `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Visibility  Visibility `json:"visibility"`
	OwnerID     UserID     `json:"ownerId"`
	MemberIDs   []UserID   `json:"memberIds"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// IsMember reports whether id is in the group's member list.
func (g Group) IsMember(id UserID) bool {
	return slices.Contains(g.MemberIDs, id)
}
