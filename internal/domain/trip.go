package domain

import (
	"fmt"
	"slices"
	"time"
)

// EngineRule restricts which riders a trip is meant for, based on the
// engine displacement of the bikes in their garage.
type EngineRule string

const (
	EngineRuleOpen  EngineRule = "open"
	EngineRuleSmall EngineRule = "small"
	EngineRuleBig   EngineRule = "big"
)

// ParseEngineRule converts user input into an EngineRule.
// Returns ErrValidation for anything outside open, small and big.
func ParseEngineRule(s string) (EngineRule, error) {
	switch r := EngineRule(s); r {
	case EngineRuleOpen, EngineRuleSmall, EngineRuleBig:
		return r, nil
	}
	return "", fmt.Errorf("%w: engine rule must be open, small or big, got %q", ErrValidation, s)
}

// Trip is a planned ride.
// GroupID is a weak reference: it is empty when the trip has no group, and
// it is cleared (not the trip deleted) when the linked group goes away.
type Trip struct {
	ID             TripID     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	StartingPoint  string     `json:"startingPoint"`
	StartDateTime  time.Time  `json:"startDateTime"`
	EngineRule     EngineRule `json:"engineRule"`
	Visibility     Visibility `json:"visibility"`
	OwnerID        UserID     `json:"ownerId"`
	GroupID        GroupID    `json:"groupId,omitempty"`
	ParticipantIDs []UserID   `json:"participantIds"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// HasParticipant reports whether id has joined the trip.
func (t Trip) HasParticipant(id UserID) bool {
	return slices.Contains(t.ParticipantIDs, id)
}
