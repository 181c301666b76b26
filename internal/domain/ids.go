package domain

import (
	"strings"

	"github.com/google/uuid"
)

// UserID, GroupID, TripID and MotorcycleID are opaque string identifiers.
// Fields typed with another entity's ID are weak references: a lookup key
// into the Database collections, never ownership.
type (
	UserID       string
	GroupID      string
	TripID       string
	MotorcycleID string
)

// Kind prefixes used by NewID.
const (
	PrefixUser       = "user"
	PrefixGroup      = "group"
	PrefixTrip       = "trip"
	PrefixMotorcycle = "moto"
)

// NewID returns prefix + "_" + a UUIDv7 body. Version 7 UUIDs carry a
// millisecond timestamp followed by random bits, which is unique enough
// for a single-writer local store.
func NewID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source fails; fall back to v4.
		id = uuid.New()
	}
	return prefix + "_" + strings.ReplaceAll(id.String(), "-", "")
}

func NewUserID() UserID             { return UserID(NewID(PrefixUser)) }
func NewGroupID() GroupID           { return GroupID(NewID(PrefixGroup)) }
func NewTripID() TripID             { return TripID(NewID(PrefixTrip)) }
func NewMotorcycleID() MotorcycleID { return MotorcycleID(NewID(PrefixMotorcycle)) }
