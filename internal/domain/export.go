package domain

import "time"

// ExportRow is a single row in the flat trip export.
// It is denormalized: one row per participant, with trip fields repeated
// for every participant. Trips with no participants yield one row with
// zero values for the participant fields.
type ExportRow struct {
	// Trip fields, repeated for every participant of the trip.
	TripID        TripID
	TripTitle     string
	StartingPoint string
	StartDateTime time.Time
	EngineRule    EngineRule
	Visibility    Visibility
	OwnerEmail    string
	GroupName     string // empty when the trip has no group or the group is gone

	// Participant fields, zero values when the trip has no participants.
	ParticipantID    UserID
	ParticipantEmail string
	Compatible       bool
}
