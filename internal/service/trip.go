package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/moto-trip-planner/internal/clock"
	"github.com/pkordes/moto-trip-planner/internal/domain"
	"github.com/pkordes/moto-trip-planner/internal/repo"
)

// TripService implements trip CRUD and participation.
type TripService struct {
	repo  repo.DatabaseRepo
	clock clock.Clock
}

// NewTripService constructs a TripService backed by the provided repo.
func NewTripService(r repo.DatabaseRepo, clk clock.Clock) *TripService {
	return &TripService{repo: r, clock: clk}
}

// TripInput holds the caller-supplied fields of a new trip. GroupID is
// optional; when set, the creator must be a member of that group.
type TripInput struct {
	Title         string
	Description   string
	StartingPoint string
	StartDateTime time.Time
	EngineRule    domain.EngineRule
	Visibility    domain.Visibility
	GroupID       domain.GroupID
}

// TripPatch lists the trip fields to change. Nil fields are left alone; a
// GroupID pointing at "" unlinks the trip from its group.
type TripPatch struct {
	Title         *string
	Description   *string
	StartingPoint *string
	StartDateTime *time.Time
	EngineRule    *domain.EngineRule
	Visibility    *domain.Visibility
	GroupID       *domain.GroupID
}

// Create adds a trip owned by the current user, who becomes its first
// participant. New trips are listed first.
// Returns domain.ErrNotFound if GroupID names no group and
// domain.ErrNotMember if the creator has not joined it.
func (s *TripService) Create(ctx context.Context, in TripInput) (domain.Trip, error) {
	var out domain.Trip
	err := mutate(ctx, s.repo, "service.TripService.Create", func(db *domain.Database, me *domain.User) error {
		if in.GroupID != "" {
			g := db.Group(in.GroupID)
			if g == nil {
				return fmt.Errorf("%w: group %s", domain.ErrNotFound, in.GroupID)
			}
			if !g.IsMember(me.ID) {
				return domain.ErrNotMember
			}
		}
		out = domain.Trip{
			ID:             domain.NewTripID(),
			Title:          in.Title,
			Description:    in.Description,
			StartingPoint:  in.StartingPoint,
			StartDateTime:  in.StartDateTime.UTC(),
			EngineRule:     in.EngineRule,
			Visibility:     in.Visibility,
			OwnerID:        me.ID,
			GroupID:        in.GroupID,
			ParticipantIDs: []domain.UserID{me.ID},
			CreatedAt:      s.clock.Now(),
		}
		db.Trips = append([]domain.Trip{out}, db.Trips...)
		return nil
	})
	if err != nil {
		return domain.Trip{}, err
	}
	return out, nil
}

// Update merges patch into the trip. Only the owner may update it.
// A new GroupID is stored as given, without a membership check.
// Returns domain.ErrNotFound or domain.ErrForbidden.
func (s *TripService) Update(ctx context.Context, id domain.TripID, patch TripPatch) (domain.Trip, error) {
	var out domain.Trip
	err := mutate(ctx, s.repo, "service.TripService.Update", func(db *domain.Database, me *domain.User) error {
		t, err := ownedTrip(db, id, me.ID)
		if err != nil {
			return err
		}
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.StartingPoint != nil {
			t.StartingPoint = *patch.StartingPoint
		}
		if patch.StartDateTime != nil {
			t.StartDateTime = patch.StartDateTime.UTC()
		}
		if patch.EngineRule != nil {
			t.EngineRule = *patch.EngineRule
		}
		if patch.Visibility != nil {
			t.Visibility = *patch.Visibility
		}
		if patch.GroupID != nil {
			t.GroupID = *patch.GroupID
		}
		out = *t
		return nil
	})
	if err != nil {
		return domain.Trip{}, err
	}
	return out, nil
}

// Delete removes the trip. Only the owner may delete it.
// Returns domain.ErrNotFound or domain.ErrForbidden.
func (s *TripService) Delete(ctx context.Context, id domain.TripID) error {
	return mutate(ctx, s.repo, "service.TripService.Delete", func(db *domain.Database, me *domain.User) error {
		if _, err := ownedTrip(db, id, me.ID); err != nil {
			return err
		}
		kept := make([]domain.Trip, 0, len(db.Trips))
		for _, t := range db.Trips {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		db.Trips = kept
		return nil
	})
}

// Join adds the current user to the trip's participants. Joining twice, or
// joining a trip that does not exist, changes nothing.
func (s *TripService) Join(ctx context.Context, id domain.TripID) error {
	return mutate(ctx, s.repo, "service.TripService.Join", func(db *domain.Database, me *domain.User) error {
		t := db.Trip(id)
		if t == nil {
			return errNoop
		}
		if !t.HasParticipant(me.ID) {
			t.ParticipantIDs = append(t.ParticipantIDs, me.ID)
		}
		return nil
	})
}

// Leave removes the current user from the trip's participants. Unlike
// groups, the owner may leave their own trip and stays its owner.
// A missing trip is ignored.
func (s *TripService) Leave(ctx context.Context, id domain.TripID) error {
	return mutate(ctx, s.repo, "service.TripService.Leave", func(db *domain.Database, me *domain.User) error {
		t := db.Trip(id)
		if t == nil {
			return errNoop
		}
		t.ParticipantIDs = without(t.ParticipantIDs, me.ID)
		return nil
	})
}

// ownedTrip finds the trip and checks that actor owns it.
func ownedTrip(db *domain.Database, id domain.TripID, actor domain.UserID) (*domain.Trip, error) {
	t := db.Trip(id)
	if t == nil {
		return nil, fmt.Errorf("%w: trip %s", domain.ErrNotFound, id)
	}
	if t.OwnerID != actor {
		return nil, fmt.Errorf("%w: only the owner can change trip %s", domain.ErrForbidden, id)
	}
	return t, nil
}
