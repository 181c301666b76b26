package service

import (
	"context"
	"fmt"

	"github.com/pkordes/moto-trip-planner/internal/clock"
	"github.com/pkordes/moto-trip-planner/internal/domain"
	"github.com/pkordes/moto-trip-planner/internal/repo"
)

// GroupService implements group CRUD and membership.
type GroupService struct {
	repo  repo.DatabaseRepo
	clock clock.Clock
}

// NewGroupService constructs a GroupService backed by the provided repo.
func NewGroupService(r repo.DatabaseRepo, clk clock.Clock) *GroupService {
	return &GroupService{repo: r, clock: clk}
}

// GroupInput holds the caller-supplied fields of a new group.
type GroupInput struct {
	Name        string
	Description string
	Visibility  domain.Visibility
}

// GroupPatch lists the group fields to change. Nil fields are left alone.
// Owner and members are not patchable.
type GroupPatch struct {
	Name        *string
	Description *string
	Visibility  *domain.Visibility
}

// Create adds a group owned by the current user, who becomes its only
// member. New groups are listed first.
func (s *GroupService) Create(ctx context.Context, in GroupInput) (domain.Group, error) {
	var out domain.Group
	err := mutate(ctx, s.repo, "service.GroupService.Create", func(db *domain.Database, me *domain.User) error {
		out = domain.Group{
			ID:          domain.NewGroupID(),
			Name:        in.Name,
			Description: in.Description,
			Visibility:  in.Visibility,
			OwnerID:     me.ID,
			MemberIDs:   []domain.UserID{me.ID},
			CreatedAt:   s.clock.Now(),
		}
		db.Groups = append([]domain.Group{out}, db.Groups...)
		return nil
	})
	if err != nil {
		return domain.Group{}, err
	}
	return out, nil
}

// Update merges patch into the group. Only the owner may update it.
// Returns domain.ErrNotFound or domain.ErrForbidden.
func (s *GroupService) Update(ctx context.Context, id domain.GroupID, patch GroupPatch) (domain.Group, error) {
	var out domain.Group
	err := mutate(ctx, s.repo, "service.GroupService.Update", func(db *domain.Database, me *domain.User) error {
		g, err := ownedGroup(db, id, me.ID)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			g.Name = *patch.Name
		}
		if patch.Description != nil {
			g.Description = *patch.Description
		}
		if patch.Visibility != nil {
			g.Visibility = *patch.Visibility
		}
		out = *g
		return nil
	})
	if err != nil {
		return domain.Group{}, err
	}
	return out, nil
}

// Delete removes the group and unlinks every trip that referenced it; the
// trips themselves are kept. Only the owner may delete it.
// Returns domain.ErrNotFound or domain.ErrForbidden.
func (s *GroupService) Delete(ctx context.Context, id domain.GroupID) error {
	return mutate(ctx, s.repo, "service.GroupService.Delete", func(db *domain.Database, me *domain.User) error {
		if _, err := ownedGroup(db, id, me.ID); err != nil {
			return err
		}
		for i := range db.Trips {
			if db.Trips[i].GroupID == id {
				db.Trips[i].GroupID = ""
			}
		}
		kept := make([]domain.Group, 0, len(db.Groups))
		for _, g := range db.Groups {
			if g.ID != id {
				kept = append(kept, g)
			}
		}
		db.Groups = kept
		return nil
	})
}

// Join adds the current user to the group's members. Joining twice, or
// joining a group that does not exist, changes nothing.
func (s *GroupService) Join(ctx context.Context, id domain.GroupID) error {
	return mutate(ctx, s.repo, "service.GroupService.Join", func(db *domain.Database, me *domain.User) error {
		g := db.Group(id)
		if g == nil {
			return errNoop
		}
		if !g.IsMember(me.ID) {
			g.MemberIDs = append(g.MemberIDs, me.ID)
		}
		return nil
	})
}

// Leave removes the current user from the group's members. The owner cannot
// leave (domain.ErrOwnerCannotLeave); a missing group is ignored.
func (s *GroupService) Leave(ctx context.Context, id domain.GroupID) error {
	return mutate(ctx, s.repo, "service.GroupService.Leave", func(db *domain.Database, me *domain.User) error {
		g := db.Group(id)
		if g == nil {
			return errNoop
		}
		if g.OwnerID == me.ID {
			return domain.ErrOwnerCannotLeave
		}
		g.MemberIDs = without(g.MemberIDs, me.ID)
		return nil
	})
}

// ownedGroup finds the group and checks that actor owns it.
func ownedGroup(db *domain.Database, id domain.GroupID, actor domain.UserID) (*domain.Group, error) {
	g := db.Group(id)
	if g == nil {
		return nil, fmt.Errorf("%w: group %s", domain.ErrNotFound, id)
	}
	if g.OwnerID != actor {
		return nil, fmt.Errorf("%w: only the owner can change group %s", domain.ErrForbidden, id)
	}
	return g, nil
}
