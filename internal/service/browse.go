package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/pkordes/moto-trip-planner/internal/clock"
	"github.com/pkordes/moto-trip-planner/internal/domain"
	"github.com/pkordes/moto-trip-planner/internal/repo"
)

// DefaultUpcomingWindow is how far ahead Upcoming looks when no window is given.
const DefaultUpcomingWindow = 7 * 24 * time.Hour

// TripScope selects which trips ListTrips returns.
type TripScope string

const (
	// ScopeAll lists public trips and the caller's own trips.
	ScopeAll TripScope = "all"
	// ScopePublic lists public trips only.
	ScopePublic TripScope = "public"
	// ScopeMine lists trips the caller owns or participates in.
	ScopeMine TripScope = "mine"
)

// ParseTripScope converts s to a TripScope. An empty s means ScopeAll.
func ParseTripScope(s string) (TripScope, error) {
	switch TripScope(s) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopePublic, ScopeMine:
		return TripScope(s), nil
	}
	return "", fmt.Errorf("%w: scope must be all, public or mine", domain.ErrValidation)
}

// TripFilter narrows ListTrips. A zero EngineRule matches every rule.
type TripFilter struct {
	Scope      TripScope
	EngineRule domain.EngineRule
}

// Dashboard is the signed-in landing view.
type Dashboard struct {
	Me       domain.User
	MyGroups []domain.Group
	MyTrips  []domain.Trip
	Upcoming []domain.Trip
}

// GroupList splits groups into the caller's and the public ones they could join.
type GroupList struct {
	Mine        []domain.Group
	OtherPublic []domain.Group
}

// GroupDetail is a single group with its resolved owner, members and trips.
type GroupDetail struct {
	Group    domain.Group
	Owner    *domain.User
	Members  []domain.User
	Trips    []domain.Trip
	IsOwner  bool
	IsMember bool
}

// TripDetail is a single trip with its resolved references and the
// caller's relation to it.
type TripDetail struct {
	Trip         domain.Trip
	Owner        *domain.User
	Group        *domain.Group
	Participants []domain.User
	IsOwner      bool
	Joined       bool
	Compatible   bool
	Upcoming     bool
}

// BrowseService serves the read-only views. Nothing here saves.
type BrowseService struct {
	repo  repo.DatabaseRepo
	clock clock.Clock
}

// NewBrowseService constructs a BrowseService backed by the provided repo.
func NewBrowseService(r repo.DatabaseRepo, clk clock.Clock) *BrowseService {
	return &BrowseService{repo: r, clock: clk}
}

// ListTrips returns the trips matching filter in stored order.
func (s *BrowseService) ListTrips(ctx context.Context, filter TripFilter) ([]domain.Trip, error) {
	db, me, err := current(ctx, s.repo, "service.BrowseService.ListTrips")
	if err != nil {
		return nil, err
	}

	out := []domain.Trip{}
	for _, t := range db.Trips {
		if !inScope(t, me.ID, filter.Scope) {
			continue
		}
		if filter.EngineRule != "" && t.EngineRule != filter.EngineRule {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Upcoming returns visible trips starting between now and now+window,
// soonest first. A window of zero or less means DefaultUpcomingWindow.
func (s *BrowseService) Upcoming(ctx context.Context, window time.Duration) ([]domain.Trip, error) {
	db, me, err := current(ctx, s.repo, "service.BrowseService.Upcoming")
	if err != nil {
		return nil, err
	}
	return upcoming(db, me.ID, s.clock.Now(), window), nil
}

// Dashboard returns the caller's groups, trips and upcoming visible trips.
func (s *BrowseService) Dashboard(ctx context.Context) (Dashboard, error) {
	db, me, err := current(ctx, s.repo, "service.BrowseService.Dashboard")
	if err != nil {
		return Dashboard{}, err
	}

	out := Dashboard{
		Me:       me,
		MyGroups: []domain.Group{},
		MyTrips:  []domain.Trip{},
		Upcoming: upcoming(db, me.ID, s.clock.Now(), DefaultUpcomingWindow),
	}
	for _, g := range db.Groups {
		if g.IsMember(me.ID) {
			out.MyGroups = append(out.MyGroups, g)
		}
	}
	for _, t := range db.Trips {
		if inScope(t, me.ID, ScopeMine) {
			out.MyTrips = append(out.MyTrips, t)
		}
	}
	return out, nil
}

// Groups returns the caller's groups and the public groups they have not joined.
func (s *BrowseService) Groups(ctx context.Context) (GroupList, error) {
	db, me, err := current(ctx, s.repo, "service.BrowseService.Groups")
	if err != nil {
		return GroupList{}, err
	}

	out := GroupList{Mine: []domain.Group{}, OtherPublic: []domain.Group{}}
	for _, g := range db.Groups {
		switch {
		case g.IsMember(me.ID):
			out.Mine = append(out.Mine, g)
		case g.Visibility == domain.VisibilityPublic:
			out.OtherPublic = append(out.OtherPublic, g)
		}
	}
	return out, nil
}

// GroupDetail returns the group with its owner, members and the group trips
// the caller may see. Private groups are only shown to members and the owner.
// Returns domain.ErrNotFound or domain.ErrForbidden.
func (s *BrowseService) GroupDetail(ctx context.Context, id domain.GroupID) (GroupDetail, error) {
	const op = "service.BrowseService.GroupDetail"
	db, me, err := current(ctx, s.repo, op)
	if err != nil {
		return GroupDetail{}, err
	}

	g := db.Group(id)
	if g == nil {
		return GroupDetail{}, fmt.Errorf("%s: %w: group %s", op, domain.ErrNotFound, id)
	}
	if !domain.CanViewGroup(*g, me.ID) {
		return GroupDetail{}, fmt.Errorf("%s: %w: group %s is private", op, domain.ErrForbidden, id)
	}

	isMember := g.IsMember(me.ID)
	out := GroupDetail{
		Group:    *g,
		Owner:    db.User(g.OwnerID),
		Members:  resolveUsers(db, g.MemberIDs),
		Trips:    []domain.Trip{},
		IsOwner:  g.OwnerID == me.ID,
		IsMember: isMember,
	}
	for _, t := range db.Trips {
		if t.GroupID != id {
			continue
		}
		if t.Visibility == domain.VisibilityPublic || t.OwnerID == me.ID || isMember {
			out.Trips = append(out.Trips, t)
		}
	}
	return out, nil
}

// TripDetail returns the trip with its owner, linked group and participants.
// Private trips are shown to their owner and to members of the linked group.
// Returns domain.ErrNotFound or domain.ErrForbidden.
func (s *BrowseService) TripDetail(ctx context.Context, id domain.TripID) (TripDetail, error) {
	const op = "service.BrowseService.TripDetail"
	db, me, err := current(ctx, s.repo, op)
	if err != nil {
		return TripDetail{}, err
	}

	t := db.Trip(id)
	if t == nil {
		return TripDetail{}, fmt.Errorf("%s: %w: trip %s", op, domain.ErrNotFound, id)
	}
	var group *domain.Group
	if t.GroupID != "" {
		group = db.Group(t.GroupID)
	}
	if !domain.CanSeeTripAsMember(*t, me.ID, group) {
		return TripDetail{}, fmt.Errorf("%s: %w: trip %s is private", op, domain.ErrForbidden, id)
	}

	return TripDetail{
		Trip:         *t,
		Owner:        db.User(t.OwnerID),
		Group:        group,
		Participants: resolveUsers(db, t.ParticipantIDs),
		IsOwner:      t.OwnerID == me.ID,
		Joined:       t.HasParticipant(me.ID),
		Compatible:   domain.IsTripCompatible(t.EngineRule, me),
		Upcoming:     t.StartDateTime.After(s.clock.Now()),
	}, nil
}

func inScope(t domain.Trip, me domain.UserID, scope TripScope) bool {
	switch scope {
	case ScopePublic:
		return t.Visibility == domain.VisibilityPublic
	case ScopeMine:
		return t.OwnerID == me || t.HasParticipant(me)
	default:
		return domain.CanSeeTrip(t, me)
	}
}

func upcoming(db domain.Database, me domain.UserID, now time.Time, window time.Duration) []domain.Trip {
	if window <= 0 {
		window = DefaultUpcomingWindow
	}
	until := now.Add(window)

	out := []domain.Trip{}
	for _, t := range db.Trips {
		if t.StartDateTime.Before(now) || t.StartDateTime.After(until) {
			continue
		}
		if domain.CanSeeTrip(t, me) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Trip) int {
		return a.StartDateTime.Compare(b.StartDateTime)
	})
	return out
}

// resolveUsers maps ids to users, skipping ids with no matching user.
func resolveUsers(db domain.Database, ids []domain.UserID) []domain.User {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u := db.User(id); u != nil {
			out = append(out, *u)
		}
	}
	return out
}
