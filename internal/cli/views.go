package cli

import (
	"github.com/pkordes/moto-trip-planner/internal/domain"
	"github.com/pkordes/moto-trip-planner/internal/service"
)

// The --json shapes below mirror the service views with every User replaced
// by a userView, so stored passwords never reach the output.

// userView is the printable part of a User.
type userView struct {
	ID      domain.UserID      `json:"id"`
	Email   string             `json:"email"`
	Profile domain.UserProfile `json:"profile"`
}

func newUserView(u domain.User) userView {
	return userView{ID: u.ID, Email: u.Email, Profile: u.Profile}
}

// newUserViewPtr maps a resolved reference; nil stays nil.
func newUserViewPtr(u *domain.User) *userView {
	if u == nil {
		return nil
	}
	v := newUserView(*u)
	return &v
}

func newUserViews(users []domain.User) []userView {
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, newUserView(u))
	}
	return out
}

type groupDetailView struct {
	Group    domain.Group  `json:"group"`
	Owner    *userView     `json:"owner"`
	Members  []userView    `json:"members"`
	Trips    []domain.Trip `json:"trips"`
	IsOwner  bool          `json:"isOwner"`
	IsMember bool          `json:"isMember"`
}

func newGroupDetailView(d service.GroupDetail) groupDetailView {
	return groupDetailView{
		Group:    d.Group,
		Owner:    newUserViewPtr(d.Owner),
		Members:  newUserViews(d.Members),
		Trips:    d.Trips,
		IsOwner:  d.IsOwner,
		IsMember: d.IsMember,
	}
}

type tripDetailView struct {
	Trip         domain.Trip   `json:"trip"`
	Owner        *userView     `json:"owner"`
	Group        *domain.Group `json:"group"`
	Participants []userView    `json:"participants"`
	IsOwner      bool          `json:"isOwner"`
	Joined       bool          `json:"joined"`
	Compatible   bool          `json:"compatible"`
	Upcoming     bool          `json:"upcoming"`
}

func newTripDetailView(d service.TripDetail) tripDetailView {
	return tripDetailView{
		Trip:         d.Trip,
		Owner:        newUserViewPtr(d.Owner),
		Group:        d.Group,
		Participants: newUserViews(d.Participants),
		IsOwner:      d.IsOwner,
		Joined:       d.Joined,
		Compatible:   d.Compatible,
		Upcoming:     d.Upcoming,
	}
}

type dashboardView struct {
	Me       userView       `json:"me"`
	MyGroups []domain.Group `json:"myGroups"`
	MyTrips  []domain.Trip  `json:"myTrips"`
	Upcoming []domain.Trip  `json:"upcoming"`
}

func newDashboardView(d service.Dashboard) dashboardView {
	return dashboardView{
		Me:       newUserView(d.Me),
		MyGroups: d.MyGroups,
		MyTrips:  d.MyTrips,
		Upcoming: d.Upcoming,
	}
}
