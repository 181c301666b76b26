package repo

import (
	"time"

	"github.com/pkordes/moto-trip-planner/internal/clock"
	"github.com/pkordes/moto-trip-planner/internal/domain"
)

// Demo credentials created by Seed.
const (
	DemoEmail    = "demo@local"
	DemoPassword = "demo"
)

// Seed builds the demo Database: one rider with two bikes, a public and a
// private group, and three upcoming trips covering every engine rule and
// both visibilities. Nobody is signed in afterwards.
func Seed(clk clock.Clock) domain.Database {
	now := clk.Now()
	db := domain.EmptyDatabase()

	demo := domain.User{
		ID:        domain.NewUserID(),
		Email:     DemoEmail,
		Password:  DemoPassword,
		CreatedAt: now,
		Profile: domain.UserProfile{
			Name: "Demo Rider",
			Bio:  "Local demo profile (stored on this machine).",
			Motorcycles: []domain.Motorcycle{
				{ID: domain.NewMotorcycleID(), Brand: "Yamaha", Model: "MT-07", Year: 2022, EngineCC: 689},
				{ID: domain.NewMotorcycleID(), Brand: "Honda", Model: "CB500X", Year: 2021, EngineCC: 471},
			},
		},
	}
	db.Users = append(db.Users, demo)

	sunrise := domain.Group{
		ID:          domain.NewGroupID(),
		Name:        "Sunday Sunrise Rides",
		Description: "Early morning rides + coffee.",
		Visibility:  domain.VisibilityPublic,
		OwnerID:     demo.ID,
		MemberIDs:   []domain.UserID{demo.ID},
		CreatedAt:   now,
	}
	bigBikes := domain.Group{
		ID:          domain.NewGroupID(),
		Name:        "Big Bike Crew",
		Description: "Private group for longer highway trips.",
		Visibility:  domain.VisibilityPrivate,
		OwnerID:     demo.ID,
		MemberIDs:   []domain.UserID{demo.ID},
		CreatedAt:   now,
	}
	db.Groups = append(db.Groups, sunrise, bigBikes)

	db.Trips = append(db.Trips,
		domain.Trip{
			ID:             domain.NewTripID(),
			Title:          "Coastal run",
			Description:    "Easy pace. Meet up, fuel up, then roll.",
			StartingPoint:  "Gas station (main highway)",
			StartDateTime:  now.Add(24 * time.Hour),
			EngineRule:     domain.EngineRuleOpen,
			Visibility:     domain.VisibilityPublic,
			OwnerID:        demo.ID,
			GroupID:        sunrise.ID,
			ParticipantIDs: []domain.UserID{demo.ID},
			CreatedAt:      now,
		},
		domain.Trip{
			ID:             domain.NewTripID(),
			Title:          "Twisties practice",
			Description:    "Private skills ride. Ride your ride.",
			StartingPoint:  "Mountain lookout",
			StartDateTime:  now.Add(48 * time.Hour),
			EngineRule:     domain.EngineRuleSmall,
			Visibility:     domain.VisibilityPrivate,
			OwnerID:        demo.ID,
			ParticipantIDs: []domain.UserID{demo.ID},
			CreatedAt:      now,
		},
		domain.Trip{
			ID:             domain.NewTripID(),
			Title:          "Highway day trip",
			Description:    "Higher speed cruising, longer distance.",
			StartingPoint:  "Mall parking lot",
			StartDateTime:  now.Add(72 * time.Hour),
			EngineRule:     domain.EngineRuleBig,
			Visibility:     domain.VisibilityPublic,
			OwnerID:        demo.ID,
			GroupID:        bigBikes.ID,
			ParticipantIDs: []domain.UserID{demo.ID},
			CreatedAt:      now,
		},
	)

	return db
}
