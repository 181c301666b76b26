package service

import (
	"context"

	"github.com/pkordes/moto-trip-planner/internal/domain"
	"github.com/pkordes/moto-trip-planner/internal/repo"
)

// ProfileService edits the current user's profile and garage.
type ProfileService struct {
	repo repo.DatabaseRepo
}

// NewProfileService constructs a ProfileService backed by the provided repo.
func NewProfileService(r repo.DatabaseRepo) *ProfileService {
	return &ProfileService{repo: r}
}

// ProfilePatch lists the profile fields to change. Nil fields are left as
// they are; a non-nil Motorcycles replaces the whole garage.
type ProfilePatch struct {
	Name        *string
	Bio         *string
	Motorcycles []domain.Motorcycle
}

// MotorcycleInput is a bike to add to the garage; the id is generated.
type MotorcycleInput struct {
	Brand    string
	Model    string
	Year     int
	EngineCC int
}

// Update merges patch into the current user's profile and returns the result.
func (s *ProfileService) Update(ctx context.Context, patch ProfilePatch) (domain.UserProfile, error) {
	var out domain.UserProfile
	err := mutate(ctx, s.repo, "service.ProfileService.Update", func(_ *domain.Database, me *domain.User) error {
		if patch.Name != nil {
			me.Profile.Name = *patch.Name
		}
		if patch.Bio != nil {
			me.Profile.Bio = *patch.Bio
		}
		if patch.Motorcycles != nil {
			me.Profile.Motorcycles = append([]domain.Motorcycle{}, patch.Motorcycles...)
		}
		out = me.Profile
		return nil
	})
	if err != nil {
		return domain.UserProfile{}, err
	}
	return out, nil
}

// AddMotorcycle appends a bike to the current user's garage.
func (s *ProfileService) AddMotorcycle(ctx context.Context, in MotorcycleInput) (domain.Motorcycle, error) {
	moto := domain.Motorcycle{
		ID:       domain.NewMotorcycleID(),
		Brand:    in.Brand,
		Model:    in.Model,
		Year:     in.Year,
		EngineCC: in.EngineCC,
	}
	err := mutate(ctx, s.repo, "service.ProfileService.AddMotorcycle", func(_ *domain.Database, me *domain.User) error {
		me.Profile.Motorcycles = append(me.Profile.Motorcycles, moto)
		return nil
	})
	if err != nil {
		return domain.Motorcycle{}, err
	}
	return moto, nil
}

// RemoveMotorcycle drops the bike with the given id from the current user's
// garage. An unknown id is ignored.
func (s *ProfileService) RemoveMotorcycle(ctx context.Context, id domain.MotorcycleID) error {
	return mutate(ctx, s.repo, "service.ProfileService.RemoveMotorcycle", func(_ *domain.Database, me *domain.User) error {
		kept := make([]domain.Motorcycle, 0, len(me.Profile.Motorcycles))
		for _, m := range me.Profile.Motorcycles {
			if m.ID != id {
				kept = append(kept, m)
			}
		}
		me.Profile.Motorcycles = kept
		return nil
	})
}
