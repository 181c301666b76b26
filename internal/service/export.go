package service

import (
	"context"

	"github.com/pkordes/moto-trip-planner/internal/domain"
	"github.com/pkordes/moto-trip-planner/internal/repo"
)

// ExportService assembles a flat export of the trips the current user can see.
type ExportService struct {
	repo repo.DatabaseRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(r repo.DatabaseRepo) *ExportService {
	return &ExportService{repo: r}
}

// Export returns one ExportRow per participant across all visible trips,
// in stored trip order. Trips with no participants contribute one row with
// empty participant fields.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	db, me, err := current(ctx, s.repo, "service.ExportService.Export")
	if err != nil {
		return nil, err
	}

	rows := []domain.ExportRow{}
	for _, t := range db.Trips {
		if !domain.CanSeeTrip(t, me.ID) {
			continue
		}
		base := domain.ExportRow{
			TripID:        t.ID,
			TripTitle:     t.Title,
			StartingPoint: t.StartingPoint,
			StartDateTime: t.StartDateTime,
			EngineRule:    t.EngineRule,
			Visibility:    t.Visibility,
		}
		if owner := db.User(t.OwnerID); owner != nil {
			base.OwnerEmail = owner.Email
		}
		if t.GroupID != "" {
			if g := db.Group(t.GroupID); g != nil {
				base.GroupName = g.Name
			}
		}

		if len(t.ParticipantIDs) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, pid := range t.ParticipantIDs {
			row := base
			row.ParticipantID = pid
			if p := db.User(pid); p != nil {
				row.ParticipantEmail = p.Email
				row.Compatible = domain.IsTripCompatible(t.EngineRule, *p)
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}
