package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/moto-trip-planner/internal/clock"
	"github.com/pkordes/moto-trip-planner/internal/domain"
	"github.com/pkordes/moto-trip-planner/internal/repo"
	"github.com/pkordes/moto-trip-planner/internal/service"
)

var seedTime = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

// mockDatabaseRepo is a hand-written test double for repo.DatabaseRepo.
// Set only the function fields your test needs.
type mockDatabaseRepo struct {
	load  func(ctx context.Context) (domain.Database, error)
	save  func(ctx context.Context, db domain.Database) error
	reset func(ctx context.Context) error
}

func (m *mockDatabaseRepo) Load(ctx context.Context) (domain.Database, error) {
	return m.load(ctx)
}
func (m *mockDatabaseRepo) Save(ctx context.Context, db domain.Database) error {
	return m.save(ctx, db)
}
func (m *mockDatabaseRepo) Reset(ctx context.Context) error {
	return m.reset(ctx)
}

// compile-time check: mockDatabaseRepo must satisfy repo.DatabaseRepo.
var _ repo.DatabaseRepo = (*mockDatabaseRepo)(nil)

// env wires every service to one seeded in-memory store.
type env struct {
	repo    repo.DatabaseRepo
	clock   *clock.FakeClock
	auth    *service.AuthService
	profile *service.ProfileService
	groups  *service.GroupService
	trips   *service.TripService
	browse  *service.BrowseService
	export  *service.ExportService
}

func newEnv(t *testing.T, lenient bool) *env {
	t.Helper()
	clk := clock.Fake(seedTime)
	r := repo.NewDatabaseRepo(repo.NewMemoryStore(), clk, nil)
	return &env{
		repo:    r,
		clock:   clk,
		auth:    service.NewAuthService(r, clk, lenient),
		profile: service.NewProfileService(r),
		groups:  service.NewGroupService(r, clk),
		trips:   service.NewTripService(r, clk),
		browse:  service.NewBrowseService(r, clk),
		export:  service.NewExportService(r),
	}
}

// load returns the stored Database. The result is a pointer so the
// finders can be called on it directly.
func (e *env) load(t *testing.T) *domain.Database {
	t.Helper()
	db, err := e.repo.Load(context.Background())
	require.NoError(t, err)
	return &db
}

// loginAs signs in email through lenient login, creating the user if needed.
func (e *env) loginAs(t *testing.T, email string) domain.User {
	t.Helper()
	u, err := e.auth.Login(context.Background(), email, "")
	require.NoError(t, err)
	return u
}

// loginWithBikes signs in email and replaces their garage with bikes of
// the given displacements.
func (e *env) loginWithBikes(t *testing.T, email string, ccs ...int) domain.User {
	t.Helper()
	e.loginAs(t, email)
	bikes := make([]domain.Motorcycle, 0, len(ccs))
	for _, cc := range ccs {
		bikes = append(bikes, domain.Motorcycle{ID: domain.NewMotorcycleID(), Brand: "Test", Model: "Bike", Year: 2020, EngineCC: cc})
	}
	_, err := e.profile.Update(context.Background(), service.ProfilePatch{Motorcycles: bikes})
	require.NoError(t, err)
	db := e.load(t)
	return *db.CurrentUser()
}

func (e *env) groupNamed(t *testing.T, name string) domain.Group {
	t.Helper()
	db := e.load(t)
	for _, g := range db.Groups {
		if g.Name == name {
			return g
		}
	}
	t.Fatalf("no group named %q", name)
	return domain.Group{}
}

func (e *env) tripTitled(t *testing.T, title string) domain.Trip {
	t.Helper()
	db := e.load(t)
	for _, tr := range db.Trips {
		if tr.Title == title {
			return tr
		}
	}
	t.Fatalf("no trip titled %q", title)
	return domain.Trip{}
}

func ptr[T any](v T) *T { return &v }
