package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/moto-trip-planner/internal/clock"
	"github.com/pkordes/moto-trip-planner/internal/domain"
	"github.com/pkordes/moto-trip-planner/internal/repo"
	"github.com/pkordes/moto-trip-planner/internal/service"
)

// ---- Create ----------------------------------------------------------------

func TestGroupService_Create_OwnerIsOnlyMember(t *testing.T) {
	e := newEnv(t, true)
	me := e.loginAs(t, "owner@rider.io")

	g, err := e.groups.Create(context.Background(), service.GroupInput{
		Name:       "Night Owls",
		Visibility: domain.VisibilityPrivate,
	})

	require.NoError(t, err)
	assert.Equal(t, me.ID, g.OwnerID)
	assert.Equal(t, []domain.UserID{me.ID}, g.MemberIDs)
	assert.Equal(t, seedTime, g.CreatedAt)

	db := e.load(t)
	require.Len(t, db.Groups, 3)
	assert.Equal(t, g, db.Groups[0], "new groups are listed first")
}

func TestGroupService_Create_RequiresSession(t *testing.T) {
	e := newEnv(t, true)

	_, err := e.groups.Create(context.Background(), service.GroupInput{Name: "x"})

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Len(t, e.load(t).Groups, 2)
}

// ---- Update / Delete -------------------------------------------------------

func TestGroupService_Update_ByOwner(t *testing.T) {
	e := newEnv(t, true)
	e.loginAs(t, repo.DemoEmail)
	g := e.groupNamed(t, "Big Bike Crew")

	got, err := e.groups.Update(context.Background(), g.ID, service.GroupPatch{
		Description: ptr("Highways only"),
		Visibility:  ptr(domain.VisibilityPublic),
	})

	require.NoError(t, err)
	assert.Equal(t, "Big Bike Crew", got.Name)
	assert.Equal(t, "Highways only", got.Description)
	assert.Equal(t, domain.VisibilityPublic, got.Visibility)
	assert.Equal(t, g.MemberIDs, got.MemberIDs)
}

func TestGroupService_Update_NonOwnerLeavesGroupUnchanged(t *testing.T) {
	e := newEnv(t, true)
	g := e.groupNamed(t, "Sunday Sunrise Rides")
	e.loginAs(t, "intruder@rider.io")

	_, err := e.groups.Update(context.Background(), g.ID, service.GroupPatch{Name: ptr("Mine now")})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, g, e.groupNamed(t, "Sunday Sunrise Rides"))
}

func TestGroupService_Update_Missing(t *testing.T) {
	e := newEnv(t, true)
	e.loginAs(t, repo.DemoEmail)

	_, err := e.groups.Update(context.Background(), "group_missing", service.GroupPatch{Name: ptr("x")})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGroupService_Delete_UnlinksTripsAndKeepsThem(t *testing.T) {
	e := newEnv(t, true)
	e.loginAs(t, repo.DemoEmail)
	g := e.groupNamed(t, "Sunday Sunrise Rides")
	before := e.load(t)

	require.NoError(t, e.groups.Delete(context.Background(), g.ID))

	db := e.load(t)
	assert.Nil(t, db.Group(g.ID))
	require.Len(t, db.Trips, len(before.Trips))
	for _, tr := range db.Trips {
		assert.NotEqual(t, g.ID, tr.GroupID, "trip %s still references the deleted group", tr.Title)
	}
	assert.Empty(t, e.tripTitled(t, "Coastal run").GroupID)
	assert.NotEmpty(t, e.tripTitled(t, "Highway day trip").GroupID, "trips of other groups are untouched")
}

func TestGroupService_Delete_NonOwner(t *testing.T) {
	e := newEnv(t, true)
	g := e.groupNamed(t, "Sunday Sunrise Rides")
	e.loginAs(t, "intruder@rider.io")

	err := e.groups.Delete(context.Background(), g.ID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.NotNil(t, e.load(t).Group(g.ID))
	assert.Equal(t, g.ID, e.tripTitled(t, "Coastal run").GroupID)
}

func TestGroupService_Delete_Missing(t *testing.T) {
	e := newEnv(t, true)
	e.loginAs(t, repo.DemoEmail)

	assert.ErrorIs(t, e.groups.Delete(context.Background(), "group_missing"), domain.ErrNotFound)
}

// ---- Join / Leave ----------------------------------------------------------

func TestGroupService_Join_Idempotent(t *testing.T) {
	e := newEnv(t, true)
	g := e.groupNamed(t, "Sunday Sunrise Rides")
	me := e.loginAs(t, "joiner@rider.io")
	ctx := context.Background()

	require.NoError(t, e.groups.Join(ctx, g.ID))
	require.NoError(t, e.groups.Join(ctx, g.ID))

	got := e.groupNamed(t, "Sunday Sunrise Rides")
	assert.Equal(t, append(g.MemberIDs, me.ID), got.MemberIDs)
}

func TestGroupService_JoinAndLeave_MissingGroupIsNoop(t *testing.T) {
	e := newEnv(t, true)
	e.loginAs(t, "joiner@rider.io")
	before := e.load(t)
	ctx := context.Background()

	require.NoError(t, e.groups.Join(ctx, "group_missing"))
	require.NoError(t, e.groups.Leave(ctx, "group_missing"))

	assert.Equal(t, before, e.load(t))
}

func TestGroupService_Leave_RemovesMember(t *testing.T) {
	e := newEnv(t, true)
	g := e.groupNamed(t, "Sunday Sunrise Rides")
	e.loginAs(t, "joiner@rider.io")
	ctx := context.Background()
	require.NoError(t, e.groups.Join(ctx, g.ID))

	require.NoError(t, e.groups.Leave(ctx, g.ID))
	require.NoError(t, e.groups.Leave(ctx, g.ID))

	assert.Equal(t, g.MemberIDs, e.groupNamed(t, "Sunday Sunrise Rides").MemberIDs)
}

func TestGroupService_Leave_OwnerCannotLeave(t *testing.T) {
	e := newEnv(t, true)
	e.loginAs(t, repo.DemoEmail)
	g := e.groupNamed(t, "Big Bike Crew")

	err := e.groups.Leave(context.Background(), g.ID)

	assert.ErrorIs(t, err, domain.ErrOwnerCannotLeave)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, g.MemberIDs, e.groupNamed(t, "Big Bike Crew").MemberIDs)
}

func TestGroupService_RejectedCallDoesNotSave(t *testing.T) {
	db := repo.Seed(clock.Fake(seedTime))
	demo := db.Users[0].ID
	db.SetCurrentUser(&demo)
	saved := false
	r := &mockDatabaseRepo{
		load: func(context.Context) (domain.Database, error) { return db, nil },
		save: func(context.Context, domain.Database) error {
			saved = true
			return nil
		},
	}
	svc := service.NewGroupService(r, clock.Fake(seedTime))

	err := svc.Leave(context.Background(), db.Groups[0].ID)

	assert.ErrorIs(t, err, domain.ErrOwnerCannotLeave)
	assert.False(t, saved)
}

func TestGroupService_SaveErrorPropagates(t *testing.T) {
	boom := errors.New("quota exceeded")
	db := repo.Seed(clock.Fake(seedTime))
	demo := db.Users[0].ID
	db.SetCurrentUser(&demo)
	r := &mockDatabaseRepo{
		load: func(context.Context) (domain.Database, error) { return db, nil },
		save: func(context.Context, domain.Database) error { return boom },
	}
	svc := service.NewGroupService(r, clock.Fake(seedTime))

	_, err := svc.Create(context.Background(), service.GroupInput{Name: "x"})

	assert.ErrorIs(t, err, boom)
}
