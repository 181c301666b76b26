package domain_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/moto-trip-planner/internal/domain"
)

func TestEmptyDatabase(t *testing.T) {
	db := domain.EmptyDatabase()

	assert.Equal(t, domain.SchemaVersion, db.Version)
	assert.NotNil(t, db.Users)
	assert.NotNil(t, db.Groups)
	assert.NotNil(t, db.Trips)
	assert.Nil(t, db.Session.CurrentUserID)
	assert.Nil(t, db.CurrentUser())
}

func TestDatabase_Finders(t *testing.T) {
	db := domain.EmptyDatabase()
	db.Users = append(db.Users,
		domain.User{ID: "user_a", Email: "a@local"},
		domain.User{ID: "user_b", Email: "b@local"},
	)
	db.Groups = append(db.Groups, domain.Group{ID: "group_1"})
	db.Trips = append(db.Trips, domain.Trip{ID: "trip_1"})

	require.NotNil(t, db.User("user_b"))
	assert.Equal(t, "b@local", db.User("user_b").Email)
	assert.Nil(t, db.User("user_missing"))

	require.NotNil(t, db.UserByEmail("a@local"))
	assert.Equal(t, domain.UserID("user_a"), db.UserByEmail("a@local").ID)
	assert.Nil(t, db.UserByEmail("A@LOCAL"), "lookup expects a normalized email")

	assert.NotNil(t, db.Group("group_1"))
	assert.Nil(t, db.Group("group_2"))
	assert.NotNil(t, db.Trip("trip_1"))
	assert.Nil(t, db.Trip("trip_2"))
}

// Finders return pointers into the collections so edits land in the aggregate.
func TestDatabase_FinderMutatesInPlace(t *testing.T) {
	db := domain.EmptyDatabase()
	db.Groups = append(db.Groups, domain.Group{ID: "group_1", Name: "before"})

	db.Group("group_1").Name = "after"

	assert.Equal(t, "after", db.Groups[0].Name)
}

func TestDatabase_CurrentUser(t *testing.T) {
	db := domain.EmptyDatabase()
	db.Users = append(db.Users, domain.User{ID: "user_a"})

	id := domain.UserID("user_a")
	db.SetCurrentUser(&id)
	require.NotNil(t, db.CurrentUser())
	assert.Equal(t, id, db.CurrentUser().ID)

	dangling := domain.UserID("user_gone")
	db.SetCurrentUser(&dangling)
	assert.Nil(t, db.CurrentUser(), "a session pointing at a missing user resolves to nobody")

	db.SetCurrentUser(nil)
	assert.Nil(t, db.CurrentUser())
}

func TestDatabase_Normalize(t *testing.T) {
	var db domain.Database
	require.NoError(t, json.Unmarshal([]byte(`{"version":1,"users":[{"id":"user_a","profile":{}}],"groups":[{"id":"group_1"}],"trips":[{"id":"trip_1"}]}`), &db))

	db.Normalize()

	assert.NotNil(t, db.Users[0].Profile.Motorcycles)
	assert.NotNil(t, db.Groups[0].MemberIDs)
	assert.NotNil(t, db.Trips[0].ParticipantIDs)
}

func TestDatabase_JSONShape(t *testing.T) {
	db := domain.EmptyDatabase()
	db.Trips = append(db.Trips, domain.Trip{ID: "trip_1", ParticipantIDs: []domain.UserID{}})

	raw, err := json.Marshal(db)
	require.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, `"version":1`)
	assert.Contains(t, s, `"session":{"currentUserId":null}`)
	assert.Contains(t, s, `"participantIds":[]`)
	assert.False(t, strings.Contains(s, `"groupId"`), "an unlinked trip omits groupId")
}

func TestProfileName(t *testing.T) {
	assert.Equal(t, "rider", domain.ProfileName("rider@example.com"))
	assert.Equal(t, "Rider", domain.ProfileName("@example.com"))
	assert.Equal(t, "nodomain", domain.ProfileName("nodomain"))
}
