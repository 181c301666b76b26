package domain

// SchemaVersion is the only Database version this build understands.
// A stored payload with any other version is discarded and re-seeded.
const SchemaVersion = 1

// Database is the single aggregate root. It is loaded and saved as one
// unit; there are no partial writes.
type Database struct {
	Version int     `json:"version"`
	Users   []User  `json:"users"`
	Groups  []Group `json:"groups"`
	Trips   []Trip  `json:"trips"`
	Session Session `json:"session"`
}

// Session holds the signed-in user. CurrentUserID is a weak reference and
// is nil when nobody is signed in.
type Session struct {
	CurrentUserID *UserID `json:"currentUserId"`
}

// EmptyDatabase returns a version-tagged Database with empty, non-nil
// collections and no active session.
func EmptyDatabase() Database {
	return Database{
		Version: SchemaVersion,
		Users:   []User{},
		Groups:  []Group{},
		Trips:   []Trip{},
	}
}

// Normalize replaces nil collections with empty ones so callers can append
// and range without checks, and so a save/load round trip is exact.
func (db *Database) Normalize() {
	if db.Users == nil {
		db.Users = []User{}
	}
	if db.Groups == nil {
		db.Groups = []Group{}
	}
	if db.Trips == nil {
		db.Trips = []Trip{}
	}
	for i := range db.Users {
		if db.Users[i].Profile.Motorcycles == nil {
			db.Users[i].Profile.Motorcycles = []Motorcycle{}
		}
	}
	for i := range db.Groups {
		if db.Groups[i].MemberIDs == nil {
			db.Groups[i].MemberIDs = []UserID{}
		}
	}
	for i := range db.Trips {
		if db.Trips[i].ParticipantIDs == nil {
			db.Trips[i].ParticipantIDs = []UserID{}
		}
	}
}

// The finders below do a linear search and return a pointer into the
// collection, so callers mutate the aggregate in place. They return nil
// when nothing matches.

// User returns the user with the given id.
func (db *Database) User(id UserID) *User {
	for i := range db.Users {
		if db.Users[i].ID == id {
			return &db.Users[i]
		}
	}
	return nil
}

// UserByEmail returns the first user whose stored email equals email.
// The caller is responsible for normalizing email first.
func (db *Database) UserByEmail(email string) *User {
	for i := range db.Users {
		if db.Users[i].Email == email {
			return &db.Users[i]
		}
	}
	return nil
}

// Group returns the group with the given id.
func (db *Database) Group(id GroupID) *Group {
	for i := range db.Groups {
		if db.Groups[i].ID == id {
			return &db.Groups[i]
		}
	}
	return nil
}

// Trip returns the trip with the given id.
func (db *Database) Trip(id TripID) *Trip {
	for i := range db.Trips {
		if db.Trips[i].ID == id {
			return &db.Trips[i]
		}
	}
	return nil
}

// CurrentUser resolves the session to a user, or nil when there is no
// session or it points at a user that no longer exists.
func (db *Database) CurrentUser() *User {
	if db.Session.CurrentUserID == nil {
		return nil
	}
	return db.User(*db.Session.CurrentUserID)
}

// SetCurrentUser points the session at id. A nil id signs out.
func (db *Database) SetCurrentUser(id *UserID) {
	db.Session.CurrentUserID = id
}
