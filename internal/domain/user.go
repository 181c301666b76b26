package domain

import (
	"strings"
	"time"
)

// User is a rider. Email is the natural lookup key and is stored trimmed
// and lowercased. Password is a dev-only plaintext secret kept in the
// local store.
type User struct {
	ID        UserID      `json:"id"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Profile   UserProfile `json:"profile"`
	CreatedAt time.Time   `json:"createdAt"`
}

// UserProfile holds the editable part of a User. Motorcycles is the
// rider's garage, owned exclusively by this profile.
type UserProfile struct {
	Name        string       `json:"name"`
	Bio         string       `json:"bio"`
	Motorcycles []Motorcycle `json:"motorcycles"`
}

// Motorcycle is a single bike in a rider's garage.
type Motorcycle struct {
	ID       MotorcycleID `json:"id"`
	Brand    string       `json:"brand"`
	Model    string       `json:"model"`
	Year     int          `json:"year"`
	EngineCC int          `json:"engineCc"`
}

// ProfileName derives a display name from the local part of an email,
// falling back to "Rider" when the local part is empty.
func ProfileName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return "Rider"
	}
	return local
}
