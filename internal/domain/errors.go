package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an update or delete targets a group or trip
// that does not exist. Join and leave operations on missing ids are silent
// no-ops and never return it.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule
// (e.g. malformed email or short password at strict registration).
var ErrValidation = errors.New("validation error")

// ErrAuthRequired is returned by every operation acting on behalf of the
// current user when no session user resolves.
var ErrAuthRequired = errors.New("not authenticated")

// ErrForbidden is returned when the acting user is not allowed to perform
// the operation, most often because they are not the entity's owner.
var ErrForbidden = errors.New("not authorized")

// ErrInvalidCredentials is returned by strict-mode login when the email is
// unknown or the password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNotMember is returned when creating a trip for a group the actor has
// not joined. errors.Is(ErrNotMember, ErrForbidden) holds.
var ErrNotMember = fmt.Errorf("%w: you must be a member of the group to create trips for it", ErrForbidden)

// ErrOwnerCannotLeave is returned when a group owner tries to leave their
// own group. errors.Is(ErrOwnerCannotLeave, ErrForbidden) holds.
var ErrOwnerCannotLeave = fmt.Errorf("%w: owner cannot leave, delete the group instead", ErrForbidden)
