package cli

import (
	"errors"
	"strings"

	"github.com/pkordes/moto-trip-planner/internal/domain"
)

// Message turns an error returned by a command into the line shown to the
// user. Operation prefixes such as "service.TripService.Create: " are
// stripped; sentinel wording is kept except for validation errors, whose
// detail is self-explanatory.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, domain.ErrAuthRequired) {
		return "not signed in: run 'motoctl login <email>' first"
	}

	msg := unwrapMessage(err)
	if errors.Is(err, domain.ErrValidation) {
		msg = strings.TrimPrefix(msg, domain.ErrValidation.Error()+": ")
	}
	return msg
}

// unwrapMessage drops the leading "service.X.Y: " and "repo.X.Y: " segments.
// e.g. "service.TripService.Delete: not authorized: only the owner can change trip t1"
// → "not authorized: only the owner can change trip t1"
func unwrapMessage(err error) string {
	msg := err.Error()
	for strings.HasPrefix(msg, "service.") || strings.HasPrefix(msg, "repo.") {
		_, rest, ok := strings.Cut(msg, ": ")
		if !ok {
			break
		}
		msg = rest
	}
	return msg
}
