// Package service contains the business rules of the trip planner.
// Every operation has the same shape: load the whole Database, resolve the
// acting user, validate, mutate in place, and save the whole Database.
// Validation always happens before the first mutation, so a rejected call
// leaves the stored Database untouched. No storage code lives here;
// services depend on the repo.DatabaseRepo interface.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkordes/moto-trip-planner/internal/domain"
	"github.com/pkordes/moto-trip-planner/internal/repo"
)

// errNoop is returned by a mutation that found nothing to change. mutate
// treats it as success and skips the save.
var errNoop = errors.New("no-op")

// mutation edits db on behalf of me. me points into db.Users.
type mutation func(db *domain.Database, me *domain.User) error

// mutate runs fn against a freshly loaded Database and saves the result.
// op prefixes every returned error, e.g. "service.GroupService.Update".
func mutate(ctx context.Context, r repo.DatabaseRepo, op string, fn mutation) error {
	db, err := r.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	me := db.CurrentUser()
	if me == nil {
		return fmt.Errorf("%s: %w", op, domain.ErrAuthRequired)
	}

	if err := fn(&db, me); err != nil {
		if errors.Is(err, errNoop) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.Save(ctx, db); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// current loads the Database and resolves the session user for read-only
// operations.
func current(ctx context.Context, r repo.DatabaseRepo, op string) (domain.Database, domain.User, error) {
	db, err := r.Load(ctx)
	if err != nil {
		return domain.Database{}, domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	me := db.CurrentUser()
	if me == nil {
		return domain.Database{}, domain.User{}, fmt.Errorf("%s: %w", op, domain.ErrAuthRequired)
	}
	return db, *me, nil
}

// without returns ids with every occurrence of id removed. The result is
// never nil.
func without(ids []domain.UserID, id domain.UserID) []domain.UserID {
	out := make([]domain.UserID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
