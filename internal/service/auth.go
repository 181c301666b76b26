package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/pkordes/moto-trip-planner/internal/clock"
	"github.com/pkordes/moto-trip-planner/internal/domain"
	"github.com/pkordes/moto-trip-planner/internal/repo"
)

// DefaultDevPassword is stored for users created by a lenient login that
// supplied no password.
const DefaultDevPassword = "dev"

// MinPasswordLength is the shortest password strict registration accepts.
const MinPasswordLength = 4

// AuthService manages the session. In lenient mode any email signs in,
// creating the user on first use, and Register is the same as Login.
// In strict mode Register and Login check credentials.
//
// None of this is real security: passwords are stored in plain text in the
// local store.
type AuthService struct {
	repo    repo.DatabaseRepo
	clock   clock.Clock
	lenient bool
}

// NewAuthService constructs an AuthService. lenient selects the dev-bypass
// auth mode.
func NewAuthService(r repo.DatabaseRepo, clk clock.Clock, lenient bool) *AuthService {
	return &AuthService{repo: r, clock: clk, lenient: lenient}
}

// Lenient reports whether the service runs in dev-bypass mode.
func (s *AuthService) Lenient() bool { return s.lenient }

// Login signs in the user with the given email and returns them.
//
// Lenient mode: email must not be empty after trimming; an unknown email
// creates a new user (placed first in the user list) whose password is the
// one supplied, or DefaultDevPassword when password is empty. The password
// of an existing user is not checked.
//
// Strict mode: returns domain.ErrInvalidCredentials when no user has that
// email or the password does not match.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	db, err := s.repo.Load(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	normalized := normalizeEmail(email)

	var user domain.User
	if s.lenient {
		if normalized == "" {
			return domain.User{}, fmt.Errorf("service.AuthService.Login: %w: please enter an email", domain.ErrValidation)
		}
		if existing := db.UserByEmail(normalized); existing != nil {
			user = *existing
		} else {
			if password == "" {
				password = DefaultDevPassword
			}
			user = s.newUser(normalized, password)
			db.Users = append([]domain.User{user}, db.Users...)
		}
	} else {
		existing := db.UserByEmail(normalized)
		if existing == nil {
			return domain.User{}, fmt.Errorf("service.AuthService.Login: %w: no user with that email", domain.ErrInvalidCredentials)
		}
		if existing.Password != password {
			return domain.User{}, fmt.Errorf("service.AuthService.Login: %w: wrong password", domain.ErrInvalidCredentials)
		}
		user = *existing
	}

	if err := s.startSession(ctx, db, user.ID, "service.AuthService.Login"); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Register creates a user and signs them in. In lenient mode it is Login.
//
// Strict mode returns domain.ErrValidation when the email has no "@", the
// password is shorter than MinPasswordLength, or the email is taken.
func (s *AuthService) Register(ctx context.Context, email, password string) (domain.User, error) {
	if s.lenient {
		return s.Login(ctx, email, password)
	}

	db, err := s.repo.Load(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	normalized := normalizeEmail(email)

	if !strings.Contains(normalized, "@") {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w: please use a valid email", domain.ErrValidation)
	}
	if passwordLength(password) < MinPasswordLength {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w: password must be at least %d characters", domain.ErrValidation, MinPasswordLength)
	}
	if db.UserByEmail(normalized) != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w: email already registered", domain.ErrValidation)
	}

	user := s.newUser(normalized, password)
	db.Users = append(db.Users, user)

	if err := s.startSession(ctx, db, user.ID, "service.AuthService.Register"); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Logout clears the session. It never fails on an already signed-out store.
func (s *AuthService) Logout(ctx context.Context) error {
	db, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("service.AuthService.Logout: %w", err)
	}
	db.SetCurrentUser(nil)
	if err := s.repo.Save(ctx, db); err != nil {
		return fmt.Errorf("service.AuthService.Logout: %w", err)
	}
	return nil
}

// CurrentUser returns the signed-in user, or domain.ErrAuthRequired.
func (s *AuthService) CurrentUser(ctx context.Context) (domain.User, error) {
	_, me, err := current(ctx, s.repo, "service.AuthService.CurrentUser")
	return me, err
}

func (s *AuthService) startSession(ctx context.Context, db domain.Database, id domain.UserID, op string) error {
	db.SetCurrentUser(&id)
	if err := s.repo.Save(ctx, db); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *AuthService) newUser(email, password string) domain.User {
	return domain.User{
		ID:        domain.NewUserID(),
		Email:     email,
		Password:  password,
		CreatedAt: s.clock.Now(),
		Profile: domain.UserProfile{
			Name:        domain.ProfileName(email),
			Motorcycles: []domain.Motorcycle{},
		},
	}
}

// passwordLength counts UTF-16 code units, so a character outside the Basic
// Multilingual Plane (most emoji) counts as two.
func passwordLength(password string) int {
	return len(utf16.Encode([]rune(password)))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
