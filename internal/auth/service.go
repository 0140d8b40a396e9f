package auth

import (
	"context"
	"errors"
	"fmt"

	"rwci-server/internal/store"
)

// Result is the outcome of a credential check.
type Result struct {
	User       *store.User
	NewAccount bool
	OK         bool
}

// Service provides authentication operations: first-contact account
// creation, password verification and session token issue/verify. It is the
// only component that looks at credentials; callers treat the comparison as
// an opaque predicate.
type Service struct {
	store     store.UserStore
	jwtConfig *JWTConfig
}

// NewService creates a new authentication service.
func NewService(userStore store.UserStore, jwtConfig *JWTConfig) *Service {
	return &Service{
		store:     userStore,
		jwtConfig: jwtConfig,
	}
}

// Authenticate resolves username/password to a user record. An unknown
// username creates and persists a fresh account (NewAccount=true), which
// implies success. A known username succeeds iff the password matches the
// stored credential; failure is a normal Result, not an error. Errors are
// reserved for storage faults.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Result, error) {
	if username == "" {
		return Result{}, nil
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return s.createAccount(ctx, username, password)
	case err != nil:
		return Result{}, fmt.Errorf("lookup user: %w", err)
	}

	if ComparePassword(user.PasswordHash, password) != nil {
		return Result{User: user}, nil
	}
	return Result{User: user, OK: true}, nil
}

// AuthenticateToken resolves a previously issued session token to a user
// record. An invalid or expired token is a normal failed Result.
func (s *Service) AuthenticateToken(ctx context.Context, tokenString string) (Result, error) {
	claims, err := ValidateToken(s.jwtConfig, tokenString)
	if err != nil {
		return Result{}, nil
	}

	user, err := s.store.GetUserByUsername(ctx, claims.Username)
	if errors.Is(err, store.ErrNotFound) {
		return Result{}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("lookup user: %w", err)
	}
	return Result{User: user, OK: true}, nil
}

// IssueToken creates a session token for a successfully authenticated user.
func (s *Service) IssueToken(user *store.User) (string, error) {
	return GenerateToken(s.jwtConfig, user.ID, user.Username)
}

func (s *Service) createAccount(ctx context.Context, username, password string) (Result, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return Result{}, err
	}

	user, err := s.store.CreateUser(ctx, username, hash)
	if errors.Is(err, store.ErrExists) {
		// Lost a race with a concurrent first-time auth for the same
		// username. Fall back to verifying against the winner's record.
		user, err = s.store.GetUserByUsername(ctx, username)
		if err != nil {
			return Result{}, fmt.Errorf("refetch user: %w", err)
		}
		ok := ComparePassword(user.PasswordHash, password) == nil
		return Result{User: user, OK: ok}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("create user: %w", err)
	}

	return Result{User: user, NewAccount: true, OK: true}, nil
}
