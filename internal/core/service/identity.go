package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodrankr/backend/internal/core/domain"
	"github.com/foodrankr/backend/internal/core/ports"
)

// Identity resolves bearer tokens to stored users.
type Identity struct {
	tokens ports.TokenService
	users  ports.UserRepository
}

func NewIdentity(tokens ports.TokenService, users ports.UserRepository) *Identity {
	return &Identity{tokens: tokens, users: users}
}

// Resolve validates token and loads its subject. An invalid token and a
// subject that names no user fail identically with domain.ErrUnauthenticated.
func (s *Identity) Resolve(ctx context.Context, token string) (*domain.User, error) {
	subject, err := s.tokens.Validate(token)
	if err != nil || !domain.IsValidID(subject) {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	return user, nil
}

// RequireAdmin returns user unchanged when it carries the admin flag and
// domain.ErrForbidden otherwise.
func RequireAdmin(user *domain.User) (*domain.User, error) {
	if user == nil || !user.IsAdmin {
		return nil, domain.ErrForbidden
	}
	return user, nil
}
