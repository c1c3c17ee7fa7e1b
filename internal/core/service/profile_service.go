package service

import (
	"context"
	"fmt"
	"time"

	"github.com/foodrankr/backend/internal/core/domain"
	"github.com/foodrankr/backend/internal/core/ports"
)

// CompanyChecker validates a company before it is put on a profile.
type CompanyChecker interface {
	CheckAssignable(ctx context.Context, companyID string) error
}

// ProfileService applies self-service profile updates.
type ProfileService struct {
	users     ports.UserRepository
	companies CompanyChecker
}

func NewProfileService(users ports.UserRepository, companies CompanyChecker) *ProfileService {
	return &ProfileService{users: users, companies: companies}
}

// Update writes the non-nil fields of update in a single store write. A
// company change is validated first, so a rejected company leaves the
// profile untouched.
func (s *ProfileService) Update(ctx context.Context, user *domain.User, update domain.ProfileUpdate) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if update.Empty() {
		return user, nil
	}
	if update.CompanyID != nil {
		if err := s.companies.CheckAssignable(ctx, *update.CompanyID); err != nil {
			return nil, err
		}
	}

	updated, err := s.users.UpdateProfile(ctx, user.ID, update, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}
