package ports

import (
	"context"
	"time"

	"github.com/foodrankr/backend/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts the user and returns it with its store-assigned ID.
	// A duplicate email yields domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateProfile applies the non-nil fields of update together with
	// updated_at and returns the stored user.
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate, ts time.Time) (*domain.User, error)
	// AssignCompanyIfUnset sets company_id on the user with the given email
	// only when none is assigned. It reports whether a user was changed.
	AssignCompanyIfUnset(ctx context.Context, email, companyID string, ts time.Time) (bool, error)
	Count(ctx context.Context) (int64, error)
}
