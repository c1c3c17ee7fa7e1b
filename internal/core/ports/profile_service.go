package ports

import (
	"context"

	"github.com/foodrankr/backend/internal/core/domain"
)

type ProfileService interface {
	Update(ctx context.Context, user *domain.User, update domain.ProfileUpdate) (*domain.User, error)
}
