package ports

import (
	"context"
	"time"

	"github.com/foodrankr/backend/internal/core/domain"
)

// RankInput carries a new rank posted by a user.
type RankInput struct {
	Date     time.Time
	Dish     string
	Rating   int
	Comment  *string
	ImageURL *string
}

// ListRanksInput carries the optional filters of the public rank feed.
type ListRanksInput struct {
	CompanyID string
	Date      *time.Time
}

type RankService interface {
	Create(ctx context.Context, user *domain.User, in RankInput) (*domain.FoodRank, error)
	List(ctx context.Context, in ListRanksInput) ([]*domain.FoodRank, error)
}

type StatsService interface {
	Counts(ctx context.Context, admin *domain.User) (*domain.Stats, error)
}
