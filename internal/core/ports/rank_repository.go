package ports

import (
	"context"
	"time"

	"github.com/foodrankr/backend/internal/core/domain"
)

// RankFilter carries the query parameters for listing ranks.
type RankFilter struct {
	CompanyID string     // optional
	Date      *time.Time // optional: calendar date of the rank
	Limit     int
}

// RankRepository defines persistence operations for food ranks.
type RankRepository interface {
	Create(ctx context.Context, r *domain.FoodRank) (*domain.FoodRank, error)
	// List returns the newest ranks first, at most filter.Limit of them.
	List(ctx context.Context, filter RankFilter) ([]*domain.FoodRank, error)
	Count(ctx context.Context) (int64, error)
}
