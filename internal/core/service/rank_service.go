package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodrankr/backend/internal/core/domain"
	"github.com/foodrankr/backend/internal/core/ports"
)

// rankListLimit caps the public rank feed.
const rankListLimit = 50

type RankService struct {
	repo ports.RankRepository
	log  zerolog.Logger
}

func NewRankService(repo ports.RankRepository, log zerolog.Logger) *RankService {
	return &RankService{repo: repo, log: log}
}

// Create posts a rank for user. The user's company, country and cafe are
// copied onto the rank as they are right now.
func (s *RankService) Create(ctx context.Context, user *domain.User, in ports.RankInput) (*domain.FoodRank, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !user.HasCompany() {
		return nil, domain.ErrNoCompanyAssigned
	}
	if !domain.ValidRating(in.Rating) {
		return nil, domain.ErrInvalidRating
	}
	dish := strings.TrimSpace(in.Dish)
	if dish == "" || in.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	cafe := ""
	if user.CafeName != nil {
		cafe = *user.CafeName
	}

	now := time.Now().UTC()
	rank, err := s.repo.Create(ctx, &domain.FoodRank{
		UserID:    user.ID,
		CompanyID: *user.CompanyID,
		CafeName:  cafe,
		Country:   user.Country,
		Date:      calendarDate(in.Date),
		Dish:      dish,
		Rating:    in.Rating,
		ImageURL:  in.ImageURL,
		Comment:   in.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to create rank")
		return nil, fmt.Errorf("create rank: %w", err)
	}

	s.log.Info().Str("rank_id", rank.ID).Str("company_id", rank.CompanyID).Int("rating", rank.Rating).Msg("rank created")
	return rank, nil
}

// List returns the newest ranks matching in, at most rankListLimit of them.
func (s *RankService) List(ctx context.Context, in ports.ListRanksInput) ([]*domain.FoodRank, error) {
	if in.CompanyID != "" && !domain.IsValidID(in.CompanyID) {
		return nil, domain.ErrInvalidReference
	}

	filter := ports.RankFilter{CompanyID: in.CompanyID, Limit: rankListLimit}
	if in.Date != nil {
		d := calendarDate(*in.Date)
		filter.Date = &d
	}

	ranks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list ranks: %w", err)
	}
	return ranks, nil
}

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
