package service

import (
	"context"
	"fmt"

	"github.com/foodrankr/backend/internal/core/domain"
	"github.com/foodrankr/backend/internal/core/ports"
)

type StatsService struct {
	users     ports.UserRepository
	companies ports.CompanyRepository
	requests  ports.CompanyRequestRepository
	ranks     ports.RankRepository
}

func NewStatsService(
	users ports.UserRepository,
	companies ports.CompanyRepository,
	requests ports.CompanyRequestRepository,
	ranks ports.RankRepository,
) *StatsService {
	return &StatsService{users: users, companies: companies, requests: requests, ranks: ranks}
}

// Counts returns the admin dashboard counters.
func (s *StatsService) Counts(ctx context.Context, admin *domain.User) (*domain.Stats, error) {
	if _, err := RequireAdmin(admin); err != nil {
		return nil, err
	}

	var (
		st  domain.Stats
		err error
	)
	notApproved := false

	if st.Users, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if st.Companies, err = s.companies.Count(ctx, nil); err != nil {
		return nil, fmt.Errorf("count companies: %w", err)
	}
	if st.Ranks, err = s.ranks.Count(ctx); err != nil {
		return nil, fmt.Errorf("count ranks: %w", err)
	}
	if st.PendingCompanies, err = s.companies.Count(ctx, &notApproved); err != nil {
		return nil, fmt.Errorf("count pending companies: %w", err)
	}
	if st.PendingRequests, err = s.requests.CountOpen(ctx); err != nil {
		return nil, fmt.Errorf("count company requests: %w", err)
	}
	return &st, nil
}
