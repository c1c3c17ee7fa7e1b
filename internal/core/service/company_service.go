package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodrankr/backend/internal/core/domain"
	"github.com/foodrankr/backend/internal/core/ports"
)

// CompanyService runs the company approval workflow.
//
// The (name, country) uniqueness check before an insert is not atomic; the
// repository backs it with a unique index so a concurrent duplicate still
// surfaces as domain.ErrCompanyExists. Approval is only checked when a company
// is assigned to a user, so a later un-approval does not detach existing users.
type CompanyService struct {
	companies ports.CompanyRepository
	requests  ports.CompanyRequestRepository
	users     ports.UserRepository
	log       zerolog.Logger
}

func NewCompanyService(
	companies ports.CompanyRepository,
	requests ports.CompanyRequestRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *CompanyService {
	return &CompanyService{companies: companies, requests: requests, users: users, log: log}
}

// Resolve maps a registration reference to a company id. The reference is
// tried as an id, then as an exact name; a match is returned whatever its
// approval state. It returns domain.ErrCompanyNotFound when nothing matches.
func (s *CompanyService) Resolve(ctx context.Context, reference string) (string, error) {
	if domain.IsValidID(reference) {
		c, err := s.companies.FindByID(ctx, reference)
		if err == nil {
			return c.ID, nil
		}
		if !errors.Is(err, domain.ErrCompanyNotFound) {
			s.log.Warn().Err(err).Str("reference", reference).Msg("company lookup by id failed")
		}
	}

	c, err := s.companies.FindByName(ctx, reference)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return "", err
		}
		return "", fmt.Errorf("resolve company: %w", err)
	}
	return c.ID, nil
}

// RequestCompany records requestedBy against the open request for
// (name, country), raising a new request when none is open. It never fails:
// store errors are logged and the registrant simply stays without a request.
func (s *CompanyService) RequestCompany(ctx context.Context, name, country, requestedBy string) {
	log := s.log.With().Str("reference", name).Str("country", country).Logger()
	now := time.Now().UTC()

	open, err := s.requests.FindOpen(ctx, name, country)
	switch {
	case err == nil:
		if requestedBy == "" {
			return
		}
		if err := s.requests.AddRequester(ctx, open.ID, requestedBy, now); err != nil {
			log.Warn().Err(err).Str("request_id", open.ID).Msg("failed to record company requester")
			return
		}
		log.Debug().Str("request_id", open.ID).Msg("requester added to open company request")
		return
	case !errors.Is(err, domain.ErrRequestNotFound):
		log.Warn().Err(err).Msg("company request lookup failed, skipping request")
		return
	}

	req := &domain.PendingCompanyRequest{
		Name:      name,
		Country:   country,
		Approved:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if requestedBy != "" {
		req.RequestedBy = &requestedBy
		req.Requesters = []string{requestedBy}
	}
	if _, err := s.requests.Create(ctx, req); err != nil {
		log.Warn().Err(err).Msg("failed to create company request")
		return
	}

	log.Info().Msg("company request created")
}

// List returns companies sorted by name. Only approved companies are listed
// unless in.Approved says otherwise.
func (s *CompanyService) List(ctx context.Context, in ports.ListCompaniesInput) ([]*domain.Company, error) {
	filter := ports.CompanyFilter{Country: in.Country, Approved: true}
	if in.Approved != nil {
		filter.Approved = *in.Approved
	}
	companies, err := s.companies.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// Create records a company. Admin-created companies are approved right away;
// anyone else's stays pending.
func (s *CompanyService) Create(ctx context.Context, name, country string, creator *domain.User) (*domain.Company, error) {
	if creator == nil {
		return nil, domain.ErrUnauthenticated
	}
	name, country = strings.TrimSpace(name), strings.TrimSpace(country)
	if name == "" || country == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.companies.FindByNameAndCountry(ctx, name, country); err == nil {
		return nil, domain.ErrCompanyExists
	} else if !errors.Is(err, domain.ErrCompanyNotFound) {
		return nil, fmt.Errorf("create company: %w", err)
	}

	now := time.Now().UTC()
	createdBy := creator.ID
	created, err := s.companies.Create(ctx, &domain.Company{
		Name:      name,
		Country:   country,
		Approved:  creator.IsAdmin,
		CreatedBy: &createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("company_id", created.ID).
		Str("created_by", creator.ID).
		Bool("approved", created.Approved).
		Msg("company created")
	return created, nil
}

// SetApproval sets the approval flag. Repeating the same value only bumps
// updated_at.
func (s *CompanyService) SetApproval(ctx context.Context, companyID string, approved bool, admin *domain.User) (*domain.Company, error) {
	if _, err := RequireAdmin(admin); err != nil {
		return nil, err
	}
	if !domain.IsValidID(companyID) {
		return nil, domain.ErrInvalidReference
	}

	c, err := s.companies.SetApproved(ctx, companyID, approved, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("set approval: %w", err)
	}

	s.log.Info().Str("company_id", c.ID).Bool("approved", approved).Str("admin_id", admin.ID).Msg("company approval changed")
	return c, nil
}

// CheckAssignable reports whether companyID may be put on a user profile.
// ProfileService runs it before the single profile write.
func (s *CompanyService) CheckAssignable(ctx context.Context, companyID string) error {
	if !domain.IsValidID(companyID) {
		return domain.ErrInvalidReference
	}
	c, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return domain.ErrCompanyNotApproved
		}
		return fmt.Errorf("check company: %w", err)
	}
	if !c.Approved {
		return domain.ErrCompanyNotApproved
	}
	return nil
}

// ListRequests returns the company requests still waiting for an admin.
func (s *CompanyService) ListRequests(ctx context.Context, admin *domain.User) ([]*domain.PendingCompanyRequest, error) {
	if _, err := RequireAdmin(admin); err != nil {
		return nil, err
	}
	reqs, err := s.requests.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list company requests: %w", err)
	}
	return reqs, nil
}

// ApproveRequest promotes a pending request into an approved company, links
// the request to it and assigns the company to every recorded requester who
// still has none. Approving an already promoted request returns its company.
func (s *CompanyService) ApproveRequest(ctx context.Context, requestID string, admin *domain.User) (*domain.Company, error) {
	if _, err := RequireAdmin(admin); err != nil {
		return nil, err
	}
	if !domain.IsValidID(requestID) {
		return nil, domain.ErrInvalidReference
	}

	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("approve request: %w", err)
	}
	if req.Approved && req.CompanyID != nil {
		c, err := s.companies.FindByID(ctx, *req.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("approve request: %w", err)
		}
		return c, nil
	}

	company, err := s.approvedCompanyFor(ctx, req.Name, req.Country)
	if err != nil {
		return nil, fmt.Errorf("approve request: %w", err)
	}

	now := time.Now().UTC()
	if _, err := s.requests.MarkApproved(ctx, req.ID, company.ID, now); err != nil {
		return nil, fmt.Errorf("approve request: %w", err)
	}

	assigned := 0
	for _, email := range req.AllRequesters() {
		ok, err := s.users.AssignCompanyIfUnset(ctx, email, company.ID, now)
		if err != nil {
			s.log.Warn().Err(err).Str("request_id", req.ID).Msg("failed to assign company to requester")
			continue
		}
		if ok {
			assigned++
		}
	}
	s.log.Info().
		Str("request_id", req.ID).
		Str("company_id", company.ID).
		Str("admin_id", admin.ID).
		Int("requesters_assigned", assigned).
		Msg("company request approved")

	return company, nil
}

// approvedCompanyFor returns the approved company for (name, country),
// creating or approving it as needed.
func (s *CompanyService) approvedCompanyFor(ctx context.Context, name, country string) (*domain.Company, error) {
	c, err := s.companies.FindByNameAndCountry(ctx, name, country)
	switch {
	case err == nil:
		if c.Approved {
			return c, nil
		}
		return s.companies.SetApproved(ctx, c.ID, true, time.Now().UTC())
	case !errors.Is(err, domain.ErrCompanyNotFound):
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.companies.Create(ctx, &domain.Company{
		Name:      name,
		Country:   country,
		Approved:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if errors.Is(err, domain.ErrCompanyExists) {
		// Lost a race with a concurrent insert; approve whatever won.
		return s.approvedCompanyFor(ctx, name, country)
	}
	return created, err
}
