package ports

import (
	"context"
	"time"

	"github.com/foodrankr/backend/internal/core/domain"
)

// CompanyFilter narrows a company listing.
type CompanyFilter struct {
	Country  string // empty = any country
	Approved bool
}

// CompanyRepository defines persistence operations for companies.
type CompanyRepository interface {
	// Create inserts a company. A duplicate (name, country) pair yields
	// domain.ErrCompanyExists.
	Create(ctx context.Context, c *domain.Company) (*domain.Company, error)
	FindByID(ctx context.Context, id string) (*domain.Company, error)
	// FindByName returns the first company with exactly this name, in any country.
	FindByName(ctx context.Context, name string) (*domain.Company, error)
	FindByNameAndCountry(ctx context.Context, name, country string) (*domain.Company, error)
	List(ctx context.Context, filter CompanyFilter) ([]*domain.Company, error)
	// SetApproved updates the approval flag and updated_at and returns the
	// stored company, or domain.ErrCompanyNotFound.
	SetApproved(ctx context.Context, id string, approved bool, ts time.Time) (*domain.Company, error)
	// Count counts companies; a nil approved counts all of them.
	Count(ctx context.Context, approved *bool) (int64, error)
}

// CompanyRequestRepository stores pending company requests raised at registration.
type CompanyRequestRepository interface {
	Create(ctx context.Context, r *domain.PendingCompanyRequest) (*domain.PendingCompanyRequest, error)
	FindByID(ctx context.Context, id string) (*domain.PendingCompanyRequest, error)
	// FindOpen returns the unapproved request for (name, country), or domain.ErrRequestNotFound.
	FindOpen(ctx context.Context, name, country string) (*domain.PendingCompanyRequest, error)
	// AddRequester records email on the request once, or returns domain.ErrRequestNotFound.
	AddRequester(ctx context.Context, id, email string, ts time.Time) error
	ListOpen(ctx context.Context) ([]*domain.PendingCompanyRequest, error)
	// MarkApproved flags the request approved and links it to companyID.
	MarkApproved(ctx context.Context, id, companyID string, ts time.Time) (*domain.PendingCompanyRequest, error)
	CountOpen(ctx context.Context) (int64, error)
}
