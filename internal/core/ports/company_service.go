package ports

import (
	"context"

	"github.com/foodrankr/backend/internal/core/domain"
)

// ListCompaniesInput carries the query parameters of the public listing.
type ListCompaniesInput struct {
	Country  string
	Approved *bool // nil = approved only
}

// CompanyService is the company approval workflow.
type CompanyService interface {
	List(ctx context.Context, in ListCompaniesInput) ([]*domain.Company, error)
	Create(ctx context.Context, name, country string, creator *domain.User) (*domain.Company, error)
	SetApproval(ctx context.Context, companyID string, approved bool, admin *domain.User) (*domain.Company, error)
	ListRequests(ctx context.Context, admin *domain.User) ([]*domain.PendingCompanyRequest, error)
	ApproveRequest(ctx context.Context, requestID string, admin *domain.User) (*domain.Company, error)
}
