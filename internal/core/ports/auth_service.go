package ports

import (
	"context"

	"github.com/foodrankr/backend/internal/core/domain"
)

// RegisterInput carries a registration request. Company is either a company
// id or a company name and may be empty.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Country  string
	Company  string
	CafeName *string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// IdentityResolver turns a bearer token into the stored user it names.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}
