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

// LoginThrottle abstracts the failed-login counter (Redis).
type LoginThrottle interface {
	Blocked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// CompanyResolver maps a registration company reference to a company id and
// raises a company request for references that match nothing.
type CompanyResolver interface {
	Resolve(ctx context.Context, reference string) (string, error)
	RequestCompany(ctx context.Context, name, country, requestedBy string)
}

// AuthService implements registration and login.
type AuthService struct {
	users     ports.UserRepository
	companies CompanyResolver
	hasher    ports.PasswordHasher
	tokens    ports.TokenService
	throttle  LoginThrottle
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	companies CompanyResolver,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	throttle LoginThrottle,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		companies: companies,
		hasher:    hasher,
		tokens:    tokens,
		throttle:  throttle,
		log:       log,
	}
}

// maxPasswordBytes is the longest password bcrypt hashes without truncation.
const maxPasswordBytes = 72

// Register creates a non-admin user and returns a token for it. An unknown
// company reference does not fail registration: a pending company request is
// raised once the user is stored and the user starts without a company.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	if in.Email == "" || in.Password == "" || strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Country) == "" {
		return "", nil, domain.ErrInvalidInput
	}
	if len(in.Password) > maxPasswordBytes {
		return "", nil, fmt.Errorf("%w: password exceeds %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return "", nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("register: lookup email: %w", err)
	}

	var companyID *string
	var unresolved string
	if ref := strings.TrimSpace(in.Company); ref != "" {
		id, err := s.companies.Resolve(ctx, ref)
		switch {
		case err == nil:
			companyID = &id
		case errors.Is(err, domain.ErrCompanyNotFound):
			unresolved = ref
		default:
			s.log.Warn().Err(err).Str("reference", ref).Msg("company lookup failed, registering without company")
		}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Country:      in.Country,
		CompanyID:    companyID,
		CafeName:     in.CafeName,
		IsAdmin:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", nil, err
	}

	if unresolved != "" {
		s.companies.RequestCompany(ctx, unresolved, in.Country, user.Email)
	}

	token, err := s.tokens.Issue(user.ID, 0)
	if err != nil {
		return "", nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Bool("has_company", user.HasCompany()).Msg("user registered")
	return token, user, nil
}

// Login checks the credentials and returns a fresh token. Unknown emails and
// wrong passwords are reported the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
		} else if blocked {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	token, err := s.tokens.Issue(user.ID, 0)
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}
