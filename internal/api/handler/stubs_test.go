package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/foodrankr/backend/internal/core/domain"
	"github.com/foodrankr/backend/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

type stubCompanyService struct {
	listFn           func(ctx context.Context, in ports.ListCompaniesInput) ([]*domain.Company, error)
	createFn         func(ctx context.Context, name, country string, creator *domain.User) (*domain.Company, error)
	setApprovalFn    func(ctx context.Context, id string, approved bool, admin *domain.User) (*domain.Company, error)
	listRequestsFn   func(ctx context.Context, admin *domain.User) ([]*domain.PendingCompanyRequest, error)
	approveRequestFn func(ctx context.Context, id string, admin *domain.User) (*domain.Company, error)
}

func (s *stubCompanyService) List(ctx context.Context, in ports.ListCompaniesInput) ([]*domain.Company, error) {
	return s.listFn(ctx, in)
}

func (s *stubCompanyService) Create(ctx context.Context, name, country string, creator *domain.User) (*domain.Company, error) {
	return s.createFn(ctx, name, country, creator)
}

func (s *stubCompanyService) SetApproval(ctx context.Context, id string, approved bool, admin *domain.User) (*domain.Company, error) {
	return s.setApprovalFn(ctx, id, approved, admin)
}

func (s *stubCompanyService) ListRequests(ctx context.Context, admin *domain.User) ([]*domain.PendingCompanyRequest, error) {
	return s.listRequestsFn(ctx, admin)
}

func (s *stubCompanyService) ApproveRequest(ctx context.Context, id string, admin *domain.User) (*domain.Company, error) {
	return s.approveRequestFn(ctx, id, admin)
}

type stubProfileService struct {
	updateFn func(ctx context.Context, user *domain.User, update domain.ProfileUpdate) (*domain.User, error)
}

func (s *stubProfileService) Update(ctx context.Context, user *domain.User, update domain.ProfileUpdate) (*domain.User, error) {
	return s.updateFn(ctx, user, update)
}

type stubRankService struct {
	createFn func(ctx context.Context, user *domain.User, in ports.RankInput) (*domain.FoodRank, error)
	listFn   func(ctx context.Context, in ports.ListRanksInput) ([]*domain.FoodRank, error)
}

func (s *stubRankService) Create(ctx context.Context, user *domain.User, in ports.RankInput) (*domain.FoodRank, error) {
	return s.createFn(ctx, user, in)
}

func (s *stubRankService) List(ctx context.Context, in ports.ListRanksInput) ([]*domain.FoodRank, error) {
	return s.listFn(ctx, in)
}

type stubStatsService struct {
	countsFn func(ctx context.Context, admin *domain.User) (*domain.Stats, error)
}

func (s *stubStatsService) Counts(ctx context.Context, admin *domain.User) (*domain.Stats, error) {
	return s.countsFn(ctx, admin)
}

// newContext builds an echo context for a JSON request, with the validator
// registered the same way the router does it.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// requireHTTPError asserts err is an echo.HTTPError carrying code.
func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d (%v)", code, he.Code, he.Message)
	}
}

func strPtr(s string) *string { return &s }
