package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodrankr/backend/internal/core/domain"
	"github.com/foodrankr/backend/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories. They mirror the Mongo repositories' contracts,
// including the unique indexes on users.email and companies.(name, country).
// ---------------------------------------------------------------------------

var errStore = errors.New("store unavailable")

func newID() string { return primitive.NewObjectID().Hex() }

func strPtr(s string) *string { return &s }

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

type stubUserRepo struct {
	byID      map[string]*domain.User
	createErr error
	findErr   error
	updates   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	clone := cloneUser(user)
	clone.ID = newID()
	r.byID[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, upd domain.ProfileUpdate, ts time.Time) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	r.updates++
	if upd.Country != nil {
		u.Country = *upd.Country
	}
	if upd.CafeName != nil {
		u.CafeName = strPtr(*upd.CafeName)
	}
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.CompanyID != nil {
		u.CompanyID = strPtr(*upd.CompanyID)
	}
	u.UpdatedAt = ts
	return cloneUser(u), nil
}

func (r *stubUserRepo) AssignCompanyIfUnset(_ context.Context, email, companyID string, ts time.Time) (bool, error) {
	for _, u := range r.byID {
		if u.Email == email && !u.HasCompany() {
			u.CompanyID = strPtr(companyID)
			u.UpdatedAt = ts
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Count(context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

// seed stores u directly, assigning an id when it has none.
func (r *stubUserRepo) seed(u *domain.User) *domain.User {
	if u.ID == "" {
		u.ID = newID()
	}
	r.byID[u.ID] = cloneUser(u)
	return cloneUser(u)
}

type stubCompanyRepo struct {
	byID    map[string]*domain.Company
	findErr error
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{byID: make(map[string]*domain.Company)}
}

func cloneCompany(c *domain.Company) *domain.Company {
	clone := *c
	return &clone
}

func (r *stubCompanyRepo) Create(_ context.Context, c *domain.Company) (*domain.Company, error) {
	for _, existing := range r.byID {
		if existing.Name == c.Name && existing.Country == c.Country {
			return nil, domain.ErrCompanyExists
		}
	}
	clone := cloneCompany(c)
	clone.ID = newID()
	r.byID[clone.ID] = clone
	return cloneCompany(clone), nil
}

func (r *stubCompanyRepo) FindByID(_ context.Context, id string) (*domain.Company, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	return cloneCompany(c), nil
}

func (r *stubCompanyRepo) FindByName(_ context.Context, name string) (*domain.Company, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, c := range r.byID {
		if c.Name == name {
			return cloneCompany(c), nil
		}
	}
	return nil, domain.ErrCompanyNotFound
}

func (r *stubCompanyRepo) FindByNameAndCountry(_ context.Context, name, country string) (*domain.Company, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, c := range r.byID {
		if c.Name == name && c.Country == country {
			return cloneCompany(c), nil
		}
	}
	return nil, domain.ErrCompanyNotFound
}

func (r *stubCompanyRepo) List(_ context.Context, f ports.CompanyFilter) ([]*domain.Company, error) {
	var out []*domain.Company
	for _, c := range r.byID {
		if c.Approved != f.Approved {
			continue
		}
		if f.Country != "" && c.Country != f.Country {
			continue
		}
		out = append(out, cloneCompany(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubCompanyRepo) SetApproved(_ context.Context, id string, approved bool, ts time.Time) (*domain.Company, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	c.Approved = approved
	c.UpdatedAt = ts
	return cloneCompany(c), nil
}

func (r *stubCompanyRepo) Count(_ context.Context, approved *bool) (int64, error) {
	var n int64
	for _, c := range r.byID {
		if approved == nil || c.Approved == *approved {
			n++
		}
	}
	return n, nil
}

func (r *stubCompanyRepo) seed(c *domain.Company) *domain.Company {
	c.ID = newID()
	r.byID[c.ID] = cloneCompany(c)
	return cloneCompany(c)
}

type stubRequestRepo struct {
	byID map[string]*domain.PendingCompanyRequest
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{byID: make(map[string]*domain.PendingCompanyRequest)}
}

func cloneRequest(r *domain.PendingCompanyRequest) *domain.PendingCompanyRequest {
	clone := *r
	return &clone
}

func (r *stubRequestRepo) Create(_ context.Context, req *domain.PendingCompanyRequest) (*domain.PendingCompanyRequest, error) {
	clone := cloneRequest(req)
	clone.ID = newID()
	r.byID[clone.ID] = clone
	return cloneRequest(clone), nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id string) (*domain.PendingCompanyRequest, error) {
	req, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	return cloneRequest(req), nil
}

func (r *stubRequestRepo) FindOpen(_ context.Context, name, country string) (*domain.PendingCompanyRequest, error) {
	for _, req := range r.byID {
		if req.Name == name && req.Country == country && !req.Approved {
			return cloneRequest(req), nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (r *stubRequestRepo) AddRequester(_ context.Context, id, email string, ts time.Time) error {
	req, ok := r.byID[id]
	if !ok {
		return domain.ErrRequestNotFound
	}
	for _, existing := range req.Requesters {
		if existing == email {
			return nil
		}
	}
	req.Requesters = append(append([]string(nil), req.Requesters...), email)
	req.UpdatedAt = ts
	return nil
}

func (r *stubRequestRepo) ListOpen(context.Context) ([]*domain.PendingCompanyRequest, error) {
	var out []*domain.PendingCompanyRequest
	for _, req := range r.byID {
		if !req.Approved {
			out = append(out, cloneRequest(req))
		}
	}
	return out, nil
}

func (r *stubRequestRepo) MarkApproved(_ context.Context, id, companyID string, ts time.Time) (*domain.PendingCompanyRequest, error) {
	req, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	req.Approved = true
	req.CompanyID = strPtr(companyID)
	req.UpdatedAt = ts
	return cloneRequest(req), nil
}

func (r *stubRequestRepo) CountOpen(ctx context.Context) (int64, error) {
	open, _ := r.ListOpen(ctx)
	return int64(len(open)), nil
}

type stubRankRepo struct {
	ranks      []*domain.FoodRank
	lastFilter ports.RankFilter
}

func (r *stubRankRepo) Create(_ context.Context, rank *domain.FoodRank) (*domain.FoodRank, error) {
	clone := *rank
	clone.ID = newID()
	r.ranks = append(r.ranks, &clone)
	out := clone
	return &out, nil
}

func (r *stubRankRepo) List(_ context.Context, f ports.RankFilter) ([]*domain.FoodRank, error) {
	r.lastFilter = f
	var out []*domain.FoodRank
	for i := len(r.ranks) - 1; i >= 0 && len(out) < f.Limit; i-- {
		rank := r.ranks[i]
		if f.CompanyID != "" && rank.CompanyID != f.CompanyID {
			continue
		}
		if f.Date != nil && !rank.Date.Equal(*f.Date) {
			continue
		}
		clone := *rank
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubRankRepo) Count(context.Context) (int64, error) {
	return int64(len(r.ranks)), nil
}

// ---------------------------------------------------------------------------
// Security stubs
// ---------------------------------------------------------------------------

type stubHasher struct{}

func (stubHasher) Hash(secret string) (string, error) { return "hashed:" + secret, nil }

func (stubHasher) Verify(secret, hash string) bool { return hash == "hashed:"+secret }

// stubTokens maps tokens to subjects; "tok:<subject>" is valid for any subject.
type stubTokens struct {
	issued []string
}

func (t *stubTokens) Issue(subject string, _ time.Duration) (string, error) {
	t.issued = append(t.issued, subject)
	return "tok:" + subject, nil
}

func (t *stubTokens) Validate(token string) (string, error) {
	const prefix = "tok:"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", domain.ErrUnauthenticated
	}
	return token[len(prefix):], nil
}

type stubThrottle struct {
	blocked  bool
	blockErr error
	failures map[string]int
	resets   []string
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{failures: make(map[string]int)}
}

func (t *stubThrottle) Blocked(_ context.Context, key string) (bool, error) {
	return t.blocked, t.blockErr
}

func (t *stubThrottle) RecordFailure(_ context.Context, key string) error {
	t.failures[key]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, key string) error {
	t.resets = append(t.resets, key)
	return nil
}
