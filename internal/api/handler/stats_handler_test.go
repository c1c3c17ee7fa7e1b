package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/foodrankr/backend/internal/core/domain"
)

func TestStatsHandler_Get(t *testing.T) {
	stub := &stubStatsService{
		countsFn: func(ctx context.Context, admin *domain.User) (*domain.Stats, error) {
			if !admin.IsAdmin {
				return nil, domain.ErrForbidden
			}
			return &domain.Stats{Users: 3, Companies: 2, Ranks: 7, PendingCompanies: 1, PendingRequests: 4}, nil
		},
	}
	handler := NewStatsHandler(stub)

	c, rec := newContext(http.MethodGet, "/admin/stats", "")
	c.Set("user", &domain.User{ID: "a1", IsAdmin: true})
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp domain.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Users != 3 || resp.Ranks != 7 || resp.PendingRequests != 4 {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	c, _ = newContext(http.MethodGet, "/admin/stats", "")
	c.Set("user", &domain.User{ID: "u1"})
	if err := handler.Get(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
