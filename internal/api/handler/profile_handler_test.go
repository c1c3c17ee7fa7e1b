package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/foodrankr/backend/internal/core/domain"
)

func TestProfileHandler_Get(t *testing.T) {
	handler := NewProfileHandler(&stubProfileService{})

	c, rec := newContext(http.MethodGet, "/user/profile", "")
	c.Set("user", &domain.User{ID: "u1", FullName: "Alice"})
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["full_name"] != "Alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProfileHandler_Update_ForwardsOnlyProvidedFields(t *testing.T) {
	caller := &domain.User{ID: "u1", Country: "US"}
	stub := &stubProfileService{
		updateFn: func(ctx context.Context, user *domain.User, update domain.ProfileUpdate) (*domain.User, error) {
			if user != caller {
				t.Fatalf("unexpected user %+v", user)
			}
			if update.Country == nil || *update.Country != "MX" {
				t.Fatalf("country not forwarded: %+v", update)
			}
			if update.FullName != nil || update.CafeName != nil || update.CompanyID != nil {
				t.Fatalf("unexpected fields set: %+v", update)
			}
			updated := *user
			updated.Country = *update.Country
			return &updated, nil
		},
	}
	handler := NewProfileHandler(stub)

	c, rec := newContext(http.MethodPut, "/user/profile", `{"country":"MX"}`)
	c.Set("user", caller)
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["country"] != "MX" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProfileHandler_Update_CompanyNotApproved(t *testing.T) {
	stub := &stubProfileService{
		updateFn: func(ctx context.Context, user *domain.User, update domain.ProfileUpdate) (*domain.User, error) {
			return nil, domain.ErrCompanyNotApproved
		},
	}
	handler := NewProfileHandler(stub)

	c, _ := newContext(http.MethodPut, "/user/profile", `{"company_id":"65a000000000000000000000"}`)
	c.Set("user", &domain.User{ID: "u1"})
	if err := handler.Update(c); !errors.Is(err, domain.ErrCompanyNotApproved) {
		t.Fatalf("expected ErrCompanyNotApproved, got %v", err)
	}
}
