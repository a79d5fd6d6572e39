package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/restauranteos/restauranteos-backend/api/middleware"
	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	"github.com/restauranteos/restauranteos-backend/pkg/enums"
)

func adminRouter(svc stubTenantService) http.Handler {
	router := chi.NewRouter()
	router.Route("/api/v1/admin/tenants", func(r chi.Router) {
		r.Use(middleware.RequireRole(nil, enums.MemberRoleSuperadmin))
		r.Get("/", AdminListTenants(svc, nil))
		r.Post("/{tenantId}/suspend", AdminSuspendTenant(svc, nil))
		r.Post("/{tenantId}/activate", AdminActivateTenant(svc, nil))
	})
	return router
}

func roleRequest(req *http.Request, role enums.MemberRole) *http.Request {
	ctx := middleware.WithUserID(req.Context(), uuid.NewString())
	ctx = middleware.WithRole(ctx, string(role))
	return req.WithContext(ctx)
}

func TestAdminSuspendTenant(t *testing.T) {
	tenant := &models.Tenant{ID: uuid.New(), Slug: "la-cocina", Name: "La Cocina"}
	router := adminRouter(stubTenantService{tenant: tenant})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/tenants/"+tenant.ID.String()+"/suspend", nil)
	req = roleRequest(req, enums.MemberRoleSuperadmin)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
}

func TestAdminEndpointsRejectOwner(t *testing.T) {
	tenant := &models.Tenant{ID: uuid.New(), Slug: "la-cocina", Name: "La Cocina"}
	router := adminRouter(stubTenantService{tenant: tenant})

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/admin/tenants/"},
		{http.MethodPost, "/api/v1/admin/tenants/" + tenant.ID.String() + "/suspend"},
		{http.MethodPost, "/api/v1/admin/tenants/" + tenant.ID.String() + "/activate"},
	}
	for _, route := range paths {
		req := httptest.NewRequest(route.method, route.path, nil)
		req = roleRequest(req, enums.MemberRoleOwner)
		resp := httptest.NewRecorder()

		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusForbidden {
			t.Fatalf("%s %s: expected 403 got %d", route.method, route.path, resp.Code)
		}
	}
}

func TestAdminListTenants(t *testing.T) {
	tenant := &models.Tenant{ID: uuid.New(), Slug: "la-cocina", Name: "La Cocina"}
	router := adminRouter(stubTenantService{tenant: tenant})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/tenants/", nil)
	req = roleRequest(req, enums.MemberRoleSuperadmin)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data struct {
			Tenants []models.Tenant `json:"tenants"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Tenants) != 1 || envelope.Data.Tenants[0].Slug != "la-cocina" {
		t.Fatalf("unexpected tenants payload: %+v", envelope.Data.Tenants)
	}
}

func TestAdminBadTenantID(t *testing.T) {
	router := adminRouter(stubTenantService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/tenants/not-a-uuid/activate", nil)
	req = roleRequest(req, enums.MemberRoleSuperadmin)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
