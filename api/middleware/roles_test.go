package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/restauranteos/restauranteos-backend/pkg/enums"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	handler := RequireRole(nil, enums.MemberRoleOwner, enums.MemberRoleStaff)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.MemberRoleStaff)))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRequireRoleBlocksUnlistedRole(t *testing.T) {
	handler := RequireRole(nil, enums.MemberRoleOwner)(okHandler())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/tenant/settings", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.MemberRoleStaff)))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestRequireRoleSuperadminBypass(t *testing.T) {
	handler := RequireRole(nil, enums.MemberRoleOwner)(okHandler())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/tenant/settings", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.MemberRoleSuperadmin)))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRequireTenantBlocksMissingScope(t *testing.T) {
	handler := RequireTenant(nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.MemberRoleSuperadmin)))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestIdempotencyRouteRules(t *testing.T) {
	cases := []struct {
		method  string
		pattern string
		want    bool
	}{
		{http.MethodPost, "/api/v1/auth/register", true},
		{http.MethodPost, "/api/v1/t/{tenantSlug}/checkout", true},
		{http.MethodPost, "/api/v1/orders/{orderId}/advance", true},
		{http.MethodPost, "/api/v1/orders/{orderId}/payments", true},
		{http.MethodPost, "/api/v1/payments/{paymentId}/confirm", true},
		{http.MethodPut, "/api/v1/tenant/settings", true},
		{http.MethodGet, "/api/v1/orders/", false},
		{http.MethodPost, "/api/v1/auth/login", false},
		{http.MethodPost, "/api/v1/t/{tenantSlug}/quote", false},
	}

	for _, tc := range cases {
		if _, got := routeTTL(tc.method, tc.pattern); got != tc.want {
			t.Fatalf("routeTTL(%s %s) = %v want %v", tc.method, tc.pattern, got, tc.want)
		}
	}
}
