package controllers

import (
	"net/http"
	"strings"

	"github.com/restauranteos/restauranteos-backend/api/responses"
	"github.com/restauranteos/restauranteos-backend/api/validators"
	tenantsvc "github.com/restauranteos/restauranteos-backend/internal/tenants"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
	"github.com/restauranteos/restauranteos-backend/pkg/logger"
	"github.com/restauranteos/restauranteos-backend/pkg/pagination"
)

// AdminListTenants returns one page of every tenant on the platform,
// suspended ones included.
func AdminListTenants(svc tenantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"tenants":     list.Tenants,
			"next_cursor": list.NextCursor,
		})
	}
}

// AdminSuspendTenant takes a tenant off the platform until it is activated
// again.
func AdminSuspendTenant(svc tenantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant service unavailable"))
			return
		}

		tenantID, err := parsePathUUID(r, "tenantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenant, err := svc.Suspend(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tenant)
	}
}

// AdminActivateTenant lifts a tenant suspension.
func AdminActivateTenant(svc tenantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant service unavailable"))
			return
		}

		tenantID, err := parsePathUUID(r, "tenantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenant, err := svc.Activate(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tenant)
	}
}
