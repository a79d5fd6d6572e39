package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/restauranteos/restauranteos-backend/api/middleware"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
)

// tenantScope extracts the authenticated tenant from the request context.
func tenantScope(r *http.Request) (uuid.UUID, error) {
	raw := middleware.TenantIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "tenant context missing")
	}
	tenantID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tenant id")
	}
	return tenantID, nil
}

// actorScope extracts the authenticated user and role from the request context.
func actorScope(r *http.Request) (uuid.UUID, string, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return userID, middleware.RoleFromContext(r.Context()), nil
}
