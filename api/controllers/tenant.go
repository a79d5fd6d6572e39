package controllers

import (
	"net/http"

	"github.com/restauranteos/restauranteos-backend/api/responses"
	"github.com/restauranteos/restauranteos-backend/api/validators"
	tenantsvc "github.com/restauranteos/restauranteos-backend/internal/tenants"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
	"github.com/restauranteos/restauranteos-backend/pkg/logger"
	"github.com/restauranteos/restauranteos-backend/pkg/types"
)

type updateTenantSettingsRequest struct {
	Name           *string               `json:"name,omitempty"`
	Description    *string               `json:"description,omitempty"`
	Phone          *string               `json:"phone,omitempty"`
	WhatsAppNumber *string               `json:"whatsapp_number,omitempty"`
	Address        *string               `json:"address,omitempty"`
	City           *string               `json:"city,omitempty"`
	Delivery       *types.DeliveryConfig `json:"delivery,omitempty"`
	Hours          *types.OperatingHours `json:"hours,omitempty"`
	BotFallback    *string               `json:"bot_fallback,omitempty"`
}

// TenantSettings returns the authenticated tenant's profile and settings.
func TenantSettings(svc tenantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant service unavailable"))
			return
		}

		tenantID, err := tenantScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenant, err := svc.Get(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tenant)
	}
}

// UpdateTenantSettings mutates the provided settings fields.
func UpdateTenantSettings(svc tenantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant service unavailable"))
			return
		}

		tenantID, err := tenantScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateTenantSettingsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenant, err := svc.UpdateSettings(r.Context(), tenantsvc.UpdateSettingsInput{
			TenantID:       tenantID,
			Name:           body.Name,
			Description:    body.Description,
			Phone:          body.Phone,
			WhatsAppNumber: body.WhatsAppNumber,
			Address:        body.Address,
			City:           body.City,
			Delivery:       body.Delivery,
			Hours:          body.Hours,
			BotFallback:    body.BotFallback,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tenant)
	}
}
