package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/restauranteos/restauranteos-backend/api/responses"
	"github.com/restauranteos/restauranteos-backend/api/validators"
	botflowsvc "github.com/restauranteos/restauranteos-backend/internal/botflows"
	checkoutsvc "github.com/restauranteos/restauranteos-backend/internal/checkout"
	productsvc "github.com/restauranteos/restauranteos-backend/internal/products"
	tenantsvc "github.com/restauranteos/restauranteos-backend/internal/tenants"
	trackingsvc "github.com/restauranteos/restauranteos-backend/internal/tracking"
	"github.com/restauranteos/restauranteos-backend/pkg/enums"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
	"github.com/restauranteos/restauranteos-backend/pkg/logger"
)

// An empty cart is a valid quote request. It prices the delivery fee alone,
// so storefronts can show the charge before the first item lands in the cart.
type quoteRequest struct {
	Items []checkoutsvc.QuoteItem `json:"items" validate:"dive"`
}

type checkoutRequest struct {
	CustomerName    string                     `json:"customer_name" validate:"required"`
	CustomerPhone   string                     `json:"customer_phone" validate:"required"`
	CustomerAddress *string                    `json:"customer_address,omitempty"`
	Notes           *string                    `json:"notes,omitempty"`
	PaymentMethod   *string                    `json:"payment_method,omitempty"`
	Items           []checkoutsvc.CheckoutItem `json:"items" validate:"required,min=1,dive"`
}

type botMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

func tenantSlug(r *http.Request) (string, error) {
	slug := strings.TrimSpace(chi.URLParam(r, "tenantSlug"))
	if slug == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "tenant slug is required")
	}
	return slug, nil
}

// PublicCatalog serves a tenant's menu grouped by category.
func PublicCatalog(tenants tenantsvc.Service, products productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if tenants == nil || products == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		slug, err := tenantSlug(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenant, err := tenants.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		catalog, err := products.Catalog(r.Context(), tenant.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"tenant": map[string]any{
				"slug":     tenant.Slug,
				"name":     tenant.Name,
				"city":     tenant.City,
				"delivery": tenant.Delivery,
				"hours":    tenant.Hours,
			},
			"catalog": catalog,
		})
	}
}

// PublicQuote prices a cart without persisting anything.
func PublicQuote(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		slug, err := tenantSlug(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body quoteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), checkoutsvc.QuoteInput{
			TenantSlug: slug,
			Items:      body.Items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// PublicCheckout persists the order and returns the WhatsApp handoff.
func PublicCheckout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		slug, err := tenantSlug(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var method *enums.PaymentMethod
		if body.PaymentMethod != nil && strings.TrimSpace(*body.PaymentMethod) != "" {
			parsed, err := enums.ParsePaymentMethod(strings.TrimSpace(*body.PaymentMethod))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
				return
			}
			method = &parsed
		}

		result, err := svc.Checkout(r.Context(), checkoutsvc.CheckoutInput{
			TenantSlug:      slug,
			CustomerName:    body.CustomerName,
			CustomerPhone:   body.CustomerPhone,
			CustomerAddress: body.CustomerAddress,
			Notes:           body.Notes,
			PaymentMethod:   method,
			Items:           body.Items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// PublicBotMessage answers an incoming customer message using the tenant's
// configured flows.
func PublicBotMessage(tenants tenantsvc.Service, bots botflowsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if tenants == nil || bots == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bot unavailable"))
			return
		}

		slug, err := tenantSlug(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenant, err := tenants.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body botMessageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reply, err := bots.Respond(r.Context(), tenant.ID, body.Message)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, reply)
	}
}

// PublicTrack serves the customer-facing order status projection. Order
// numbers are unguessable so no auth is required.
func PublicTrack(svc trackingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tracking unavailable"))
			return
		}

		orderNumber := strings.TrimSpace(chi.URLParam(r, "orderNumber"))
		if orderNumber == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order number is required"))
			return
		}

		projection, err := svc.Track(r.Context(), orderNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, projection)
	}
}
