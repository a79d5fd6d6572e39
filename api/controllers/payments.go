package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/restauranteos/restauranteos-backend/api/responses"
	"github.com/restauranteos/restauranteos-backend/api/validators"
	internalpayments "github.com/restauranteos/restauranteos-backend/internal/payments"
	"github.com/restauranteos/restauranteos-backend/pkg/enums"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
	"github.com/restauranteos/restauranteos-backend/pkg/logger"
	"github.com/restauranteos/restauranteos-backend/pkg/pagination"
)

type recordPaymentRequest struct {
	Method      string  `json:"method" validate:"required"`
	AmountCents int     `json:"amount_cents" validate:"required,gt=0"`
	ReceiptURL  *string `json:"receipt_url,omitempty"`
}

type resolvePaymentRequest struct {
	Reason string `json:"reason,omitempty"`
}

// RecordPayment declares a payment against an order.
func RecordPayment(svc internalpayments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		tenantID, err := tenantScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := parsePathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body recordPaymentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(strings.TrimSpace(body.Method))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		payment, err := svc.Record(r.Context(), internalpayments.RecordInput{
			TenantID:    tenantID,
			OrderID:     orderID,
			Method:      method,
			AmountCents: body.AmountCents,
			ReceiptURL:  body.ReceiptURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

// ConfirmPayment marks a pending payment as confirmed.
func ConfirmPayment(svc internalpayments.Service, logg *logger.Logger) http.HandlerFunc {
	return resolvePayment(svc, logg, svcConfirm)
}

// RejectPayment marks a pending payment as rejected.
func RejectPayment(svc internalpayments.Service, logg *logger.Logger) http.HandlerFunc {
	return resolvePayment(svc, logg, svcReject)
}

type resolveAction int

const (
	svcConfirm resolveAction = iota
	svcReject
)

func resolvePayment(svc internalpayments.Service, logg *logger.Logger, action resolveAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		tenantID, err := tenantScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, role, err := actorScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		paymentID, err := parsePathUUID(r, "paymentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body resolvePaymentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := internalpayments.ResolveInput{
			TenantID:    tenantID,
			PaymentID:   paymentID,
			Reason:      body.Reason,
			ActorUserID: actorID,
			ActorRole:   role,
		}

		var payment any
		switch action {
		case svcConfirm:
			payment, err = svc.Confirm(r.Context(), input)
		case svcReject:
			payment, err = svc.Reject(r.Context(), input)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payment)
	}
}

// ListPayments pages through the tenant's payments, defaulting to the
// pending reconciliation queue when a status filter is given.
func ListPayments(svc internalpayments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		tenantID, err := tenantScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filters internalpayments.Filters
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParsePaymentStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filters.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("order_id")); raw != "" {
			orderID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order_id filter"))
				return
			}
			filters.OrderID = &orderID
		}

		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		list, err := svc.List(r.Context(), tenantID, params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"payments":    list.Payments,
			"next_cursor": list.NextCursor,
		})
	}
}

// ListOrderPayments returns every payment declared against one order.
func ListOrderPayments(svc internalpayments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		if _, err := tenantScope(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := parsePathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payments, err := svc.ListByOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payments)
	}
}
