package controllers

import (
	"net/http"

	"github.com/restauranteos/restauranteos-backend/api/responses"
	"github.com/restauranteos/restauranteos-backend/api/validators"
	botflowsvc "github.com/restauranteos/restauranteos-backend/internal/botflows"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
	"github.com/restauranteos/restauranteos-backend/pkg/logger"
)

type createBotFlowRequest struct {
	Trigger  string `json:"trigger" validate:"required"`
	Response string `json:"response" validate:"required"`
	Enabled  *bool  `json:"enabled,omitempty"`
	Position int    `json:"position,omitempty" validate:"omitempty,min=0"`
}

type updateBotFlowRequest struct {
	Trigger  *string `json:"trigger,omitempty"`
	Response *string `json:"response,omitempty"`
	Enabled  *bool   `json:"enabled,omitempty"`
	Position *int    `json:"position,omitempty" validate:"omitempty,min=0"`
}

// CreateBotFlow registers a trigger phrase with its canned response.
func CreateBotFlow(svc botflowsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bot flow service unavailable"))
			return
		}

		tenantID, err := tenantScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createBotFlowRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		enabled := true
		if body.Enabled != nil {
			enabled = *body.Enabled
		}

		flow, err := svc.Create(r.Context(), botflowsvc.CreateInput{
			TenantID: tenantID,
			Trigger:  body.Trigger,
			Response: body.Response,
			Enabled:  enabled,
			Position: body.Position,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, flow)
	}
}

// UpdateBotFlow mutates the provided fields of a flow, including the
// enable toggle.
func UpdateBotFlow(svc botflowsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bot flow service unavailable"))
			return
		}

		tenantID, err := tenantScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		flowID, err := parsePathUUID(r, "flowId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateBotFlowRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		flow, err := svc.Update(r.Context(), botflowsvc.UpdateInput{
			TenantID: tenantID,
			FlowID:   flowID,
			Trigger:  body.Trigger,
			Response: body.Response,
			Enabled:  body.Enabled,
			Position: body.Position,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, flow)
	}
}

// DeleteBotFlow removes a flow.
func DeleteBotFlow(svc botflowsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bot flow service unavailable"))
			return
		}

		tenantID, err := tenantScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		flowID, err := parsePathUUID(r, "flowId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), tenantID, flowID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ListBotFlows returns the tenant's flows in matching order.
func ListBotFlows(svc botflowsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bot flow service unavailable"))
			return
		}

		tenantID, err := tenantScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		flows, err := svc.List(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, flows)
	}
}
