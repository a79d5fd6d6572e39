package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/restauranteos/restauranteos-backend/api/middleware"
	internalorders "github.com/restauranteos/restauranteos-backend/internal/orders"
	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	"github.com/restauranteos/restauranteos-backend/pkg/enums"
	"github.com/restauranteos/restauranteos-backend/pkg/pagination"
)

type stubOrderService struct {
	order *models.Order
	list  *internalorders.OrderList
	err   error

	lastAdvance internalorders.AdvanceInput
	lastFilters internalorders.Filters
}

func (s *stubOrderService) Create(ctx context.Context, input internalorders.CreateInput) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) Advance(ctx context.Context, input internalorders.AdvanceInput) (*models.Order, error) {
	s.lastAdvance = input
	return s.order, s.err
}

func (s *stubOrderService) Cancel(ctx context.Context, input internalorders.CancelInput) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) Get(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) List(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters internalorders.Filters) (*internalorders.OrderList, error) {
	s.lastFilters = filters
	return s.list, s.err
}

func authedRequest(req *http.Request, tenantID, userID uuid.UUID) *http.Request {
	ctx := middleware.WithTenantID(req.Context(), tenantID.String())
	ctx = middleware.WithUserID(ctx, userID.String())
	ctx = middleware.WithRole(ctx, string(enums.MemberRoleStaff))
	return req.WithContext(ctx)
}

func TestAdvanceOrder(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	orderID := uuid.New()

	svc := &stubOrderService{order: &models.Order{ID: orderID, TenantID: tenantID, Status: enums.OrderStatusConfirmed}}

	router := chi.NewRouter()
	router.Post("/api/v1/orders/{orderId}/advance", AdvanceOrder(svc, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/advance", bytes.NewReader([]byte(`{"target":"confirmed"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = authedRequest(req, tenantID, userID)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
	if svc.lastAdvance.Target != enums.OrderStatusConfirmed {
		t.Fatalf("expected target confirmed got %s", svc.lastAdvance.Target)
	}
	if svc.lastAdvance.ActorUserID != userID {
		t.Fatalf("expected actor %s got %s", userID, svc.lastAdvance.ActorUserID)
	}
}

func TestAdvanceOrderRejectsUnknownStatus(t *testing.T) {
	svc := &stubOrderService{}

	router := chi.NewRouter()
	router.Post("/api/v1/orders/{orderId}/advance", AdvanceOrder(svc, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+uuid.NewString()+"/advance", bytes.NewReader([]byte(`{"target":"teleported"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = authedRequest(req, uuid.New(), uuid.New())
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestListOrdersStatusFilter(t *testing.T) {
	svc := &stubOrderService{list: &internalorders.OrderList{
		Orders:     []models.Order{{ID: uuid.New(), Status: enums.OrderStatusPreparing}},
		NextCursor: "cursor-1",
	}}

	router := chi.NewRouter()
	router.Get("/api/v1/orders", ListOrders(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?status=preparing&limit=10", nil)
	req = authedRequest(req, uuid.New(), uuid.New())
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
	if svc.lastFilters.Status == nil || *svc.lastFilters.Status != enums.OrderStatusPreparing {
		t.Fatalf("expected preparing filter got %+v", svc.lastFilters.Status)
	}

	var envelope struct {
		Data struct {
			NextCursor string `json:"next_cursor"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.NextCursor != "cursor-1" {
		t.Fatalf("expected cursor got %q", envelope.Data.NextCursor)
	}
}

func TestListOrdersMissingTenantScope(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/v1/orders", ListOrders(&stubOrderService{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}
