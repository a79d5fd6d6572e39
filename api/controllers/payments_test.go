package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	internalpayments "github.com/restauranteos/restauranteos-backend/internal/payments"
	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	"github.com/restauranteos/restauranteos-backend/pkg/enums"
	"github.com/restauranteos/restauranteos-backend/pkg/pagination"
)

type stubPaymentService struct {
	payment *models.Payment
	list    *internalpayments.PaymentList
	err     error

	lastRecord  internalpayments.RecordInput
	lastResolve internalpayments.ResolveInput
	lastFilters internalpayments.Filters
}

func (s *stubPaymentService) Record(ctx context.Context, input internalpayments.RecordInput) (*models.Payment, error) {
	s.lastRecord = input
	return s.payment, s.err
}

func (s *stubPaymentService) Confirm(ctx context.Context, input internalpayments.ResolveInput) (*models.Payment, error) {
	s.lastResolve = input
	return s.payment, s.err
}

func (s *stubPaymentService) Reject(ctx context.Context, input internalpayments.ResolveInput) (*models.Payment, error) {
	s.lastResolve = input
	return s.payment, s.err
}

func (s *stubPaymentService) HasConfirmedPayment(ctx context.Context, orderID uuid.UUID) (bool, error) {
	return false, s.err
}

func (s *stubPaymentService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error) {
	return nil, s.err
}

func (s *stubPaymentService) List(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters internalpayments.Filters) (*internalpayments.PaymentList, error) {
	s.lastFilters = filters
	return s.list, s.err
}

func TestRecordPayment(t *testing.T) {
	tenantID := uuid.New()
	orderID := uuid.New()
	svc := &stubPaymentService{payment: &models.Payment{
		ID:          uuid.New(),
		OrderID:     orderID,
		TenantID:    tenantID,
		Method:      enums.PaymentMethodBankTransfer,
		Status:      enums.PaymentStatusPending,
		AmountCents: 49000,
	}}

	router := chi.NewRouter()
	router.Post("/api/v1/orders/{orderId}/payments", RecordPayment(svc, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/payments", bytes.NewReader([]byte(`{"method":"bank_transfer","amount_cents":49000}`)))
	req.Header.Set("Content-Type", "application/json")
	req = authedRequest(req, tenantID, uuid.New())
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", resp.Code, resp.Body.String())
	}
	if svc.lastRecord.Method != enums.PaymentMethodBankTransfer {
		t.Fatalf("expected bank_transfer got %s", svc.lastRecord.Method)
	}
	if svc.lastRecord.OrderID != orderID {
		t.Fatalf("expected order %s got %s", orderID, svc.lastRecord.OrderID)
	}
}

func TestConfirmPaymentPassesActor(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	paymentID := uuid.New()
	svc := &stubPaymentService{payment: &models.Payment{ID: paymentID, Status: enums.PaymentStatusConfirmed}}

	router := chi.NewRouter()
	router.Post("/api/v1/payments/{paymentId}/confirm", ConfirmPayment(svc, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/"+paymentID.String()+"/confirm", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req = authedRequest(req, tenantID, userID)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
	if svc.lastResolve.PaymentID != paymentID {
		t.Fatalf("expected payment %s got %s", paymentID, svc.lastResolve.PaymentID)
	}
	if svc.lastResolve.ActorUserID != userID {
		t.Fatalf("expected actor %s got %s", userID, svc.lastResolve.ActorUserID)
	}
}

func TestListPaymentsStatusFilter(t *testing.T) {
	svc := &stubPaymentService{list: &internalpayments.PaymentList{}}

	router := chi.NewRouter()
	router.Get("/api/v1/payments", ListPayments(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments?status=pending", nil)
	req = authedRequest(req, uuid.New(), uuid.New())
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
	if svc.lastFilters.Status == nil || *svc.lastFilters.Status != enums.PaymentStatusPending {
		t.Fatalf("expected pending filter got %+v", svc.lastFilters.Status)
	}
}
