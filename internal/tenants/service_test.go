package tenants

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
	"github.com/restauranteos/restauranteos-backend/pkg/pagination"
	"github.com/restauranteos/restauranteos-backend/pkg/types"
)

type stubRepo struct {
	tenants map[uuid.UUID]*models.Tenant
	updates map[string]any
}

func newStubRepo(tenants ...*models.Tenant) *stubRepo {
	repo := &stubRepo{tenants: map[uuid.UUID]*models.Tenant{}}
	for _, tenant := range tenants {
		repo.tenants[tenant.ID] = tenant
	}
	return repo
}

func (s *stubRepo) WithTx(_ *gorm.DB) Repository { return s }

func (s *stubRepo) Create(_ context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}
	s.tenants[tenant.ID] = tenant
	return tenant, nil
}

func (s *stubRepo) FindByID(_ context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	if tenant, ok := s.tenants[tenantID]; ok {
		copied := *tenant
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindBySlug(_ context.Context, slug string) (*models.Tenant, error) {
	for _, tenant := range s.tenants {
		if tenant.Slug == slug {
			copied := *tenant
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) List(_ context.Context, params pagination.Params) (*TenantList, error) {
	list := &TenantList{}
	for _, tenant := range s.tenants {
		list.Tenants = append(list.Tenants, *tenant)
	}
	return list, nil
}

func (s *stubRepo) Update(_ context.Context, tenantID uuid.UUID, updates map[string]any) error {
	if _, ok := s.tenants[tenantID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.updates = updates
	return nil
}

func testTenant() *models.Tenant {
	return &models.Tenant{
		ID:             uuid.New(),
		Slug:           "la-cocina",
		Name:           "La Cocina",
		Phone:          "+573001112233",
		WhatsAppNumber: "+573001112233",
		Delivery: types.DeliveryConfig{
			BaseDeliveryCostCents:    5000,
			FreeDeliveryMinimumCents: 50000,
		},
		Hours:    types.DefaultOperatingHours(),
		IsActive: true,
	}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if appErr.Code() != code {
		t.Fatalf("expected code %s, got %s", code, appErr.Code())
	}
}

func TestGetBySlugNormalizesInput(t *testing.T) {
	tenant := testTenant()
	svc, err := NewService(newStubRepo(tenant))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	found, err := svc.GetBySlug(context.Background(), "  La-Cocina  ")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if found.ID != tenant.ID {
		t.Fatalf("expected tenant %s, got %s", tenant.ID, found.ID)
	}
}

func TestGetBySlugHidesSuspendedTenant(t *testing.T) {
	tenant := testTenant()
	tenant.IsActive = false
	svc, err := NewService(newStubRepo(tenant))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetBySlug(context.Background(), tenant.Slug)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateSettingsDelivery(t *testing.T) {
	tenant := testTenant()
	repo := newStubRepo(tenant)
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	cfg := types.DeliveryConfig{BaseDeliveryCostCents: 6000, FreeDeliveryMinimumCents: 0}
	updated, err := svc.UpdateSettings(context.Background(), UpdateSettingsInput{
		TenantID: tenant.ID,
		Delivery: &cfg,
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if updated.Delivery.BaseDeliveryCostCents != 6000 {
		t.Fatalf("expected updated delivery config, got %+v", updated.Delivery)
	}
	if _, ok := repo.updates["delivery"]; !ok {
		t.Fatalf("expected delivery in persisted updates, got %v", repo.updates)
	}
	if _, ok := repo.updates["hours"]; ok {
		t.Fatal("hours should not be part of a delivery-only update")
	}
}

func TestUpdateSettingsRejectsNegativeDelivery(t *testing.T) {
	tenant := testTenant()
	svc, err := NewService(newStubRepo(tenant))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	cfg := types.DeliveryConfig{BaseDeliveryCostCents: -1}
	_, err = svc.UpdateSettings(context.Background(), UpdateSettingsInput{
		TenantID: tenant.ID,
		Delivery: &cfg,
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateSettingsValidatesHours(t *testing.T) {
	tenant := testTenant()
	svc, err := NewService(newStubRepo(tenant))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	hours := types.DefaultOperatingHours()
	hours.Tuesday = types.DayHours{Open: "9am", Close: "22:00"}
	_, err = svc.UpdateSettings(context.Background(), UpdateSettingsInput{
		TenantID: tenant.ID,
		Hours:    &hours,
	})
	assertCode(t, err, pkgerrors.CodeValidation)

	hours.Tuesday = types.DayHours{Closed: true}
	if _, err := svc.UpdateSettings(context.Background(), UpdateSettingsInput{
		TenantID: tenant.ID,
		Hours:    &hours,
	}); err != nil {
		t.Fatalf("UpdateSettings with closed day: %v", err)
	}
}

func TestSuspendMarksTenantInactive(t *testing.T) {
	tenant := testTenant()
	repo := newStubRepo(tenant)
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	suspended, err := svc.Suspend(context.Background(), tenant.ID)
	if err != nil {
		t.Fatalf("Suspend: %v", err)
	}
	if suspended.IsActive {
		t.Fatal("expected tenant inactive after suspension")
	}
	if suspended.SuspendedAt == nil {
		t.Fatal("expected suspension timestamp")
	}
	if active, ok := repo.updates["is_active"]; !ok || active != false {
		t.Fatalf("expected is_active=false persisted, got %v", repo.updates)
	}
	if _, ok := repo.updates["suspended_at"]; !ok {
		t.Fatalf("expected suspended_at persisted, got %v", repo.updates)
	}
}

func TestSuspendAlreadySuspendedIsNoop(t *testing.T) {
	tenant := testTenant()
	tenant.IsActive = false
	repo := newStubRepo(tenant)
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	suspended, err := svc.Suspend(context.Background(), tenant.ID)
	if err != nil {
		t.Fatalf("Suspend: %v", err)
	}
	if suspended.IsActive {
		t.Fatal("expected tenant to stay inactive")
	}
	if repo.updates != nil {
		t.Fatalf("expected no persisted updates, got %v", repo.updates)
	}
}

func TestActivateRestoresTenant(t *testing.T) {
	tenant := testTenant()
	tenant.IsActive = false
	suspendedAt := time.Now().Add(-time.Hour)
	tenant.SuspendedAt = &suspendedAt
	repo := newStubRepo(tenant)
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	activated, err := svc.Activate(context.Background(), tenant.ID)
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if !activated.IsActive {
		t.Fatal("expected tenant active after activation")
	}
	if activated.SuspendedAt != nil {
		t.Fatal("expected suspension timestamp cleared")
	}
	if active, ok := repo.updates["is_active"]; !ok || active != true {
		t.Fatalf("expected is_active=true persisted, got %v", repo.updates)
	}
}

func TestSuspendUnknownTenant(t *testing.T) {
	svc, err := NewService(newStubRepo())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Suspend(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestListReturnsSuspendedTenants(t *testing.T) {
	active := testTenant()
	suspended := testTenant()
	suspended.Slug = "el-rincon"
	suspended.IsActive = false
	svc, err := NewService(newStubRepo(active, suspended))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	list, err := svc.List(context.Background(), pagination.Params{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list.Tenants) != 2 {
		t.Fatalf("expected both tenants listed, got %d", len(list.Tenants))
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"La Cocina de Ana": "la-cocina-de-ana",
		"  Tacos & Mas!  ": "tacos-mas",
		"---":              "",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}
