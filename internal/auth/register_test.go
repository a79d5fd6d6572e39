package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restauranteos/restauranteos-backend/internal/users"
	"github.com/restauranteos/restauranteos-backend/pkg/config"
	pkgmodels "github.com/restauranteos/restauranteos-backend/pkg/db/models"
	"github.com/restauranteos/restauranteos-backend/pkg/enums"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
	"github.com/restauranteos/restauranteos-backend/pkg/outbox"
)

type stubTxRunner struct{}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubUserRepository struct {
	data    map[string]*pkgmodels.User
	created *pkgmodels.User
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{data: map[string]*pkgmodels.User{}}
}

func (s *stubUserRepository) FindByEmail(_ context.Context, email string) (*pkgmodels.User, error) {
	if user, ok := s.data[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepository) Create(_ context.Context, dto users.CreateUserDTO) (*pkgmodels.User, error) {
	user := &pkgmodels.User{
		ID:           uuid.New(),
		TenantID:     dto.TenantID,
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
		FullName:     dto.FullName,
		Phone:        dto.Phone,
		Role:         dto.Role,
		IsActive:     true,
	}
	s.data[dto.Email] = user
	s.created = user
	return user, nil
}

type stubTenantRepository struct {
	data    map[string]*pkgmodels.Tenant
	created *pkgmodels.Tenant
}

func newStubTenantRepository() *stubTenantRepository {
	return &stubTenantRepository{data: map[string]*pkgmodels.Tenant{}}
}

func (s *stubTenantRepository) FindBySlug(_ context.Context, slug string) (*pkgmodels.Tenant, error) {
	if tenant, ok := s.data[slug]; ok {
		return tenant, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubTenantRepository) Create(_ context.Context, tenant *pkgmodels.Tenant) (*pkgmodels.Tenant, error) {
	tenant.ID = uuid.New()
	s.data[tenant.Slug] = tenant
	s.created = tenant
	return tenant, nil
}

type stubRegisterOutbox struct {
	events []outbox.DomainEvent
}

func (s *stubRegisterOutbox) Emit(_ context.Context, _ *gorm.DB, event outbox.DomainEvent) error {
	s.events = append(s.events, event)
	return nil
}

type registerTestSetup struct {
	service    RegisterService
	userRepo   *stubUserRepository
	tenantRepo *stubTenantRepository
	outbox     *stubRegisterOutbox
}

func newRegisterTestSetup(t *testing.T) *registerTestSetup {
	t.Helper()
	userRepo := newStubUserRepository()
	tenantRepo := newStubTenantRepository()
	emitter := &stubRegisterOutbox{}
	svc, err := NewRegisterService(RegisterServiceParams{
		TxRunner: stubTxRunner{},
		Outbox:   emitter,
		UserRepoFactory: func(tx *gorm.DB) registerUserRepository {
			return userRepo
		},
		TenantRepoFactory: func(tx *gorm.DB) registerTenantRepository {
			return tenantRepo
		},
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new register service: %v", err)
	}
	return &registerTestSetup{
		service:    svc,
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		outbox:     emitter,
	}
}

func sampleRegisterRequest(email, restaurant string) RegisterRequest {
	return RegisterRequest{
		RestaurantName: restaurant,
		Phone:          "+573001112233",
		WhatsAppNumber: "+573001112233",
		OwnerName:      "Ana Gomez",
		Email:          email,
		Password:       "Secret123!",
		AcceptTOS:      true,
	}
}

func TestRegisterCreatesTenantAndOwner(t *testing.T) {
	setup := newRegisterTestSetup(t)
	req := sampleRegisterRequest("ana@example.com", "La Cocina de Ana")

	resp, err := setup.service.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if setup.tenantRepo.created == nil {
		t.Fatal("expected tenant to be created")
	}
	if setup.tenantRepo.created.Slug != "la-cocina-de-ana" {
		t.Fatalf("unexpected slug %q", setup.tenantRepo.created.Slug)
	}
	if setup.userRepo.created == nil {
		t.Fatal("expected owner user to be created")
	}
	if setup.userRepo.created.Role != enums.MemberRoleOwner {
		t.Fatalf("expected owner role, got %s", setup.userRepo.created.Role)
	}
	if setup.userRepo.created.TenantID == nil || *setup.userRepo.created.TenantID != setup.tenantRepo.created.ID {
		t.Fatal("owner not linked to created tenant")
	}
	if resp.TenantID != setup.tenantRepo.created.ID || resp.OwnerID != setup.userRepo.created.ID {
		t.Fatalf("response identifiers do not match created rows: %+v", resp)
	}

	if len(setup.outbox.events) != 1 {
		t.Fatalf("expected 1 outbox event, got %d", len(setup.outbox.events))
	}
	event := setup.outbox.events[0]
	if event.EventType != enums.EventTenantRegistered {
		t.Fatalf("expected tenant_registered event, got %s", event.EventType)
	}
	if event.AggregateID != setup.tenantRepo.created.ID {
		t.Fatal("event aggregate does not reference the tenant")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	setup := newRegisterTestSetup(t)
	setup.userRepo.data["taken@example.com"] = &pkgmodels.User{
		ID:    uuid.New(),
		Email: "taken@example.com",
	}

	_, err := setup.service.Register(context.Background(), sampleRegisterRequest("taken@example.com", "Otro Lugar"))
	assertCode(t, err, pkgerrors.CodeConflict)
	if len(setup.outbox.events) != 0 {
		t.Fatal("no events expected on failed registration")
	}
}

func TestRegisterRejectsDuplicateSlug(t *testing.T) {
	setup := newRegisterTestSetup(t)
	setup.tenantRepo.data["la-cocina"] = &pkgmodels.Tenant{ID: uuid.New(), Slug: "la-cocina"}

	_, err := setup.service.Register(context.Background(), sampleRegisterRequest("ana@example.com", "La Cocina"))
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestRegisterRequiresTOS(t *testing.T) {
	setup := newRegisterTestSetup(t)
	req := sampleRegisterRequest("ana@example.com", "La Cocina")
	req.AcceptTOS = false

	_, err := setup.service.Register(context.Background(), req)
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestRegisterRejectsUnsluggableName(t *testing.T) {
	setup := newRegisterTestSetup(t)
	req := sampleRegisterRequest("ana@example.com", "!!!")

	_, err := setup.service.Register(context.Background(), req)
	assertCode(t, err, pkgerrors.CodeValidation)
}
