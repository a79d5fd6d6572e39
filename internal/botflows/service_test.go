package botflows

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
)

type stubFlowsRepo struct {
	flows map[uuid.UUID]*models.BotFlow
	order []uuid.UUID
}

func newStubFlowsRepo() *stubFlowsRepo {
	return &stubFlowsRepo{flows: make(map[uuid.UUID]*models.BotFlow)}
}

func (s *stubFlowsRepo) Create(ctx context.Context, flow *models.BotFlow) (*models.BotFlow, error) {
	if flow.ID == uuid.Nil {
		flow.ID = uuid.New()
	}
	copied := *flow
	s.flows[flow.ID] = &copied
	s.order = append(s.order, flow.ID)
	return flow, nil
}

func (s *stubFlowsRepo) FindByID(ctx context.Context, tenantID, flowID uuid.UUID) (*models.BotFlow, error) {
	flow, ok := s.flows[flowID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *flow
	return &copied, nil
}

func (s *stubFlowsRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.BotFlow, error) {
	var flows []models.BotFlow
	for _, id := range s.order {
		flow := s.flows[id]
		if flow.TenantID == tenantID {
			flows = append(flows, *flow)
		}
	}
	return flows, nil
}

func (s *stubFlowsRepo) Update(ctx context.Context, flowID uuid.UUID, updates map[string]any) error {
	flow, ok := s.flows[flowID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["enabled"].(bool); ok {
		flow.Enabled = v
	}
	if v, ok := updates["trigger"].(string); ok {
		flow.Trigger = v
	}
	if v, ok := updates["response"].(string); ok {
		flow.Response = v
	}
	return nil
}

func (s *stubFlowsRepo) Delete(ctx context.Context, tenantID, flowID uuid.UUID) error {
	if _, ok := s.flows[flowID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.flows, flowID)
	return nil
}

type stubTenants struct {
	tenant *models.Tenant
}

func (s *stubTenants) FindByID(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	if s.tenant == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.tenant, nil
}

func TestRespond_MatchesEnabledFlow(t *testing.T) {
	tenantID := uuid.New()
	repo := newStubFlowsRepo()
	svc, err := NewService(repo, &stubTenants{}, "default fallback")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Create(context.Background(), CreateInput{
		TenantID: tenantID,
		Trigger:  "hola",
		Response: "¡Bienvenido!",
		Enabled:  true,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	reply, err := svc.Respond(context.Background(), tenantID, "  Hola ")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if !reply.Matched || reply.Text != "¡Bienvenido!" {
		t.Fatalf("expected matched greeting, got %+v", reply)
	}
}

func TestRespond_FallsBackToTenantMessage(t *testing.T) {
	tenantID := uuid.New()
	repo := newStubFlowsRepo()
	tenantFallback := "Escríbenos y te atendemos."
	tenant := &models.Tenant{ID: tenantID, BotFallback: &tenantFallback}
	svc, err := NewService(repo, &stubTenants{tenant: tenant}, "default fallback")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	reply, err := svc.Respond(context.Background(), tenantID, "algo raro")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply.Matched || !reply.Fallback {
		t.Fatalf("expected fallback reply, got %+v", reply)
	}
	if reply.Text != "Escríbenos y te atendemos." {
		t.Fatalf("expected tenant fallback, got %q", reply.Text)
	}
}

func TestRespond_DefaultFallbackWhenTenantUnset(t *testing.T) {
	tenantID := uuid.New()
	svc, err := NewService(newStubFlowsRepo(), &stubTenants{tenant: &models.Tenant{ID: tenantID}}, "default fallback")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	reply, err := svc.Respond(context.Background(), tenantID, "nada")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply.Text != "default fallback" {
		t.Fatalf("expected default fallback, got %q", reply.Text)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, err := NewService(newStubFlowsRepo(), &stubTenants{}, "")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Create(context.Background(), CreateInput{TenantID: uuid.New(), Trigger: "", Response: "hi"})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(context.Background(), CreateInput{TenantID: uuid.New(), Trigger: "hola", Response: " "})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdate_TogglesEnabled(t *testing.T) {
	tenantID := uuid.New()
	repo := newStubFlowsRepo()
	svc, err := NewService(repo, &stubTenants{}, "")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	flow, err := svc.Create(context.Background(), CreateInput{
		TenantID: tenantID,
		Trigger:  "menu",
		Response: "la carta",
		Enabled:  true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	disabled := false
	updated, err := svc.Update(context.Background(), UpdateInput{
		TenantID: tenantID,
		FlowID:   flow.ID,
		Enabled:  &disabled,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Enabled {
		t.Fatalf("expected flow disabled")
	}

	reply, err := svc.Respond(context.Background(), tenantID, "menu")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply.Matched {
		t.Fatalf("disabled flow must not match")
	}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected app error, got %v", err)
	}
	if appErr.Code() != code {
		t.Fatalf("expected code %s, got %s", code, appErr.Code())
	}
}
