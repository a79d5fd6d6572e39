package botflows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
)

// Repository defines persistence operations for bot flows.
type Repository interface {
	Create(ctx context.Context, flow *models.BotFlow) (*models.BotFlow, error)
	FindByID(ctx context.Context, tenantID, flowID uuid.UUID) (*models.BotFlow, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.BotFlow, error)
	Update(ctx context.Context, flowID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, tenantID, flowID uuid.UUID) error
}

// TenantReader resolves the tenant's fallback message.
type TenantReader interface {
	FindByID(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error)
}

// CreateInput defines a new trigger/response pair.
type CreateInput struct {
	TenantID uuid.UUID
	Trigger  string
	Response string
	Enabled  bool
	Position int
}

// UpdateInput mutates an existing flow. Nil fields are left untouched.
type UpdateInput struct {
	TenantID uuid.UUID
	FlowID   uuid.UUID
	Trigger  *string
	Response *string
	Enabled  *bool
	Position *int
}

// Reply is the matcher outcome handed to the messaging layer.
type Reply struct {
	Text     string `json:"text"`
	Matched  bool   `json:"matched"`
	FlowID   string `json:"flow_id,omitempty"`
	Fallback bool   `json:"fallback"`
}

// Service manages bot flows and answers incoming messages.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.BotFlow, error)
	Update(ctx context.Context, input UpdateInput) (*models.BotFlow, error)
	Delete(ctx context.Context, tenantID, flowID uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID) ([]models.BotFlow, error)
	Respond(ctx context.Context, tenantID uuid.UUID, incoming string) (*Reply, error)
}

type service struct {
	repo            Repository
	tenants         TenantReader
	defaultFallback string
}

// NewService builds a bot flow service with the required dependencies.
func NewService(repo Repository, tenants TenantReader, defaultFallback string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bot flow repository required")
	}
	if tenants == nil {
		return nil, fmt.Errorf("tenant reader required")
	}
	return &service{
		repo:            repo,
		tenants:         tenants,
		defaultFallback: defaultFallback,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.BotFlow, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	trigger := strings.TrimSpace(input.Trigger)
	if trigger == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "trigger required")
	}
	if strings.TrimSpace(input.Response) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "response required")
	}

	flow := &models.BotFlow{
		TenantID: input.TenantID,
		Trigger:  trigger,
		Response: input.Response,
		Enabled:  input.Enabled,
		Position: input.Position,
	}
	created, err := s.repo.Create(ctx, flow)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create bot flow")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.BotFlow, error) {
	if input.FlowID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "flow id required")
	}
	flow, err := s.repo.FindByID(ctx, input.TenantID, input.FlowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bot flow not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bot flow")
	}

	updates := map[string]any{}
	if input.Trigger != nil {
		trigger := strings.TrimSpace(*input.Trigger)
		if trigger == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "trigger required")
		}
		updates["trigger"] = trigger
		flow.Trigger = trigger
	}
	if input.Response != nil {
		if strings.TrimSpace(*input.Response) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "response required")
		}
		updates["response"] = *input.Response
		flow.Response = *input.Response
	}
	if input.Enabled != nil {
		updates["enabled"] = *input.Enabled
		flow.Enabled = *input.Enabled
	}
	if input.Position != nil {
		updates["position"] = *input.Position
		flow.Position = *input.Position
	}
	if len(updates) == 0 {
		return flow, nil
	}

	if err := s.repo.Update(ctx, flow.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update bot flow")
	}
	return flow, nil
}

func (s *service) Delete(ctx context.Context, tenantID, flowID uuid.UUID) error {
	if flowID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "flow id required")
	}
	if err := s.repo.Delete(ctx, tenantID, flowID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "bot flow not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete bot flow")
	}
	return nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID) ([]models.BotFlow, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	flows, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bot flows")
	}
	return flows, nil
}

func (s *service) Respond(ctx context.Context, tenantID uuid.UUID, incoming string) (*Reply, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}

	flows, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bot flows")
	}

	if matched := Match(flows, incoming); matched != nil {
		return &Reply{
			Text:    matched.Response,
			Matched: true,
			FlowID:  matched.ID.String(),
		}, nil
	}

	fallback := s.defaultFallback
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tenant")
	}
	if tenant != nil && tenant.BotFallback != nil && strings.TrimSpace(*tenant.BotFallback) != "" {
		fallback = *tenant.BotFallback
	}

	return &Reply{
		Text:     fallback,
		Fallback: true,
	}, nil
}
