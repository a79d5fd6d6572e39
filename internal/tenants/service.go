package tenants

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
	"github.com/restauranteos/restauranteos-backend/pkg/pagination"
	"github.com/restauranteos/restauranteos-backend/pkg/types"
)

// UpdateSettingsInput carries the mutable tenant settings. Nil fields
// are left untouched.
type UpdateSettingsInput struct {
	TenantID       uuid.UUID
	Name           *string
	Description    *string
	Phone          *string
	WhatsAppNumber *string
	Address        *string
	City           *string
	Delivery       *types.DeliveryConfig
	Hours          *types.OperatingHours
	BotFallback    *string
}

// Service exposes tenant lookup and settings management. List, Suspend and
// Activate back the platform operator panel and are gated to superadmins at
// the router.
type Service interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*models.Tenant, error)
	List(ctx context.Context, params pagination.Params) (*TenantList, error)
	Suspend(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error)
	Activate(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error)
}

type service struct {
	repo Repository
}

// NewService constructs a tenant service with the provided dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tenant repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	tenant, err := s.repo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tenant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tenant")
	}
	return tenant, nil
}

// GetBySlug resolves a tenant for the public surface. Suspended tenants
// resolve as not found so customer endpoints go dark with the tenant.
func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant slug required")
	}
	tenant, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tenant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tenant")
	}
	if !tenant.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tenant not found")
	}
	return tenant, nil
}

func (s *service) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*models.Tenant, error) {
	tenant, err := s.Get(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant name required")
		}
		updates["name"] = name
		tenant.Name = name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
		tenant.Description = input.Description
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
		tenant.Phone = *input.Phone
	}
	if input.WhatsAppNumber != nil {
		number := strings.TrimSpace(*input.WhatsAppNumber)
		if number == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "whatsapp number required")
		}
		updates["whatsapp_number"] = number
		tenant.WhatsAppNumber = number
	}
	if input.Address != nil {
		updates["address"] = *input.Address
		tenant.Address = input.Address
	}
	if input.City != nil {
		updates["city"] = *input.City
		tenant.City = input.City
	}
	if input.Delivery != nil {
		if input.Delivery.BaseDeliveryCostCents < 0 || input.Delivery.FreeDeliveryMinimumCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery amounts cannot be negative")
		}
		updates["delivery"] = *input.Delivery
		tenant.Delivery = *input.Delivery
	}
	if input.Hours != nil {
		if err := validateHours(*input.Hours); err != nil {
			return nil, err
		}
		updates["hours"] = *input.Hours
		tenant.Hours = *input.Hours
	}
	if input.BotFallback != nil {
		updates["bot_fallback"] = *input.BotFallback
		tenant.BotFallback = input.BotFallback
	}
	if len(updates) == 0 {
		return tenant, nil
	}

	if err := s.repo.Update(ctx, tenant.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update tenant")
	}
	return tenant, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*TenantList, error) {
	list, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tenants")
	}
	return list, nil
}

// Suspend takes a tenant off the platform. Its storefront resolves as not
// found and new orders are refused until it is activated again. Suspending
// an already suspended tenant is a no-op.
func (s *service) Suspend(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	tenant, err := s.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive {
		return tenant, nil
	}

	now := time.Now().UTC()
	updates := map[string]any{"is_active": false, "suspended_at": now}
	if err := s.repo.Update(ctx, tenant.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "suspend tenant")
	}
	tenant.IsActive = false
	tenant.SuspendedAt = &now
	return tenant, nil
}

// Activate lifts a suspension. Activating an active tenant is a no-op.
func (s *service) Activate(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	tenant, err := s.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.IsActive {
		return tenant, nil
	}

	updates := map[string]any{"is_active": true, "suspended_at": nil}
	if err := s.repo.Update(ctx, tenant.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "activate tenant")
	}
	tenant.IsActive = true
	tenant.SuspendedAt = nil
	return tenant, nil
}

var hoursPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func validateHours(hours types.OperatingHours) error {
	days := []types.DayHours{
		hours.Monday, hours.Tuesday, hours.Wednesday, hours.Thursday,
		hours.Friday, hours.Saturday, hours.Sunday,
	}
	for _, day := range days {
		if day.Closed {
			continue
		}
		if !hoursPattern.MatchString(day.Open) || !hoursPattern.MatchString(day.Close) {
			return pkgerrors.New(pkgerrors.CodeValidation, "operating hours must use HH:MM 24-hour format").
				WithDetails(map[string]string{"open": day.Open, "close": day.Close})
		}
	}
	return nil
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe tenant slug from a restaurant name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
