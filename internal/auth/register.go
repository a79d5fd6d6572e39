package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/restauranteos/restauranteos-backend/internal/tenants"
	"github.com/restauranteos/restauranteos-backend/internal/users"
	"github.com/restauranteos/restauranteos-backend/pkg/config"
	"github.com/restauranteos/restauranteos-backend/pkg/db"
	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	"github.com/restauranteos/restauranteos-backend/pkg/enums"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
	"github.com/restauranteos/restauranteos-backend/pkg/outbox"
	"github.com/restauranteos/restauranteos-backend/pkg/outbox/payloads"
	"github.com/restauranteos/restauranteos-backend/pkg/security"
	"github.com/restauranteos/restauranteos-backend/pkg/types"
)

const defaultBaseDeliveryCostCents = 5000

type registerTxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type registerUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type registerTenantRepository interface {
	FindBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	Create(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error)
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// RegisterService handles the onboarding transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
// The repo factories default to the real gorm repositories and exist so tests
// can substitute stubs.
type RegisterServiceParams struct {
	TxRunner          registerTxRunner
	Outbox            outboxEmitter
	UserRepoFactory   func(tx *gorm.DB) registerUserRepository
	TenantRepoFactory func(tx *gorm.DB) registerTenantRepository
	PasswordConfig    config.PasswordConfig
}

type registerService struct {
	tx          registerTxRunner
	outbox      outboxEmitter
	userRepos   func(tx *gorm.DB) registerUserRepository
	tenantRepos func(tx *gorm.DB) registerTenantRepository
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if params.Outbox == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "outbox service required")
	}
	userRepos := params.UserRepoFactory
	if userRepos == nil {
		userRepos = func(tx *gorm.DB) registerUserRepository { return users.NewRepository(tx) }
	}
	tenantRepos := params.TenantRepoFactory
	if tenantRepos == nil {
		tenantRepos = func(tx *gorm.DB) registerTenantRepository { return tenants.NewRepository(tx) }
	}
	return &registerService{
		tx:          params.TxRunner,
		outbox:      params.Outbox,
		userRepos:   userRepos,
		tenantRepos: tenantRepos,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if !req.AcceptTOS {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "accept_tos must be true")
	}
	restaurantName := strings.TrimSpace(req.RestaurantName)
	slug := tenants.Slugify(restaurantName)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant name must contain letters or digits")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var resp *RegisterResponse
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := s.userRepos(tx)
		tenantRepo := s.tenantRepos(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		if _, err := tenantRepo.FindBySlug(ctx, slug); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "restaurant name already taken")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check tenant slug")
		}

		tenant, err := tenantRepo.Create(ctx, &models.Tenant{
			Slug:           slug,
			Name:           restaurantName,
			Phone:          strings.TrimSpace(req.Phone),
			WhatsAppNumber: strings.TrimSpace(req.WhatsAppNumber),
			Address:        req.Address,
			City:           req.City,
			Delivery: types.DeliveryConfig{
				BaseDeliveryCostCents: defaultBaseDeliveryCostCents,
			},
			Hours:    types.DefaultOperatingHours(),
			IsActive: true,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "restaurant name already taken")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create tenant")
		}

		owner, err := userRepo.Create(ctx, users.CreateUserDTO{
			TenantID:     &tenant.ID,
			Email:        email,
			PasswordHash: passwordHash,
			FullName:     strings.TrimSpace(req.OwnerName),
			Role:         enums.MemberRoleOwner,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create owner user")
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventTenantRegistered,
			AggregateType: enums.AggregateTenant,
			AggregateID:   tenant.ID,
			Actor: &outbox.ActorRef{
				UserID:   owner.ID,
				TenantID: &tenant.ID,
				Role:     string(enums.MemberRoleOwner),
			},
			Data: payloads.TenantRegisteredEvent{
				TenantID: tenant.ID,
				Slug:     tenant.Slug,
				Name:     tenant.Name,
			},
			OccurredAt: time.Now().UTC(),
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit tenant event")
		}

		resp = &RegisterResponse{
			TenantID: tenant.ID,
			Slug:     tenant.Slug,
			OwnerID:  owner.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
