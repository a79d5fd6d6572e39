package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	"github.com/restauranteos/restauranteos-backend/pkg/enums"
	"github.com/restauranteos/restauranteos-backend/pkg/pagination"
)

// Repository defines persistence operations for order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	List(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters Filters) (*OrderList, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	AppendStatusEvent(ctx context.Context, event *models.OrderStatusEvent) error
	ExistsOrderNumber(ctx context.Context, orderNumber string) (bool, error)
}

// ProductReader loads catalog rows for snapshotting at order time.
type ProductReader interface {
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]models.Product, error)
}

// TenantReader resolves tenant settings used during order creation.
type TenantReader interface {
	FindByID(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error)
}

// Filters restricts order listings.
type Filters struct {
	Status *enums.OrderStatus
}
