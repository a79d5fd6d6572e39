package payments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	"github.com/restauranteos/restauranteos-backend/pkg/enums"
	"github.com/restauranteos/restauranteos-backend/pkg/pagination"
)

// Repository defines persistence operations for the payments ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	FindByID(ctx context.Context, tenantID, paymentID uuid.UUID) (*models.Payment, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error)
	List(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters Filters) (*PaymentList, error)
	Update(ctx context.Context, paymentID uuid.UUID, updates map[string]any) error
	CountByOrderAndStatus(ctx context.Context, orderID uuid.UUID, status enums.PaymentStatus) (int64, error)
}

// OrderReader resolves the order a payment settles against.
type OrderReader interface {
	FindByID(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error)
}

// Filters restricts payment listings.
type Filters struct {
	Status  *enums.PaymentStatus
	OrderID *uuid.UUID
}

// PaymentList is one page of payments plus the cursor for the next page.
type PaymentList struct {
	Payments   []models.Payment
	NextCursor string
}
