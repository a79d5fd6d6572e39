package orders

import (
	"github.com/google/uuid"

	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	"github.com/restauranteos/restauranteos-backend/pkg/enums"
)

// NewOrderItem references a catalog product at checkout time.
type NewOrderItem struct {
	ProductID uuid.UUID
	Qty       int
	Modifiers []string
}

// CreateInput carries everything needed to accept a customer order.
type CreateInput struct {
	TenantID        uuid.UUID
	CustomerName    string
	CustomerPhone   string
	CustomerAddress *string
	Notes           *string
	Items           []NewOrderItem
}

// AdvanceInput moves an order to the requested next status.
type AdvanceInput struct {
	TenantID    uuid.UUID
	OrderID     uuid.UUID
	Target      enums.OrderStatus
	ActorUserID uuid.UUID
	ActorRole   string
}

// CancelInput terminates a non-terminal order.
type CancelInput struct {
	TenantID    uuid.UUID
	OrderID     uuid.UUID
	Reason      string
	ActorUserID uuid.UUID
	ActorRole   string
}

// OrderList is one page of orders plus the cursor for the next page.
type OrderList struct {
	Orders     []models.Order
	NextCursor string
}
